package repository

import (
	"context"
	"errors"
	"strings"

	"verdant/internal/models"

	"gorm.io/gorm"
)

// ModerationStatus filters the moderation queue.
type ModerationStatus string

const (
	// ModerationAll lists every comment regardless of approval state.
	ModerationAll ModerationStatus = "all"
	// ModerationPending lists comments awaiting review.
	ModerationPending ModerationStatus = "pending"
	// ModerationApproved lists comments already visible publicly.
	ModerationApproved ModerationStatus = "approved"
)

// ModerationFilter narrows the moderation listing.
type ModerationFilter struct {
	Status ModerationStatus
	Search string
	Limit  int
	Offset int
}

// ModerationRow is a comment joined with the post it belongs to, for the
// admin moderation queue.
type ModerationRow struct {
	models.Comment
	PostTitle string `json:"post_title"`
	PostSlug  string `json:"post_slug"`
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]models.Comment, error)
	ListForModeration(ctx context.Context, filter ModerationFilter) ([]ModerationRow, int64, error)
	SetApproval(ctx context.Context, id uint, approved bool) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns top-level comments in submission order with their
// replies nested. With approvedOnly set, pending comments and pending
// replies are filtered out.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]models.Comment, error) {
	var comments []models.Comment

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			if approvedOnly {
				db = db.Where("is_approved = ?", true)
			}
			return db.Order("created_at ASC").Preload("Author")
		}).
		Where("post_id = ? AND parent_id IS NULL", postID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}

	if err := q.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListForModeration composes the queue in two steps: fetch the comment page,
// then resolve post titles and slugs in one query keyed by the distinct post
// ids on the page.
func (r *commentRepository) ListForModeration(ctx context.Context, filter ModerationFilter) ([]ModerationRow, int64, error) {
	var comments []models.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Comment{})
	switch filter.Status {
	case ModerationPending:
		q = q.Where("is_approved = ?", false)
	case ModerationApproved:
		q = q.Where("is_approved = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(content) LIKE ?", pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	err := q.Preload("Author").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	rows := make([]ModerationRow, 0, len(comments))
	if len(comments) == 0 {
		return rows, total, nil
	}

	postIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, c := range comments {
		if !seen[c.PostID] {
			seen[c.PostID] = true
			postIDs = append(postIDs, c.PostID)
		}
	}

	var posts []models.BlogPost
	err = r.db.WithContext(ctx).
		Select("id", "title", "slug").
		Where("id IN ?", postIDs).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	byID := make(map[uint]models.BlogPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	for _, c := range comments {
		rows = append(rows, ModerationRow{
			Comment:   c,
			PostTitle: byID[c.PostID].Title,
			PostSlug:  byID[c.PostID].Slug,
		})
	}
	return rows, total, nil
}

// SetApproval flips the approval flag in a single statement. Approving an
// already approved comment (or rejecting a pending one) is a no-op that
// still succeeds, so the write is idempotent.
func (r *commentRepository) SetApproval(ctx context.Context, id uint, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		// The update matched the row even when the value is unchanged on
		// postgres; zero rows means the comment does not exist.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count == 0 {
			return models.NewNotFoundError("Comment", id)
		}
	}
	return nil
}

// Delete removes a comment and any replies under it.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Comment{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", id)
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
