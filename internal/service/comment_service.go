package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"verdant/internal/models"
	"verdant/internal/repository"
)

// CommentService handles comment submission and the moderation workflow.
// Comments are created pending and only become publicly visible once an
// admin approves them.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// SubmitCommentInput carries a new comment from an authenticated user.
type SubmitCommentInput struct {
	AuthorID uint
	PostID   uint
	ParentID *uint
	Content  string
}

// ModerationPage is one page of the moderation queue.
type ModerationPage struct {
	Comments []repository.ModerationRow `json:"comments"`
	Total    int64                      `json:"total"`
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Submit validates and stores a new pending comment. The target post must
// exist and be published; a reply must point at a top-level comment on the
// same post.
func (s *CommentService) Submit(ctx context.Context, in SubmitCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	// The limit counts characters, not bytes, so multibyte content is
	// not penalized.
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, models.NewValidationError(
			fmt.Sprintf("Comment too long (max %d characters)", models.MaxCommentLength))
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPublished {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
		if parent.ParentID != nil {
			return nil, models.NewValidationError("Replies cannot be nested further")
		}
	}

	comment := &models.Comment{
		PostID:     in.PostID,
		ParentID:   in.ParentID,
		AuthorID:   in.AuthorID,
		Content:    content,
		IsApproved: false,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListForPost returns the comments on a post. Admin callers see pending
// comments as well.
func (s *CommentService) ListForPost(ctx context.Context, postID uint, includePending bool) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, !includePending)
}

// Approve makes a comment publicly visible.
func (s *CommentService) Approve(ctx context.Context, id uint) (*models.Comment, error) {
	if err := s.commentRepo.SetApproval(ctx, id, true); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, id)
}

// Reject returns a comment to the pending state, hiding it from public view.
func (s *CommentService) Reject(ctx context.Context, id uint) (*models.Comment, error) {
	if err := s.commentRepo.SetApproval(ctx, id, false); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, id)
}

// Delete permanently removes a comment and its replies.
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}

// ListForModeration returns the admin moderation queue.
func (s *CommentService) ListForModeration(ctx context.Context, filter repository.ModerationFilter) (*ModerationPage, error) {
	rows, total, err := s.commentRepo.ListForModeration(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ModerationPage{Comments: rows, Total: total}, nil
}
