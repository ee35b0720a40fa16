package service

import (
	"context"
	"strings"
	"time"

	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/validation"
)

// PostService handles blog post authoring and the publication lifecycle.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// CreatePostInput carries a new post from an admin author.
type CreatePostInput struct {
	AuthorID   uint
	Title      string
	Excerpt    string
	Content    string
	Tags       string
	CoverImage string
}

// UpdatePostInput carries a post edit. Nil pointers leave the corresponding
// field untouched. The slug is intentionally absent, it never changes after
// creation.
type UpdatePostInput struct {
	Title      *string
	Excerpt    *string
	Content    *string
	Tags       *string
	CoverImage *string
	Status     *models.PostStatus
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []models.BlogPost `json:"posts"`
	Total int64             `json:"total"`
}

// validPostTransitions maps each status to the statuses it may move to.
var validPostTransitions = map[models.PostStatus][]models.PostStatus{
	models.PostStatusDraft:     {models.PostStatusPublished},
	models.PostStatusPublished: {models.PostStatusDraft, models.PostStatusArchived},
	models.PostStatusArchived:  {models.PostStatusPublished},
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// Create stores a new draft post. The slug is derived from the title and
// must be unique across all posts.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	slug := validation.Slugify(title)
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	// Checked up front for a clean 409; the unique index still backstops
	// a concurrent insert.
	if taken, err := s.postRepo.SlugExists(ctx, slug); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewConflictError("A post with this slug already exists")
	}

	post := &models.BlogPost{
		Title:      title,
		Slug:       slug,
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Content:    in.Content,
		Tags:       strings.TrimSpace(in.Tags),
		CoverImage: in.CoverImage,
		Status:     models.PostStatusDraft,
		AuthorID:   in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetBySlug returns a post by slug. Public callers only see published posts
// and each successful read bumps the view counter. Admin callers see every
// status without affecting the counter.
func (s *PostService) GetBySlug(ctx context.Context, slug string, isAdmin bool) (*models.BlogPost, error) {
	if isAdmin {
		return s.postRepo.GetBySlug(ctx, slug)
	}

	post, err := s.postRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// A failed bump must not fail the read.
	_ = s.postRepo.IncrementViews(ctx, post.ID)
	return post, nil
}

// GetByID returns a post by numeric id for admin surfaces.
func (s *PostService) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	return s.postRepo.GetByID(ctx, id)
}

// List returns a page of posts. Non-admin callers are pinned to published
// posts regardless of the requested status filter.
func (s *PostService) List(ctx context.Context, filter repository.PostListFilter, isAdmin bool) (*PostPage, error) {
	if !isAdmin {
		filter.Status = models.PostStatusPublished
	}
	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

// Update edits a post. Status changes follow the lifecycle: drafts can be
// published, published posts can return to draft or be archived, archived
// posts can be republished. The first transition into published stamps
// PublishedAt and later transitions never clear it.
func (s *PostService) Update(ctx context.Context, id uint, in UpdatePostInput) (*models.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		post.Title = title
	}
	if in.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *in.Content
	}
	if in.Tags != nil {
		post.Tags = strings.TrimSpace(*in.Tags)
	}
	if in.CoverImage != nil {
		post.CoverImage = *in.CoverImage
	}

	if in.Status != nil && *in.Status != post.Status {
		if !transitionAllowed(post.Status, *in.Status) {
			return nil, models.NewValidationError(
				"Cannot change status from " + string(post.Status) + " to " + string(*in.Status))
		}
		if *in.Status == models.PostStatusPublished && post.PublishedAt == nil {
			t := s.now()
			post.PublishedAt = &t
		}
		post.Status = *in.Status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post along with its comments.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

func transitionAllowed(from, to models.PostStatus) bool {
	for _, allowed := range validPostTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
