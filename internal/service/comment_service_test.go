package service

import (
	"context"
	"strings"
	"testing"

	"verdant/internal/models"
	"verdant/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Submit_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.Submit(ctx, SubmitCommentInput{AuthorID: 1, PostID: 1, Content: "   "})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  strings.Repeat("x", models.MaxCommentLength+1),
		})
		assertValidationError(t, err)
	})

	t.Run("exactly max length is accepted", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  strings.Repeat("x", models.MaxCommentLength),
		})
		assert.NoError(t, err)
	})

	t.Run("limit counts characters not bytes", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())

		// Three bytes per rune in UTF-8; at the limit in characters.
		_, err := svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  strings.Repeat("木", models.MaxCommentLength),
		})
		assert.NoError(t, err)

		_, err = svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  strings.Repeat("木", models.MaxCommentLength+1),
		})
		assertValidationError(t, err)
	})

	t.Run("unpublished post is treated as missing", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.BlogPost, error) {
			return &models.BlogPost{ID: id, Status: models.PostStatusDraft}, nil
		}
		svc := NewCommentService(noopCommentRepo(), postRepo)
		_, err := svc.Submit(ctx, SubmitCommentInput{AuthorID: 1, PostID: 9, Content: "hi"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("reply to comment on another post", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 2}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		parentID := uint(5)
		_, err := svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1, PostID: 1, ParentID: &parentID, Content: "hi",
		})
		assertValidationError(t, err)
	})

	t.Run("reply to a reply", func(t *testing.T) {
		t.Parallel()
		grandparent := uint(3)
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, ParentID: &grandparent}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		parentID := uint(5)
		_, err := svc.Submit(ctx, SubmitCommentInput{
			AuthorID: 1, PostID: 1, ParentID: &parentID, Content: "hi",
		})
		assertValidationError(t, err)
	})
}

func TestCommentService_Submit_CreatesPending(t *testing.T) {
	t.Parallel()

	var created *models.Comment
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		created = c
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: "trimmed text", PostID: 1, AuthorID: 1}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comment, err := svc.Submit(context.Background(), SubmitCommentInput{
		AuthorID: 1,
		PostID:   1,
		Content:  "  trimmed text  ",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "trimmed text", created.Content)
	assert.False(t, created.IsApproved, "new comments must await moderation")
}

func TestCommentService_ApproveReject(t *testing.T) {
	t.Parallel()

	var calls []bool
	commentRepo := noopCommentRepo()
	commentRepo.setApprovalFn = func(_ context.Context, id uint, approved bool) error {
		calls = append(calls, approved)
		return nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	ctx := context.Background()

	_, err := svc.Approve(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, calls)
}

func TestCommentService_ListForPost(t *testing.T) {
	t.Parallel()

	var gotApprovedOnly bool
	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(_ context.Context, _ uint, approvedOnly bool) ([]models.Comment, error) {
		gotApprovedOnly = approvedOnly
		return nil, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	ctx := context.Background()

	_, err := svc.ListForPost(ctx, 1, false)
	require.NoError(t, err)
	assert.True(t, gotApprovedOnly, "public listing must hide pending comments")

	_, err = svc.ListForPost(ctx, 1, true)
	require.NoError(t, err)
	assert.False(t, gotApprovedOnly, "admin listing includes pending comments")
}

func TestCommentService_ListForModeration(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.listForModerationFn = func(_ context.Context, filter repository.ModerationFilter) ([]repository.ModerationRow, int64, error) {
		assert.Equal(t, repository.ModerationPending, filter.Status)
		return []repository.ModerationRow{
			{Comment: models.Comment{ID: 1, Content: "queued"}, PostTitle: "Post", PostSlug: "post"},
		}, 1, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	page, err := svc.ListForModeration(context.Background(), repository.ModerationFilter{
		Status: repository.ModerationPending,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "post", page.Comments[0].PostSlug)
}
