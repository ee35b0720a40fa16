package repository

import (
	"context"
	"testing"

	"verdant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestComment(t *testing.T, db *gorm.DB, postID, authorID uint, content string, approved bool) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   authorID,
		Content:    content,
		IsApproved: approved,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "commenter@example.com")
	post := createTestPost(t, db, author.ID, "first-post", models.PostStatusPublished)
	other := createTestPost(t, db, author.ID, "other-post", models.PostStatusPublished)

	first := createTestComment(t, db, post.ID, author.ID, "first", true)
	createTestComment(t, db, post.ID, author.ID, "pending", false)
	second := createTestComment(t, db, post.ID, author.ID, "second", true)
	createTestComment(t, db, other.ID, author.ID, "elsewhere", true)

	// Approved reply under the first comment, pending reply under the second.
	reply := &models.Comment{
		PostID:     post.ID,
		ParentID:   &first.ID,
		AuthorID:   author.ID,
		Content:    "a reply",
		IsApproved: true,
	}
	require.NoError(t, db.Create(reply).Error)
	hiddenReply := &models.Comment{
		PostID:     post.ID,
		ParentID:   &second.ID,
		AuthorID:   author.ID,
		Content:    "hidden reply",
		IsApproved: false,
	}
	require.NoError(t, db.Create(hiddenReply).Error)

	comments, err := repo.ListByPost(ctx, post.ID, true)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Oldest first, pending filtered out, replies attached.
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "a reply", comments[0].Replies[0].Content)
	assert.Empty(t, comments[1].Replies)

	// Author projection carries no credentials.
	assert.Equal(t, "Test User", comments[0].AuthorProfile.FullName)

	all, err := repo.ListByPost(ctx, post.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCommentRepository_SetApproval(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "commenter@example.com")
	post := createTestPost(t, db, author.ID, "a-post", models.PostStatusPublished)
	comment := createTestComment(t, db, post.ID, author.ID, "needs review", false)

	require.NoError(t, repo.SetApproval(ctx, comment.ID, true))

	fetched, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsApproved)

	// Approving again is a no-op, not an error.
	require.NoError(t, repo.SetApproval(ctx, comment.ID, true))

	// Rejection returns the comment to pending.
	require.NoError(t, repo.SetApproval(ctx, comment.ID, false))
	fetched, err = repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsApproved)

	err = repo.SetApproval(ctx, 999, true)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_DeleteRemovesReplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "commenter@example.com")
	post := createTestPost(t, db, author.ID, "a-post", models.PostStatusPublished)
	parent := createTestComment(t, db, post.ID, author.ID, "parent", true)

	reply := &models.Comment{
		PostID:     post.ID,
		ParentID:   &parent.ID,
		AuthorID:   author.ID,
		Content:    "child",
		IsApproved: true,
	}
	require.NoError(t, db.Create(reply).Error)

	require.NoError(t, repo.Delete(ctx, parent.ID))

	_, err := repo.GetByID(ctx, parent.ID)
	require.Error(t, err)
	_, err = repo.GetByID(ctx, reply.ID)
	require.Error(t, err)

	err = repo.Delete(ctx, parent.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_ListForModeration(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "commenter@example.com")
	postA := createTestPost(t, db, author.ID, "solar-roofs", models.PostStatusPublished)
	postB := createTestPost(t, db, author.ID, "wind-farms", models.PostStatusPublished)

	createTestComment(t, db, postA.ID, author.ID, "great initiative", false)
	createTestComment(t, db, postB.ID, author.ID, "looking forward", false)
	createTestComment(t, db, postA.ID, author.ID, "already live", true)

	rows, total, err := repo.ListForModeration(ctx, ModerationFilter{
		Status: ModerationPending,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	// Each row resolves its post for the queue display.
	for _, row := range rows {
		assert.False(t, row.IsApproved)
		switch row.PostID {
		case postA.ID:
			assert.Equal(t, "solar-roofs", row.PostSlug)
			assert.Equal(t, postA.Title, row.PostTitle)
		case postB.ID:
			assert.Equal(t, "wind-farms", row.PostSlug)
		default:
			t.Fatalf("unexpected post id %d", row.PostID)
		}
	}

	rows, total, err = repo.ListForModeration(ctx, ModerationFilter{
		Status: ModerationApproved,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "already live", rows[0].Content)

	rows, total, err = repo.ListForModeration(ctx, ModerationFilter{
		Status: ModerationAll,
		Search: "LIVE",
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "already live", rows[0].Content)
}
