package service

import (
	"context"
	"errors"
	"testing"

	"verdant/internal/models"
	"verdant/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, *bool, int, int) ([]models.User, error)
	countFn      func(context.Context, *bool) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, approved *bool, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, approved, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context, approved *bool) (int64, error) {
	return s.countFn(ctx, approved)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _ *bool, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:      func(_ context.Context, _ *bool) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.BlogPost) error
	getByIDFn            func(context.Context, uint) (*models.BlogPost, error)
	getBySlugFn          func(context.Context, string) (*models.BlogPost, error)
	getPublishedBySlugFn func(context.Context, string) (*models.BlogPost, error)
	listFn               func(context.Context, repository.PostListFilter) ([]models.BlogPost, int64, error)
	incrementViewsFn     func(context.Context, uint) error
	updateFn             func(context.Context, *models.BlogPost) error
	deleteFn             func(context.Context, uint) error
	slugExistsFn         func(context.Context, string) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.BlogPost) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.getPublishedBySlugFn(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostListFilter) ([]models.BlogPost, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.BlogPost) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.BlogPost) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.BlogPost, error) {
			return &models.BlogPost{ID: id, Status: models.PostStatusPublished}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.BlogPost, error) {
			return &models.BlogPost{ID: 1, Slug: slug}, nil
		},
		getPublishedBySlugFn: func(_ context.Context, slug string) (*models.BlogPost, error) {
			return &models.BlogPost{ID: 1, Slug: slug, Status: models.PostStatusPublished}, nil
		},
		listFn: func(_ context.Context, _ repository.PostListFilter) ([]models.BlogPost, int64, error) {
			return nil, 0, nil
		},
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
		updateFn:         func(_ context.Context, _ *models.BlogPost) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		slugExistsFn:     func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn            func(context.Context, *models.Comment) error
	getByIDFn           func(context.Context, uint) (*models.Comment, error)
	listByPostFn        func(context.Context, uint, bool) ([]models.Comment, error)
	listForModerationFn func(context.Context, repository.ModerationFilter) ([]repository.ModerationRow, int64, error)
	setApprovalFn       func(context.Context, uint, bool) error
	deleteFn            func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, approvedOnly)
}
func (s *commentRepoStub) ListForModeration(ctx context.Context, filter repository.ModerationFilter) ([]repository.ModerationRow, int64, error) {
	return s.listForModerationFn(ctx, filter)
}
func (s *commentRepoStub) SetApproval(ctx context.Context, id uint, approved bool) error {
	return s.setApprovalFn(ctx, id, approved)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _ bool) ([]models.Comment, error) { return nil, nil },
		listForModerationFn: func(_ context.Context, _ repository.ModerationFilter) ([]repository.ModerationRow, int64, error) {
			return nil, 0, nil
		},
		setApprovalFn: func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
