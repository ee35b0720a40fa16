// Package service contains the business logic for the application.
package service

import (
	"context"
	"strings"

	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration, authentication, and the admin
// approval workflow.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateProfileInput carries a self-service profile update.
type UpdateProfileInput struct {
	UserID   uint
	FullName string
	Avatar   string
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new unapproved account. The user cannot log in until an
// admin approves it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		Approved: false,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and enforces the approval gate. The
// error for a bad email and a bad password is identical so the endpoint
// cannot be used to probe which addresses have accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	if !user.Active {
		return nil, models.NewForbiddenError("This account has been deactivated")
	}
	if user.Role != models.RoleAdmin && !user.Approved {
		return nil, models.NewForbiddenError("Your account is pending approval")
	}
	return user, nil
}

// GetUserByID returns a single user.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns a page of users, optionally filtered by approval state.
func (s *UserService) ListUsers(ctx context.Context, approved *bool, limit, offset int) (*UserPage, error) {
	users, err := s.userRepo.List(ctx, approved, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, approved)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Total: total}, nil
}

// UpdateProfile applies a self-service profile change.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		name := strings.TrimSpace(in.FullName)
		if err := validation.ValidateFullName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FullName = name
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetApproval approves or un-approves an account. Approving an already
// approved account is a no-op that still succeeds.
func (s *UserService) SetApproval(ctx context.Context, targetID uint, approved bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.Approved == approved {
		return user, nil
	}

	user.Approved = approved
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes an account's role.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role models.UserRole) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, models.NewValidationError("Invalid role")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves so the
// system always retains at least the acting admin.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, targetID)
}

// IsAdmin reports whether the given user holds the admin role. It backs the
// authorization checks in other services.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
