// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"

	"verdant/internal/config"
	"verdant/internal/middleware"
	"verdant/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the demo seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumProjects int
	ShouldClean bool
}

// EnsureAdmin guarantees that the configured admin account exists and is
// approved. It is idempotent and safe to run on every startup.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) (*models.User, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin credentials not configured")
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		changed := false
		if existing.Role != models.RoleAdmin {
			existing.Role = models.RoleAdmin
			changed = true
		}
		if !existing.Approved {
			existing.Approved = true
			changed = true
		}
		if changed {
			if err := db.Save(&existing).Error; err != nil {
				return nil, err
			}
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := cfg.AdminName
	if name == "" {
		name = "Site Admin"
	}
	admin := &models.User{
		FullName: name,
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Approved: true,
		Active:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}

	middleware.Logger.Info("Admin account created", "email", admin.Email)
	return admin, nil
}

// Run populates the database with demo content.
func Run(db *gorm.DB, cfg *config.Config, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}
	}

	admin, err := EnsureAdmin(db, cfg)
	if err != nil {
		return err
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		// Roughly one in five accounts is left pending so the approval
		// queue has content.
		approved := i%5 != 0
		user, err := f.CreateUser(func(u *models.User) {
			u.Approved = approved
		})
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	for i := 0; i < opts.NumPosts; i++ {
		post, err := f.CreatePost(admin, i%3 != 0)
		if err != nil {
			return err
		}
		if post.Status != models.PostStatusPublished {
			continue
		}
		for _, u := range users {
			if !u.Approved {
				continue
			}
			if _, err := f.CreateComment(post, u); err != nil {
				return err
			}
		}
	}

	for i := 0; i < opts.NumProjects; i++ {
		if _, err := f.CreateProject(admin, i%4 != 0); err != nil {
			return err
		}
	}

	middleware.Logger.Info("Seed complete",
		"users", opts.NumUsers,
		"posts", opts.NumPosts,
		"projects", opts.NumProjects,
	)
	return nil
}

// Clean removes all seeded content. Order respects foreign keys.
func Clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Comment{},
		&models.BlogPost{},
		&models.ProjectDocument{},
		&models.ProjectImage{},
		&models.Project{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
