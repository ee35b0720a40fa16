// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the access level of a user account.
type UserRole string

const (
	// RoleUser is a regular community member.
	RoleUser UserRole = "user"
	// RoleAdmin can manage content, moderate comments, and approve accounts.
	RoleAdmin UserRole = "admin"
)

// User represents a platform account. New accounts start unapproved and
// cannot log in until an admin approves them; admins are implicitly approved.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:120;not null" json:"fullname"`
	Email     string         `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      UserRole       `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	Approved  bool           `gorm:"not null;default:false" json:"approved"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthorProfile is the public subset of a user embedded in comment and post
// responses. It deliberately carries no email or credential material.
type AuthorProfile struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Profile returns the public-facing projection of the user.
func (u *User) Profile() AuthorProfile {
	return AuthorProfile{
		ID:       u.ID,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
