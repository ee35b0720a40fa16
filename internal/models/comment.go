// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentLength is the upper bound for comment content after trimming.
const MaxCommentLength = 1000

// Comment is community feedback on a blog post. Comments are created pending
// (IsApproved=false) and become publicly visible only after an admin approves
// them. Rejecting an approved comment resets the flag; there is no separate
// rejected state. Replies nest a single level: a reply's ParentID points to a
// top-level comment and replies to replies are not allowed.
type Comment struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	PostID     uint  `gorm:"not null;index" json:"post_id"`
	ParentID   *uint `gorm:"index" json:"parent_id,omitempty"`
	AuthorID   uint  `gorm:"not null;index" json:"author_id"`
	Author     User  `gorm:"foreignKey:AuthorID" json:"-"`
	// AuthorProfile is the sanitized author view (fullname and avatar only).
	AuthorProfile AuthorProfile `gorm:"-" json:"author"`

	Content    string `gorm:"size:1000;not null" json:"content"`
	IsApproved bool   `gorm:"not null;default:false;index" json:"is_approved"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AfterFind projects the author association into its public form so API
// responses never carry the author's email or password hash.
func (c *Comment) AfterFind(*gorm.DB) error {
	if c.Author.ID != 0 {
		c.AuthorProfile = c.Author.Profile()
	}
	return nil
}
