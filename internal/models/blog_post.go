package models

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	// PostStatusDraft is the initial state; drafts are visible to admins only.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished makes a post publicly readable.
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived hides a post from public listings without deleting it.
	PostStatusArchived PostStatus = "archived"
)

// BlogPost is an authored article. The slug is derived from the title once at
// creation and never changes. PublishedAt is stamped on the first transition
// into published and is never cleared afterwards, even if the post is later
// unpublished or archived.
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Slug        string     `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Tags        string     `gorm:"size:300" json:"tags"`
	CoverImage  string     `json:"cover_image"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `gorm:"not null;default:0" json:"view_count"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"-"`
	// AuthorProfile mirrors Author without credentials; filled after load.
	AuthorProfile AuthorProfile `gorm:"-" json:"author"`

	// Comments have no lifecycle outside their post; deleting the post
	// removes them.
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AfterFind projects the author association into its public form.
func (p *BlogPost) AfterFind(*gorm.DB) error {
	if p.Author.ID != 0 {
		p.AuthorProfile = p.Author.Profile()
	}
	return nil
}
