package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a sustainability initiative with media attachments and impact
// metrics. Exactly one image is primary: if none is marked at persist time
// the first image is promoted, and if several are marked only the first
// marked one keeps the flag.
type Project struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"size:300;not null" json:"title"`
	Slug       string     `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Summary    string     `gorm:"size:500" json:"summary"`
	Content    string     `gorm:"type:text" json:"content"`
	Department string     `gorm:"size:120" json:"department"`
	Status     PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	Budget         float64 `gorm:"not null;default:0" json:"budget"`
	CO2SavedTons   float64 `gorm:"not null;default:0" json:"co2_saved_tons"`
	EnergySavedMWh float64 `gorm:"not null;default:0" json:"energy_saved_mwh"`
	TreesPlanted   int64   `gorm:"not null;default:0" json:"trees_planted"`

	AuthorID      uint          `gorm:"not null;index" json:"author_id"`
	Author        User          `gorm:"foreignKey:AuthorID" json:"-"`
	AuthorProfile AuthorProfile `gorm:"-" json:"author"`

	Images    []ProjectImage    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images"`
	Documents []ProjectDocument `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"documents"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProjectImage is an image attached to a project.
type ProjectImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	URL       string    `gorm:"not null" json:"url"`
	Caption   string    `gorm:"size:300" json:"caption"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectDocument is a supporting document attached to a project.
type ProjectDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Name      string    `gorm:"size:254;not null" json:"name"`
	URL       string    `gorm:"not null" json:"url"`
	Size      int64     `gorm:"not null;default:0" json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeSave enforces the single-primary-image invariant on every persist.
func (p *Project) BeforeSave(*gorm.DB) error {
	p.NormalizePrimaryImage()
	return nil
}

// NormalizePrimaryImage promotes the first image to primary when none is
// marked and collapses duplicate marks to the first marked image.
func (p *Project) NormalizePrimaryImage() {
	seen := false
	for i := range p.Images {
		if !p.Images[i].IsPrimary {
			continue
		}
		if seen {
			p.Images[i].IsPrimary = false
			continue
		}
		seen = true
	}
	if !seen && len(p.Images) > 0 {
		p.Images[0].IsPrimary = true
	}
}

// AfterFind projects the author association into its public form.
func (p *Project) AfterFind(*gorm.DB) error {
	if p.Author.ID != 0 {
		p.AuthorProfile = p.Author.Profile()
	}
	return nil
}
