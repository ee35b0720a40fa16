package repository

import (
	"context"
	"errors"
	"strings"

	"verdant/internal/cache"
	"verdant/internal/models"

	"gorm.io/gorm"
)

// ProjectListFilter narrows project listings.
type ProjectListFilter struct {
	Status     models.PostStatus
	Department string
	Search     string
	Limit      int
	Offset     int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error)
	List(ctx context.Context, filter ProjectListFilter) ([]models.Project, int64, error)
	Update(ctx context.Context, project *models.Project) error
	ReplaceImages(ctx context.Context, project *models.Project, images []models.ProjectImage) error
	ReplaceDocuments(ctx context.Context, project *models.Project, documents []models.ProjectDocument) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A project with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images").
		Preload("Documents").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images").
		Preload("Documents").
		Where("slug = ?", slug).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectSlugKey(slug)

	err := cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Images").
			Preload("Documents").
			Where("slug = ? AND status = ?", slug, models.PostStatusPublished).
			First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectListFilter) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Project{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	err := q.Preload("Author").
		Preload("Images").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	// Session with FullSaveAssociations would re-save images with stale
	// primary flags, so associations are replaced through the dedicated
	// methods and Save only touches the project row here.
	err := r.db.WithContext(ctx).
		Omit("Images", "Documents").
		Save(project).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

// ReplaceImages swaps the full image set in one transaction and re-applies
// the single-primary rule to the incoming set.
func (r *projectRepository) ReplaceImages(ctx context.Context, project *models.Project, images []models.ProjectImage) error {
	project.Images = images
	project.NormalizePrimaryImage()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		for i := range project.Images {
			project.Images[i].ID = 0
			project.Images[i].ProjectID = project.ID
		}
		if len(project.Images) == 0 {
			return nil
		}
		return tx.Create(&project.Images).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

// ReplaceDocuments swaps the full document set in one transaction.
func (r *projectRepository) ReplaceDocuments(ctx context.Context, project *models.Project, documents []models.ProjectDocument) error {
	project.Documents = documents

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectDocument{}).Error; err != nil {
			return err
		}
		for i := range project.Documents {
			project.Documents[i].ID = 0
			project.Documents[i].ProjectID = project.ID
		}
		if len(project.Documents) == 0 {
			return nil
		}
		return tx.Create(&project.Documents).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	var slug string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id", "slug").First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", id)
			}
			return models.NewInternalError(err)
		}
		slug = project.Slug

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectDocument{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Project{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateProject(ctx, slug)
	return nil
}

func (r *projectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
