package service

import (
	"context"
	"strings"

	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/validation"
)

// ProjectService handles sustainability project management.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// CreateProjectInput carries a new project from an admin.
type CreateProjectInput struct {
	AuthorID       uint
	Title          string
	Summary        string
	Content        string
	Department     string
	Budget         float64
	CO2SavedTons   float64
	EnergySavedMWh float64
	TreesPlanted   int64
	Images         []models.ProjectImage
	Documents      []models.ProjectDocument
}

// UpdateProjectInput carries a project edit. Nil pointers leave the
// corresponding field untouched; nil slices leave attachments alone while
// empty slices clear them.
type UpdateProjectInput struct {
	Title          *string
	Summary        *string
	Content        *string
	Department     *string
	Status         *models.PostStatus
	Budget         *float64
	CO2SavedTons   *float64
	EnergySavedMWh *float64
	TreesPlanted   *int64
	Images         []models.ProjectImage
	Documents      []models.ProjectDocument
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
}

// NewProjectService returns a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Create stores a new project. The slug is derived from the title.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	slug := validation.Slugify(title)
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	// Checked up front for a clean 409; the unique index still backstops
	// a concurrent insert.
	if taken, err := s.projectRepo.SlugExists(ctx, slug); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewConflictError("A project with this slug already exists")
	}

	if err := validateMetrics(in.Budget, in.CO2SavedTons, in.EnergySavedMWh, in.TreesPlanted); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:          title,
		Slug:           slug,
		Summary:        strings.TrimSpace(in.Summary),
		Content:        in.Content,
		Department:     strings.TrimSpace(in.Department),
		Status:         models.PostStatusDraft,
		Budget:         in.Budget,
		CO2SavedTons:   in.CO2SavedTons,
		EnergySavedMWh: in.EnergySavedMWh,
		TreesPlanted:   in.TreesPlanted,
		AuthorID:       in.AuthorID,
		Images:         in.Images,
		Documents:      in.Documents,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, project.ID)
}

// GetBySlug returns a project by slug. Public callers only see published
// projects.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string, isAdmin bool) (*models.Project, error) {
	if isAdmin {
		return s.projectRepo.GetBySlug(ctx, slug)
	}
	return s.projectRepo.GetPublishedBySlug(ctx, slug)
}

// List returns a page of projects. Non-admin callers are pinned to
// published projects.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectListFilter, isAdmin bool) (*ProjectPage, error) {
	if !isAdmin {
		filter.Status = models.PostStatusPublished
	}
	projects, total, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProjectPage{Projects: projects, Total: total}, nil
}

// Update edits a project and optionally replaces its attachments.
func (s *ProjectService) Update(ctx context.Context, id uint, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		project.Title = title
	}
	if in.Summary != nil {
		project.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.Content != nil {
		project.Content = *in.Content
	}
	if in.Department != nil {
		project.Department = strings.TrimSpace(*in.Department)
	}
	if in.Status != nil {
		if *in.Status != project.Status && !transitionAllowed(project.Status, *in.Status) {
			return nil, models.NewValidationError(
				"Cannot change status from " + string(project.Status) + " to " + string(*in.Status))
		}
		project.Status = *in.Status
	}

	budget := project.Budget
	co2 := project.CO2SavedTons
	energy := project.EnergySavedMWh
	trees := project.TreesPlanted
	if in.Budget != nil {
		budget = *in.Budget
	}
	if in.CO2SavedTons != nil {
		co2 = *in.CO2SavedTons
	}
	if in.EnergySavedMWh != nil {
		energy = *in.EnergySavedMWh
	}
	if in.TreesPlanted != nil {
		trees = *in.TreesPlanted
	}
	if err := validateMetrics(budget, co2, energy, trees); err != nil {
		return nil, err
	}
	project.Budget = budget
	project.CO2SavedTons = co2
	project.EnergySavedMWh = energy
	project.TreesPlanted = trees

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if in.Images != nil {
		if err := s.projectRepo.ReplaceImages(ctx, project, in.Images); err != nil {
			return nil, err
		}
	}
	if in.Documents != nil {
		if err := s.projectRepo.ReplaceDocuments(ctx, project, in.Documents); err != nil {
			return nil, err
		}
	}

	return s.projectRepo.GetByID(ctx, id)
}

// Delete removes a project and its attachments.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.projectRepo.Delete(ctx, id)
}

func validateMetrics(budget, co2, energy float64, trees int64) error {
	if budget < 0 {
		return models.NewValidationError("Budget cannot be negative")
	}
	if co2 < 0 || energy < 0 || trees < 0 {
		return models.NewValidationError("Impact metrics cannot be negative")
	}
	return nil
}
