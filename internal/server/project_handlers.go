package server

import (
	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProjects handles GET /api/projects
func (s *Server) GetProjects(c *fiber.Ctx) error {
	p := parsePagination(c, 12)

	filter := repository.ProjectListFilter{
		Status:     models.PostStatus(c.Query("status")),
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	page, err := s.projectService.List(c.Context(), filter, s.isAdminCaller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetProjectBySlug handles GET /api/projects/:slug
func (s *Server) GetProjectBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	project, err := s.projectService.GetBySlug(c.Context(), slug, s.isAdminCaller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"project": project,
	})
}

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Title          string                   `json:"title"`
		Summary        string                   `json:"summary"`
		Content        string                   `json:"content"`
		Department     string                   `json:"department"`
		Budget         float64                  `json:"budget"`
		CO2SavedTons   float64                  `json:"co2_saved_tons"`
		EnergySavedMWh float64                  `json:"energy_saved_mwh"`
		TreesPlanted   int64                    `json:"trees_planted"`
		Images         []models.ProjectImage    `json:"images"`
		Documents      []models.ProjectDocument `json:"documents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.Create(c.Context(), service.CreateProjectInput{
		AuthorID:       currentUserID(c),
		Title:          req.Title,
		Summary:        req.Summary,
		Content:        req.Content,
		Department:     req.Department,
		Budget:         req.Budget,
		CO2SavedTons:   req.CO2SavedTons,
		EnergySavedMWh: req.EnergySavedMWh,
		TreesPlanted:   req.TreesPlanted,
		Images:         req.Images,
		Documents:      req.Documents,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"project": project,
	})
}

// UpdateProject handles PUT /api/projects/:id
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Project")
	if err != nil {
		return nil
	}

	var req struct {
		Title          *string                  `json:"title"`
		Summary        *string                  `json:"summary"`
		Content        *string                  `json:"content"`
		Department     *string                  `json:"department"`
		Status         *models.PostStatus       `json:"status"`
		Budget         *float64                 `json:"budget"`
		CO2SavedTons   *float64                 `json:"co2_saved_tons"`
		EnergySavedMWh *float64                 `json:"energy_saved_mwh"`
		TreesPlanted   *int64                   `json:"trees_planted"`
		Images         []models.ProjectImage    `json:"images"`
		Documents      []models.ProjectDocument `json:"documents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.Update(c.Context(), id, service.UpdateProjectInput{
		Title:          req.Title,
		Summary:        req.Summary,
		Content:        req.Content,
		Department:     req.Department,
		Status:         req.Status,
		Budget:         req.Budget,
		CO2SavedTons:   req.CO2SavedTons,
		EnergySavedMWh: req.EnergySavedMWh,
		TreesPlanted:   req.TreesPlanted,
		Images:         req.Images,
		Documents:      req.Documents,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"project": project,
	})
}

// DeleteProject handles DELETE /api/projects/:id
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Project")
	if err != nil {
		return nil
	}

	if err := s.projectService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted",
	})
}
