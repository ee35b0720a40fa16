package server

import (
	"verdant/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users. The approved query parameter filters by
// approval state ("true", "false", or absent for all).
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var approved *bool
	switch c.Query("approved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	}

	page, err := s.userService.ListUsers(c.Context(), approved, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ApproveUser handles PUT /api/users/:id/approve
func (s *Server) ApproveUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetApproval(c.Context(), id, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// RevokeUser handles PUT /api/users/:id/revoke. It returns an account to
// the unapproved state, blocking future logins.
func (s *Server) RevokeUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetApproval(c.Context(), id, false)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// SetUserRole handles PUT /api/users/:id/role
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	var req struct {
		Role models.UserRole `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetRole(c.Context(), id, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}
