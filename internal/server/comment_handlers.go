package server

import (
	"verdant/internal/middleware"
	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/blog/:id/comments. Pending comments are only
// included for admin callers.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListForPost(c.Context(), postID, s.isAdminCaller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// CreateComment handles POST /api/blog/:id/comments. The comment is stored
// pending and stays invisible to other readers until approved.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Submit(c.Context(), service.SubmitCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment": comment,
		"message": "Comment submitted for review",
	})
}

// GetModerationQueue handles GET /api/blog/comments
func (s *Server) GetModerationQueue(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	status := repository.ModerationStatus(c.Query("status", string(repository.ModerationPending)))
	switch status {
	case repository.ModerationAll, repository.ModerationPending, repository.ModerationApproved:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid status filter"))
	}

	page, err := s.commentService.ListForModeration(c.Context(), repository.ModerationFilter{
		Status: status,
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ApproveComment handles PUT /api/blog/comments/:id/approve
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Comment")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.Approve(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.ModerationActions.WithLabelValues("approve").Inc()
	return c.JSON(fiber.Map{
		"comment": comment,
	})
}

// RejectComment handles PUT /api/blog/comments/:id/reject
func (s *Server) RejectComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Comment")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.Reject(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.ModerationActions.WithLabelValues("reject").Inc()
	return c.JSON(fiber.Map{
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/blog/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Comment")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.ModerationActions.WithLabelValues("delete").Inc()
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
