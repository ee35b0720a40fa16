package server

import (
	"verdant/internal/models"
	"verdant/internal/repository"
	"verdant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/blog. Public callers only see published posts;
// admins can filter by status.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	filter := repository.PostListFilter{
		Status: models.PostStatus(c.Query("status")),
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	page, err := s.postService.List(c.Context(), filter, s.isAdminCaller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPostBySlug handles GET /api/blog/:slug
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	isAdmin := s.isAdminCaller(c)

	post, err := s.postService.GetBySlug(c.Context(), slug, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}

	// The detail view carries the comment thread. Pending comments are
	// visible to admins only. The cached post never includes comments,
	// so they are always read fresh.
	comments, err := s.commentService.ListForPost(c.Context(), post.ID, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}
	post.Comments = comments

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// CreatePost handles POST /api/blog
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title      string `json:"title"`
		Excerpt    string `json:"excerpt"`
		Content    string `json:"content"`
		Tags       string `json:"tags"`
		CoverImage string `json:"cover_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), service.CreatePostInput{
		AuthorID:   currentUserID(c),
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Tags:       req.Tags,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post": post,
	})
}

// UpdatePost handles PUT /api/blog/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	var req struct {
		Title      *string            `json:"title"`
		Excerpt    *string            `json:"excerpt"`
		Content    *string            `json:"content"`
		Tags       *string            `json:"tags"`
		CoverImage *string            `json:"cover_image"`
		Status     *models.PostStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.Context(), id, service.UpdatePostInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Tags:       req.Tags,
		CoverImage: req.CoverImage,
		Status:     req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"post": post,
	})
}

// DeletePost handles DELETE /api/blog/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}
