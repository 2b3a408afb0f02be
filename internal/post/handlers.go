package post

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.AuthorID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "author_id required")
		}
		p, err := svc.CreatePost(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Get("/feed", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		posts, err := svc.Feed(c.Context(), c.Query("city"), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(FilterByCategory(posts, c.Query("category")))
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.AuthorID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "author_id required")
		}
		p, err := svc.UpdatePost(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:id/helpful", authMiddleware, func(c *fiber.Ctx) error {
		count, err := svc.MarkHelpful(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return c.JSON(fiber.Map{"helpful_count": count})
	})

	r.Post("/:id/comments", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			AuthorID string `json:"author_id"`
			ParentID string `json:"parent_id"`
			Content  string `json:"content"`
		}
		if err := c.BodyParser(&body); err != nil || body.AuthorID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "author_id and content required")
		}
		comment, err := svc.AddComment(c.Context(), c.Params("id"), body.AuthorID, body.ParentID, body.Content)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})

	r.Get("/:id/comments", func(c *fiber.Ctx) error {
		comments, err := svc.Comments(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(comments)
	})
}
