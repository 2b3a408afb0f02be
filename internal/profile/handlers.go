package profile

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if c.Locals("user_id") != c.Params("id") {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's profile")
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		p, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/:id/types", authMiddleware, func(c *fiber.Ctx) error {
		if c.Locals("user_id") != c.Params("id") {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's profile")
		}
		var body struct {
			Types []string `json:"types"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := svc.SetTypes(c.Context(), c.Params("id"), body.Types); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"user_types": body.Types})
	})

	r.Put("/:id/presence", authMiddleware, func(c *fiber.Ctx) error {
		if c.Locals("user_id") != c.Params("id") {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's profile")
		}
		var req PresenceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := svc.UpdatePresence(c.Context(), c.Params("id"), req); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
