package session

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, store *Store, authMiddleware fiber.Handler) {
	r.Get("/state", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		state, err := store.LoadUIState(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state)
	})

	r.Put("/state", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var state UIState
		if err := c.BodyParser(&state); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := store.SaveUIState(c.Context(), userID, state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state)
	})

	r.Get("/snapshot", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		snap, ok, err := store.LoadSnapshot(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no snapshot")
		}
		return c.JSON(snap)
	})

	r.Put("/snapshot", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var snap Snapshot
		if err := c.BodyParser(&snap); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		snap.UserID = userID
		snap.Authenticated = true
		if err := store.SaveSnapshot(c.Context(), snap); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/snapshot", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := store.ClearSnapshot(c.Context(), userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
