package pin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/nearby", func(c *fiber.Ctx) error {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		radiusKm, _ := strconv.ParseFloat(c.Query("radius_km"), 64)

		pins, err := svc.Nearby(c.Context(), lat, lng, radiusKm, c.Query("category"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(pins)
	})

	r.Post("/:id/confirm", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.Confirm(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "pin not found")
		}
		return c.JSON(p)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Deactivate(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
