package media

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FileName string `json:"file_name"`
			Type     string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		userID, _ := c.Locals("user_id").(string)

		up, err := svc.RegisterUpload(c.Context(), userID, body.FileName, body.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(up)
	})

	r.Post("/posts/:id", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Items []AttachItem `json:"items"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		userID, _ := c.Locals("user_id").(string)

		attached, err := svc.Attach(c.Context(), c.Params("id"), userID, body.Items)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(attached)
	})
}
