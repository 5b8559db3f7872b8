package customer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mystore/storefront-backend/internal/user"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/customers/me", h.getMe)
	app.Put("/api/v1/customers/me", h.updateMe)
}

func (h *Handler) getMe(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cust, err := h.service.EnsureForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(cust)
}

type updateMeRequest struct {
	Phone      *string `json:"phone,omitempty"`
	BirthDate  *string `json:"birthDate,omitempty"`
	Membership *string `json:"membership,omitempty"`
}

func (h *Handler) updateMe(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateMeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cust, err := h.service.EnsureForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Phone != nil {
		cust.Phone = *payload.Phone
	}
	if payload.BirthDate != nil {
		cust.BirthDate = payload.BirthDate
	}
	// membership is changed by back-office tooling only, never by the
	// customer themselves
	updated, err := h.service.Update(cust.ID, cust)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(updated)
}
