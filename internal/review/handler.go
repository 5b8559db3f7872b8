package review

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mystore/storefront-backend/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:id<[0-9]+>/reviews", h.list)
	app.Post("/api/v1/products/:id<[0-9]+>/reviews", h.create)
}

type reviewRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("id"))

	reviews, err := h.service.ListByProduct(productID)
	if err != nil {
		if err == product.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(reviews)
}

func (h *Handler) create(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("id"))

	payload := new(reviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and description are required"})
	}

	created, err := h.service.Create(Review{
		ProductID:   productID,
		Name:        payload.Name,
		Description: payload.Description,
		Date:        time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		if err == product.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
