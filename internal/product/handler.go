package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.create)
	app.Put("/api/v1/products/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/products/:id<[0-9]+>", h.delete)
}

type productRequest struct {
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Inventory    int             `json:"inventory"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CollectionID int             `json:"collectionId"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	f := Filter{
		Search:  c.Query("search"),
		OrderBy: c.Query("ordering"),
	}
	if v := c.Query("collection_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid collection_id"})
		}
		f.CollectionID = &id
	}
	if v := c.Query("unit_price_gt"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid unit_price_gt"})
		}
		f.UnitPriceGT = &d
	}
	if v := c.Query("unit_price_lt"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid unit_price_lt"})
		}
		f.UnitPriceLT = &d
	}

	products, err := h.service.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(products)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(p)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}

	created, err := h.service.Create(Product{
		Title:        payload.Title,
		Slug:         payload.Slug,
		Description:  payload.Description,
		Inventory:    payload.Inventory,
		UnitPrice:    payload.UnitPrice,
		CollectionID: payload.CollectionID,
	})
	if err != nil {
		if err == ErrInvalidPrice {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Product{
		Title:        payload.Title,
		Slug:         payload.Slug,
		Description:  payload.Description,
		Inventory:    payload.Inventory,
		UnitPrice:    payload.UnitPrice,
		CollectionID: payload.CollectionID,
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrInvalidPrice:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrInOrder:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Product is associated with an existing order. Can not delete",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
