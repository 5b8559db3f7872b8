package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mystore/storefront-backend/internal/user"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.Checkout)
	app.Get("/api/v1/orders", h.List)
	app.Get("/api/v1/orders/:id", h.Get)
	app.Patch("/api/v1/orders/:id", h.UpdatePaymentStatus)
	app.Delete("/api/v1/orders/:id", h.Delete)
}

func (h *Handler) Checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var payload struct {
		CartID string `json:"cartId"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	cartID, err := uuid.Parse(payload.CartID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No cart with given id"})
	}

	ord, err := h.service.Checkout(c.Context(), cartID, userID)
	if err != nil {
		switch err {
		case ErrCartNotFound:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No cart with given id"})
		case ErrCartEmpty:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cart is empty"})
		case ErrNoCustomer:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No customer for user"})
		default:
			log.WithError(err).WithField("cart_id", cartID).Error("checkout failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not place order"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	orders, err := h.service.ListForUser(userID, user.IsStaffFromCtx(c))
	if err != nil {
		log.WithError(err).Error("list orders failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	ord, err := h.service.GetForUser(id, userID, user.IsStaffFromCtx(c))
	if err != nil {
		switch err {
		case ErrNotFound, ErrNotOwned:
			// hide other customers' orders behind the same 404
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(ord)
}

func (h *Handler) UpdatePaymentStatus(c *fiber.Ctx) error {
	if !user.IsStaffFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	var payload struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	ord, err := h.service.UpdatePaymentStatus(id, payload.PaymentStatus)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payment status"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(ord)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if !user.IsStaffFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
