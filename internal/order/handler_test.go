package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront-backend/internal/cart"
	"github.com/mystore/storefront-backend/internal/customer"
	"github.com/mystore/storefront-backend/internal/events"
	"github.com/mystore/storefront-backend/internal/product"
)

type handlerFixture struct {
	app   *fiber.App
	carts *cart.InMemoryRepository
}

// makeApp wires the handler behind a stand-in auth middleware that trusts
// the X-User-ID and X-Staff headers.
func makeApp(t *testing.T) *handlerFixture {
	t.Helper()

	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Title: "Dog Chew Toy", Slug: "dog-chew-toy", UnitPrice: decimal.RequireFromString("9.99"), Inventory: 10, CollectionID: 1},
	}))
	carts := cart.NewInMemoryRepository(products)
	customers := customer.NewService(customer.NewInMemoryRepository([]customer.Customer{
		{ID: 3, UserID: 7, Membership: customer.MembershipBronze},
	}))
	service := NewService(NewInMemoryRepository(carts), carts, customers, events.NewBus())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				tok := &jwt.Token{Claims: jwt.MapClaims{
					"user_id":  id,
					"is_staff": c.Get("X-Staff") == "true",
				}}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	NewHandler(service).RegisterProtectedRoutes(app)

	return &handlerFixture{app: app, carts: carts}
}

func (f *handlerFixture) seedCart(t *testing.T, quantity int) string {
	t.Helper()

	crt, err := f.carts.Create()
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}
	if quantity > 0 {
		if err := f.carts.UpsertItem(crt.ID, 1, quantity); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
	return crt.ID.String()
}

func TestCheckoutEndpoint(t *testing.T) {
	f := makeApp(t)
	cartID := f.seedCart(t, 2)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"`+cartID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	var ord Order
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if ord.CustomerID != 3 || ord.PaymentStatus != PaymentStatusPending {
		t.Fatalf("unexpected order %+v", ord)
	}
	if len(ord.Items) != 1 || ord.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", ord.Items)
	}
}

func TestCheckoutEndpoint_UnknownCart(t *testing.T) {
	f := makeApp(t)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"0e2f0b41-5f4f-4bfa-9c2a-1f9f4e76f9a1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "No cart with given id") {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestCheckoutEndpoint_EmptyCart(t *testing.T) {
	f := makeApp(t)
	cartID := f.seedCart(t, 0)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"`+cartID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Cart is empty") {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestCheckoutEndpoint_NoCustomerProfile(t *testing.T) {
	f := makeApp(t)
	cartID := f.seedCart(t, 1)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"`+cartID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "99")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCheckoutEndpoint_Unauthorized(t *testing.T) {
	f := makeApp(t)

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestPatchOrder_StaffOnly(t *testing.T) {
	f := makeApp(t)
	cartID := f.seedCart(t, 1)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"`+cartID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("checkout failed with %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var ord Order
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	patch := httptest.NewRequest("PATCH", "/api/v1/orders/"+strconv.Itoa(ord.ID),
		strings.NewReader(`{"paymentStatus":"complete"}`))
	patch.Header.Set("Content-Type", "application/json")
	patch.Header.Set("X-User-ID", "7")
	res, _ = f.app.Test(patch)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-staff, got %d", res.StatusCode)
	}

	patch = httptest.NewRequest("PATCH", "/api/v1/orders/"+strconv.Itoa(ord.ID),
		strings.NewReader(`{"paymentStatus":"complete"}`))
	patch.Header.Set("Content-Type", "application/json")
	patch.Header.Set("X-User-ID", "1")
	patch.Header.Set("X-Staff", "true")
	res, _ = f.app.Test(patch)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", res.StatusCode)
	}

	b, _ = io.ReadAll(res.Body)
	var updated Order
	if err := json.Unmarshal(b, &updated); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if updated.PaymentStatus != PaymentStatusComplete {
		t.Fatalf("status not updated, got %q", updated.PaymentStatus)
	}
}

func TestListOrders_ScopedToCaller(t *testing.T) {
	f := makeApp(t)
	cartID := f.seedCart(t, 1)

	req := httptest.NewRequest("POST", "/api/v1/orders",
		strings.NewReader(`{"cartId":"`+cartID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	if res, _ := f.app.Test(req); res.StatusCode != fiber.StatusCreated {
		t.Fatalf("checkout failed with %d", res.StatusCode)
	}

	list := httptest.NewRequest("GET", "/api/v1/orders", nil)
	list.Header.Set("X-User-ID", "99")
	res, _ := f.app.Test(list)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var orders []Order
	if err := json.Unmarshal(b, &orders); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders for stranger, got %d", len(orders))
	}

	list = httptest.NewRequest("GET", "/api/v1/orders", nil)
	list.Header.Set("X-User-ID", "7")
	res, _ = f.app.Test(list)
	b, _ = io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &orders); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected own order, got %d", len(orders))
	}
}
