package cart

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront-backend/internal/product"
)

func makeApp() (*fiber.App, *InMemoryRepository) {
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Title: "Dog Food", UnitPrice: decimal.RequireFromString("9.99")},
		{ID: 2, Title: "Cat Toy", UnitPrice: decimal.RequireFromString("5.00")},
	}))
	repo := NewInMemoryRepository(products)
	handler := NewHandler(NewService(repo, products))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, repo
}

func decodeCart(t *testing.T, body io.Reader) Cart {
	t.Helper()
	b, _ := io.ReadAll(body)
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("bad cart body %s: %v", string(b), err)
	}
	return c
}

func TestCartLifecycle(t *testing.T) {
	app, _ := makeApp()

	// create
	res, _ := app.Test(httptest.NewRequest("POST", "/api/v1/carts", nil))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	created := decodeCart(t, res.Body)
	if created.ID == uuid.Nil {
		t.Fatalf("expected a generated cart id")
	}

	// add an item
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/carts/%s/items", created.ID),
		strings.NewReader(`{"productId":1,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 adding item, got %d", res2.StatusCode)
	}
	withItem := decodeCart(t, res2.Body)
	if len(withItem.Items) != 1 || withItem.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", withItem)
	}
	if !withItem.TotalPrice.Equal(decimal.RequireFromString("19.98")) {
		t.Fatalf("expected total 19.98, got %s", withItem.TotalPrice)
	}

	// adding the same product again increments the quantity, no new row
	req2 := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/carts/%s/items", created.ID),
		strings.NewReader(`{"productId":1,"quantity":1}`))
	req2.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req2)
	upserted := decodeCart(t, res3.Body)
	if len(upserted.Items) != 1 || upserted.Items[0].Quantity != 3 {
		t.Fatalf("expected single item with quantity 3, got %+v", upserted.Items)
	}

	// patch the quantity
	itemID := upserted.Items[0].ID
	req3 := httptest.NewRequest("PATCH", fmt.Sprintf("/api/v1/carts/%s/items/%d", created.ID, itemID),
		strings.NewReader(`{"quantity":1}`))
	req3.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req3)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 patching item, got %d", res4.StatusCode)
	}
	patched := decodeCart(t, res4.Body)
	if patched.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", patched.Items[0].Quantity)
	}

	// remove the item
	res5, _ := app.Test(httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/v1/carts/%s/items/%d", created.ID, itemID), nil))
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 removing item, got %d", res5.StatusCode)
	}
	emptied := decodeCart(t, res5.Body)
	if len(emptied.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", emptied.Items)
	}

	// delete the cart
	res6, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/carts/"+created.ID.String(), nil))
	if res6.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res6.StatusCode)
	}
	res7, _ := app.Test(httptest.NewRequest("GET", "/api/v1/carts/"+created.ID.String(), nil))
	if res7.StatusCode != fiber.StatusNotFound {
		t.Fatalf("deleted cart should 404, got %d", res7.StatusCode)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	app, repo := makeApp()
	crt, _ := repo.Create()

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/carts/%s/items", crt.ID),
		strings.NewReader(`{"productId":99,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "No Product with this id") {
		t.Fatalf("unexpected message %s", string(b))
	}
}

func TestAddItem_UnknownCart(t *testing.T) {
	app, _ := makeApp()

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/carts/%s/items", uuid.New()),
		strings.NewReader(`{"productId":1,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown cart, got %d", res.StatusCode)
	}
}

func TestGetCart_BadID(t *testing.T) {
	app, _ := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/carts/not-a-uuid", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", res.StatusCode)
	}
}
