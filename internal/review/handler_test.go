package review

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mystore/storefront-backend/internal/product"
)

func makeApp(reviews []Review, products []product.Product) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(reviews)
	productService := product.NewService(product.NewInMemoryRepository(products))
	handler := NewHandler(NewService(repo, productService))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, repo
}

func TestReviews_ListScopedToProduct(t *testing.T) {
	app, _ := makeApp(
		[]Review{
			{ID: 1, ProductID: 1, Name: "Ann", Description: "Great", Date: "2025-01-01"},
			{ID: 2, ProductID: 2, Name: "Bob", Description: "Meh", Date: "2025-01-02"},
		},
		[]product.Product{{ID: 1, Title: "Dog Food"}, {ID: 2, Title: "Cat Toy"}},
	)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/reviews", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var reviews []Review
	json.Unmarshal(b, &reviews)
	if len(reviews) != 1 || reviews[0].Name != "Ann" {
		t.Fatalf("expected only Ann's review, got %s", string(b))
	}
}

func TestReviews_UnknownProduct(t *testing.T) {
	app, _ := makeApp(nil, nil)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/9/reviews", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("POST", "/api/v1/products/9/reviews",
		strings.NewReader(`{"name":"Ann","description":"Great"}`))
	req.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for review on unknown product, got %d", res2.StatusCode)
	}
}

func TestReviews_Create(t *testing.T) {
	app, repo := makeApp(nil, []product.Product{{ID: 1, Title: "Dog Food"}})

	req := httptest.NewRequest("POST", "/api/v1/products/1/reviews",
		strings.NewReader(`{"name":"Ann","description":"Great"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	stored, _ := repo.ListByProduct(1)
	if len(stored) != 1 || stored[0].Name != "Ann" {
		t.Fatalf("review not stored: %+v", stored)
	}

	// missing fields are rejected
	req2 := httptest.NewRequest("POST", "/api/v1/products/1/reviews", strings.NewReader(`{"name":"Ann"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res2.StatusCode)
	}
}
