package customer

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				tok := &jwt.Token{Claims: jwt.MapClaims{"user_id": id}}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetMe_Unauthorized(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(nil))))

	req := httptest.NewRequest("GET", "/api/v1/customers/me", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestGetMe_CreatesProfileOnFirstAccess(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(NewHandler(NewService(repo)))

	req := httptest.NewRequest("GET", "/api/v1/customers/me", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	var cust Customer
	if err := json.Unmarshal(b, &cust); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if cust.UserID != 42 || cust.Membership != MembershipBronze {
		t.Fatalf("unexpected profile %+v", cust)
	}

	if _, err := repo.GetByUserID(42); err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
}

func TestUpdateMe_UpdatesPhone(t *testing.T) {
	repo := NewInMemoryRepository([]Customer{{ID: 7, UserID: 42, Membership: MembershipGold}})
	app := makeApp(NewHandler(NewService(repo)))

	req := httptest.NewRequest("PUT", "/api/v1/customers/me",
		strings.NewReader(`{"phone":"555-0101"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	updated, err := repo.GetByUserID(42)
	if err != nil {
		t.Fatalf("profile gone: %v", err)
	}
	if updated.Phone != "555-0101" {
		t.Fatalf("phone not updated, got %q", updated.Phone)
	}
	if updated.Membership != MembershipGold {
		t.Fatalf("membership must be untouched, got %q", updated.Membership)
	}
}
