package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestUserContextMiddleware_RejectsMissingUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/s/me", UserContextMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/s/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestUserContextMiddleware_PassesIdentityAndRoles(t *testing.T) {
	app := fiber.New()
	var gotUserID string
	var gotRoles []string
	app.Get("/s/me", UserContextMiddleware(), func(c *fiber.Ctx) error {
		gotUserID = c.Locals("user_id").(string)
		gotRoles, _ = c.Locals("user_roles").([]string)
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/s/me", nil)
	req.Header.Set("X-User-ID", "user-123")
	req.Header.Set("X-User-Roles", "gamer, admin")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotUserID != "user-123" {
		t.Fatalf("user_id = %q, want user-123", gotUserID)
	}
	if len(gotRoles) != 2 || gotRoles[0] != "gamer" || gotRoles[1] != "admin" {
		t.Fatalf("user_roles = %v, want [gamer admin]", gotRoles)
	}
}
