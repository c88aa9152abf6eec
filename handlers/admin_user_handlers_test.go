package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func roleApp(adminID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", adminID)
		c.Locals("userRole", "admin")
		return c.Next()
	})
	app.Put("/admin/users/:userId/role", HandleUpdateUserRole)
	return app
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	app := roleApp("admin-1")

	req := httptest.NewRequest("PUT", "/admin/users/u2/role", strings.NewReader(`{"role":"superuser"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for unknown role, got %d", resp.StatusCode)
	}
}

func TestUpdateUserRoleRejectsSelfChange(t *testing.T) {
	app := roleApp("u2")

	req := httptest.NewRequest("PUT", "/admin/users/u2/role", strings.NewReader(`{"role":"employee"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 when changing own role, got %d", resp.StatusCode)
	}
}
