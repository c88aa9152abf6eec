package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCompleteCheckoutRequiresSessionID(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "u1")
		c.Locals("userRole", "customer")
		return c.Next()
	})
	app.Post("/checkout/complete", HandleCompleteCheckout)

	for _, body := range []string{`{}`, `{"sessionId":""}`, `not json`} {
		req := httptest.NewRequest("POST", "/checkout/complete", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app test error: %v", err)
		}
		if resp.StatusCode != 400 {
			t.Fatalf("body %q: expected 400 without a session id, got %d", body, resp.StatusCode)
		}
	}
}
