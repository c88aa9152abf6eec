package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sufra/database"
	"sufra/models"
)

// HandleGetAdminDashboardSummary fetches the headline numbers for the dashboard.
// GET /api/v1/admin/dashboard/summary
func HandleGetAdminDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var summary models.AdminDashboardSummary

	err := db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM orders WHERE status = 'paid'`).
		Scan(&summary.TotalRevenue, &summary.OrderCount)
	if err != nil {
		log.Printf("Error fetching order summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE status IN ('pending', 'confirmed')`).
		Scan(&summary.ReservationCount)
	if err != nil {
		log.Printf("Error fetching reservation count: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&summary.CustomerCount)
	if err != nil {
		log.Printf("Error fetching customer count: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM branches WHERE is_active = true`).Scan(&summary.ActiveBranchCount)
	if err != nil {
		log.Printf("Error fetching branch count: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}
