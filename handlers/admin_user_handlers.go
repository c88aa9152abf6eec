package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"sufra/database"
	"sufra/models"
	"sufra/utils"
)

// HandleUpdateUserRole changes an account's role (admin only).
// PUT /api/v1/admin/users/:userId/role
func HandleUpdateUserRole(c *fiber.Ctx) error {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	role, ok := utils.ValidateAndNormalizeRole(req.Role)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Role must be admin, employee or customer"})
	}

	// Admins cannot change their own role; a second admin has to do it.
	if adminID, _ := c.Locals("userID").(string); adminID == c.Params("userId") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Cannot change your own role"})
	}

	var user models.User
	err := database.GetDB().QueryRow(c.Context(), `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, email, role, is_active, phone, branch_id, created_at, updated_at
	`, role, c.Params("userId")).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive,
		&user.Phone, &user.BranchID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
		}
		log.Printf("Error updating role for user %s: %v", c.Params("userId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update role"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": user})
}
