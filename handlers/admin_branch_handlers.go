package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"sufra/database"
	"sufra/models"
)

// HandleListBranches returns all branches.
// GET /api/v1/branches
func HandleListBranches(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(c.Context(), `
		SELECT id, name, address, phone, is_active, created_at, updated_at
		FROM branches
		ORDER BY name
	`)
	if err != nil {
		log.Printf("Error listing branches: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch branches"})
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			log.Printf("Error scanning branch row: %v", err)
			continue
		}
		branches = append(branches, b)
	}

	return c.JSON(fiber.Map{"status": "success", "data": branches})
}

// HandleCreateBranch creates a branch (admin only).
// POST /api/v1/admin/branches
func HandleCreateBranch(c *fiber.Ctx) error {
	var req models.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Branch name is required"})
	}

	var b models.Branch
	err := database.GetDB().QueryRow(c.Context(), `
		INSERT INTO branches (name, address, phone, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, address, phone, is_active, created_at, updated_at
	`, req.Name, req.Address, req.Phone).Scan(
		&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating branch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create branch"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": b})
}

// HandleUpdateBranch updates a branch (admin only).
// PUT /api/v1/admin/branches/:branchId
func HandleUpdateBranch(c *fiber.Ctx) error {
	var req models.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Branch name is required"})
	}

	var b models.Branch
	err := database.GetDB().QueryRow(c.Context(), `
		UPDATE branches
		SET name = $1, address = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, address, phone, is_active, created_at, updated_at
	`, req.Name, req.Address, req.Phone, c.Params("branchId")).Scan(
		&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Branch not found"})
		}
		log.Printf("Error updating branch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update branch"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": b})
}

// HandleSetBranchActiveStatus toggles a branch on or off (admin only).
// PUT /api/v1/admin/branches/:branchId/status
func HandleSetBranchActiveStatus(c *fiber.Ctx) error {
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	tag, err := database.GetDB().Exec(c.Context(),
		`UPDATE branches SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		req.IsActive, c.Params("branchId"))
	if err != nil {
		log.Printf("Error updating branch status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update branch"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Branch not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Branch updated"})
}

// HandleDeleteBranch removes a branch (admin only).
// DELETE /api/v1/admin/branches/:branchId
func HandleDeleteBranch(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(c.Context(), `DELETE FROM branches WHERE id = $1`, c.Params("branchId"))
	if err != nil {
		log.Printf("Error deleting branch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete branch"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Branch not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Branch deleted"})
}
