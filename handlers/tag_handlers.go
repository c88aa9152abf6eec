package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"sufra/database"
	"sufra/models"
)

// HandleListTags returns all tags.
// GET /api/v1/tags
func HandleListTags(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(c.Context(), `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch tags"})
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			continue
		}
		tags = append(tags, t)
	}

	return c.JSON(fiber.Map{"status": "success", "data": tags})
}

// HandleCreateTag creates a tag (admin only).
// POST /api/v1/admin/tags
func HandleCreateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Tag name is required"})
	}

	var t models.Tag
	err := database.GetDB().QueryRow(c.Context(),
		`INSERT INTO tags (name) VALUES ($1) RETURNING id, name`, req.Name).Scan(&t.ID, &t.Name)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Could not create tag"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": t})
}

// HandleUpdateTag renames a tag (admin only).
// PUT /api/v1/admin/tags/:tagId
func HandleUpdateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Tag name is required"})
	}

	var t models.Tag
	err := database.GetDB().QueryRow(c.Context(),
		`UPDATE tags SET name = $1 WHERE id = $2 RETURNING id, name`, req.Name, c.Params("tagId")).Scan(&t.ID, &t.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Tag not found"})
		}
		log.Printf("Error updating tag: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update tag"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": t})
}

// HandleDeleteTag removes a tag (admin only).
// DELETE /api/v1/admin/tags/:tagId
func HandleDeleteTag(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(c.Context(), `DELETE FROM tags WHERE id = $1`, c.Params("tagId"))
	if err != nil {
		log.Printf("Error deleting tag: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete tag"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Tag not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Tag deleted"})
}
