package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"sufra/database"
	"sufra/models"
	"sufra/utils"
)

// HandleListMeals returns the public menu with optional tag filter and pagination.
// GET /api/v1/meals?tag=grill&page=1&pageSize=10
func HandleListMeals(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	tag := c.Query("tag")

	countQuery := `SELECT COUNT(DISTINCT m.id) FROM meals m`
	listQuery := `
		SELECT DISTINCT m.id, m.name, m.description, m.price, m.image_url, m.is_available, m.created_at, m.updated_at
		FROM meals m
	`
	args := []interface{}{}
	if tag != "" {
		join := `
			JOIN meal_tags mt ON mt.meal_id = m.id
			JOIN tags t ON t.id = mt.tag_id AND LOWER(t.name) = LOWER($1)
		`
		countQuery += join
		listQuery += join
		args = append(args, tag)
	}
	countQuery += " WHERE m.is_available = true"
	listQuery += " WHERE m.is_available = true ORDER BY m.name"

	var total int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting meals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch meals"})
	}

	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	listQuery += " LIMIT " + strconv.Itoa(pageSize) + " OFFSET " + strconv.Itoa((page-1)*pageSize)

	rows, err := db.Query(ctx, listQuery, args...)
	if err != nil {
		log.Printf("Error listing meals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch meals"})
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("Error scanning meal row: %v", err)
			continue
		}
		m.Tags = fetchMealTags(c, m.ID)
		meals = append(meals, m)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       meals,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

func fetchMealTags(c *fiber.Ctx, mealID string) []models.Tag {
	rows, err := database.GetDB().Query(c.Context(),
		`SELECT t.id, t.name FROM tags t JOIN meal_tags mt ON mt.tag_id = t.id WHERE mt.meal_id = $1 ORDER BY t.name`, mealID)
	if err != nil {
		log.Printf("Error fetching tags for meal %s: %v", mealID, err)
		return []models.Tag{}
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
	return tags
}

// HandleGetMeal returns a single meal by id.
// GET /api/v1/meals/:mealId
func HandleGetMeal(c *fiber.Ctx) error {
	mealID := c.Params("mealId")

	var m models.Meal
	err := database.GetDB().QueryRow(c.Context(),
		`SELECT id, name, description, price, image_url, is_available, created_at, updated_at FROM meals WHERE id = $1`,
		mealID,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Meal not found"})
		}
		log.Printf("Error fetching meal %s: %v", mealID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch meal"})
	}
	m.Tags = fetchMealTags(c, m.ID)

	return c.JSON(fiber.Map{"status": "success", "data": m})
}

// HandleCreateMeal creates a meal (admin only).
// POST /api/v1/admin/meals
func HandleCreateMeal(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var req models.CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Name and a positive price are required"})
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var m models.Meal
	err = tx.QueryRow(ctx,
		`INSERT INTO meals (name, description, price, image_url, is_available)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, price, image_url, is_available, created_at, updated_at`,
		req.Name, req.Description, req.Price, req.ImageURL, isAvailable,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		log.Printf("Error creating meal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create meal"})
	}

	for _, tagID := range req.TagIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO meal_tags (meal_id, tag_id) VALUES ($1, $2)`, m.ID, tagID); err != nil {
			log.Printf("Error attaching tag %s to meal %s: %v", tagID, m.ID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid tag id"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save meal"})
	}

	m.Tags = fetchMealTags(c, m.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": m})
}

// HandleUpdateMeal updates a meal (admin only).
// PUT /api/v1/admin/meals/:mealId
func HandleUpdateMeal(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()
	mealID := c.Params("mealId")

	var req models.CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Name and a positive price are required"})
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var m models.Meal
	err = tx.QueryRow(ctx,
		`UPDATE meals
		 SET name = $1, description = $2, price = $3, image_url = $4, is_available = $5, updated_at = NOW()
		 WHERE id = $6
		 RETURNING id, name, description, price, image_url, is_available, created_at, updated_at`,
		req.Name, req.Description, req.Price, req.ImageURL, isAvailable, mealID,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Meal not found"})
		}
		log.Printf("Error updating meal %s: %v", mealID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update meal"})
	}

	if req.TagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM meal_tags WHERE meal_id = $1`, mealID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update tags"})
		}
		for _, tagID := range req.TagIDs {
			if _, err := tx.Exec(ctx, `INSERT INTO meal_tags (meal_id, tag_id) VALUES ($1, $2)`, mealID, tagID); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid tag id"})
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save meal"})
	}

	m.Tags = fetchMealTags(c, m.ID)
	return c.JSON(fiber.Map{"status": "success", "data": m})
}

// HandleDeleteMeal removes a meal from the menu (admin only).
// DELETE /api/v1/admin/meals/:mealId
func HandleDeleteMeal(c *fiber.Ctx) error {
	mealID := c.Params("mealId")

	tag, err := database.GetDB().Exec(c.Context(), `DELETE FROM meals WHERE id = $1`, mealID)
	if err != nil {
		log.Printf("Error deleting meal %s: %v", mealID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete meal"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Meal not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Meal deleted"})
}
