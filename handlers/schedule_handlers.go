package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"sufra/config"
	"sufra/database"
	"sufra/models"
	"sufra/schedule"
)

func fetchWorkingDays(ctx context.Context) ([]models.WorkingDay, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT id, name, start_hour, end_hour, is_active, created_at, updated_at
		FROM working_days
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []models.WorkingDay{}
	for rows.Next() {
		var d models.WorkingDay
		if err := rows.Scan(&d.ID, &d.Name, &d.StartHour, &d.EndHour, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func cachedWorkingDays(ctx context.Context) ([]models.WorkingDay, error) {
	var days []models.WorkingDay
	err := dataCache.GetJSON(ctx, scheduleCacheKey, config.AppConfig.CacheTTL, &days, func(ctx context.Context) (interface{}, error) {
		return fetchWorkingDays(ctx)
	})
	return days, err
}

func invalidateSchedule(ctx context.Context) {
	if err := dataCache.Invalidate(ctx, scheduleCacheKey); err != nil {
		log.Printf("Error invalidating schedule cache: %v", err)
	}
}

// HandleGetScheduleStatus reports whether the restaurant is open right now
// along with today's formatted window. Missing or unreadable schedule data
// degrades to closed rather than an error.
// GET /api/v1/schedule/status
func HandleGetScheduleStatus(c *fiber.Ctx) error {
	days, err := cachedWorkingDays(c.Context())
	if err != nil {
		log.Printf("Error fetching working days for status: %v", err)
		days = nil
	}

	status := schedule.Status(weekdayTable, days, time.Now())
	return c.JSON(fiber.Map{"status": "success", "data": status})
}

// HandleListWorkingDays returns the full weekly configuration (dashboard).
// GET /api/v1/admin/working-days
func HandleListWorkingDays(c *fiber.Ctx) error {
	days, err := fetchWorkingDays(c.Context())
	if err != nil {
		log.Printf("Error listing working days: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch working days"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": days})
}

// validateWorkingDayRequest enforces the ingestion rules: the name must be a
// known weekday label (Arabic or English) and both bounds must parse as
// HH:MM[:SS]. Malformed records never reach the evaluator.
func validateWorkingDayRequest(req *models.CreateWorkingDayRequest) (string, bool) {
	if req.Name == "" {
		return "Day name is required", false
	}
	if _, ok := weekdayTable.Weekday(req.Name); !ok {
		return "Day name must be an Arabic or English weekday name", false
	}
	start, err := schedule.ParseClock(req.StartHour)
	if err != nil {
		return "startHour must be HH:MM or HH:MM:SS", false
	}
	end, err := schedule.ParseClock(req.EndHour)
	if err != nil {
		return "endHour must be HH:MM or HH:MM:SS", false
	}
	if end < start {
		return "endHour must not be before startHour", false
	}
	return "", true
}

// HandleCreateWorkingDay creates a working-day record (admin only).
// POST /api/v1/admin/working-days
func HandleCreateWorkingDay(c *fiber.Ctx) error {
	var req models.CreateWorkingDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if msg, ok := validateWorkingDayRequest(&req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": msg})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var d models.WorkingDay
	err := database.GetDB().QueryRow(c.Context(), `
		INSERT INTO working_days (name, start_hour, end_hour, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, start_hour, end_hour, is_active, created_at, updated_at
	`, req.Name, req.StartHour, req.EndHour, isActive).Scan(
		&d.ID, &d.Name, &d.StartHour, &d.EndHour, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating working day: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create working day"})
	}

	invalidateSchedule(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": d})
}

// HandleUpdateWorkingDay updates a working-day record (admin only).
// PUT /api/v1/admin/working-days/:dayId
func HandleUpdateWorkingDay(c *fiber.Ctx) error {
	var req models.CreateWorkingDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if msg, ok := validateWorkingDayRequest(&req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": msg})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var d models.WorkingDay
	err := database.GetDB().QueryRow(c.Context(), `
		UPDATE working_days
		SET name = $1, start_hour = $2, end_hour = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, start_hour, end_hour, is_active, created_at, updated_at
	`, req.Name, req.StartHour, req.EndHour, isActive, c.Params("dayId")).Scan(
		&d.ID, &d.Name, &d.StartHour, &d.EndHour, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Working day not found"})
		}
		log.Printf("Error updating working day: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update working day"})
	}

	invalidateSchedule(c.Context())
	return c.JSON(fiber.Map{"status": "success", "data": d})
}

// HandleDeleteWorkingDay removes a working-day record (admin only).
// DELETE /api/v1/admin/working-days/:dayId
func HandleDeleteWorkingDay(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(c.Context(), `DELETE FROM working_days WHERE id = $1`, c.Params("dayId"))
	if err != nil {
		log.Printf("Error deleting working day: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete working day"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Working day not found"})
	}

	invalidateSchedule(c.Context())
	return c.JSON(fiber.Map{"status": "success", "message": "Working day deleted"})
}
