package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"sufra/database"
	"sufra/models"
)

// HandleCreateEmployee creates an employee account and its branch assignment
// in one transaction (admin only).
// POST /api/v1/admin/employees
func HandleCreateEmployee(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var req models.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.BranchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password, branch_id)"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not process password"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var user models.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, branch_id, is_active)
		VALUES ($1, $2, $3, 'employee', $4, true)
		RETURNING id, name, email, role, is_active, phone, branch_id, created_at, updated_at
	`, req.Name, req.Email, string(hashedPassword), req.BranchID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive, &user.Phone, &user.BranchID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating employee user: %v", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Could not create employee account"})
	}

	var emp models.Employee
	err = tx.QueryRow(ctx, `
		INSERT INTO employees (user_id, branch_id, position, salary, hired_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, branch_id, position, salary, hired_at, created_at, updated_at
	`, user.ID, req.BranchID, req.Position, req.Salary, time.Now()).Scan(
		&emp.ID, &emp.UserID, &emp.BranchID, &emp.Position, &emp.Salary, &emp.HiredAt,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating employee record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create employee"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save employee"})
	}

	emp.User = &user
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": emp})
}

// HandleListEmployees lists employees, optionally filtered by branch (admin only).
// GET /api/v1/admin/employees?branch_id=...
func HandleListEmployees(c *fiber.Ctx) error {
	query := `
		SELECT e.id, e.user_id, e.branch_id, e.position, e.salary, e.hired_at, e.created_at, e.updated_at,
		       u.id, u.name, u.email, u.role, u.is_active, u.phone, u.branch_id, u.created_at, u.updated_at
		FROM employees e
		JOIN users u ON u.id = e.user_id
	`
	args := []interface{}{}
	if branchID := c.Query("branch_id"); branchID != "" {
		query += " WHERE e.branch_id = $1"
		args = append(args, branchID)
	}
	query += " ORDER BY u.name"

	rows, err := database.GetDB().Query(c.Context(), query, args...)
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch employees"})
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var emp models.Employee
		var user models.User
		if err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.BranchID, &emp.Position, &emp.Salary, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
			&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive, &user.Phone, &user.BranchID, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning employee row: %v", err)
			continue
		}
		emp.User = &user
		employees = append(employees, emp)
	}

	return c.JSON(fiber.Map{"status": "success", "data": employees})
}

// HandleUpdateEmployee updates position, salary or branch (admin only).
// PUT /api/v1/admin/employees/:employeeId
func HandleUpdateEmployee(c *fiber.Ctx) error {
	var req struct {
		BranchID string  `json:"branch_id"`
		Position string  `json:"position"`
		Salary   float64 `json:"salary"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.BranchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "branch_id is required"})
	}

	var emp models.Employee
	err := database.GetDB().QueryRow(c.Context(), `
		UPDATE employees
		SET branch_id = $1, position = $2, salary = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, user_id, branch_id, position, salary, hired_at, created_at, updated_at
	`, req.BranchID, req.Position, req.Salary, c.Params("employeeId")).Scan(
		&emp.ID, &emp.UserID, &emp.BranchID, &emp.Position, &emp.Salary, &emp.HiredAt,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Employee not found"})
		}
		log.Printf("Error updating employee: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update employee"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": emp})
}

// HandleSetEmployeeStatus activates or deactivates the employee's account (admin only).
// PUT /api/v1/admin/employees/:employeeId/status
func HandleSetEmployeeStatus(c *fiber.Ctx) error {
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	tag, err := database.GetDB().Exec(c.Context(), `
		UPDATE users SET is_active = $1, updated_at = NOW()
		WHERE id = (SELECT user_id FROM employees WHERE id = $2)
	`, req.IsActive, c.Params("employeeId"))
	if err != nil {
		log.Printf("Error updating employee status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update employee"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Employee not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Employee updated"})
}

// HandleDeleteEmployee removes the employee record and deactivates the account (admin only).
// DELETE /api/v1/admin/employees/:employeeId
func HandleDeleteEmployee(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `DELETE FROM employees WHERE id = $1 RETURNING user_id`, c.Params("employeeId")).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Employee not found"})
		}
		log.Printf("Error deleting employee: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete employee"})
	}

	// Soft delete the login rather than dropping order history.
	if _, err := tx.Exec(ctx, `UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, userID); err != nil {
		log.Printf("Error deactivating employee user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete employee"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete employee"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Employee deleted"})
}
