package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"sufra/config"
	"sufra/database"
	"sufra/models"
)

func createJWT(userID, role string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// HandleRegister creates a customer account.
// POST /api/v1/auth/register
func HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password)"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not process password"})
	}

	var user models.User
	query := `
		INSERT INTO users (name, email, password_hash, role, phone, is_active)
		VALUES ($1, $2, $3, 'customer', $4, true)
		RETURNING id, name, email, role, is_active, phone, created_at, updated_at
	`
	err = database.GetDB().QueryRow(c.Context(), query, req.Name, req.Email, string(hashedPassword), req.Phone).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive, &user.Phone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating customer account: %v", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Could not create account"})
	}

	token, err := createJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"token": token, "user": user}})
}

// HandleLogin authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
func HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	var user models.User
	var passwordHash string

	query := `
		SELECT id, name, email, password_hash, role, is_active, phone, branch_id, created_at, updated_at
		FROM users
		WHERE email = $1`

	err := database.GetDB().QueryRow(c.Context(), query, req.Email).Scan(
		&user.ID, &user.Name, &user.Email, &passwordHash, &user.Role, &user.IsActive,
		&user.Phone, &user.BranchID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
		}
		log.Printf("Database error during login for email %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "User account is inactive"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	token, err := createJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create token"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"token": token, "user": user}})
}

// HandleGetProfile returns the authenticated user's account.
// GET /api/v1/auth/profile
func HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	query := `
		SELECT id, name, email, role, is_active, phone, branch_id, created_at, updated_at
		FROM users
		WHERE id = $1`

	err := database.GetDB().QueryRow(c.Context(), query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive,
		&user.Phone, &user.BranchID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
		}
		log.Printf("Error fetching profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": user})
}
