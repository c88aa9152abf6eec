package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sufra/config"
	"sufra/models"
)

// JWTMiddleware validates the JWT token provided in the Authorization header.
func JWTMiddleware(c *fiber.Ctx) error {
	claims, err := parseBearer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)

	return c.Next()
}

// OptionalJWT extracts claims when a valid token is present but never rejects
// the request. Used by endpoints that behave differently for guests.
func OptionalJWT(c *fiber.Ctx) error {
	if claims, err := parseBearer(c); err == nil {
		c.Locals("userID", claims.UserID)
		c.Locals("userRole", claims.Role)
	}
	return c.Next()
}

func parseBearer(c *fiber.Ctx) (*models.JwtClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("malformed authorization header")
	}

	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// ExtractClaims rebuilds the claims previously stored by JWTMiddleware.
func ExtractClaims(c *fiber.Ctx) (*models.JwtClaims, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return nil, errors.New("no authenticated user in context")
	}
	role, _ := c.Locals("userRole").(string)
	return &models.JwtClaims{UserID: userID, Role: role}, nil
}

// AdminRequired is a middleware function that checks if the user has an 'admin' role.
func AdminRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Admin access required"})
	}
	return c.Next()
}

// CustomerRequired is a middleware function that checks if the user has a 'customer' role.
func CustomerRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != "customer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Customer access required"})
	}
	return c.Next()
}

// StaffRequired allows the dashboard roles (admin or employee).
func StaffRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || (role != "admin" && role != "employee") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Staff access required"})
	}
	return c.Next()
}

// CheckRole is a middleware that verifies the user has one of the specified roles.
func CheckRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Role not found in token"})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Insufficient permissions"})
	}
}
