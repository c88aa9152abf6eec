package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sufra/database"
	"sufra/metrics"
	"sufra/middleware"
	"sufra/models"
	"sufra/reservations"
)

// HandleInitiateReservation runs the reservation access gate: authentication
// first, then non-empty cart. The caller is told where to go next; no state
// changes here.
// POST /api/v1/reservations/initiate (OptionalJWT)
func HandleInitiateReservation(c *fiber.Ctx) error {
	auth := reservations.AuthState{}
	if claims, err := middleware.ExtractClaims(c); err == nil {
		auth = reservations.AuthState{IsAuthenticated: true, UserID: claims.UserID, Role: claims.Role}
	}

	cartState := reservations.CartState{}
	if auth.IsAuthenticated {
		cart, err := cachedCart(c.Context(), auth.UserID)
		if err != nil {
			// A cart we cannot read gates the same way as an empty one.
			log.Printf("Error reading cart during reservation gate for user %s: %v", auth.UserID, err)
		} else {
			cartState.ItemCount = len(cart.Items)
		}
	}

	action := reservations.Decide(auth, cartState)
	metrics.IncReservationDecision(string(action))

	switch action {
	case reservations.ActionNavigateToLogin:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":   "error",
			"action":   action,
			"redirect": "/login",
			"message":  "Sign in to reserve a table",
		})
	case reservations.ActionShowCartEmptyWarning:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"action":  action,
			"message": "Your cart is empty. Add meals before reserving a table.",
		})
	default:
		return c.JSON(fiber.Map{
			"status":   "success",
			"action":   action,
			"redirect": "/reservation",
		})
	}
}

// HandleCreateReservation books a table for the authenticated customer.
// POST /api/v1/reservations
func HandleCreateReservation(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req models.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.BranchID == "" || req.PartySize <= 0 || req.ReservedFor.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "branch_id, party_size and reserved_for are required"})
	}

	// The gate's cart precondition holds at creation time too.
	cart, err := fetchCart(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching cart for reservation, user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch cart"})
	}
	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Your cart is empty. Add meals before reserving a table."})
	}

	var r models.Reservation
	err = database.GetDB().QueryRow(c.Context(), `
		INSERT INTO reservations (code, user_id, branch_id, party_size, reserved_for, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, code, user_id, branch_id, order_id, party_size, reserved_for, status, created_at, updated_at
	`, uuid.NewString(), userID, req.BranchID, req.PartySize, req.ReservedFor).Scan(
		&r.ID, &r.Code, &r.UserID, &r.BranchID, &r.OrderID, &r.PartySize, &r.ReservedFor, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating reservation for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create reservation"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": r})
}

// HandleListMyReservations returns the authenticated customer's reservations.
// GET /api/v1/reservations
func HandleListMyReservations(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	return listReservations(c, `WHERE user_id = $1`, userID)
}

// HandleListAllReservations returns every reservation (dashboard).
// GET /api/v1/staff/reservations
func HandleListAllReservations(c *fiber.Ctx) error {
	return listReservations(c, ``)
}

func listReservations(c *fiber.Ctx, where string, args ...interface{}) error {
	query := `
		SELECT id, code, user_id, branch_id, order_id, party_size, reserved_for, status, created_at, updated_at
		FROM reservations ` + where + ` ORDER BY reserved_for DESC`

	rows, err := database.GetDB().Query(c.Context(), query, args...)
	if err != nil {
		log.Printf("Error listing reservations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch reservations"})
	}
	defer rows.Close()

	list := []models.Reservation{}
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.ID, &r.Code, &r.UserID, &r.BranchID, &r.OrderID, &r.PartySize, &r.ReservedFor, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			log.Printf("Error scanning reservation row: %v", err)
			continue
		}
		list = append(list, r)
	}

	return c.JSON(fiber.Map{"status": "success", "data": list})
}

// HandleUpdateReservationStatus moves a reservation through its lifecycle
// (dashboard only).
// PUT /api/v1/staff/reservations/:reservationId/status
func HandleUpdateReservationStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	valid := map[string]bool{"pending": true, "confirmed": true, "cancelled": true, "seated": true}
	if !valid[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid reservation status"})
	}

	tag, err := database.GetDB().Exec(c.Context(),
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`,
		req.Status, c.Params("reservationId"))
	if err != nil {
		log.Printf("Error updating reservation status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update reservation"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Reservation not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Reservation updated"})
}
