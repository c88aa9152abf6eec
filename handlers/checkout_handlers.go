package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"

	"sufra/config"
	"sufra/database"
	"sufra/metrics"
	"sufra/models"
	"sufra/utils"
)

// HandleCreateCheckoutSession turns the customer's cart into a pending order
// and hands it to the hosted Stripe Checkout page. The order is committed
// before the provider is called so a provider failure never leaves an
// uncommitted transaction holding a session.
// POST /api/v1/checkout
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	userID, _ := c.Locals("userID").(string)

	var req struct {
		BranchID *string `json:"branch_id"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
		}
	}

	// Checkout always works off a fresh cart read, never the cache.
	cart, err := fetchCart(ctx, userID)
	if err != nil {
		log.Printf("Error fetching cart for checkout, user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch cart"})
	}
	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot create a payment for an empty cart."})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start database transaction"})
	}
	defer tx.Rollback(ctx)

	orderNumber, err := utils.GenerateOrderNumber(ctx, tx)
	if err != nil {
		log.Printf("Error generating order number: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create order"})
	}

	var orderID string
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, branch_id, total_amount, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id
	`, orderNumber, userID, req.BranchID, cart.Total).Scan(&orderID)
	if err != nil {
		log.Printf("Error inserting order for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create order"})
	}

	for _, item := range cart.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, meal_id, meal_name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, item.MealID, item.MealName, item.Price, item.Quantity, item.Subtotal)
		if err != nil {
			log.Printf("Error inserting order item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create order"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save order"})
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cart.Items))
	for _, item := range cart.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.MealName),
				},
				UnitAmount: stripe.Int64(int64(item.Price * 100)), // cents
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(config.AppConfig.CheckoutSuccessURL),
		CancelURL:  stripe.String(config.AppConfig.CheckoutCancelURL),
	}
	params.AddMetadata("orderId", orderID)
	params.AddMetadata("userId", userID)

	sess, err := session.New(params)
	if err != nil {
		log.Printf("Stripe checkout session creation failed for order %s: %v", orderID, err)
		// The committed order has no session to pay it; cancel it so it
		// never counts as pending revenue.
		if _, cerr := db.Exec(ctx, `UPDATE orders SET status = 'cancelled', updated_at = NOW() WHERE id = $1`, orderID); cerr != nil {
			log.Printf("Error cancelling order %s after session failure: %v", orderID, cerr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create checkout session with provider."})
	}

	if _, err := db.Exec(ctx, `UPDATE orders SET stripe_session_id = $1, updated_at = NOW() WHERE id = $2`, sess.ID, orderID); err != nil {
		log.Printf("Error attaching session %s to order %s: %v", sess.ID, orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save order"})
	}

	metrics.IncOrderCreated()

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"orderId":     orderID,
			"orderNumber": orderNumber,
			"checkoutUrl": sess.URL,
			"sessionId":   sess.ID,
		},
	})
}

// HandleCompleteCheckout verifies a returning customer's session with Stripe,
// marks the order paid and empties the cart. Safe to retry; only a pending
// order transitions.
// POST /api/v1/checkout/complete
func HandleCompleteCheckout(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.BodyParser(&req); err != nil || req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "sessionId is required"})
	}

	// The payment state comes from the provider, never from the client.
	sess, err := session.Get(req.SessionID, nil)
	if err != nil {
		log.Printf("Stripe session lookup failed for %s: %v", req.SessionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": "error", "message": "Could not verify payment session"})
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Payment has not completed"})
	}

	var o models.Order
	err = database.GetDB().QueryRow(c.Context(), `
		UPDATE orders SET status = 'paid', updated_at = NOW()
		WHERE stripe_session_id = $1 AND user_id = $2 AND status = 'pending'
		RETURNING id, order_number, user_id, branch_id, total_amount, status, stripe_session_id, created_at, updated_at
	`, req.SessionID, userID).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.BranchID, &o.TotalAmount, &o.Status, &o.StripeSessionID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "No pending order for this session"})
		}
		log.Printf("Error marking order paid for session %s: %v", req.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to complete order"})
	}

	if _, err := database.GetDB().Exec(c.Context(), `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Printf("Error clearing cart after checkout for user %s: %v", userID, err)
	}
	invalidateCart(c.Context(), userID)

	return c.JSON(fiber.Map{"status": "success", "data": o})
}

// HandleListMyOrders returns the authenticated customer's order history.
// GET /api/v1/orders
func HandleListMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	rows, err := database.GetDB().Query(c.Context(), `
		SELECT id, order_number, user_id, branch_id, total_amount, status, stripe_session_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch orders"})
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.BranchID, &o.TotalAmount, &o.Status, &o.StripeSessionID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			log.Printf("Error scanning order row: %v", err)
			continue
		}
		orders = append(orders, o)
	}

	return c.JSON(fiber.Map{"status": "success", "data": orders})
}
