package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"sufra/config"
	"sufra/database"
	"sufra/models"
)

// fetchCart reads a customer's cart straight from the database with
// server-computed totals.
func fetchCart(ctx context.Context, userID string) (models.Cart, error) {
	cart := models.Cart{UserID: userID, Items: []models.CartItem{}}

	rows, err := database.GetDB().Query(ctx, `
		SELECT ci.id, ci.meal_id, m.name, m.price, ci.quantity
		FROM cart_items ci
		JOIN meals m ON m.id = ci.meal_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
	`, userID)
	if err != nil {
		return cart, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.MealID, &item.MealName, &item.Price, &item.Quantity); err != nil {
			return cart, err
		}
		item.Subtotal = item.Price * float64(item.Quantity)
		cart.Total += item.Subtotal
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// cachedCart reads the cart through the remote-data cache; cart writes
// invalidate the key so the next read refetches.
func cachedCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := dataCache.GetJSON(ctx, cartCacheKey(userID), config.AppConfig.CacheTTL, &cart, func(ctx context.Context) (interface{}, error) {
		return fetchCart(ctx, userID)
	})
	return cart, err
}

func invalidateCart(ctx context.Context, userID string) {
	if err := dataCache.Invalidate(ctx, cartCacheKey(userID)); err != nil {
		log.Printf("Error invalidating cart cache for user %s: %v", userID, err)
	}
}

// HandleGetCart returns the authenticated customer's cart.
// GET /api/v1/cart
func HandleGetCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	cart, err := cachedCart(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch cart"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": cart})
}

// HandleAddCartItem adds a meal to the cart, merging quantities on repeat adds.
// POST /api/v1/cart/items
func HandleAddCartItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req models.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.MealID == "" || req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "mealId and a positive quantity are required"})
	}

	var available bool
	err := database.GetDB().QueryRow(c.Context(), `SELECT is_available FROM meals WHERE id = $1`, req.MealID).Scan(&available)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Meal not found"})
	}
	if !available {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Meal is not available"})
	}

	_, err = database.GetDB().Exec(c.Context(), `
		INSERT INTO cart_items (user_id, meal_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, meal_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`, userID, req.MealID, req.Quantity)
	if err != nil {
		log.Printf("Error adding cart item for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to add item"})
	}

	invalidateCart(c.Context(), userID)

	cart, err := fetchCart(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch cart"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": cart})
}

// HandleUpdateCartItem sets the quantity of a cart line.
// PUT /api/v1/cart/items/:itemId
func HandleUpdateCartItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	itemID := c.Params("itemId")

	var req models.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "A positive quantity is required"})
	}

	tag, err := database.GetDB().Exec(c.Context(),
		`UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		req.Quantity, itemID, userID)
	if err != nil {
		log.Printf("Error updating cart item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update item"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Cart item not found"})
	}

	invalidateCart(c.Context(), userID)

	cart, err := fetchCart(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch cart"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": cart})
}

// HandleRemoveCartItem deletes a single cart line.
// DELETE /api/v1/cart/items/:itemId
func HandleRemoveCartItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	itemID := c.Params("itemId")

	tag, err := database.GetDB().Exec(c.Context(),
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		log.Printf("Error removing cart item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to remove item"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Cart item not found"})
	}

	invalidateCart(c.Context(), userID)
	return c.JSON(fiber.Map{"status": "success", "message": "Item removed"})
}

// HandleClearCart empties the customer's cart.
// DELETE /api/v1/cart
func HandleClearCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	if _, err := database.GetDB().Exec(c.Context(), `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to clear cart"})
	}

	invalidateCart(c.Context(), userID)
	return c.JSON(fiber.Map{"status": "success", "message": "Cart cleared"})
}
