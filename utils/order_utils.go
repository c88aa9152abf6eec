package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerateOrderNumber generates a unique order number in the format ORD-YYYY-NNNN
// where YYYY is the current year and NNNN is a sequential number.
func GenerateOrderNumber(ctx context.Context, db interface{}) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	// Query to find the latest order number for this year
	query := `
		SELECT order_number
		FROM orders
		WHERE order_number LIKE $1
		ORDER BY order_number DESC
		LIMIT 1
	`
	pattern := fmt.Sprintf("ORD-%d-%%", year)

	var lastOrderNumber string
	var err error

	// Handle both pgxpool.Pool and pgx.Tx types
	switch v := db.(type) {
	case *pgxpool.Pool:
		err = v.QueryRow(ctx, query, pattern).Scan(&lastOrderNumber)
	case pgx.Tx:
		err = v.QueryRow(ctx, query, pattern).Scan(&lastOrderNumber)
	default:
		return "", fmt.Errorf("unsupported database type")
	}

	// If no order exists for this year, start at 0001
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Sprintf("%s%04d", prefix, 1), nil
		}
		return "", fmt.Errorf("failed to query last order number: %w", err)
	}

	// Extract the sequential number from the last order
	var lastSeq int
	_, err = fmt.Sscanf(lastOrderNumber, prefix+"%d", &lastSeq)
	if err != nil {
		// If parsing fails, start fresh
		return fmt.Sprintf("%s%04d", prefix, 1), nil
	}

	// Increment and return
	newSeq := lastSeq + 1
	return fmt.Sprintf("%s%04d", prefix, newSeq), nil
}
