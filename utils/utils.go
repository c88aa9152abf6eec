package utils

import (
	"math"

	"sufra/models"
)

// CreatePagination creates pagination metadata for list responses.
func CreatePagination(totalItems, page, pageSize int) *models.PaginationInfo {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &models.PaginationInfo{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}
