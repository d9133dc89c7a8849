package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"warehouse-service/internal/config"
	"warehouse-service/internal/models"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
		},
	})
}

func stringPtr(s string) *string {
	return &s
}

// parsePagination reads page/limit query params, applying the configured
// defaults and cap.
func parsePagination(c *gin.Context, cfg *config.Config) (page, limit int) {
	page = 1
	limit = cfg.DefaultPageSize

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	return page, limit
}
