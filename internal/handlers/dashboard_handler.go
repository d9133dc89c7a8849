package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouse-service/internal/config"
	"warehouse-service/internal/models"
	"warehouse-service/internal/services"
)

// DashboardHandler exposes read-only aggregates for the dashboard UI.
type DashboardHandler struct {
	service *services.DashboardService
	cfg     *config.Config
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *services.DashboardService, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{service: service, cfg: cfg}
}

// Summary returns the dashboard headline figures
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SUMMARY_FAILED", "Failed to compute dashboard summary")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    summary,
	})
}

// LowStock lists inventory records at or below their threshold
// GET /api/dashboard/low-stock
func (h *DashboardHandler) LowStock(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	records, total, err := h.service.LowStock(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list low-stock inventory")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    records,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}
