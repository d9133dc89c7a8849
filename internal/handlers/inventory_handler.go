package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"warehouse-service/internal/config"
	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/services"
)

// InventoryHandler exposes stock level CRUD and adjustments.
type InventoryHandler struct {
	service *services.InventoryService
	cfg     *config.Config
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *services.InventoryService, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{service: service, cfg: cfg}
}

// List retrieves inventory records with pagination and filters
// GET /api/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	filter := repository.InventoryListFilter{
		Location: c.Query("location"),
		Search:   c.Query("search"),
		LowStock: c.Query("lowStock") == "true",
		Page:     page,
		Limit:    limit,
	}
	if marketplace := c.Query("marketplace"); marketplace != "" {
		filter.Marketplace = models.ParseMarketplace(marketplace)
	}

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list inventory")
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

// Summary returns aggregate stock figures
// GET /api/inventory/summary
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SUMMARY_FAILED", "Failed to compute inventory summary")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    summary,
	})
}

// ListByProduct retrieves all records for one product
// GET /api/inventory/product/:productId
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	records, err := h.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list inventory")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    records,
	})
}

// ListByMSKU retrieves all records carrying one master SKU
// GET /api/inventory/msku/:msku
func (h *InventoryHandler) ListByMSKU(c *gin.Context) {
	msku := c.Param("msku")
	if msku == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "MSKU is required")
		return
	}

	records, err := h.service.ListByMSKU(c.Request.Context(), msku)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list inventory")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    records,
	})
}

// Get retrieves an inventory record by ID
// GET /api/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory ID")
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load inventory item")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    record,
	})
}

type setQuantityRequest struct {
	Quantity *int   `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}

// Update replaces an inventory record's quantity
// PUT /api/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory ID")
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Valid quantity is required")
		return
	}

	record, err := h.service.SetQuantity(c.Request.Context(), id, *req.Quantity, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
		case errors.Is(err, services.ErrInvalidQuantity):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Valid quantity is required")
		default:
			respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update inventory")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    record,
	})
}

type adjustRequest struct {
	Adjustment *int                    `json:"adjustment" binding:"required"`
	Type       services.AdjustmentType `json:"type" binding:"required"`
	Reason     string                  `json:"reason"`
}

// Adjust adds or removes stock, clamping at zero
// PUT /api/inventory/:id/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory ID")
		return
	}

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Valid adjustment amount and type are required")
		return
	}

	record, err := h.service.Adjust(c.Request.Context(), id, *req.Adjustment, req.Type, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
		case errors.Is(err, services.ErrInvalidAdjustment), errors.Is(err, services.ErrInvalidAdjustType):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to adjust inventory")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    record,
	})
}

type bulkInventoryRequest struct {
	Updates []services.BulkInventoryUpdate `json:"updates" binding:"required"`
}

// Bulk applies a batch of set/adjust operations
// POST /api/inventory/bulk
func (h *InventoryHandler) Bulk(c *gin.Context) {
	var req bulkInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Updates) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid update data")
		return
	}

	result, err := h.service.BulkUpdate(c.Request.Context(), req.Updates)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to apply bulk update")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}
