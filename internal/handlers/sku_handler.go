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

// SkuHandler exposes SKU mapping CRUD and bulk operations.
type SkuHandler struct {
	service *services.SkuService
	cfg     *config.Config
}

// NewSkuHandler creates a new SkuHandler
func NewSkuHandler(service *services.SkuService, cfg *config.Config) *SkuHandler {
	return &SkuHandler{service: service, cfg: cfg}
}

// Create adds a new SKU mapping
// POST /api/skus
func (h *SkuHandler) Create(c *gin.Context) {
	var input services.SkuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if input.SKU == "" || input.MSKU == "" || input.Marketplace == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "SKU, MSKU and marketplace are required")
		return
	}

	sku, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSkuTaken):
			respondError(c, http.StatusBadRequest, "SKU_TAKEN", "SKU already exists for this marketplace")
		case errors.Is(err, services.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product with this MSKU not found")
		default:
			respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create SKU")
		}
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    sku,
		Message: stringPtr("SKU created successfully"),
	})
}

// List retrieves SKU mappings with pagination and filters
// GET /api/skus
func (h *SkuHandler) List(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	filter := repository.SkuListFilter{
		MSKU:   c.Query("msku"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if marketplace := c.Query("marketplace"); marketplace != "" {
		filter.Marketplace = models.ParseMarketplace(marketplace)
	}

	skus, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list SKUs")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    skus,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// Resolve looks up the mapping for a SKU code across marketplaces
// GET /api/skus/resolve?sku=FK-TSHIRT-M
func (h *SkuHandler) Resolve(c *gin.Context) {
	skuCode := c.Query("sku")
	if skuCode == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "sku query parameter is required")
		return
	}

	sku, err := h.service.Resolve(c.Request.Context(), skuCode)
	if err != nil {
		if errors.Is(err, services.ErrSkuNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to resolve SKU")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    sku,
	})
}

// Get retrieves a SKU mapping by ID
// GET /api/skus/:id
func (h *SkuHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid SKU ID")
		return
	}

	sku, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSkuNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load SKU")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    sku,
	})
}

// Update modifies a SKU mapping
// PUT /api/skus/:id
func (h *SkuHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid SKU ID")
		return
	}

	var input services.SkuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sku, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSkuNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found")
		case errors.Is(err, services.ErrSkuTaken):
			respondError(c, http.StatusBadRequest, "SKU_TAKEN", "SKU already exists for this marketplace")
		case errors.Is(err, services.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product with this MSKU not found")
		default:
			respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update SKU")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    sku,
		Message: stringPtr("SKU updated successfully"),
	})
}

// Delete removes a SKU mapping and its inventory record
// DELETE /api/skus/:id
func (h *SkuHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid SKU ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrSkuNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete SKU")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: stringPtr("SKU deleted successfully"),
	})
}

type bulkSkuRequest struct {
	Skus []services.SkuInput `json:"skus" binding:"required"`
}

// Bulk creates or updates a batch of SKU mappings
// POST /api/skus/bulk
func (h *SkuHandler) Bulk(c *gin.Context) {
	var req bulkSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Skus) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid SKU data")
		return
	}

	result := h.service.BulkCreateUpdate(c.Request.Context(), req.Skus)
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}
