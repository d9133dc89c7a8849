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

// ProductHandler exposes product catalog CRUD.
type ProductHandler struct {
	service *services.ProductService
	cfg     *config.Config
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *services.ProductService, cfg *config.Config) *ProductHandler {
	return &ProductHandler{service: service, cfg: cfg}
}

// Create adds a new product
// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if input.MSKU == "" || input.Name == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "MSKU and name are required")
		return
	}

	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrMSKUTaken) {
			respondError(c, http.StatusBadRequest, "MSKU_TAKEN", "Product with this MSKU already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product created successfully"),
	})
}

// List retrieves products with pagination and filters
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	products, total, err := h.service.List(c.Request.Context(), repository.ProductListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    products,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// Categories lists the distinct product categories
// GET /api/products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    categories,
	})
}

// Get retrieves a product by ID
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    product,
	})
}

// Update modifies a product
// PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
		case errors.Is(err, services.ErrMSKUTaken):
			respondError(c, http.StatusBadRequest, "MSKU_TAKEN", "Product with this MSKU already exists")
		default:
			respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product updated successfully"),
	})
}

// Delete removes a product and its SKU mappings and inventory
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: stringPtr("Product deleted successfully"),
	})
}
