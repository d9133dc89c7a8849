package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"warehouse-service/internal/config"
	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/services"
)

// OrderHandler exposes order CRUD and status transitions.
type OrderHandler struct {
	service *services.OrderService
	cfg     *config.Config
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *services.OrderService, cfg *config.Config) *OrderHandler {
	return &OrderHandler{service: service, cfg: cfg}
}

// Create adds a new order
// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if input.OrderID == "" || input.Marketplace == "" || len(input.Items) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order ID, marketplace and items are required")
		return
	}

	order, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderExists):
			respondError(c, http.StatusBadRequest, "ORDER_EXISTS", "Order with this ID already exists")
		case errors.Is(err, services.ErrSkuNotFound):
			respondError(c, http.StatusNotFound, "SKU_NOT_FOUND", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    order,
		Message: stringPtr("Order created successfully"),
	})
}

// List retrieves orders with pagination and filters
// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	filter := repository.OrderListFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if marketplace := c.Query("marketplace"); marketplace != "" {
		filter.Marketplace = models.ParseMarketplace(marketplace)
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.OrderStatus(status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			filter.To = &end
		}
	}

	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    orders,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// Get retrieves an order by ID
// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load order")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    order,
	})
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateStatus transitions an order's status
// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    order,
	})
}

type shippingRequest struct {
	Shipping models.OrderShipping `json:"shipping" binding:"required"`
}

// UpdateShipping replaces an order's shipping details
// PUT /api/orders/:id/shipping
func (h *OrderHandler) UpdateShipping(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Shipping information is required")
		return
	}

	order, err := h.service.UpdateShipping(c.Request.Context(), id, req.Shipping)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update order shipping")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    order,
	})
}

// Update modifies an order's mutable fields
// PUT /api/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var input services.OrderUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    order,
	})
}

// Delete removes an order
// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: stringPtr("Order deleted successfully"),
	})
}
