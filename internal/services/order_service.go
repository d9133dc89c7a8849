package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order with this ID already exists")
	ErrStatusMissing = errors.New("status is required")
)

// OrderItemInput is one line of an order create request.
type OrderItemInput struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Tax      float64 `json:"tax"`
}

// OrderInput carries the fields of an explicit order create request.
type OrderInput struct {
	OrderID     string               `json:"orderId"`
	OrderItemID string               `json:"orderItemId"`
	Marketplace models.Marketplace   `json:"marketplace"`
	OrderDate   time.Time            `json:"orderDate"`
	Status      models.OrderStatus   `json:"status"`
	Customer    models.OrderCustomer `json:"customer"`
	Items       []OrderItemInput     `json:"items"`
	Shipping    models.OrderShipping `json:"shipping"`
	Payment     models.OrderPayment  `json:"payment"`
	Notes       string               `json:"notes"`
}

// OrderUpdateInput carries the fields of an order update request. Nil
// fields leave the stored values untouched.
type OrderUpdateInput struct {
	Status   models.OrderStatus    `json:"status"`
	Customer *models.OrderCustomer `json:"customer"`
	Shipping *models.OrderShipping `json:"shipping"`
	Payment  *models.OrderPayment  `json:"payment"`
	Notes    *string               `json:"notes"`
}

// OrderService handles order business logic. Explicit creation requires
// every line item SKU to resolve to an existing mapping; unlike imports,
// there is no UNMAPPED fallback here.
type OrderService struct {
	orders   repository.OrderRepositoryInterface
	skus     repository.SkuRepositoryInterface
	products repository.ProductRepositoryInterface
	logger   *logrus.Entry
	now      func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders repository.OrderRepositoryInterface,
	skus repository.SkuRepositoryInterface,
	products repository.ProductRepositoryInterface,
	logger *logrus.Logger,
) *OrderService {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderService{
		orders:   orders,
		skus:     skus,
		products: products,
		logger:   log.WithField("component", "order-service"),
		now:      time.Now,
	}
}

// Create adds a new order after resolving every line item SKU
func (s *OrderService) Create(ctx context.Context, input OrderInput) (*models.Order, error) {
	if _, err := s.orders.GetByOrderID(ctx, input.OrderID, input.Marketplace); err == nil {
		return nil, ErrOrderExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		sku, err := s.skus.GetBySKUAndMarketplace(ctx, item.SKU, input.Marketplace)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrSkuNotFound, item.SKU)
			}
			return nil, err
		}

		name := item.Name
		productID := sku.ProductID
		if name == "" {
			if product, err := s.products.GetByID(ctx, sku.ProductID); err == nil {
				name = product.Name
			}
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			SKU:       item.SKU,
			MSKU:      sku.MSKU,
			ProductID: &productID,
			Name:      name,
			Quantity:  quantity,
			Price:     item.Price,
			Tax:       item.Tax,
		})
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = s.now()
	}
	status := input.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	payment := input.Payment
	if payment.Amount == 0 {
		for _, item := range items {
			payment.Amount += item.Price * float64(item.Quantity)
		}
	}

	order := &models.Order{
		OrderID:     input.OrderID,
		OrderItemID: input.OrderItemID,
		Marketplace: input.Marketplace,
		OrderDate:   orderDate,
		Status:      status,
		Customer:    input.Customer,
		Shipping:    input.Shipping,
		Payment:     payment,
		Notes:       input.Notes,
		Items:       items,
	}
	if err := order.AppendStatusChange(models.StatusChange{
		Status:    status,
		Timestamp: s.now(),
		Note:      "Order created",
	}); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrOrderExists
		}
		return nil, err
	}
	return order, nil
}

// Get retrieves one order with its items
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// List retrieves orders matching the filter
func (s *OrderService) List(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orders.List(ctx, filter)
}

// UpdateStatus transitions an order's status and appends the change to its
// history.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, note string) (*models.Order, error) {
	if status == "" {
		return nil, ErrStatusMissing
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := order.AppendStatusChange(models.StatusChange{
		Status:    status,
		Timestamp: s.now(),
		Note:      note,
	}); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateShipping replaces an order's shipping details
func (s *OrderService) UpdateShipping(ctx context.Context, id uuid.UUID, shipping models.OrderShipping) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Shipping = shipping
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update modifies an order's mutable fields. A status change flows through
// the status history like UpdateStatus.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, input OrderUpdateInput) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if input.Status != "" && input.Status != order.Status {
		order.Status = input.Status
		if err := order.AppendStatusChange(models.StatusChange{
			Status:    input.Status,
			Timestamp: s.now(),
		}); err != nil {
			return nil, err
		}
	}
	if input.Customer != nil {
		order.Customer = *input.Customer
	}
	if input.Shipping != nil {
		order.Shipping = *input.Shipping
	}
	if input.Payment != nil {
		order.Payment = *input.Payment
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.orders.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}
