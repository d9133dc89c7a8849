package services

import (
	"context"
	"time"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

// DashboardSummary aggregates the headline figures shown on the dashboard.
type DashboardSummary struct {
	TotalProducts  int64                         `json:"totalProducts"`
	TotalSkus      int64                         `json:"totalSkus"`
	TotalOrders    int64                         `json:"totalOrders"`
	Revenue30Days  float64                       `json:"revenue30Days"`
	Inventory      *repository.InventorySummary  `json:"inventory"`
	OrdersByStatus []repository.StatusCount      `json:"ordersByStatus"`
	Marketplaces   []repository.MarketplaceCount `json:"marketplaces"`
	RecentOrders   []models.Order                `json:"recentOrders"`
}

// DashboardService assembles read-only aggregates for the dashboard UI.
type DashboardService struct {
	products  repository.ProductRepositoryInterface
	skus      repository.SkuRepositoryInterface
	inventory repository.InventoryRepositoryInterface
	orders    repository.OrderRepositoryInterface
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	products repository.ProductRepositoryInterface,
	skus repository.SkuRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
	orders repository.OrderRepositoryInterface,
) *DashboardService {
	return &DashboardService{
		products:  products,
		skus:      skus,
		inventory: inventory,
		orders:    orders,
		now:       time.Now,
	}
}

const recentOrderCount = 10

// Summary collects the dashboard headline figures in one call
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalSkus, err = s.skus.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -30)
	if summary.Revenue30Days, err = s.orders.Revenue(ctx, &since); err != nil {
		return nil, err
	}

	if summary.Inventory, err = s.inventory.Summary(ctx); err != nil {
		return nil, err
	}
	if summary.OrdersByStatus, err = s.orders.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if summary.Marketplaces, err = s.orders.CountByMarketplace(ctx); err != nil {
		return nil, err
	}

	recent, _, err := s.orders.List(ctx, repository.OrderListFilter{Page: 1, Limit: recentOrderCount})
	if err != nil {
		return nil, err
	}
	summary.RecentOrders = recent

	return summary, nil
}

// LowStock lists inventory records at or below their product's threshold
func (s *DashboardService) LowStock(ctx context.Context, page, limit int) ([]models.Inventory, int64, error) {
	return s.inventory.List(ctx, repository.InventoryListFilter{
		LowStock: true,
		Page:     page,
		Limit:    limit,
	})
}
