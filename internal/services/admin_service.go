// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	TotalUsers      int64   `json:"total_users"`
	TotalProducts   int64   `json:"total_products"`
	TotalCategories int64   `json:"total_categories"`
	TotalVendors    int64   `json:"total_vendors"`
	PendingVendors  int64   `json:"pending_vendors"`
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats counts the main entities and sums revenue over orders
// that were not cancelled.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&models.User{}, &stats.TotalUsers, nil},
		{&models.Product{}, &stats.TotalProducts, nil},
		{&models.Category{}, &stats.TotalCategories, nil},
		{&models.Vendor{}, &stats.TotalVendors, nil},
		{&models.Vendor{}, &stats.PendingVendors, func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", false)
		}},
		{&models.Order{}, &stats.TotalOrders, nil},
		{&models.Order{}, &stats.PendingOrders, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.OrderStatusPending)
		}},
	}

	for _, c := range counts {
		query := s.db.Model(c.model)
		if c.scope != nil {
			query = c.scope(query)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	if err := s.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}
