// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/models"
	"github.com/multishop/multishop-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// GetUserOrders pages through the user's order history, newest first.
func (s *OrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSorts := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.
		Preload("Items").
		Preload("Items.Product").
		Preload("BillingAddress").
		Find(&orders).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return orders, result, nil
}

// GetOrder loads one order scoped to its owner. Another user's order
// reads as not found.
func (s *OrderService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("BillingAddress").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// RecentOrders returns the user's latest orders for the profile page.
func (s *OrderService) RecentOrders(userID uuid.UUID, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	return orders, nil
}

// ListOrders pages through all orders for the admin surface, optionally
// filtered by status.
func (s *OrderService) ListOrders(params utils.PaginationParams, status models.OrderStatus) ([]models.Order, utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{})

	if status != "" {
		if !models.IsValidOrderStatus(status) {
			return nil, utils.PaginationResult{}, errors.New("invalid order status")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSorts := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.
		Preload("User").
		Preload("Items").
		Preload("BillingAddress").
		Find(&orders).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return orders, result, nil
}

// UpdateStatus moves an order to a new fulfilment state.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, errors.New("invalid order status")
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order.Status = status
	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}
