// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/models"
)

type CheckoutService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CheckoutRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	Address   string `json:"address" validate:"required,min=1,max=500"`
	City      string `json:"city" validate:"required,min=1,max=100"`
	State     string `json:"state" validate:"required,min=1,max=100"`
	Country   string `json:"country" validate:"omitempty,max=100"`
	PinCode   string `json:"pin_code" validate:"required,min=4,max=12"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

// CheckoutPreview is what the checkout page renders before the buyer
// submits: the cart lines and the totals they will be charged.
type CheckoutPreview struct {
	Items  []models.CartItem `json:"items"`
	Totals CartTotals        `json:"totals"`
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config) *CheckoutService {
	return &CheckoutService{
		db:  db,
		cfg: cfg,
	}
}

// Preview loads the user's cart and computes the totals a submission
// would be charged right now.
func (s *CheckoutService) Preview(userID uuid.UUID) (*CheckoutPreview, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	totals := ComputeCartTotals(items, s.cfg.Store.ShippingFee, s.cfg.Store.FreeShippingThreshold)
	return &CheckoutPreview{Items: items, Totals: totals}, nil
}

// Checkout converts the user's cart into an order. Billing address, order,
// order items and the cart wipe all commit in one transaction; a failure at
// any point leaves the cart untouched. Each order item snapshots the unit
// price in effect at submission so later price edits never rewrite history.
func (s *CheckoutService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch cart: %w", err)
		}

		if len(items) == 0 {
			return errors.New("cart is empty")
		}

		totals := ComputeCartTotals(items, s.cfg.Store.ShippingFee, s.cfg.Store.FreeShippingThreshold)

		country := req.Country
		if country == "" {
			country = "India"
		}

		billing := models.BillingAddress{
			UserID:    userID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			Country:   country,
			PinCode:   req.PinCode,
			Notes:     req.Notes,
		}
		if err := tx.Create(&billing).Error; err != nil {
			return fmt.Errorf("failed to create billing address: %w", err)
		}

		newOrder := models.Order{
			UserID:           userID,
			BillingAddressID: &billing.ID,
			TotalAmount:      totals.Total,
			Status:           models.OrderStatusPending,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for i := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   newOrder.ID,
				ProductID: items[i].ProductID,
				Quantity:  items[i].Quantity,
				Price:     items[i].Product.EffectivePrice(),
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		newOrder.BillingAddress = &billing
		newOrder.Items = orderItems
		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
