// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/models"
)

type CartService struct {
	db  *gorm.DB
	cfg *config.Config
}

type AddToCartRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	Action models.CartAction `json:"action" validate:"required,oneof=increase decrease"`
}

// CartTotals is the checkout arithmetic: subtotal over line totals, a flat
// shipping surcharge below the free-shipping threshold, zero at or above it.
type CartTotals struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func NewCartService(db *gorm.DB, cfg *config.Config) *CartService {
	return &CartService{
		db:  db,
		cfg: cfg,
	}
}

// ComputeCartTotals folds already-loaded cart lines into totals. Pure:
// callers are responsible for having preloaded each line's product.
func ComputeCartTotals(items []models.CartItem, shippingFee, freeThreshold float64) CartTotals {
	totals := CartTotals{ItemCount: len(items)}

	for i := range items {
		totals.Subtotal += items[i].LineTotal()
	}

	if totals.Subtotal < freeThreshold {
		totals.Shipping = shippingFee
	}
	totals.Total = totals.Subtotal + totals.Shipping

	return totals
}

// AddToCart merges the requested quantity into the user's existing line for
// the product, or creates the line. One line per (user, product), always.
func (s *CartService) AddToCart(userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsAvailable {
		return nil, errors.New("product is not available")
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		// Already in cart - merge quantities
		newQuantity := item.Quantity + quantity
		if !product.HasStock(newQuantity) {
			return nil, errors.New("insufficient stock")
		}
		item.Quantity = newQuantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		if !product.HasStock(quantity) {
			return nil, errors.New("insufficient stock")
		}
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}

	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	item.Product = product
	return &item, nil
}

// UpdateCartItem applies an increase or decrease of exactly one. Decreasing
// a quantity-1 line deletes it; the cart never holds a zero-quantity line.
// The returned item is nil when the line was removed.
func (s *CartService) UpdateCartItem(userID, itemID uuid.UUID, action models.CartAction) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cart item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch action {
	case models.CartActionIncrease:
		if !item.Product.HasStock(item.Quantity + 1) {
			return nil, errors.New("insufficient stock")
		}
		item.Quantity++
		if err := s.db.Model(&models.CartItem{}).Where("id = ?", item.ID).
			Update("quantity", item.Quantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return &item, nil

	case models.CartActionDecrease:
		if item.Quantity > 1 {
			item.Quantity--
			if err := s.db.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("quantity", item.Quantity).Error; err != nil {
				return nil, fmt.Errorf("failed to update cart item: %w", err)
			}
			return &item, nil
		}
		if err := s.db.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil, nil

	default:
		return nil, errors.New("invalid cart action")
	}
}

// RemoveCartItem deletes the line. Lines belonging to other users are
// indistinguishable from missing ones.
func (s *CartService) RemoveCartItem(userID, itemID uuid.UUID) error {
	result := s.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", itemID, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

// GetCart returns the user's cart lines with products, plus totals.
func (s *CartService) GetCart(userID uuid.UUID) ([]models.CartItem, CartTotals, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, CartTotals{}, fmt.Errorf("failed to fetch cart: %w", err)
	}

	totals := ComputeCartTotals(items, s.cfg.Store.ShippingFee, s.cfg.Store.FreeShippingThreshold)
	return items, totals, nil
}

// CountItems reports how many lines the user's cart currently holds.
func (s *CartService) CountItems(userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
