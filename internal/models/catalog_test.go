// internal/models/catalog_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: 300}
	assert.Equal(t, 300.0, p.EffectivePrice())
	assert.False(t, p.IsOnSale())

	discount := 250.0
	p.DiscountPrice = &discount
	assert.Equal(t, 250.0, p.EffectivePrice())
	assert.True(t, p.IsOnSale())
}

func TestHasStock(t *testing.T) {
	p := Product{Stock: 3}

	assert.True(t, p.HasStock(1))
	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))

	empty := Product{Stock: 0}
	assert.False(t, empty.HasStock(1))
}

func TestCartItemLineTotal(t *testing.T) {
	discount := 80.0
	item := CartItem{
		Quantity: 3,
		Product:  Product{Price: 100, DiscountPrice: &discount},
	}

	// Line total follows the discounted price
	assert.Equal(t, 240.0, item.LineTotal())
}

func TestOrderItemLineTotal(t *testing.T) {
	// Price is the frozen snapshot, independent of the product row
	item := OrderItem{
		Quantity: 2,
		Price:    150,
		Product:  Product{Price: 999},
	}

	assert.Equal(t, 300.0, item.LineTotal())
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, IsValidOrderStatus(s), string(s))
	}

	assert.False(t, IsValidOrderStatus(OrderStatus("refunded")))
	assert.False(t, IsValidOrderStatus(OrderStatus("")))
}
