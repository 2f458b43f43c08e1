// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one (user, product, quantity) line of unpurchased intent.
// Lines are transient: checkout and removal delete rows for real, so there is
// no DeletedAt here — a soft-deleted row would also collide with the unique
// (user, product) index on the next add.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1;check:quantity >= 1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// LineTotal is the product's effective price times the line quantity.
func (c *CartItem) LineTotal() float64 {
	return c.Product.EffectivePrice() * float64(c.Quantity)
}
