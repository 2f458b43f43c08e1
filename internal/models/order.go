// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// BillingAddress is written once per checkout attempt and never reused.
type BillingAddress struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	FirstName string    `json:"first_name" gorm:"size:50;not null"`
	LastName  string    `json:"last_name" gorm:"size:50;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Phone     string    `json:"phone" gorm:"size:15;not null"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	City      string    `json:"city" gorm:"size:100;not null"`
	State     string    `json:"state" gorm:"size:100;not null"`
	PinCode   string    `json:"pin_code" gorm:"size:10;not null"`
	Country   string    `json:"country" gorm:"size:100;default:'India'"`
	Notes     string    `json:"notes" gorm:"type:text"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID"`
}

type Order struct {
	BaseModel
	UserID           uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	BillingAddressID *uuid.UUID  `json:"billing_address_id" gorm:"type:uuid"`
	TotalAmount      float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships. An order exclusively owns its items.
	User           User            `json:"-" gorm:"foreignKey:UserID"`
	BillingAddress *BillingAddress `json:"billing_address,omitempty" gorm:"foreignKey:BillingAddressID;constraint:OnDelete:SET NULL"`
	Items          []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem freezes product, quantity and effective price at purchase time.
// Price is never touched again, whatever happens to the product afterwards.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// LineTotal is the frozen purchase price times quantity.
func (i *OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
