// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Image       string `json:"image" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Vendor is a shop owned by exactly one user account. New vendors start
// unapproved and are toggled by an admin.
type Vendor struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	ShopName    string    `json:"shop_name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Phone       string    `json:"phone" gorm:"size:15"`
	IsApproved  bool      `json:"is_approved" gorm:"default:false"`

	// Relationships
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:VendorID"`
}

type Product struct {
	BaseModel
	CategoryID    uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	VendorID      *uuid.UUID     `json:"vendor_id" gorm:"type:uuid;index"`
	Name          string         `json:"name" gorm:"size:200;not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice *float64       `json:"discount_price" gorm:"type:decimal(10,2)"`
	Image         string         `json:"image" gorm:"size:255"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Stock         int            `json:"stock" gorm:"default:0;check:stock >= 0"`
	IsAvailable   bool           `json:"is_available" gorm:"default:true;index"`
	IsFeatured    bool           `json:"is_featured" gorm:"default:false"`

	// Relationships
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Vendor   *Vendor  `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

// IsOnSale reports whether a discount price overrides the list price.
func (p *Product) IsOnSale() bool {
	return p.DiscountPrice != nil
}

// EffectivePrice is the price actually charged: the discount price when set,
// the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasStock reports whether quantity units can currently be fulfilled.
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.Stock
}
