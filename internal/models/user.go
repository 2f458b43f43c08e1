// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	FirstName    string     `json:"first_name" gorm:"size:50"`
	LastName     string     `json:"last_name" gorm:"size:50"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'customer'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Profile   *Profile   `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	Vendor    *Vendor    `json:"vendor,omitempty" gorm:"foreignKey:UserID"`
	CartItems []CartItem `json:"cart_items,omitempty" gorm:"foreignKey:UserID"`
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Profile stores the extra account data the identity record does not carry.
// Exactly one per user, created at signup.
type Profile struct {
	BaseModel
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Image       string     `json:"image" gorm:"size:255"`
	Phone       string     `json:"phone" gorm:"size:15"`
	Address     string     `json:"address" gorm:"type:text"`
	City        string     `json:"city" gorm:"size:100"`
	State       string     `json:"state" gorm:"size:100"`
	Country     string     `json:"country" gorm:"size:100;default:'India'"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}
