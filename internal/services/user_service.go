// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/models"
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,max=50"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Phone       *string `json:"phone" validate:"omitempty,min=7,max=15"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	State       *string `json:"state" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// ProfileOverview is the account page payload: the user with their profile,
// their most recent orders and how many lines sit in their cart.
type ProfileOverview struct {
	User         models.User    `json:"user"`
	RecentOrders []models.Order `json:"recent_orders"`
	CartCount    int64          `json:"cart_count"`
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{
		db:  db,
		cfg: cfg,
	}
}

// GetProfileOverview assembles the account page.
func (s *UserService) GetProfileOverview(userID uuid.UUID) (*ProfileOverview, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(s.cfg.Store.RecentOrdersLimit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	var cartCount int64
	if err := s.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count cart items: %w", err)
	}

	return &ProfileOverview{
		User:         user,
		RecentOrders: orders,
		CartCount:    cartCount,
	}, nil
}

// UpdateProfile applies partial updates to the user row and their profile.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: user.ID}
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Image != nil {
		user.Profile.Image = *req.Image
	}
	if req.Phone != nil {
		user.Profile.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Profile.Address = *req.Address
	}
	if req.City != nil {
		user.Profile.City = *req.City
	}
	if req.State != nil {
		user.Profile.State = *req.State
	}
	if req.Country != nil {
		user.Profile.Country = *req.Country
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, errors.New("invalid date of birth")
		}
		user.Profile.DateOfBirth = &dob
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if err := tx.Save(user.Profile).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
