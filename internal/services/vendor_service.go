// internal/services/vendor_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/models"
)

type VendorService struct {
	db *gorm.DB
}

type RegisterVendorRequest struct {
	ShopName    string `json:"shop_name" validate:"required,min=2,max=200"`
	Image       string `json:"image" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=15"`
}

type VendorApprovalRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

func NewVendorService(db *gorm.DB) *VendorService {
	return &VendorService{db: db}
}

// RegisterVendor opens a shop for the user. One shop per account; new
// shops wait for admin approval.
func (s *VendorService) RegisterVendor(userID uuid.UUID, req *RegisterVendorRequest) (*models.Vendor, error) {
	var count int64
	if err := s.db.Model(&models.Vendor{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, errors.New("vendor already registered")
	}

	vendor := models.Vendor{
		UserID:      userID,
		ShopName:    req.ShopName,
		Image:       req.Image,
		Description: req.Description,
		Phone:       req.Phone,
		IsApproved:  false,
	}
	if err := s.db.Create(&vendor).Error; err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return &vendor, nil
}

// GetVendorByUser loads the user's shop, if any.
func (s *VendorService) GetVendorByUser(userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("vendor not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &vendor, nil
}

// SetApproval toggles whether a shop is allowed to trade.
func (s *VendorService) SetApproval(vendorID uuid.UUID, approved bool) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.Preload("User").First(&vendor, "id = ?", vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("vendor not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	vendor.IsApproved = approved
	if err := s.db.Model(&vendor).Update("is_approved", approved).Error; err != nil {
		return nil, fmt.Errorf("failed to update vendor approval: %w", err)
	}
	return &vendor, nil
}
