// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/models"
	"github.com/multishop/multishop-backend/internal/utils"
)

type CatalogService struct {
	db  *gorm.DB
	cfg *config.Config
}

type ProductFilters struct {
	MinPrice *float64
	MaxPrice *float64
	Featured *bool
	OnSale   bool
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Image       string `json:"image" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProductRequest struct {
	CategoryID    string   `json:"category_id" validate:"required,uuid"`
	VendorID      string   `json:"vendor_id" validate:"omitempty,uuid"`
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`
	Image         string   `json:"image" validate:"omitempty,url"`
	Images        []string `json:"images" validate:"omitempty,max=10,dive,url"`
	Stock         int      `json:"stock" validate:"omitempty,min=0"`
	IsAvailable   *bool    `json:"is_available"`
	IsFeatured    *bool    `json:"is_featured"`
}

type UpdateProductRequest struct {
	CategoryID    *string  `json:"category_id" validate:"omitempty,uuid"`
	Name          *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`
	ClearDiscount bool     `json:"clear_discount"`
	Image         *string  `json:"image" validate:"omitempty,url"`
	Images        []string `json:"images" validate:"omitempty,max=10,dive,url"`
	Stock         *int     `json:"stock" validate:"omitempty,min=0"`
	IsAvailable   *bool    `json:"is_available"`
	IsFeatured    *bool    `json:"is_featured"`
}

// ProductDetail bundles a product with its related picks for the detail page.
type ProductDetail struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{
		db:  db,
		cfg: cfg,
	}
}

// ListProducts returns the public shop listing: available products only,
// filterable by category slug, price bounds and a name search.
func (s *CatalogService) ListProducts(params utils.PaginationParams, filters *ProductFilters) ([]models.Product, utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Category").
		Where("products.is_available = ?", true)

	if params.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ? AND categories.deleted_at IS NULL", params.Category)
	}

	if params.Search != "" {
		// Substring match on the name only
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ?", search)
	}

	if filters != nil {
		// Price bounds apply to the list price, not the discounted one
		if filters.MinPrice != nil {
			query = query.Where("products.price >= ?", *filters.MinPrice)
		}
		if filters.MaxPrice != nil {
			query = query.Where("products.price <= ?", *filters.MaxPrice)
		}
		if filters.Featured != nil {
			query = query.Where("products.is_featured = ?", *filters.Featured)
		}
		if filters.OnSale {
			query = query.Where("products.discount_price IS NOT NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSorts := []string{"created_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return products, result, nil
}

// FeaturedProducts returns the homepage strip of featured, available products.
func (s *CatalogService) FeaturedProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Category").
		Where("is_featured = ? AND is_available = ?", true, true).
		Order("created_at DESC").
		Limit(s.cfg.Store.FeaturedLimit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}
	return products, nil
}

// GetProductBySlug loads one product plus a handful of related picks from
// the same category for the detail page.
func (s *CatalogService) GetProductBySlug(slug string) (*ProductDetail, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Vendor").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var related []models.Product
	if err := s.db.Where("category_id = ? AND id != ? AND is_available = ?",
		product.CategoryID, product.ID, true).
		Order("created_at DESC").
		Limit(s.cfg.Store.RelatedLimit).
		Find(&related).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch related products: %w", err)
	}

	return &ProductDetail{Product: product, Related: related}, nil
}

// ListCategories returns all categories for navigation.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug loads one category with its available products.
func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Products", "is_available = ?", true).
		Where("slug = ?", slug).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// CreateCategory adds a category, deriving the slug from the name.
func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	slug := utils.Slugify(req.Name)
	if err := s.ensureCategorySlugFree(slug, uuid.Nil); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slug,
		Image:       req.Image,
		Description: req.Description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory applies partial updates. Renaming recomputes the slug.
func (s *CatalogService) UpdateCategory(categoryID uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil && *req.Name != category.Name {
		slug := utils.Slugify(*req.Name)
		if err := s.ensureCategorySlugFree(slug, category.ID); err != nil {
			return nil, err
		}
		category.Name = *req.Name
		category.Slug = slug
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory refuses to remove a category that still has products;
// the admin must move or delete them first.
func (s *CatalogService) DeleteCategory(categoryID uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return errors.New("category has products")
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreateProduct adds a product under an existing category.
func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, errors.New("invalid category ID")
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	slug := utils.Slugify(req.Name)
	if err := s.ensureProductSlugFree(slug, uuid.Nil); err != nil {
		return nil, err
	}

	product := models.Product{
		CategoryID:    categoryID,
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Images:        pq.StringArray(req.Images),
		Stock:         req.Stock,
		IsAvailable:   true,
	}
	if req.VendorID != "" {
		vendorID, err := uuid.Parse(req.VendorID)
		if err != nil {
			return nil, errors.New("invalid vendor ID")
		}
		var vendor models.Vendor
		if err := s.db.First(&vendor, "id = ?", vendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("vendor not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		product.VendorID = &vendorID
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.Category = category
	return &product, nil
}

// UpdateProduct applies partial updates. Renaming recomputes the slug.
func (s *CatalogService) UpdateProduct(productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category ID")
		}
		var category models.Category
		if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("category not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		product.CategoryID = categoryID
	}
	if req.Name != nil && *req.Name != product.Name {
		slug := utils.Slugify(*req.Name)
		if err := s.ensureProductSlugFree(slug, product.ID); err != nil {
			return nil, err
		}
		product.Name = *req.Name
		product.Slug = slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ClearDiscount {
		product.DiscountPrice = nil
	} else if req.DiscountPrice != nil {
		product.DiscountPrice = req.DiscountPrice
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Images != nil {
		product.Images = pq.StringArray(req.Images)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct soft-deletes the product. Existing order items keep their
// snapshot and still reference the row.
func (s *CatalogService) DeleteProduct(productID uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (s *CatalogService) ensureCategorySlugFree(slug string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return errors.New("slug already taken")
	}
	return nil
}

func (s *CatalogService) ensureProductSlugFree(slug string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return errors.New("slug already taken")
	}
	return nil
}
