// internal/handlers/catalog.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/multishop/multishop-backend/internal/i18n"
	"github.com/multishop/multishop-backend/internal/services"
	"github.com/multishop/multishop-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /shop
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filters := &services.ProductFilters{}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filters.MinPrice = &min
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filters.MaxPrice = &max
		}
	}
	if c.Query("on_sale") == "true" {
		filters.OnSale = true
	}

	_, result, err := h.catalogService.ListProducts(params, filters)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, result)
}

// GET /shop/featured
func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	products, err := h.catalogService.FeaturedProducts()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /product/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	detail, err := h.catalogService.GetProductBySlug(slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": detail.Product,
		"related": detail.Related,
	})
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.catalogService.GetCategoryBySlug(slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyCategoryNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"category": category,
	})
}
