// internal/handlers/vendor.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/multishop/multishop-backend/internal/i18n"
	"github.com/multishop/multishop-backend/internal/services"
	"github.com/multishop/multishop-backend/internal/utils"
)

type VendorHandler struct {
	vendorService *services.VendorService
}

func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// POST /vendors
func (h *VendorHandler) RegisterVendor(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	vendor, err := h.vendorService.RegisterVendor(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "already registered") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyVendorExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVendorRegistered),
		"vendor":  vendor,
	})
}

// GET /vendors/me
func (h *VendorHandler) GetMyVendor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetVendorByUser(userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyVendorNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"vendor": vendor,
	})
}
