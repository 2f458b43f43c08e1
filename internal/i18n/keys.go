// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUsernameTaken      = "auth.username_taken"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthSignupSuccess      = "auth.signup_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Catalog
	KeyProductNotFound    = "product"
	KeyProductCreated     = "product.created"
	KeyProductUpdated     = "product.updated"
	KeyProductDeleted     = "product.deleted"
	KeyProductOutOfStock  = "product.out_of_stock"
	KeyProductUnavailable = "product.unavailable"
	KeyCategoryNotFound   = "category"
	KeyCategoryCreated    = "category.created"
	KeyCategoryUpdated    = "category.updated"
	KeyCategoryDeleted    = "category.deleted"
	KeyCategoryInUse      = "category.in_use"
	KeySlugTaken          = "catalog.slug_taken"

	// Cart
	KeyCartNotFound    = "cart"
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemUpdated = "cart.item_updated"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartEmpty       = "cart.empty"

	// Checkout / orders
	KeyOrderNotFound      = "order"
	KeyOrderPlaced        = "order.placed"
	KeyOrderStatusUpdated = "order.status_updated"

	// Vendors
	KeyVendorNotFound   = "vendor"
	KeyVendorRegistered = "vendor.registered"
	KeyVendorExists     = "vendor.exists"
	KeyVendorApproval   = "vendor.approval_updated"

	// Profile
	KeyProfileUpdated = "profile.updated"

	// Uploads
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
