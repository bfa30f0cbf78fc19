// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAuthAdminOnly    = "auth.admin_only"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartCleared      = "cart.cleared"
	KeyCartItemNotFound = "cart.item_not_found"
	KeyCartConflict     = "cart.conflict"
	KeyCartEmpty        = "cart.empty"

	// Checkout / payment
	KeyCheckoutQuoted        = "checkout.quoted"
	KeyCheckoutDraftNotFound = "checkout.draft_not_found"
	KeyCheckoutDraftConsumed = "checkout.draft_consumed"
	KeyPaymentConfirmed      = "payment.confirmed"

	// Orders / reviews
	KeyOrderNotFound  = "order.not_found"
	KeyReviewSaved    = "review.saved"
	KeyReviewInvalid  = "review.invalid"
	KeyReviewNotInOrd = "review.item_not_in_order"

	// Address lookup
	KeyCepInvalid     = "cep.invalid"
	KeyCepNotFound    = "cep.not_found"
	KeyCepUnavailable = "cep.unavailable"
)
