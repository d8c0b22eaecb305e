package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The client maps these codes to display text.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Storefront (STORE_) ====================
	StoreItemNotFound      = "STORE_ITEM_NOT_FOUND"
	StoreInsufficientStock = "STORE_INSUFFICIENT_STOCK"
	StoreEmptyCart         = "STORE_EMPTY_CART"
	StoreNoTransactions    = "STORE_NO_TRANSACTIONS"
	StoreNoSearchResults   = "STORE_NO_SEARCH_RESULTS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
