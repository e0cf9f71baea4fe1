package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or bad-signature token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // role not allowed for route
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // no role information on request

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed input
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // out of range

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // entity missing

	// ==================== Ratings (RATING_) ====================
	RatingInvalid = "RATING_INVALID" // rating outside 1..5

	// ==================== Throttling (RATE_) ====================
	RateLimited = "RATE_LIMITED" // too many requests

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // anything unanticipated
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
)
