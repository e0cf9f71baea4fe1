package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo carries a parsed error code and message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates storage and transport errors into an error code
// plus a message safe to pass through to the caller. Unique-constraint
// violations on email become the duplicate-email code; anything
// unanticipated falls back to a generic server error whose message
// includes the context for diagnostics.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Server error",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique constraint violation: postgres says "duplicate key value
	// violates unique constraint", sqlite says "UNIQUE constraint failed".
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Referenced record does not exist",
		}
	}

	// Not-null constraint violation
	if strings.Contains(errStrLower, "not-null constraint") || strings.Contains(errStrLower, "not null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "A required field is missing",
		}
	}

	// Connection failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Database connection failed. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Server error: " + context,
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Email already exists",
		}
	}

	// Rating upserts never reach this path; any other unique collision
	// is a conflicting record.
	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "A conflicting record already exists",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "store") {
		return "Store not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "rating") {
		return "Rating not found"
	}

	return "Requested record not found"
}

// IsDuplicateKey reports whether the error is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	errLower := strings.ToLower(err.Error())
	return strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint")
}

// ParseAndRespond parses the error and writes the standard payload.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
