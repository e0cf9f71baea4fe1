package util

import (
	"fmt"
	"strings"
)

// ValidationError reports input that violates a business rule.
// Controllers map it to a 400 response with the rule's message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

const passwordSymbols = "!@#$%^&*"

// PasswordPolicy checks a password against a length range, requiring at
// least one uppercase letter and one symbol from the fixed set. Only
// letters, digits and those symbols are allowed. Self-signup and
// admin-created accounts carry different length ranges on purpose.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

var (
	// SignupPasswordPolicy applies to self-registration and password change.
	SignupPasswordPolicy = PasswordPolicy{MinLength: 6, MaxLength: 12}

	// AdminPasswordPolicy applies to admin-created accounts.
	AdminPasswordPolicy = PasswordPolicy{MinLength: 8, MaxLength: 16}
)

// Validate returns a *ValidationError when the password violates the policy.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength || len(password) > p.MaxLength {
		return p.violation()
	}

	hasUpper := false
	hasSymbol := false
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
		case strings.ContainsRune(passwordSymbols, ch):
			hasSymbol = true
		default:
			return p.violation()
		}
	}

	if !hasUpper || !hasSymbol {
		return p.violation()
	}
	return nil
}

func (p PasswordPolicy) violation() *ValidationError {
	return NewValidationError(
		"Password must be %d-%d characters with at least one uppercase and one special character",
		p.MinLength, p.MaxLength,
	)
}

// ValidateNameLength checks a name against an inclusive length range.
func ValidateNameLength(name string, min, max int) error {
	if len(name) < min || len(name) > max {
		return NewValidationError("Name must be between %d-%d characters", min, max)
	}
	return nil
}

const maxAddressLength = 400

// ValidateAddress checks the optional address field; empty is allowed.
func ValidateAddress(address string) error {
	if len(address) > maxAddressLength {
		return NewValidationError("Address must be max %d characters", maxAddressLength)
	}
	return nil
}
