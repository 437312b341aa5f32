package server

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/myjarvis/auth-api/auth"
)

// ValidateEmail checks address format. Failures are domain validation errors
// and are rendered as 422 before the auth service is ever invoked.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return auth.NewError(auth.KindValidationFailure, "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return auth.NewError(auth.KindValidationFailure, "invalid email format")
	}
	return nil
}

// ValidatePasswordStrength enforces the sign-up policy: minimum 8 characters
// with at least one uppercase letter, one lowercase letter, and one digit.
// All missing requirements are reported in one message.
func ValidatePasswordStrength(password string) error {
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	var missing []string
	if len(password) < 8 {
		missing = append(missing, "minimum 8 characters")
	}
	if !hasUpper {
		missing = append(missing, "minimum 1 uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "minimum 1 lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "minimum 1 digit")
	}

	if len(missing) > 0 {
		return auth.NewError(auth.KindValidationFailure, "Password must contain: "+strings.Join(missing, ", "))
	}
	return nil
}

// ValidateRegistration is the full pre-facade check for sign-up requests.
func ValidateRegistration(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePasswordStrength(password)
}
