// Package password checks sign-up passwords against the rules the
// marketplace backend enforces, so users see the problem before the
// account request is sent.
package password

import (
	"strings"
	"unicode"
)

// MinLength is the backend's minimum password length.
const MinLength = 8

// ValidationError represents a password validation error
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidatePasswordConfirmation checks if password and confirmation match
func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return ValidationError{Message: "Passwords do not match"}
	}
	return nil
}

// ValidatePasswordStrength checks length and rejects all-digit passwords
// and passwords built around the account's username or email name.
func ValidatePasswordStrength(password, username, email string) error {
	if len([]rune(password)) < MinLength {
		return ValidationError{Message: "Password must be at least 8 characters"}
	}

	allDigits := true
	for _, char := range password {
		if !unicode.IsDigit(char) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ValidationError{Message: "Password cannot be entirely numeric"}
	}

	lower := strings.ToLower(password)
	local, _, _ := strings.Cut(email, "@")
	for _, attr := range []string{username, local} {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) >= 3 && strings.Contains(lower, attr) {
			return ValidationError{Message: "Password is too similar to your username or email"}
		}
	}

	return nil
}

// ValidateNewPassword runs the confirmation and strength checks in the
// order the sign-up form reports them.
func ValidateNewPassword(password, confirmation, username, email string) error {
	if password == "" {
		return ValidationError{Message: "Password is required"}
	}
	if err := ValidatePasswordStrength(password, username, email); err != nil {
		return err
	}
	return ValidatePasswordConfirmation(password, confirmation)
}
