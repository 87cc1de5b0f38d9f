package validation

import (
	"fmt"
	"strings"
)

const (
	MinLimit = 1
	MaxLimit = 100

	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// ValidatePage checks that a page number is usable (pages start at 1).
func ValidatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	return nil
}

// ValidateLimit checks that a page size is within the accepted range.
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("limit must be between %d and %d, got %d", MinLimit, MaxLimit, limit)
	}
	return nil
}

// ValidatePhone checks that a phone number is plausibly dialable: an
// optional leading + followed by 10 to 15 digits.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone number cannot be empty")
	}
	digits := phone
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return fmt.Errorf("phone number must have between %d and %d digits", minPhoneDigits, maxPhoneDigits)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number may only contain digits after an optional +")
		}
	}
	return nil
}

// ValidateRole checks a role filter. An empty role means "all roles".
func ValidateRole(role string) error {
	validRoles := map[string]bool{
		"":        true,
		"SENDER":  true,
		"CARRIER": true,
	}
	if !validRoles[strings.ToUpper(role)] {
		return fmt.Errorf("invalid role: %s (must be one of: SENDER, CARRIER)", role)
	}
	return nil
}

// ValidateNonEmptyString checks that a required field has a value.
func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}
