// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	funnelIDPattern = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateFunnelNaming validates a funnel id follows the snake_case convention
func ValidateFunnelNaming(funnelID string) error {
	if !funnelIDPattern.MatchString(funnelID) {
		return fmt.Errorf("funnel id %q must be snake_case (e.g. magic_tool_student)", funnelID)
	}
	return nil
}
