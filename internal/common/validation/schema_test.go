// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Email Validation Tests
// ==========================

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"sarah@example.com", true},
		{"ben.mueller+quiz@mail.example.de", true},
		{"UPPER@EXAMPLE.COM", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateEmail(tt.email))
		})
	}
}

// ==========================
// Phone Validation Tests
// ==========================

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+4915112345678", true},
		{"0151 1234 5678", true},
		{"(030) 123-45678", true},
		{"", false},
		{"12345", false},
		{"call me maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.phone))
		})
	}
}

// ==========================
// Funnel Naming Tests
// ==========================

func TestValidateFunnelNaming(t *testing.T) {
	assert.NoError(t, ValidateFunnelNaming("magic_tool_student"))
	assert.NoError(t, ValidateFunnelNaming("premium_scaling"))
	assert.NoError(t, ValidateFunnelNaming("starter"))

	assert.Error(t, ValidateFunnelNaming(""))
	assert.Error(t, ValidateFunnelNaming("MagicTool"))
	assert.Error(t, ValidateFunnelNaming("magic-tool-student"))
	assert.Error(t, ValidateFunnelNaming("magic_tool_"))
	assert.Error(t, ValidateFunnelNaming("magic__tool"))
}
