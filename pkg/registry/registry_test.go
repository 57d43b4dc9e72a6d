// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func validRegistry() *FunnelRegistry {
	return &FunnelRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-08-01",
		Funnels: []Funnel{
			{
				ID:                "magic_tool_student",
				DisplayName:       "Magic Tool (Studenten)",
				VSLVariant:        "student_v2",
				LandingPath:       "/start/student",
				CheckoutProductID: "prod_483911",
				Pricing:           Pricing{Currency: "EUR", Amount: 47},
				EmailSequence: []EmailStep{
					{TemplateID: "welcome_student", Subject: "Dein Start", DelayHours: 0},
					{TemplateID: "case_study_student", Subject: "So hat es Lisa gemacht", DelayHours: 24},
				},
			},
			{
				ID:                "magic_tool_generic",
				DisplayName:       "Magic Tool",
				VSLVariant:        "generic_v1",
				LandingPath:       "/start",
				CheckoutProductID: "prod_483900",
				Pricing:           Pricing{Currency: "EUR", Amount: 47},
			},
		},
	}
}

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funnel-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================
// Core Functionality Tests
// ==========================

func TestLoadRegistry_Success(t *testing.T) {
	path := writeRegistryFile(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-01",
		"funnels": [
			{
				"id": "magic_tool_student",
				"displayName": "Magic Tool (Studenten)",
				"vslVariant": "student_v2",
				"landingPath": "/start/student",
				"checkoutProductId": "prod_483911",
				"pricing": {"currency": "EUR", "amount": 47},
				"emailSequence": [
					{"templateId": "welcome_student", "subject": "Dein Start", "delayHours": 0}
				]
			}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Funnels, 1)

	funnel := reg.Funnels[0]
	assert.Equal(t, "magic_tool_student", funnel.ID)
	assert.Equal(t, "student_v2", funnel.VSLVariant)
	assert.Equal(t, "prod_483911", funnel.CheckoutProductID)
	assert.Equal(t, 47.0, funnel.Pricing.Amount)
	require.Len(t, funnel.EmailSequence, 1)
	assert.Equal(t, "welcome_student", funnel.EmailSequence[0].TemplateID)
}

func TestLoadRegistry_FileMissing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRegistry_InvalidJSON(t *testing.T) {
	path := writeRegistryFile(t, `{not json`)
	_, err := LoadRegistry(path)
	assert.Error(t, err)
}

// ==========================
// Validation Tests
// ==========================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FunnelRegistry)
		wantErr string
	}{
		{
			name:   "valid registry passes",
			mutate: func(r *FunnelRegistry) {},
		},
		{
			name: "empty funnel id rejected",
			mutate: func(r *FunnelRegistry) {
				r.Funnels[0].ID = ""
			},
			wantErr: "empty id",
		},
		{
			name: "non snake_case id rejected",
			mutate: func(r *FunnelRegistry) {
				r.Funnels[0].ID = "MagicTool"
			},
			wantErr: "snake_case",
		},
		{
			name: "duplicate id rejected",
			mutate: func(r *FunnelRegistry) {
				r.Funnels[1].ID = r.Funnels[0].ID
			},
			wantErr: "duplicate",
		},
		{
			name: "missing vsl variant rejected",
			mutate: func(r *FunnelRegistry) {
				r.Funnels[0].VSLVariant = ""
			},
			wantErr: "vslVariant",
		},
		{
			name: "missing checkout product rejected",
			mutate: func(r *FunnelRegistry) {
				r.Funnels[1].CheckoutProductID = ""
			},
			wantErr: "checkoutProductId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistry()
			tt.mutate(reg)

			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// ==========================
// Lookup Tests
// ==========================

func TestFindFunnel(t *testing.T) {
	reg := validRegistry()

	funnel, ok := reg.FindFunnel("magic_tool_student")
	require.True(t, ok)
	assert.Equal(t, "Magic Tool (Studenten)", funnel.DisplayName)

	_, ok = reg.FindFunnel("does_not_exist")
	assert.False(t, ok)
}

func TestFunnelIDs(t *testing.T) {
	reg := validRegistry()
	assert.Equal(t, []string{"magic_tool_student", "magic_tool_generic"}, reg.FunnelIDs())
}
