// internal/workers/lead/crm-lead-sync/handler_test.go
package crmleadsync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"funnel-workers/internal/common/crm"
	"funnel-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockCRM struct {
	existing  []crm.Lead
	searchErr error
	createErr error
	updateErr error

	created []*crm.Lead
	updated map[string]*crm.Lead
}

func (m *mockCRM) SearchLeads(_ context.Context, _ string) ([]crm.Lead, error) {
	return m.existing, m.searchErr
}

func (m *mockCRM) CreateLead(_ context.Context, lead *crm.Lead) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, lead)
	return "crm-rec-001", nil
}

func (m *mockCRM) UpdateLead(_ context.Context, leadID string, lead *crm.Lead) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.updated == nil {
		m.updated = make(map[string]*crm.Lead)
	}
	m.updated[leadID] = lead
	return nil
}

func createTestInput() *Input {
	return &Input{
		LeadID:      "lead-001",
		Email:       "lisa@example.com",
		FirstName:   "Lisa",
		Source:      "quiz",
		PersonaType: "student",
		FunnelID:    "magic_tool_student",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CreatesNewLead(t *testing.T) {
	mock := &mockCRM{}
	h := NewHandler(LoadConfig(), mock, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, "crm-rec-001", output.CRMRecordID)
	assert.Equal(t, SyncCreated, output.SyncStatus)
	require.Len(t, mock.created, 1)
	assert.Equal(t, "student", mock.created[0].PersonaType)
	assert.Equal(t, "magic_tool_student", mock.created[0].FunnelID)

	_, err = time.Parse(time.RFC3339, output.SyncedAt)
	assert.NoError(t, err)
}

func TestHandler_Execute_UpdatesExistingLead(t *testing.T) {
	mock := &mockCRM{
		existing: []crm.Lead{{ID: "crm-rec-777", Email: "lisa@example.com"}},
	}
	h := NewHandler(LoadConfig(), mock, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, "crm-rec-777", output.CRMRecordID)
	assert.Equal(t, SyncUpdated, output.SyncStatus)
	assert.Empty(t, mock.created)
	require.Contains(t, mock.updated, "crm-rec-777")
	assert.Equal(t, "magic_tool_student", mock.updated["crm-rec-777"].FunnelID)
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name string
		mock *mockCRM
	}{
		{name: "search error", mock: &mockCRM{searchErr: errors.New("gateway timeout")}},
		{name: "create error", mock: &mockCRM{createErr: errors.New("rate limited")}},
		{
			name: "update error",
			mock: &mockCRM{
				existing:  []crm.Lead{{ID: "crm-rec-777"}},
				updateErr: errors.New("record locked"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), tt.mock, logger.NewNoOpLogger())

			output, err := h.Execute(context.Background(), createTestInput())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCRMSyncFailed))
			assert.Nil(t, output)
		})
	}
}

func TestHandler_Execute_MissingEmail(t *testing.T) {
	h := NewHandler(LoadConfig(), &mockCRM{}, logger.NewNoOpLogger())

	input := createTestInput()
	input.Email = ""

	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCRMSyncFailed))
}

// ==========================
// Integration With HTTP Client
// ==========================

func TestHandler_Execute_AgainstHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			// Search: no existing lead
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost:
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":[{"code":"SUCCESS","details":{"id":"crm-http-1"},"message":"created","status":"success"}]}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	client := crm.NewClient(server.URL, "test-token", 5*time.Second)
	h := NewHandler(LoadConfig(), client, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.Equal(t, "crm-http-1", output.CRMRecordID)
	assert.Equal(t, SyncCreated, output.SyncStatus)
}
