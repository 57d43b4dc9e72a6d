// internal/workers/notification/notify-sales-team/handler_test.go
package notifysalesteam

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonaws "funnel-workers/internal/common/aws"
	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/slack"
)

// ==========================
// Test Helper Functions
// ==========================

type mockSlack struct {
	err      error
	messages []*slack.Message
}

func (m *mockSlack) Post(ctx context.Context, msg *slack.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

type mockSNS struct {
	err    error
	inputs []*sns.PublishInput
}

func (m *mockSNS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, input)
	return &sns.PublishOutput{}, nil
}

func smsConfig() *Config {
	cfg := LoadConfig()
	cfg.SMSEnabled = true
	cfg.SMSPhoneNumber = "+4915112345678"
	return cfg
}

func hotLeadInput() *Input {
	return &Input{
		LeadID:            "lead-007",
		Email:             "ben@example.com",
		FirstName:         "Ben",
		PersonaType:       "employee",
		RecommendedFunnel: "premium_scaling",
		Answers:           map[string]string{"1": "employee", "2": "no_perspective", "3": "freedom", "4": "fear_risk"},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SlackOnly(t *testing.T) {
	ms := &mockSlack{}
	h := NewHandler(LoadConfig(), ms, &mockSNS{}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), &Input{
		LeadID:            "lead-001",
		Email:             "sarah@example.com",
		FirstName:         "Sarah",
		PersonaType:       "student",
		RecommendedFunnel: "magic_tool_student",
		ProfileText:       "Struggling Student Sarah • Monatliche Geldknappheit • 500-1.500€ monatlich",
		Answers:           map[string]string{"1": "student", "3": "basic"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelSlack}, output.NotificationsSent)
	assert.False(t, output.HotLead)
	assert.NotEmpty(t, output.NotifiedAt)

	require.Len(t, ms.messages, 1)
	msg := ms.messages[0]
	assert.Equal(t, "Neuer Lead aus dem Quiz", msg.Text)
	require.Len(t, msg.Blocks, 1)
	assert.Contains(t, msg.Blocks[0].Text.Text, "sarah@example.com")
	assert.Contains(t, msg.Blocks[0].Text.Text, "magic_tool_student")
	assert.Contains(t, msg.Blocks[0].Text.Text, "Struggling Student Sarah")
}

func TestHandler_Execute_HotLeadSendsSMS(t *testing.T) {
	ms := &mockSlack{}
	msns := &mockSNS{}
	h := NewHandler(smsConfig(), ms, msns, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), hotLeadInput())
	require.NoError(t, err)

	assert.True(t, output.HotLead)
	assert.Equal(t, []string{ChannelSlack, ChannelSMS}, output.NotificationsSent)

	require.Len(t, msns.inputs, 1)
	assert.Equal(t, "+4915112345678", *msns.inputs[0].PhoneNumber)
	assert.Contains(t, *msns.inputs[0].Message, "ben@example.com")
	assert.Contains(t, *msns.inputs[0].Message, "premium_scaling")

	require.Len(t, ms.messages, 1)
	assert.Contains(t, ms.messages[0].Text, "Hot Lead")
}

func TestHandler_Execute_HotLeadWithoutSMSConfig(t *testing.T) {
	msns := &mockSNS{}
	h := NewHandler(LoadConfig(), &mockSlack{}, msns, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), hotLeadInput())
	require.NoError(t, err)

	assert.True(t, output.HotLead)
	assert.Equal(t, []string{ChannelSlack}, output.NotificationsSent)
	assert.Empty(t, msns.inputs)
}

func TestHandler_Execute_HotLeadWithUnbuiltSNSClient(t *testing.T) {
	// Wiring as the manager does it when the SNS integration is off:
	// the concrete client stays nil and must not end up inside the
	// service interface, where the nil check could not see it.
	var snsClient *commonaws.SNSClient
	var smsSender SNSService
	if snsClient != nil {
		smsSender = snsClient
	}

	ms := &mockSlack{}
	h := NewHandler(smsConfig(), ms, smsSender, logger.NewNoOpLogger())

	var output *Output
	var err error
	require.NotPanics(t, func() {
		output, err = h.Execute(context.Background(), hotLeadInput())
	})
	require.NoError(t, err)

	assert.True(t, output.HotLead)
	assert.Equal(t, []string{ChannelSlack}, output.NotificationsSent)
	require.Len(t, ms.messages, 1)
}

func TestHandler_Execute_HotLeadInvalidPhoneSkipsSMS(t *testing.T) {
	msns := &mockSNS{}
	cfg := smsConfig()
	cfg.SMSPhoneNumber = "not-a-number"
	h := NewHandler(cfg, &mockSlack{}, msns, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), hotLeadInput())
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelSlack}, output.NotificationsSent)
	assert.Empty(t, msns.inputs)
}

func TestHandler_Execute_MissingFirstName(t *testing.T) {
	ms := &mockSlack{}
	h := NewHandler(LoadConfig(), ms, &mockSNS{}, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{
		Email:       "anon@example.com",
		PersonaType: "default",
	})
	require.NoError(t, err)

	require.Len(t, ms.messages, 1)
	assert.Contains(t, ms.messages[0].Blocks[0].Text.Text, "Name: unbekannt")
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Execute_SlackError(t *testing.T) {
	h := NewHandler(LoadConfig(), &mockSlack{err: errors.New("status 500")}, &mockSNS{}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), hotLeadInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotificationSendFailed))
	assert.Nil(t, output)
}

func TestHandler_Execute_SMSFailureIsNonFatal(t *testing.T) {
	ms := &mockSlack{}
	h := NewHandler(smsConfig(), ms, &mockSNS{err: errors.New("throttled")}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), hotLeadInput())
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelSlack}, output.NotificationsSent)
	require.Len(t, ms.messages, 1)
}

func TestHandler_Execute_MissingEmail(t *testing.T) {
	h := NewHandler(LoadConfig(), &mockSlack{}, &mockSNS{}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), &Input{PersonaType: "student"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotificationSendFailed))
	assert.Nil(t, output)
}
