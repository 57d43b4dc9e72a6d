// internal/workers/notification/notify-sales-team/handler.go
package notifysalesteam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/common/slack"
	"funnel-workers/internal/common/validation"
	"funnel-workers/internal/persona"
)

const (
	TaskType = "notify-sales-team"
)

var ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")

// SlackService posts to the sales channel. *slack.WebhookClient
// satisfies the interface.
type SlackService interface {
	Post(ctx context.Context, msg *slack.Message) error
}

// SNSService sends the SMS escalation for hot leads.
type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	slack  SlackService
	sns    SNSService
	logger logger.Logger
}

func NewHandler(config *Config, slackClient SlackService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		slack:  slackClient,
		sns:    snsClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "NOTIFICATION_SEND_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute fans the lead out to the sales channels. Slack is the primary
// channel, SMS only fires for hot leads so the on-call phone stays quiet.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrNotificationSendFailed)
	}

	hotLead := input.Answers[persona.QuestionGoal] == h.config.HotLeadGoal
	sent := []string{}

	if h.config.SlackEnabled && h.slack != nil {
		if err := h.slack.Post(ctx, h.buildSlackMessage(input, hotLead)); err != nil {
			return nil, fmt.Errorf("%w: slack: %v", ErrNotificationSendFailed, err)
		}
		sent = append(sent, ChannelSlack)
	}

	if hotLead && h.config.SMSEnabled && h.sns != nil {
		if !validation.ValidatePhone(h.config.SMSPhoneNumber) {
			h.logger.Warn("sms phone number invalid, skipping escalation", map[string]interface{}{
				"leadId": input.LeadID,
			})
		} else {
			smsText := fmt.Sprintf("Hot Lead: %s (%s) -> %s", input.Email, input.PersonaType, input.RecommendedFunnel)
			_, err := h.sns.Publish(ctx, &sns.PublishInput{
				PhoneNumber: aws.String(h.config.SMSPhoneNumber),
				Message:     aws.String(smsText),
			})
			if err != nil {
				// Slack already went out, degrade instead of failing the job
				h.logger.Warn("sms escalation failed", map[string]interface{}{
					"leadId": input.LeadID,
					"error":  err,
				})
			} else {
				sent = append(sent, ChannelSMS)
			}
		}
	}

	h.logger.Info("sales team notified", map[string]interface{}{
		"leadId":   input.LeadID,
		"hotLead":  hotLead,
		"channels": sent,
	})

	return &Output{
		NotificationsSent: sent,
		HotLead:           hotLead,
		NotifiedAt:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) buildSlackMessage(input *Input, hotLead bool) *slack.Message {
	headline := "Neuer Lead aus dem Quiz"
	if hotLead {
		headline = ":fire: Hot Lead aus dem Quiz"
	}

	name := input.FirstName
	if name == "" {
		name = "unbekannt"
	}

	detail := fmt.Sprintf("*%s*\nName: %s\nEmail: %s\nPersona: %s\nFunnel: %s",
		headline, name, input.Email, input.PersonaType, input.RecommendedFunnel)
	if input.ProfileText != "" {
		detail += "\nProfil: " + input.ProfileText
	}

	return &slack.Message{
		Text: headline,
		Blocks: []slack.Block{
			{
				Type: "section",
				Text: &slack.BlockText{Type: "mrkdwn", Text: detail},
			},
		},
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
