// internal/workers/lead/send-welcome-email/handler.go
package sendwelcomeemail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/pkg/registry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-welcome-email"
)

var (
	ErrEmailSendFailed = errors.New("EMAIL_SEND_FAILED")
)

// SESService is the slice of the SES client this worker needs.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	funnels   *registry.FunnelRegistry
}

func NewHandler(config *Config, sesClient SESService, funnels *registry.FunnelRegistry, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		funnels:   funnels,
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
		h.failJob(client, job, "EMAIL_SEND_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	sentAt := time.Now().UTC().Format(time.RFC3339)
	emailID := uuid.New().String()

	if !h.config.EmailEnabled {
		return &Output{EmailID: emailID, Status: StatusDisabled, SentAt: sentAt}, nil
	}

	if input.Email == "" {
		return nil, fmt.Errorf("%w: missing recipient email", ErrEmailSendFailed)
	}

	subject := h.welcomeSubject(input.FunnelID)
	body := h.welcomeBody(input)

	if err := h.sendEmail(ctx, input.Email, subject, body); err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"error": err,
			"email": input.Email,
		})
		return nil, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	h.logger.Info("welcome email sent", map[string]interface{}{
		"emailId":  emailID,
		"leadId":   input.LeadID,
		"funnelId": input.FunnelID,
		"subject":  subject,
	})

	return &Output{
		EmailID: emailID,
		Status:  StatusSent,
		Subject: subject,
		SentAt:  sentAt,
	}, nil
}

// welcomeSubject takes the first step of the funnel's email sequence
// when the registry has one, otherwise a generic fallback.
func (h *Handler) welcomeSubject(funnelID string) string {
	if h.funnels != nil {
		if funnel, ok := h.funnels.FindFunnel(funnelID); ok && len(funnel.EmailSequence) > 0 {
			return funnel.EmailSequence[0].Subject
		}
	}
	return "Dein persönlicher Fahrplan ist da"
}

func (h *Handler) welcomeBody(input *Input) string {
	data := map[string]interface{}{
		"firstName":    input.FirstName,
		"profileText":  input.ProfileText,
		"strategyText": input.StrategyText,
	}

	greeting := "Hallo {{firstName}},"
	if input.FirstName == "" {
		greeting = "Hallo,"
	}

	var b strings.Builder
	b.WriteString(renderTemplate(greeting, data))
	b.WriteString("\n\ndein Ergebnis: {{profileText}}\n\n{{strategyText}}\n")
	body := renderTemplate(b.String(), data)

	if len(input.NextSteps) > 0 {
		body += "\nDeine nächsten Schritte:\n"
		for i, step := range input.NextSteps {
			body += fmt.Sprintf("%d. %s\n", i+1, step)
		}
	}

	return body
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
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
