// internal/workers/checkout/create-checkout-session/handler.go
package createcheckoutsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/common/payment"
)

const (
	TaskType = "create-checkout-session"
)

var (
	ErrCheckoutSessionFailed = errors.New("CHECKOUT_SESSION_FAILED")
	ErrMissingProduct        = errors.New("MISSING_PRODUCT")
)

// PaymentService abstracts the payment provider so tests can mock it.
// *payment.Client satisfies the interface.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, request *payment.CheckoutRequest) (*payment.CheckoutSession, error)
}

type Handler struct {
	config  *Config
	payment PaymentService
	logger  logger.Logger
}

func NewHandler(config *Config, paymentClient PaymentService, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		payment: paymentClient,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "CHECKOUT_SESSION_FAILED"
		retries := int32(3)
		if errors.Is(err, ErrMissingProduct) {
			errorCode = "MISSING_PRODUCT"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrCheckoutSessionFailed)
	}
	if input.CheckoutProductID == "" {
		return nil, fmt.Errorf("%w: funnel %q has no checkout product", ErrMissingProduct, input.FunnelID)
	}

	currency := input.Currency
	if currency == "" {
		currency = h.config.DefaultCurrency
	}

	session, err := h.payment.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		ProductID: input.CheckoutProductID,
		Email:     input.Email,
		FirstName: input.FirstName,
		FunnelID:  input.FunnelID,
		ReturnURL: h.config.ReturnURL,
		Currency:  currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutSessionFailed, err)
	}

	h.logger.Info("checkout session created", map[string]interface{}{
		"sessionId": session.SessionID,
		"funnelId":  input.FunnelID,
		"productId": input.CheckoutProductID,
	})

	metrics.CheckoutSessions.WithLabelValues(input.FunnelID).Inc()

	output := &Output{
		SessionID:   session.SessionID,
		CheckoutURL: session.CheckoutURL,
	}
	if !session.ExpiresAt.IsZero() {
		output.ExpiresAt = session.ExpiresAt.Format(time.RFC3339)
	}
	return output, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	// Infra failures go back to the broker with retries left, business
	// errors surface as BPMN errors for the process to handle.
	if retries > 0 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(fmt.Sprintf("[%s] %s", errorCode, errorMessage)).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

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
