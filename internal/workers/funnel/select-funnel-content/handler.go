// internal/workers/funnel/select-funnel-content/handler.go
package selectfunnelcontent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "select-funnel-content"
)

var (
	ErrFunnelNotFound = errors.New("FUNNEL_NOT_FOUND")
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	funnels *registry.FunnelRegistry
}

func NewHandler(config *Config, funnels *registry.FunnelRegistry, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		funnels: funnels,
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

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		h.failJob(client, job, "FUNNEL_NOT_FOUND", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute resolves the content bundle for a funnel id. An unknown id
// degrades to the fallback funnel instead of stalling the lead; only a
// registry that lacks the fallback too is a hard error.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	funnelID := input.FunnelID
	fallbackUsed := false

	funnel, ok := h.funnels.FindFunnel(funnelID)
	if !ok {
		h.logger.Warn("funnel not in registry, using fallback", map[string]interface{}{
			"funnelId": funnelID,
			"fallback": h.config.FallbackFunnel,
		})
		funnel, ok = h.funnels.FindFunnel(h.config.FallbackFunnel)
		if !ok {
			return nil, fmt.Errorf("%w: neither %q nor fallback %q in registry",
				ErrFunnelNotFound, funnelID, h.config.FallbackFunnel)
		}
		fallbackUsed = true
	}

	h.logger.Info("funnel content selected", map[string]interface{}{
		"funnelId":     funnel.ID,
		"vslVariant":   funnel.VSLVariant,
		"fallbackUsed": fallbackUsed,
	})

	return &Output{
		FunnelID:          funnel.ID,
		VSLVariant:        funnel.VSLVariant,
		LandingPath:       funnel.LandingPath,
		CheckoutProductID: funnel.CheckoutProductID,
		Pricing:           funnel.Pricing,
		EmailSequence:     funnel.EmailSequence,
		FallbackUsed:      fallbackUsed,
	}, nil
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
