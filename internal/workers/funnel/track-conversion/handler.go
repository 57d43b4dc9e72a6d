// internal/workers/funnel/track-conversion/handler.go
package trackconversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "track-conversion"
)

var (
	ErrConversionTrackFailed = errors.New("CONVERSION_TRACK_FAILED")
	ErrInvalidEvent          = errors.New("INVALID_EVENT")
)

var validEvents = map[string]struct{}{
	EventQuizCompleted:   {},
	EventLeadCreated:     {},
	EventCheckoutStarted: {},
	EventPurchase:        {},
}

type Handler struct {
	config *Config
	logger logger.Logger
	rdb    *redis.Client
}

func NewHandler(config *Config, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		rdb:    rdb,
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
		errorCode := "CONVERSION_TRACK_FAILED"
		if errors.Is(err, ErrInvalidEvent) {
			errorCode = "INVALID_EVENT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute bumps the daily counter for (funnel, event). Counters expire
// after the retention window so the keyspace stays bounded.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.FunnelID == "" {
		return nil, fmt.Errorf("%w: missing funnelId", ErrConversionTrackFailed)
	}
	if _, ok := validEvents[input.Event]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, input.Event)
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("funnel:%s:%s:%s", input.FunnelID, input.Event, now.Format("2006-01-02"))

	count, err := h.rdb.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: incr failed: %v", ErrConversionTrackFailed, err)
	}

	// First increment of the day creates the key, set its TTL once
	if count == 1 {
		if err := h.rdb.Expire(ctx, key, h.config.CounterTTL).Err(); err != nil {
			h.logger.Warn("failed to set counter ttl", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
	}

	h.logger.Info("conversion tracked", map[string]interface{}{
		"key":    key,
		"count":  count,
		"leadId": input.LeadID,
	})

	return &Output{
		CounterKey: key,
		Count:      count,
		TrackedAt:  now.Format(time.RFC3339),
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
