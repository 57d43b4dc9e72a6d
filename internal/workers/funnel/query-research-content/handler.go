// internal/workers/funnel/query-research-content/handler.go
package queryresearchcontent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/workers/funnel/query-research-content/queries"
)

const (
	TaskType = "query-research-content"
)

var (
	ErrResearchQueryFailed  = errors.New("RESEARCH_QUERY_FAILED")
	ErrResearchQueryTimeout = errors.New("RESEARCH_QUERY_TIMEOUT")
	ErrResearchIndexMissing = errors.New("RESEARCH_INDEX_MISSING")
)

type Handler struct {
	config    *Config
	transport esapi.Transport
	logger    logger.Logger
}

func NewHandler(config *Config, transport esapi.Transport, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		transport: transport,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := h.mapErrorToCode(err)
		retries := h.getRetryCount(err)
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if h.config.Index == "" {
		return nil, ErrResearchIndexMissing
	}

	rq := queries.ResearchQuery{
		Index:       h.config.Index,
		PersonaType: input.PersonaType,
		Topic:       input.Topic,
		Tags:        input.Tags,
	}
	rq.Pagination.From = input.Pagination.From
	rq.Pagination.Size = input.Pagination.Size

	result, err := queries.Execute(ctx, h.transport, rq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrResearchQueryTimeout
		}
		if errors.Is(err, queries.ErrMissingIndex) {
			return nil, ErrResearchIndexMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrResearchQueryFailed, err)
	}

	h.logger.Info("research content fetched", map[string]interface{}{
		"personaType": input.PersonaType,
		"totalHits":   result.TotalHits,
		"tookMs":      result.Took,
	})

	return &Output{
		Data:      result.Data,
		TotalHits: result.TotalHits,
		MaxScore:  result.MaxScore,
		Took:      result.Took,
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

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrResearchIndexMissing) {
		return "RESEARCH_INDEX_MISSING"
	} else if errors.Is(err, ErrResearchQueryTimeout) {
		return "RESEARCH_QUERY_TIMEOUT"
	} else if errors.Is(err, ErrResearchQueryFailed) {
		return "RESEARCH_QUERY_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrResearchQueryFailed) {
		return 3
	} else if errors.Is(err, ErrResearchQueryTimeout) {
		return 2
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
