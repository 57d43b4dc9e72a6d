// internal/workers/quiz/validate-quiz-answers/handler.go
package validatequizanswers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-quiz-answers"
)

// answersSchema accepts the four quiz questions. Values stay open
// strings on purpose: unknown answers fall through to defaults later
// in the pipeline instead of bouncing the lead.
const answersSchema = `{
	"type": "object",
	"properties": {
		"1": {"type": "string", "minLength": 1},
		"2": {"type": "string", "minLength": 1},
		"3": {"type": "string", "minLength": 1},
		"4": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "ANSWER_VALIDATION_FAILED", err.Error())
		return
	}

	if !output.Valid {
		h.failJob(client, job, "ANSWER_VALIDATION_FAILED", strings.Join(output.ValidationErrors, "; "))
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var validationErrors []string

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if h.config.RequireEmail {
		if email == "" {
			validationErrors = append(validationErrors, "email: required field missing")
		} else if !validation.ValidateEmail(email) {
			validationErrors = append(validationErrors, "email: invalid format")
		}
	}

	answers := input.Answers
	if answers == nil {
		answers = make(map[string]string)
	}

	schemaErrors, err := h.validateAnswers(answers)
	if err != nil {
		return nil, err
	}
	validationErrors = append(validationErrors, schemaErrors...)

	output := &Output{
		Valid:            len(validationErrors) == 0,
		NormalizedEmail:  email,
		Answers:          answers,
		ValidationErrors: validationErrors,
	}

	h.logger.Info("quiz answers validated", map[string]interface{}{
		"valid":       output.Valid,
		"answerCount": len(answers),
		"errors":      validationErrors,
	})

	return output, nil
}

func (h *Handler) validateAnswers(answers map[string]string) ([]string, error) {
	doc := make(map[string]interface{}, len(answers))
	for k, v := range answers {
		doc[k] = v
	}

	schemaLoader := gojsonschema.NewStringLoader(answersSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
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
