// internal/workers/quiz/submit-quiz/handler.go
package submitquiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/models"
	"funnel-workers/internal/persona"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "submit-quiz"
)

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

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		h.failJob(client, job, "QUIZ_SUBMIT_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute freezes the submission: result computed once, answers copied,
// submission id minted. Incomplete answer sets are allowed, the persona
// core resolves them with defaults.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	result := persona.BuildResult(persona.AnswerSet(input.Answers))

	source := input.Source
	if source == "" {
		source = h.config.DefaultSource
	}

	sub := models.QuizSubmission{
		SubmissionID: uuid.New().String(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		Answers:      input.Answers,
		Source:       source,
		SubmittedAt:  time.Now().UTC(),
	}

	metrics.QuizSubmissions.WithLabelValues(result.Type).Inc()

	h.logger.Info("quiz submitted", map[string]interface{}{
		"submissionId":      sub.SubmissionID,
		"personaType":       result.Type,
		"recommendedFunnel": result.RecommendedFunnel,
		"source":            sub.Source,
	})

	return &Output{
		SubmissionID:      sub.SubmissionID,
		Email:             sub.Email,
		FirstName:         sub.FirstName,
		Source:            sub.Source,
		SubmittedAt:       sub.SubmittedAt.Format(time.RFC3339),
		Result:            result,
		PersonaType:       result.Type,
		RecommendedFunnel: result.RecommendedFunnel,
		ProfileText:       result.ProfileText,
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
