// internal/workers/lead/create-lead-record/handler.go
package createleadrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"
	"funnel-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-lead-record"
)

var (
	ErrLeadInsertFailed = errors.New("LEAD_INSERT_FAILED")
	ErrDuplicateLead    = errors.New("DUPLICATE_LEAD")
)

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrLeadInsertFailed) {
			errorCode = "LEAD_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateLead) {
			errorCode = "DUPLICATE_LEAD"
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
	// One lead per email and funnel
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leads
			WHERE email = $1 AND funnel_id = $2
		)`, input.Email, input.RecommendedFunnel).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrLeadInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: lead already exists for email %s and funnel %s",
			ErrDuplicateLead, input.Email, input.RecommendedFunnel)
	}

	now := time.Now().UTC()
	lead := models.Lead{
		ID:          uuid.New().String(),
		Email:       input.Email,
		FirstName:   input.FirstName,
		Source:      input.Source,
		PersonaType: input.PersonaType,
		FunnelID:    input.RecommendedFunnel,
		ProfileText: input.ProfileText,
		QuizAnswers: input.Answers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	leadID := lead.ID
	createdAt := now.Format(time.RFC3339)

	// Serialize quiz answers to JSON for JSONB column
	answersJSON, err := json.Marshal(lead.QuizAnswers)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal quiz answers: %v", ErrLeadInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, submission_id, email, first_name, source,
			persona_type, profile_text, funnel_id, quiz_answers,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		lead.ID,
		input.SubmissionID,
		lead.Email,
		lead.FirstName,
		lead.Source,
		lead.PersonaType,
		lead.ProfileText,
		lead.FunnelID,
		answersJSON,
		"new",
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrLeadInsertFailed, err)
	}

	// Audit log entry (non-critical, log error but don't fail)
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"submissionId": input.SubmissionID,
		"email":        input.Email,
		"personaType":  input.PersonaType,
		"funnelId":     input.RecommendedFunnel,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"lead_created",
		"lead",
		leadID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":  err,
			"leadId": leadID,
		})
	}

	metrics.LeadsCreated.WithLabelValues(input.RecommendedFunnel, input.Source).Inc()

	h.logger.Info("lead record created", map[string]interface{}{
		"leadId":      leadID,
		"email":       input.Email,
		"personaType": input.PersonaType,
		"funnelId":    input.RecommendedFunnel,
	})

	return &Output{
		LeadID:     leadID,
		LeadStatus: "new",
		CreatedAt:  createdAt,
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
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
