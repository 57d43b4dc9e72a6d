// internal/workers/lead/crm-lead-sync/handler.go
package crmleadsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funnel-workers/internal/common/crm"
	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "crm-lead-sync"
)

var (
	ErrCRMSyncFailed = errors.New("CRM_SYNC_FAILED")
)

// CRMService is the slice of the CRM client this worker needs.
type CRMService interface {
	SearchLeads(ctx context.Context, email string) ([]crm.Lead, error)
	CreateLead(ctx context.Context, lead *crm.Lead) (string, error)
	UpdateLead(ctx context.Context, leadID string, lead *crm.Lead) error
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	crmClient CRMService
}

func NewHandler(config *Config, crmClient CRMService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		crmClient: crmClient,
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
		h.failJob(client, job, "CRM_SYNC_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute upserts the lead by email: an existing CRM record is updated
// in place, otherwise a new one is created.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: missing lead email", ErrCRMSyncFailed)
	}

	lead := &crm.Lead{
		Email:       input.Email,
		FirstName:   input.FirstName,
		Phone:       input.Phone,
		Source:      input.Source,
		PersonaType: input.PersonaType,
		FunnelID:    input.FunnelID,
	}

	existing, err := h.crmClient.SearchLeads(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: search failed: %v", ErrCRMSyncFailed, err)
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339)

	if len(existing) > 0 {
		recordID := existing[0].ID
		if err := h.crmClient.UpdateLead(ctx, recordID, lead); err != nil {
			return nil, fmt.Errorf("%w: update failed: %v", ErrCRMSyncFailed, err)
		}

		h.logger.Info("crm lead updated", map[string]interface{}{
			"leadId":      input.LeadID,
			"crmRecordId": recordID,
		})

		return &Output{CRMRecordID: recordID, SyncStatus: SyncUpdated, SyncedAt: syncedAt}, nil
	}

	recordID, err := h.crmClient.CreateLead(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("%w: create failed: %v", ErrCRMSyncFailed, err)
	}

	h.logger.Info("crm lead created", map[string]interface{}{
		"leadId":      input.LeadID,
		"crmRecordId": recordID,
	})

	return &Output{CRMRecordID: recordID, SyncStatus: SyncCreated, SyncedAt: syncedAt}, nil
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
