// internal/workers/candidates/delete-candidate/handler.go
package deletecandidate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"recruiting-workers/internal/cache"
	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/models"
	"recruiting-workers/internal/storage"
)

const (
	TaskType = "delete-candidate"
)

type Handler struct {
	config     *Config
	store      *storage.CandidateStore
	snapshots  *cache.SnapshotCache
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, store *storage.CandidateStore, snapshots *cache.SnapshotCache, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		snapshots:  snapshots,
		errHandler: apperrors.NewErrorHandler(l),
		logger:     l,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	id := strings.TrimSpace(input.CandidateID)
	if id == "" {
		return nil, apperrors.NewInvalidInputError("candidateId is required")
	}

	record, err := h.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrCandidateNotFound) {
		return nil, apperrors.NewCandidateNotFoundError(id).WithMetadata("candidateId", id)
	}
	if err != nil {
		return nil, apperrors.NewCandidateFetchFailedError(err)
	}

	current := candidate.Normalize(*record)
	if err := candidate.CheckDeletable(current); err != nil {
		return nil, apperrors.NewDeleteNotAllowedError(id, string(current.ProcessStatus)).
			WithMetadata("candidateId", id)
	}

	if err := h.store.DeleteRejected(ctx, id); err != nil {
		if errors.Is(err, storage.ErrStatusConflict) {
			return nil, apperrors.NewDeleteNotAllowedError(id, "changed").
				WithMetadata("candidateId", id)
		}
		return nil, apperrors.NewCandidateDeleteFailedError(err).WithMetadata("candidateId", id)
	}

	h.store.RecordAudit(ctx, storage.AuditEntry{
		CandidateID:    id,
		Action:         "delete",
		PreviousStatus: models.StatusRejected,
	})

	if err := h.snapshots.Invalidate(ctx, record.OwnerID, id); err != nil {
		h.logger.Warn("failed to invalidate candidate snapshot", map[string]interface{}{
			"ownerId": record.OwnerID,
			"error":   err.Error(),
		})
	}

	h.logger.Info("candidate deleted", map[string]interface{}{
		"candidateId": id,
	})

	return &Output{
		CandidateID: id,
		OwnerID:     record.OwnerID,
		Deleted:     true,
		DeletedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
