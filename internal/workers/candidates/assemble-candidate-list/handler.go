// internal/workers/candidates/assemble-candidate-list/handler.go
package assemblecandidatelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"recruiting-workers/internal/cache"
	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/common/observability"
	"recruiting-workers/internal/models"
	"recruiting-workers/internal/storage"
)

const (
	TaskType = "assemble-candidate-list"
)

type Handler struct {
	config     *Config
	store      *storage.CandidateStore
	snapshots  *cache.SnapshotCache
	pipeline   *candidate.Pipeline
	obs        *observability.Observability
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	store *storage.CandidateStore,
	snapshots *cache.SnapshotCache,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		snapshots:  snapshots,
		pipeline:   candidate.NewPipeline(config.CollationLanguage),
		obs:        obs,
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

	// Absent filter fields keep their defaults.
	input := Input{Filters: candidate.DefaultFilterSpec()}
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
	records := input.Records
	if records == nil {
		if input.OwnerID == "" {
			return nil, apperrors.NewInvalidInputError("ownerId or records is required")
		}
		var err error
		records, err = h.loadSnapshot(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	result, err := h.pipeline.Assemble(candidate.ListRequest{
		Records: records,
		Filters: input.Filters,
		Query:   input.Query,
		SortBy:  input.SortBy,
	})
	if errors.Is(err, candidate.ErrInvalidScoreRange) {
		return nil, apperrors.NewInvalidFilterFormatError(err.Error())
	}
	if err != nil {
		return nil, err
	}

	list := result.Candidates
	truncated := false
	if input.Limit > 0 && len(list) > input.Limit {
		list = list[:input.Limit]
		truncated = true
	}

	metrics.CandidateListSize.WithLabelValues("loaded").Observe(float64(result.Total))
	metrics.CandidateListSize.WithLabelValues("matched").Observe(float64(result.Matched))
	h.obs.RecordListSize(ctx, string(input.SortBy), len(list))

	requestID := uuid.New().String()
	h.logger.Info("candidate list assembled", map[string]interface{}{
		"requestId": requestID,
		"ownerId":   input.OwnerID,
		"total":     result.Total,
		"matched":   result.Matched,
		"sortBy":    input.SortBy,
	})

	return &Output{
		RequestID:    requestID,
		Candidates:   list,
		TotalCount:   result.Total,
		MatchedCount: result.Matched,
		Truncated:    truncated,
		SortBy:       input.SortBy,
	}, nil
}

// loadSnapshot reads the owner's records from the snapshot cache, falling
// back to Postgres. Cache failures only cost a database read.
func (h *Handler) loadSnapshot(ctx context.Context, ownerID string) ([]models.CandidateRecord, error) {
	records, ok, err := h.snapshots.Get(ctx, ownerID)
	if err != nil {
		h.logger.Warn("snapshot cache read failed", map[string]interface{}{
			"ownerId": ownerID,
			"error":   err.Error(),
		})
	}
	if ok {
		return records, nil
	}

	records, err = h.store.ListByOwner(ctx, ownerID, h.config.MaxItems)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError("list candidates")
		}
		return nil, apperrors.NewCandidateFetchFailedError(err).WithMetadata("ownerId", ownerID)
	}

	if err := h.snapshots.Set(ctx, ownerID, records); err != nil {
		h.logger.Warn("snapshot cache write failed", map[string]interface{}{
			"ownerId": ownerID,
			"error":   err.Error(),
		})
	}
	return records, nil
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
