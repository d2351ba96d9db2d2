// internal/workers/candidates/score-candidate/handler.go
package scorecandidate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"recruiting-workers/internal/cache"
	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/common/validation"
	"recruiting-workers/internal/models"
	"recruiting-workers/internal/storage"
)

const (
	TaskType = "score-candidate"
)

var schema = validation.MustCompile(inputSchema)

type Handler struct {
	config     *Config
	store      *storage.CandidateStore
	redis      *redis.Client
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, store *storage.CandidateStore, redis *redis.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		redis:      redis,
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

	input, err := parseInput(job.Variables)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func parseInput(variables string) (*Input, error) {
	if result := schema.ValidateJSON(variables); !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Error())
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	record := input.Record
	if record == nil {
		var err error
		record, err = h.loadRecord(ctx, input.CandidateID)
		if err != nil {
			return nil, err
		}
	}

	c := candidate.Scored(candidate.Normalize(*record))
	tier, recommendation := candidate.Classify(c.MatchScore)
	metrics.CandidateMatchScore.Observe(c.MatchScore)

	h.logger.Info("candidate scored", map[string]interface{}{
		"candidateId": c.ID,
		"score":       c.MatchScore,
		"tier":        string(tier),
	})

	return &Output{
		CandidateID:    c.ID,
		MatchScore:     c.MatchScore,
		Breakdown:      *c.Breakdown,
		Tier:           string(tier),
		Recommendation: recommendation,
	}, nil
}

// loadRecord reads through the per-candidate cache. Cache failures are not
// fatal.
func (h *Handler) loadRecord(ctx context.Context, id string) (*models.CandidateRecord, error) {
	cacheKey := cache.RecordKey(id)
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var record models.CandidateRecord
		if err := json.Unmarshal([]byte(val), &record); err == nil {
			return &record, nil
		}
	}

	record, err := h.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrCandidateNotFound) {
		return nil, apperrors.NewCandidateNotFoundError(id).WithMetadata("candidateId", id)
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError("get candidate")
		}
		return nil, apperrors.NewCandidateFetchFailedError(err)
	}

	if data, err := json.Marshal(record); err == nil {
		if err := h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache candidate record", map[string]interface{}{
				"candidateId": id,
				"error":       err.Error(),
			})
		}
	}

	return record, nil
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
