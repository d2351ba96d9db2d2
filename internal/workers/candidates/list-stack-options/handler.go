// internal/workers/candidates/list-stack-options/handler.go
package liststackoptions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/storage"
)

const (
	TaskType = "list-stack-options"
)

type Handler struct {
	config     *Config
	store      *storage.CandidateStore
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, store *storage.CandidateStore, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
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
	var technologies []string

	switch {
	case input.Records != nil:
		technologies = candidate.StackOptions(candidate.NormalizeAll(input.Records))
	case strings.TrimSpace(input.OwnerID) != "":
		stack, err := h.store.StackTechnologies(ctx, input.OwnerID)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, apperrors.NewQueryTimeoutError("stack technologies")
			}
			return nil, apperrors.NewCandidateFetchFailedError(err).WithMetadata("ownerId", input.OwnerID)
		}
		technologies = stack
	default:
		return nil, apperrors.NewInvalidInputError("either ownerId or records is required")
	}

	h.logger.Debug("stack options collected", map[string]interface{}{
		"ownerId": input.OwnerID,
		"count":   len(technologies),
	})

	return &Output{
		Technologies: technologies,
		Count:        len(technologies),
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
