// internal/workers/candidates/parse-candidate-filters/handler.go
package parsecandidatefilters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/models"
)

const (
	TaskType = "parse-candidate-filters"
)

type Handler struct {
	config     *Config
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	spec, err := parseFilterSpec(input.RawFilters)
	if err != nil {
		return nil, apperrors.NewInvalidFilterFormatError(err.Error())
	}
	if err := candidate.ValidateFilterSpec(spec); err != nil {
		return nil, apperrors.NewInvalidFilterFormatError(err.Error())
	}

	sortBy := models.SortKey(strings.TrimSpace(input.SortBy))
	if sortBy == "" {
		sortBy = h.config.DefaultSortBy
	}
	_, known := candidate.ParseSortKey(string(sortBy))
	if !known {
		h.logger.Warn("unknown sort key, list keeps input order", map[string]interface{}{
			"sortBy": sortBy,
		})
	}

	return &Output{
		Filters:      spec,
		Query:        strings.TrimSpace(input.Query),
		SortBy:       sortBy,
		SortKeyKnown: known,
		Active:       candidate.IsActive(spec),
	}, nil
}

func parseFilterSpec(raw map[string]interface{}) (models.FilterSpec, error) {
	spec := candidate.DefaultFilterSpec()
	if raw == nil {
		return spec, nil
	}

	var err error
	if spec.Seniority, err = senioritySet(raw["seniority"]); err != nil {
		return spec, fmt.Errorf("seniority: %w", err)
	}
	if spec.Stack, err = stringSet(firstOf(raw, "stack", "mainStack")); err != nil {
		return spec, fmt.Errorf("stack: %w", err)
	}
	if spec.ProcessStatus, err = statusSet(firstOf(raw, "processStatus", "status")); err != nil {
		return spec, fmt.Errorf("processStatus: %w", err)
	}
	if spec.RemoteAvailable, err = optionalBool(raw["remoteAvailable"]); err != nil {
		return spec, fmt.Errorf("remoteAvailable: %w", err)
	}
	if spec.MinMatchScore, err = score(raw["minMatchScore"], candidate.MinScore); err != nil {
		return spec, fmt.Errorf("minMatchScore: %w", err)
	}
	if spec.MaxMatchScore, err = score(raw["maxMatchScore"], candidate.MaxScore); err != nil {
		return spec, fmt.Errorf("maxMatchScore: %w", err)
	}
	return spec, nil
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
