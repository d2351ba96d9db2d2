// internal/workers/candidates/notify-status-change/handler.go
package notifystatuschange

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"recruiting-workers/internal/candidate"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/metrics"
)

const (
	TaskType = "notify-status-change"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config     *Config
	sesClient  SESService
	snsClient  SNSService
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		sesClient:  sesClient,
		snsClient:  snsClient,
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
	if strings.TrimSpace(input.CandidateID) == "" {
		return nil, apperrors.NewInvalidInputError("candidateId is required")
	}
	status, err := candidate.ParseStatus(input.NewStatus)
	if err != nil {
		return nil, apperrors.NewInvalidStatusError(err.Error())
	}

	msg := buildMessage(input, status)
	channels := make([]string, 0, 2)

	email := firstNonEmpty(input.RecipientEmail, h.config.RecruiterEmail)
	if h.config.EmailEnabled && email != "" {
		if err := h.sendEmail(ctx, email, msg.Subject, msg.Body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error":       err,
				"candidateId": input.CandidateID,
			})
			return nil, apperrors.NewNotificationSendFailedError(ChannelEmail, err).
				WithMetadata("candidateId", input.CandidateID)
		}
		channels = append(channels, ChannelEmail)
	}

	phone := firstNonEmpty(input.RecipientPhone, h.config.RecruiterPhone)
	if h.config.SMSEnabled && phone != "" && smsStatuses[status] {
		if err := h.sendSMS(ctx, phone, msg.SMS); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error":       err,
				"candidateId": input.CandidateID,
			})
			return nil, apperrors.NewNotificationSendFailedError(ChannelSMS, err).
				WithMetadata("candidateId", input.CandidateID)
		}
		channels = append(channels, ChannelSMS)
	}

	result := StatusDisabled
	if len(channels) > 0 {
		result = StatusSent
	}

	h.logger.Info("status change notification processed", map[string]interface{}{
		"candidateId": input.CandidateID,
		"newStatus":   status,
		"channels":    channels,
	})

	return &Output{
		NotificationID: uuid.New().String(),
		Status:         result,
		Channels:       channels,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, text string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(text),
	})
	return err
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

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
