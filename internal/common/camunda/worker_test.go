package camunda

import (
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"recruiting-workers/internal/common/config"
	"recruiting-workers/internal/common/observability"
)

// fakeJobClient counts command creations. The returned commands are nil, so
// handlers under test must not call Send.
type fakeJobClient struct {
	completed int
	failed    int
	thrown    int
}

func (f *fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	f.completed++
	return nil
}

func (f *fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	f.failed++
	return nil
}

func (f *fakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	f.thrown++
	return nil
}

func testJob() entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Type: "score-candidate"}}
}

func TestInstrument_TracksOutcome(t *testing.T) {
	tests := []struct {
		name   string
		action func(c worker.JobClient)
		status string
	}{
		{"completed", func(c worker.JobClient) { c.NewCompleteJobCommand() }, observability.StatusCompleted},
		{"failed", func(c worker.JobClient) { c.NewFailJobCommand() }, observability.StatusFailed},
		{"bpmn error", func(c worker.JobClient) { c.NewThrowErrorCommand() }, observability.StatusFailed},
		{"no command", func(c worker.JobClient) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeJobClient{}
			var seen *outcomeClient

			handler := Instrument("score-candidate", func(c worker.JobClient, job entities.Job) {
				seen = c.(*outcomeClient)
				tt.action(c)
			}, observability.NewNoop())

			handler(fake, testJob())

			assert.Equal(t, tt.status, seen.status)
			assert.Equal(t, 1, fake.completed+fake.failed+fake.thrown+boolToInt(tt.status == ""))
		})
	}
}

func TestInstrument_NilObservability(t *testing.T) {
	handler := Instrument("score-candidate", func(c worker.JobClient, job entities.Job) {
		c.NewCompleteJobCommand()
	}, nil)

	assert.NotPanics(t, func() { handler(&fakeJobClient{}, testJob()) })
}

func TestStartWorker_Disabled(t *testing.T) {
	w := StartWorker(nil, "score-candidate", config.WorkerConfig{Enabled: false}, nil, nil, zap.NewNop())
	assert.Nil(t, w)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
