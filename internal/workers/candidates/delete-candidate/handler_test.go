// internal/workers/candidates/delete-candidate/handler_test.go
package deletecandidate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiting-workers/internal/cache"
	apperrors "recruiting-workers/internal/common/errors"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/storage"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := &testLogger{t: t}
	return NewHandler(LoadConfig(), storage.NewCandidateStore(db, log), cache.NewSnapshotCache(rdb, time.Minute), log), mock, mr
}

func candidateRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"row_to_json"}).
		AddRow(`{"id":"cv-009","clerk_id":"user-1","nombre_completo":"Marta","estado_del_proceso":"` + status + `"}`)
}

func TestHandler_Execute_DeletesRejectedCandidate(t *testing.T) {
	handler, mock, mr := setupHandler(t)
	require.NoError(t, mr.Set(cache.SnapshotKey("user-1"), "[]"))
	require.NoError(t, mr.Set(cache.RecordKey("cv-009"), `{"id":"cv-009"}`))

	mock.ExpectQuery(`WHERE c.id = \$1`).
		WithArgs("cv-009").
		WillReturnRows(candidateRow("Rechazado"))
	mock.ExpectExec(`DELETE FROM cv_analysis`).
		WithArgs("cv-009", "rechazado").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO candidate_audit_log`).
		WithArgs(sqlmock.AnyArg(), "cv-009", "delete", "rechazado", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), &Input{CandidateID: "cv-009"})
	require.NoError(t, err)

	assert.True(t, output.Deleted)
	assert.Equal(t, "user-1", output.OwnerID)
	assert.False(t, mr.Exists(cache.SnapshotKey("user-1")))
	assert.False(t, mr.Exists(cache.RecordKey("cv-009")), "deleted record must not be scored from cache")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		setup         func(mock sqlmock.Sqlmock)
		wantCode      apperrors.ErrorCode
		wantRetryable bool
	}{
		{
			name:     "missing id",
			input:    &Input{},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:  "not found",
			input: &Input{CandidateID: "cv-009"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.id = \$1`).
					WithArgs("cv-009").
					WillReturnRows(sqlmock.NewRows([]string{"row_to_json"}))
			},
			wantCode: apperrors.ErrCodeCandidateNotFound,
		},
		{
			name:  "candidate still in process",
			input: &Input{CandidateID: "cv-009"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.id = \$1`).
					WithArgs("cv-009").
					WillReturnRows(candidateRow("entrevista"))
			},
			wantCode: apperrors.ErrCodeDeleteNotAllowed,
		},
		{
			name:  "status changed before delete",
			input: &Input{CandidateID: "cv-009"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.id = \$1`).
					WithArgs("cv-009").
					WillReturnRows(candidateRow("rechazado"))
				mock.ExpectExec(`DELETE FROM cv_analysis`).
					WithArgs("cv-009", "rechazado").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantCode: apperrors.ErrCodeDeleteNotAllowed,
		},
		{
			name:  "delete failure",
			input: &Input{CandidateID: "cv-009"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.id = \$1`).
					WithArgs("cv-009").
					WillReturnRows(candidateRow("rechazado"))
				mock.ExpectExec(`DELETE FROM cv_analysis`).
					WillReturnError(errors.New("deadlock detected"))
			},
			wantCode:      apperrors.ErrCodeCandidateDeleteFailed,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock, _ := setupHandler(t)
			if tt.setup != nil {
				tt.setup(mock)
			}

			_, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)

			stdErr := apperrors.Normalize(err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.wantRetryable, stdErr.Retryable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
