// internal/storage/candidates.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"recruiting-workers/internal/candidate"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/models"
)

var (
	ErrCandidateNotFound = errors.New("CANDIDATE_NOT_FOUND")
	ErrStatusConflict    = errors.New("STATUS_CONFLICT")
)

const (
	listByOwnerQuery = `
		SELECT row_to_json(c)::text
		FROM cv_analysis c
		WHERE c.clerk_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2`

	getByIDQuery = `
		SELECT row_to_json(c)::text
		FROM cv_analysis c
		WHERE c.id = $1`

	updateStatusQuery = `
		UPDATE cv_analysis
		SET estado_del_proceso = $1, updated_at = NOW()
		WHERE id = $2`

	deleteRejectedQuery = `
		DELETE FROM cv_analysis
		WHERE id = $1 AND estado_del_proceso = $2`

	stackByOwnerQuery = `
		SELECT stack_principal
		FROM cv_analysis
		WHERE clerk_id = $1`

	insertAuditQuery = `
		INSERT INTO candidate_audit_log (id, candidate_id, action, previous_status, new_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// CandidateStore reads and mutates rows of cv_analysis. Rows are fetched as
// JSON so that column additions in the extraction service need no change here.
type CandidateStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCandidateStore(db *sql.DB, log logger.Logger) *CandidateStore {
	return &CandidateStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-store"}),
	}
}

// ListByOwner returns up to limit records owned by ownerID, newest first.
// Rows that fail to decode are skipped.
func (s *CandidateStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx, listByOwnerQuery, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	records := make([]models.CandidateRecord, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}

		var record models.CandidateRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			s.logger.Warn("skipping undecodable candidate row", map[string]interface{}{
				"ownerId": ownerID,
				"error":   err.Error(),
			})
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return records, nil
}

// GetByID returns one record or ErrCandidateNotFound.
func (s *CandidateStore) GetByID(ctx context.Context, id string) (*models.CandidateRecord, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, getByIDQuery, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}

	var record models.CandidateRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode candidate %s: %w", id, err)
	}
	return &record, nil
}

// UpdateStatus persists a validated status change.
func (s *CandidateStore) UpdateStatus(ctx context.Context, change candidate.StatusChange) error {
	result, err := s.db.ExecContext(ctx, updateStatusQuery, string(change.Target), change.CandidateID)
	if err != nil {
		return fmt.Errorf("update status of %s: %w", change.CandidateID, err)
	}
	return expectOneRow(result, change.CandidateID, ErrCandidateNotFound)
}

// DeleteRejected removes a candidate only while it is still rejected. A
// concurrent status change between the eligibility check and the delete
// yields ErrStatusConflict.
func (s *CandidateStore) DeleteRejected(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, deleteRejectedQuery, id, string(models.StatusRejected))
	if err != nil {
		return fmt.Errorf("delete candidate %s: %w", id, err)
	}
	return expectOneRow(result, id, ErrStatusConflict)
}

// StackTechnologies returns the sorted set of main-stack technologies across
// the owner's candidates.
func (s *CandidateStore) StackTechnologies(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, stackByOwnerQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stack: %w", err)
	}
	defer rows.Close()

	stacks := make([][]string, 0)
	for rows.Next() {
		var stack pq.StringArray
		if err := rows.Scan(&stack); err != nil {
			return nil, fmt.Errorf("scan stack: %w", err)
		}
		stacks = append(stacks, stack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stack: %w", err)
	}

	return candidate.UniqueTechnologies(stacks...), nil
}

// AuditEntry describes one candidate mutation.
type AuditEntry struct {
	CandidateID    string
	Action         string
	PreviousStatus models.ProcessStatus
	NewStatus      models.ProcessStatus
}

// RecordAudit appends to candidate_audit_log. Failures are logged and
// swallowed; the mutation itself has already been committed.
func (s *CandidateStore) RecordAudit(ctx context.Context, entry AuditEntry) {
	_, err := s.db.ExecContext(ctx, insertAuditQuery,
		uuid.New().String(),
		entry.CandidateID,
		entry.Action,
		nullableStatus(entry.PreviousStatus),
		nullableStatus(entry.NewStatus),
		time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warn("failed to record candidate audit entry", map[string]interface{}{
			"candidateId": entry.CandidateID,
			"action":      entry.Action,
			"error":       err.Error(),
		})
	}
}

func expectOneRow(result sql.Result, id string, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", missing, id)
	}
	return nil
}

func nullableStatus(s models.ProcessStatus) sql.NullString {
	return sql.NullString{String: string(s), Valid: s != ""}
}
