package candidate

import (
	"errors"
	"fmt"
	"strings"

	"recruiting-workers/internal/models"
)

var (
	ErrInvalidStatus    = errors.New("INVALID_STATUS")
	ErrDeleteNotAllowed = errors.New("DELETE_NOT_ALLOWED")
)

// StatusChange is a validated request to move a candidate to a new state.
type StatusChange struct {
	CandidateID string
	Target      models.ProcessStatus
}

// ParseStatus resolves a status label strictly. Unlike NormalizeStatus it
// rejects unknown labels.
func ParseStatus(label string) (models.ProcessStatus, error) {
	s, ok := LookupStatus(label)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, label)
	}
	return s, nil
}

// NewStatusChange validates a status mutation before it is handed to storage.
func NewStatusChange(candidateID, target string) (StatusChange, error) {
	if strings.TrimSpace(candidateID) == "" {
		return StatusChange{}, fmt.Errorf("%w: candidate id is required", ErrInvalidStatus)
	}
	status, err := ParseStatus(target)
	if err != nil {
		return StatusChange{}, err
	}
	return StatusChange{CandidateID: candidateID, Target: status}, nil
}

// CanDelete reports whether a candidate may be removed. Only rejected
// candidates are eligible.
func CanDelete(c models.Candidate) bool {
	return c.ProcessStatus == models.StatusRejected
}

// CheckDeletable returns ErrDeleteNotAllowed for candidates CanDelete refuses.
func CheckDeletable(c models.Candidate) error {
	if !CanDelete(c) {
		return fmt.Errorf("%w: candidate %s is %s", ErrDeleteNotAllowed, c.ID, c.ProcessStatus)
	}
	return nil
}

// DeletableIDs lists the ids of candidates eligible for deletion, in order.
func DeletableIDs(candidates []models.Candidate) []string {
	ids := make([]string, 0)
	for _, c := range candidates {
		if CanDelete(c) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
