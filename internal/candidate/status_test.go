package candidate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiting-workers/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range models.AllProcessStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseStatus("Hired")
	require.NoError(t, err)
	assert.Equal(t, models.StatusHired, parsed)

	_, err = ParseStatus("archived")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	_, err = ParseStatus("")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestNewStatusChange(t *testing.T) {
	change, err := NewStatusChange("cv-1", "interview")
	require.NoError(t, err)
	assert.Equal(t, StatusChange{CandidateID: "cv-1", Target: models.StatusInterview}, change)

	_, err = NewStatusChange("", "revisado")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	_, err = NewStatusChange("cv-1", "on hold")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestCanDelete(t *testing.T) {
	for _, s := range models.AllProcessStatuses {
		c := models.Candidate{ID: "cv", ProcessStatus: s}
		assert.Equal(t, s == models.StatusRejected, CanDelete(c), "status=%s", s)

		err := CheckDeletable(c)
		if s == models.StatusRejected {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.Is(err, ErrDeleteNotAllowed))
		}
	}
}

func TestDeletableIDs(t *testing.T) {
	candidates := NormalizeAll(pipelineRecords())
	assert.Equal(t, []string{"cv-rejected"}, DeletableIDs(candidates))
	assert.Equal(t, []string{}, DeletableIDs(nil))
}

func TestStackOptions(t *testing.T) {
	candidates := NormalizeAll(pipelineRecords())

	assert.Equal(t,
		[]string{"Go", "Java", "Kubernetes", "Node.js", "React", "Vue"},
		StackOptions(candidates))
	assert.Equal(t, []string{"a", "b"}, UniqueTechnologies([]string{"b", "", "a"}, []string{"a"}))
	assert.Equal(t, []string{}, UniqueTechnologies())
}
