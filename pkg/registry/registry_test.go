package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "score-candidate", DisplayName: "Score Candidate", Category: "candidates",
				TaskType: "score-candidate", ImplementationStatus: StatusCompleted, Timeout: "5s"},
			{ID: "delete-candidate", DisplayName: "Delete Candidate", Category: "candidates",
				TaskType: "delete-candidate", ImplementationStatus: StatusPlanned},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")

	reg := sampleRegistry()
	require.NoError(t, reg.Save(path))
	assert.NotEmpty(t, reg.LastUpdated)

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 2)
	assert.Equal(t, reg.LastUpdated, loaded.LastUpdated)
}

func TestLoadOrCreate(t *testing.T) {
	reg, err := LoadOrCreate(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, reg.Activities)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadOrCreate(bad)
	assert.Error(t, err)
}

func TestAddAndUpdate(t *testing.T) {
	reg := sampleRegistry()

	err := reg.Add(Activity{ID: "score-candidate"})
	assert.ErrorIs(t, err, ErrActivityExists)

	require.NoError(t, reg.Update("delete-candidate", "status", StatusVerified))
	a, ok := reg.Find("delete-candidate")
	require.True(t, ok)
	assert.True(t, a.Ready())

	require.NoError(t, reg.Update("delete-candidate", "retries", "3"))
	assert.Error(t, reg.Update("delete-candidate", "retries", "three"))
	assert.Error(t, reg.Update("delete-candidate", "timeout", "soon"))
	assert.Error(t, reg.Update("delete-candidate", "color", "blue"))
	assert.ErrorIs(t, reg.Update("unknown", "status", StatusPlanned), ErrActivityNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		wantErr string
	}{
		{"valid", func(r *ActivityRegistry) {}, ""},
		{"empty", func(r *ActivityRegistry) { r.Activities = nil }, "no activities"},
		{"duplicate id", func(r *ActivityRegistry) { r.Activities[1].ID = "score-candidate" }, "duplicate activity ID"},
		{"duplicate task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = "score-candidate" }, "duplicate task type"},
		{"missing category", func(r *ActivityRegistry) { r.Activities[0].Category = "" }, "Category"},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "5 seconds" }, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			tt.mutate(reg)
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMissing(t *testing.T) {
	reg := sampleRegistry()
	assert.Equal(t, []string{"delete-candidate", "notify-status-change"},
		reg.Missing("score-candidate", "delete-candidate", "notify-status-change"))
}
