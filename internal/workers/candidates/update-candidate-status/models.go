// internal/workers/candidates/update-candidate-status/models.go
package updatecandidatestatus

import "recruiting-workers/internal/models"

type Input struct {
	CandidateID string `json:"candidateId"`
	NewStatus   string `json:"newStatus"`
}

type Output struct {
	CandidateID    string               `json:"candidateId"`
	OwnerID        string               `json:"ownerId"`
	PreviousStatus models.ProcessStatus `json:"previousStatus"`
	NewStatus      models.ProcessStatus `json:"newStatus"`
	Changed        bool                 `json:"changed"`
	UpdatedAt      string               `json:"updatedAt"`
}
