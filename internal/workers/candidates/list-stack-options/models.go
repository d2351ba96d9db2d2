// internal/workers/candidates/list-stack-options/models.go
package liststackoptions

import "recruiting-workers/internal/models"

type Input struct {
	OwnerID string                   `json:"ownerId"`
	Records []models.CandidateRecord `json:"records,omitempty"`
}

type Output struct {
	Technologies []string `json:"technologies"`
	Count        int      `json:"count"`
}
