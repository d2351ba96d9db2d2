// internal/workers/candidates/delete-candidate/models.go
package deletecandidate

type Input struct {
	CandidateID string `json:"candidateId"`
}

type Output struct {
	CandidateID string `json:"candidateId"`
	OwnerID     string `json:"ownerId"`
	Deleted     bool   `json:"deleted"`
	DeletedAt   string `json:"deletedAt"`
}
