// internal/workers/candidates/score-candidate/models.go
package scorecandidate

import "recruiting-workers/internal/models"

// Input carries either an inline record or the id of a stored one. An inline
// record wins when both are present.
type Input struct {
	CandidateID string                  `json:"candidateId,omitempty"`
	Record      *models.CandidateRecord `json:"record,omitempty"`
}

type Output struct {
	CandidateID    string                `json:"candidateId"`
	MatchScore     float64               `json:"matchScore"`
	Breakdown      models.ScoreBreakdown `json:"breakdown"`
	Tier           string                `json:"tier"`
	Recommendation string                `json:"recommendation"`
}

const inputSchema = `{
  "type": "object",
  "properties": {
    "candidateId": {"type": "string", "minLength": 1},
    "record": {"type": "object"}
  },
  "anyOf": [
    {"required": ["candidateId"]},
    {"required": ["record"]}
  ]
}`
