// Package candidate turns extracted CV records into ranked, filterable
// candidate lists. Everything here is pure and safe for concurrent use on
// disjoint inputs.
package candidate

import (
	"strings"

	"recruiting-workers/internal/models"
)

var seniorityAliases = map[string]models.Seniority{
	"junior":         models.SeniorityJunior,
	"semi-senior":    models.SenioritySemiSenior,
	"semi senior":    models.SenioritySemiSenior,
	"mid":            models.SenioritySemiSenior,
	"middle":         models.SenioritySemiSenior,
	"senior":         models.SenioritySenior,
	"lead":           models.SeniorityLead,
	"tech lead":      models.SeniorityLead,
	"technical lead": models.SeniorityLead,
}

var statusAliases = map[string]models.ProcessStatus{
	"pendiente":    models.StatusPending,
	"pending":      models.StatusPending,
	"revisado":     models.StatusReviewed,
	"reviewed":     models.StatusReviewed,
	"entrevista":   models.StatusInterview,
	"interview":    models.StatusInterview,
	"interviewing": models.StatusInterview,
	"rechazado":    models.StatusRejected,
	"rejected":     models.StatusRejected,
	"contratado":   models.StatusHired,
	"hired":        models.StatusHired,
}

var seniorityRank = map[models.Seniority]int{
	models.SeniorityJunior:     1,
	models.SenioritySemiSenior: 2,
	models.SenioritySenior:     3,
	models.SeniorityLead:       4,
}

func labelKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// LookupSeniority resolves a free-text seniority label. ok is false when the
// label is not a known alias.
func LookupSeniority(label string) (models.Seniority, bool) {
	s, ok := seniorityAliases[labelKey(label)]
	return s, ok
}

// LookupStatus resolves a free-text process status label. ok is false when
// the label is not a known alias.
func LookupStatus(label string) (models.ProcessStatus, bool) {
	s, ok := statusAliases[labelKey(label)]
	return s, ok
}

// NormalizeSeniority maps a label to its canonical tier, falling back to Junior.
func NormalizeSeniority(label string) models.Seniority {
	if s, ok := LookupSeniority(label); ok {
		return s
	}
	return models.SeniorityJunior
}

// NormalizeStatus maps a label to its canonical state, falling back to pendiente.
func NormalizeStatus(label string) models.ProcessStatus {
	if s, ok := LookupStatus(label); ok {
		return s
	}
	return models.StatusPending
}

// SeniorityRank orders tiers from Junior (1) to Lead (4). Unknown values rank 0.
func SeniorityRank(s models.Seniority) int {
	return seniorityRank[s]
}
