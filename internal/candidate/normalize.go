package candidate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"recruiting-workers/internal/models"
)

const dateRangeSeparator = " - "

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Normalize projects a raw record onto the canonical candidate shape. It never
// fails: unknown enum labels, missing lists and unparseable values fall back
// to defaults. The score fields are left zero; see Score.
func Normalize(r models.CandidateRecord) models.Candidate {
	fullName := strings.TrimSpace(r.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(r.Name)
	}

	years := float64(r.YearsOfExperience)
	if years < 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		years = 0
	}

	remote := false
	if r.RemoteAvailable != nil {
		remote = *r.RemoteAvailable
	}

	return models.Candidate{
		ID:                r.ID,
		OwnerID:           r.OwnerID,
		FullName:          fullName,
		ProfessionalTitle: strings.TrimSpace(r.ProfessionalTitle),
		Seniority:         NormalizeSeniority(r.SeniorityLabel),
		SeniorityLabel:    strings.TrimSpace(r.SeniorityLabel),
		MainStack:         list(r.MainStack),
		ProcessStatus:     NormalizeStatus(r.ProcessStatus),
		Email:             strings.TrimSpace(r.Email),
		Phone:             strings.TrimSpace(r.Phone),
		Location:          strings.TrimSpace(r.Location),
		RemoteAvailable:   remote,
		PDFURL:            strings.TrimSpace(r.PDFURL),
		LinkedInURL:       NormalizeProfileURL(r.LinkedInURL),
		GitHubURL:         NormalizeProfileURL(r.GitHubURL),
		PortfolioURL:      NormalizeProfileURL(r.PortfolioURL),
		WorkExperience:    workExperience(r.WorkExperience),
		TechnicalStack: models.TechnicalStack{
			Languages:  list(r.Languages),
			Frameworks: list(r.Frameworks),
			Databases:  list(r.Databases),
			Tools:      list(r.DevOpsTools),
			Cloud:      list(r.CloudPlatforms),
		},
		SoftSkills:         list(r.SoftSkills),
		Certifications:     list(r.Certifications),
		Education:          list(r.Education),
		EnglishLevel:       strings.TrimSpace(r.EnglishLevel),
		YearsOfExperience:  years,
		IsQualified:        bool(r.IsQualified),
		Notes:              r.Recommendations,
		MatchDetails:       r.MatchDetails,
		SkillsDistribution: r.SkillsDistribution,
		CreatedAt:          parseTimestamp(r.CreatedAt),
		UpdatedAt:          parseTimestamp(r.UpdatedAt),
	}
}

// NormalizeAll normalizes records in order into a new slice.
func NormalizeAll(records []models.CandidateRecord) []models.Candidate {
	out := make([]models.Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}
	return out
}

func list(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func workExperience(in []models.WorkExperienceRecord) []models.WorkExperience {
	out := make([]models.WorkExperience, 0, len(in))
	for i, w := range in {
		start, end := splitDateRange(w.Dates)
		out = append(out, models.WorkExperience{
			ID:          fmt.Sprintf("exp-%d", i),
			Company:     w.Company,
			Position:    w.Position,
			StartDate:   start,
			EndDate:     end,
			Description: w.Description,
		})
	}
	return out
}

func splitDateRange(dates string) (string, *string) {
	if dates == "" {
		return "", nil
	}
	parts := strings.Split(dates, dateRangeSeparator)
	if len(parts) < 2 || parts[1] == "" {
		return parts[0], nil
	}
	end := parts[1]
	return parts[0], &end
}

// parseTimestamp returns the zero time for empty or unparseable input.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
