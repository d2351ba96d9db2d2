package candidate

import (
	"math"

	"recruiting-workers/internal/models"
)

const (
	technicalWeight   = 0.35
	technicalDivisor  = 2.3
	technicalCap      = 35.0
	experienceCap     = 200.0
	experienceMax     = 25.0
	seniorityMax      = 20.0
	qualificationsCap = 200.0
	qualificationsMax = 10.0
	matchDetailsMax   = 5.0
	distributionMax   = 5.0

	certificationPoints = 15.0
	certificationCap    = 60.0
	educationBonus      = 40.0

	balancedSharePct = 20.0

	qualifiedMultiplier   = 1.1
	unqualifiedMultiplier = 0.8

	unknownSeniorityScore = 50.0
)

type skillCategory struct {
	perItem float64
	cap     float64
}

var (
	stackCategory      = skillCategory{perItem: 8, cap: 80}
	languagesCategory  = skillCategory{perItem: 6, cap: 60}
	frameworksCategory = skillCategory{perItem: 5, cap: 50}
	devopsCategory     = skillCategory{perItem: 4, cap: 40}
)

// Base scores keyed by the lowercased raw label, not the canonical tier.
// "middle" and "technical lead" score as unknown; "principal" scores 100.
var seniorityScores = map[string]float64{
	"junior":      60,
	"semi-senior": 75,
	"semi senior": 75,
	"mid":         75,
	"senior":      90,
	"lead":        100,
	"tech lead":   100,
	"principal":   100,
}

var englishScores = map[string]float64{
	"basic":        30,
	"intermediate": 60,
	"advanced":     85,
	"native":       100,
	"fluent":       100,
}

// Score computes the composite match score and its per-factor breakdown.
func Score(c models.Candidate) models.ScoreBreakdown {
	b := models.ScoreBreakdown{
		TechnicalSkills:    technicalContribution(c),
		Experience:         experienceContribution(c.YearsOfExperience),
		Seniority:          seniorityContribution(c.SeniorityLabel),
		Qualifications:     qualificationsContribution(c),
		MatchDetails:       matchDetailsContribution(c.MatchDetails),
		SkillsDistribution: distributionContribution(c.SkillsDistribution),
	}

	b.Subtotal = b.TechnicalSkills + b.Experience + b.Seniority +
		b.Qualifications + b.MatchDetails + b.SkillsDistribution

	b.Multiplier = unqualifiedMultiplier
	if c.IsQualified {
		b.Multiplier = qualifiedMultiplier
	}
	b.Adjusted = b.Subtotal * b.Multiplier
	b.Score = round2(clamp(b.Adjusted, 0, 100))
	return b
}

// Scored returns a copy of c with MatchScore and Breakdown populated.
func Scored(c models.Candidate) models.Candidate {
	b := Score(c)
	c.MatchScore = b.Score
	c.Breakdown = &b
	return c
}

func (s skillCategory) points(count int) float64 {
	return math.Min(float64(count)*s.perItem, s.cap)
}

func technicalContribution(c models.Candidate) float64 {
	raw := stackCategory.points(len(c.MainStack)) +
		languagesCategory.points(len(c.TechnicalStack.Languages)) +
		frameworksCategory.points(len(c.TechnicalStack.Frameworks)) +
		devopsCategory.points(len(c.TechnicalStack.Tools))
	return math.Min(raw/technicalDivisor*technicalWeight, technicalCap)
}

// experienceCurve gives diminishing returns: 30 points a year up to two years,
// then 20, then 15 up to eight years, then 5.
func experienceCurve(years float64) float64 {
	if years < 0 || math.IsNaN(years) {
		years = 0
	}
	switch {
	case years <= 2:
		return years * 30
	case years <= 5:
		return 60 + (years-2)*20
	case years <= 8:
		return 120 + (years-5)*15
	default:
		return 165 + (years-8)*5
	}
}

func experienceContribution(years float64) float64 {
	capped := math.Min(experienceCurve(years), experienceCap)
	return math.Min(capped/experienceCap*experienceMax, experienceMax)
}

func seniorityContribution(label string) float64 {
	key := labelKey(label)
	if key == "" {
		key = "junior"
	}
	base, ok := seniorityScores[key]
	if !ok {
		base = unknownSeniorityScore
	}
	return base / 100 * seniorityMax
}

func qualificationsContribution(c models.Candidate) float64 {
	key := labelKey(c.EnglishLevel)
	if key == "" {
		key = "basic"
	}
	english, ok := englishScores[key]
	if !ok {
		english = englishScores["basic"]
	}

	total := english + math.Min(float64(len(c.Certifications))*certificationPoints, certificationCap)
	if len(c.Education) > 0 {
		total += educationBonus
	}
	return math.Min(total, qualificationsCap) / qualificationsCap * qualificationsMax
}

func matchDetailsContribution(d *models.MatchDetails) float64 {
	if d == nil {
		return 0
	}
	var total float64
	if d.RequiredStack {
		total += 25
	}
	if d.MinimumExperience {
		total += 25
	}
	if d.EnglishLevel {
		total += 20
	}
	if d.Leadership {
		total += 15
	}
	if d.RelevantCertifications {
		total += 15
	}
	return total / 100 * matchDetailsMax
}

// A missing distribution contributes nothing rather than being excluded from
// the weighted sum.
func distributionContribution(d *models.SkillsDistribution) float64 {
	if d == nil {
		return 0
	}
	shares := []models.FlexibleFloat{d.Backend, d.Frontend, d.Data, d.DevOps, d.Management}
	var variance float64
	for _, pct := range shares {
		variance += math.Abs(balancedSharePct - float64(pct))
	}
	score := math.Max(0, 100-variance*2)
	return score / 100 * distributionMax
}

// clamp maps NaN to 0.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
