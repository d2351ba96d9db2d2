package candidate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiting-workers/internal/models"
)

func exampleRecord() models.CandidateRecord {
	return models.CandidateRecord{
		ID:                "cv-001",
		FullName:          "Lucía Fernández",
		ProfessionalTitle: "Full Stack Developer",
		SeniorityLabel:    "Semi-Senior",
		MainStack:         []string{"React", "Node.js"},
		Languages:         []string{"JavaScript", "TypeScript", "Python"},
		Frameworks:        []string{"Express", "Next.js", "NestJS", "Jest"},
		YearsOfExperience: 3,
		EnglishLevel:      "intermediate",
		Education:         models.Education{"Ingeniería en Sistemas"},
		IsQualified:       true,
		ProcessStatus:     "pendiente",
	}
}

func TestScore_ExampleCandidate(t *testing.T) {
	b := Score(Normalize(exampleRecord()))

	assert.InDelta(t, 8.2174, b.TechnicalSkills, 0.0001)
	assert.InDelta(t, 10.0, b.Experience, 0.0001)
	assert.InDelta(t, 15.0, b.Seniority, 0.0001)
	assert.InDelta(t, 5.0, b.Qualifications, 0.0001)
	assert.Equal(t, 0.0, b.MatchDetails)
	assert.Equal(t, 0.0, b.SkillsDistribution)
	assert.InDelta(t, 38.2174, b.Subtotal, 0.0001)
	assert.Equal(t, 1.1, b.Multiplier)
	assert.Equal(t, 42.04, b.Score)
}

func TestScore_Deterministic(t *testing.T) {
	r := exampleRecord()
	first := Score(Normalize(r))
	second := Score(Normalize(r))
	assert.Equal(t, first, second)
}

func TestScore_QualificationMultiplierRatio(t *testing.T) {
	qualified := exampleRecord()
	unqualified := exampleRecord()
	unqualified.IsQualified = false

	q := Score(Normalize(qualified))
	u := Score(Normalize(unqualified))

	require.Equal(t, q.Subtotal, u.Subtotal)
	assert.InDelta(t, 1.375, q.Adjusted/u.Adjusted, 1e-9)
	assert.Equal(t, 30.57, u.Score)
}

func TestScore_UnqualifiedCanOutscoreQualified(t *testing.T) {
	strong := maxedRecord()
	strong.IsQualified = false

	weak := models.CandidateRecord{IsQualified: true, SeniorityLabel: "junior"}

	assert.Greater(t, Score(Normalize(strong)).Score, Score(Normalize(weak)).Score)
}

func maxedRecord() models.CandidateRecord {
	many := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "item"
		}
		return out
	}
	return models.CandidateRecord{
		SeniorityLabel:    "Tech Lead",
		MainStack:         many(15),
		Languages:         many(15),
		Frameworks:        many(15),
		DevOpsTools:       many(15),
		YearsOfExperience: 40,
		EnglishLevel:      "Native",
		Certifications:    many(8),
		Education:         models.Education{"MSc"},
		IsQualified:       true,
		MatchDetails: &models.MatchDetails{
			RequiredStack:          true,
			MinimumExperience:      true,
			EnglishLevel:           true,
			Leadership:             true,
			RelevantCertifications: true,
		},
		SkillsDistribution: &models.SkillsDistribution{
			Backend: 20, Frontend: 20, Data: 20, DevOps: 20, Management: 20,
		},
	}
}

func TestScore_Bounds(t *testing.T) {
	records := []models.CandidateRecord{
		{},
		exampleRecord(),
		maxedRecord(),
		{YearsOfExperience: -4, SeniorityLabel: "unknown", EnglishLevel: "klingon"},
		{SkillsDistribution: &models.SkillsDistribution{Backend: 500, Frontend: -300}},
	}

	for _, r := range records {
		b := Score(Normalize(r))
		assert.GreaterOrEqual(t, b.TechnicalSkills, 0.0)
		assert.LessOrEqual(t, b.TechnicalSkills, 35.0)
		assert.GreaterOrEqual(t, b.Experience, 0.0)
		assert.LessOrEqual(t, b.Experience, 25.0)
		assert.GreaterOrEqual(t, b.Seniority, 0.0)
		assert.LessOrEqual(t, b.Seniority, 20.0)
		assert.GreaterOrEqual(t, b.Qualifications, 0.0)
		assert.LessOrEqual(t, b.Qualifications, 10.0)
		assert.GreaterOrEqual(t, b.MatchDetails, 0.0)
		assert.LessOrEqual(t, b.MatchDetails, 5.0)
		assert.GreaterOrEqual(t, b.SkillsDistribution, 0.0)
		assert.LessOrEqual(t, b.SkillsDistribution, 5.0)
		assert.GreaterOrEqual(t, b.Score, 0.0)
		assert.LessOrEqual(t, b.Score, 100.0)
	}
}

func TestScore_MaxedCandidateClampsTo100(t *testing.T) {
	b := Score(Normalize(maxedRecord()))

	assert.InDelta(t, 35.0, b.TechnicalSkills, 1e-9)
	assert.InDelta(t, 25.0, b.Experience, 1e-9)
	assert.InDelta(t, 20.0, b.Seniority, 1e-9)
	assert.InDelta(t, 10.0, b.Qualifications, 1e-9)
	assert.InDelta(t, 5.0, b.MatchDetails, 1e-9)
	assert.InDelta(t, 5.0, b.SkillsDistribution, 1e-9)
	assert.InDelta(t, 110.0, b.Adjusted, 1e-9)
	assert.Equal(t, 100.0, b.Score)
}

func TestScore_NonFiniteInputsStayInBounds(t *testing.T) {
	for _, payload := range []string{
		`{"id":"cv-nan","anos_experiencia":"NaN","is_qualified":true}`,
		`{"id":"cv-inf","anos_experiencia":"Inf","is_qualified":true}`,
		`{"id":"cv-dist","distribucion_skills":{"backend":"NaN","frontend":"-Inf"}}`,
	} {
		var r models.CandidateRecord
		require.NoError(t, json.Unmarshal([]byte(payload), &r), payload)

		c := Scored(Normalize(r))
		assert.False(t, math.IsNaN(c.MatchScore), payload)
		assert.GreaterOrEqual(t, c.MatchScore, 0.0, payload)
		assert.LessOrEqual(t, c.MatchScore, 100.0, payload)
		assert.False(t, math.IsNaN(c.Breakdown.Experience), payload)
		assert.True(t, Matches(c, DefaultFilterSpec(), ""), payload)
	}

	assert.Equal(t, 0.0, clamp(math.NaN(), 0, 100))
	assert.Equal(t, 0.0, experienceCurve(math.NaN()))
}

func TestExperienceCurve(t *testing.T) {
	tests := []struct {
		years    float64
		expected float64
	}{
		{0, 0},
		{1, 30},
		{2, 60},
		{3, 80},
		{5, 120},
		{6, 135},
		{8, 165},
		{10, 175},
		{50, 375},
		{-3, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, experienceCurve(tt.years), 1e-9, "years=%v", tt.years)
	}
}

func TestExperienceContribution_Monotonic(t *testing.T) {
	prev := experienceContribution(1)
	for years := 1.25; years <= 3; years += 0.25 {
		cur := experienceContribution(years)
		assert.GreaterOrEqual(t, cur, prev, "years=%v", years)
		prev = cur
	}
	assert.Equal(t, 25.0, experienceContribution(60))
}

func TestQualifications_MonotonicInCertifications(t *testing.T) {
	c := Normalize(models.CandidateRecord{EnglishLevel: "advanced"})
	prev := qualificationsContribution(c)
	for n := 1; n <= 8; n++ {
		c.Certifications = append(c.Certifications, "cert")
		cur := qualificationsContribution(c)
		assert.GreaterOrEqual(t, cur, prev, "certifications=%d", n)
		prev = cur
	}
	// 85 + 60 = 145 once the certification cap is reached
	assert.InDelta(t, 7.25, prev, 1e-9)
}

func TestSeniorityContribution(t *testing.T) {
	tests := []struct {
		label    string
		expected float64
	}{
		{"Junior", 12},
		{"", 12},
		{"Semi-Senior", 15},
		{"semi senior", 15},
		{"MID", 15},
		{"Senior", 18},
		{"Lead", 20},
		{"Tech Lead", 20},
		{"principal", 20},
		{"middle", 10},
		{"technical lead", 10},
		{"intern", 10},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.InDelta(t, tt.expected, seniorityContribution(tt.label), 1e-9)
		})
	}
}

func TestQualificationsContribution_EnglishLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected float64
	}{
		{"", 1.5},
		{"basic", 1.5},
		{"Intermediate", 3},
		{"advanced", 4.25},
		{"native", 5},
		{"Fluent", 5},
		{"B2", 1.5},
	}

	for _, tt := range tests {
		c := Normalize(models.CandidateRecord{EnglishLevel: tt.level})
		assert.InDelta(t, tt.expected, qualificationsContribution(c), 1e-9, "level=%q", tt.level)
	}
}

func TestMatchDetailsContribution(t *testing.T) {
	assert.Equal(t, 0.0, matchDetailsContribution(nil))
	assert.InDelta(t, 2.5, matchDetailsContribution(&models.MatchDetails{
		EnglishLevel:           true,
		Leadership:             true,
		RelevantCertifications: true,
	}), 1e-9)
	assert.InDelta(t, 2.5, matchDetailsContribution(&models.MatchDetails{
		RequiredStack:     true,
		MinimumExperience: true,
	}), 1e-9)
}

func TestDistributionContribution(t *testing.T) {
	tests := []struct {
		name     string
		dist     *models.SkillsDistribution
		expected float64
	}{
		{"missing contributes nothing", nil, 0},
		{"perfect balance", &models.SkillsDistribution{Backend: 20, Frontend: 20, Data: 20, DevOps: 20, Management: 20}, 5},
		{"mild skew", &models.SkillsDistribution{Backend: 30, Frontend: 20, Data: 20, DevOps: 20, Management: 10}, 3},
		{"heavy skew floors at zero", &models.SkillsDistribution{Backend: 60, Frontend: 10, Data: 10, DevOps: 10, Management: 10}, 0},
		{"all zero", &models.SkillsDistribution{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, distributionContribution(tt.dist), 1e-9)
		})
	}
}

func TestScored_AttachesBreakdown(t *testing.T) {
	c := Scored(Normalize(exampleRecord()))

	require.NotNil(t, c.Breakdown)
	assert.Equal(t, 42.04, c.MatchScore)
	assert.Equal(t, c.MatchScore, c.Breakdown.Score)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		tier  Tier
	}{
		{100, TierExceptional},
		{85, TierExceptional},
		{84.99, TierExcellent},
		{75, TierExcellent},
		{65, TierGood},
		{50, TierAverage},
		{35, TierBelowAverage},
		{34.99, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		tier, rec := Classify(tt.score)
		assert.Equal(t, tt.tier, tier, "score=%v", tt.score)
		assert.NotEmpty(t, rec)
	}
}
