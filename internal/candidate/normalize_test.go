package candidate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiting-workers/internal/models"
)

func TestNormalizeSeniority(t *testing.T) {
	tests := map[string]models.Seniority{
		"junior":         models.SeniorityJunior,
		"Junior":         models.SeniorityJunior,
		"semi-senior":    models.SenioritySemiSenior,
		"Semi Senior":    models.SenioritySemiSenior,
		"mid":            models.SenioritySemiSenior,
		"MIDDLE":         models.SenioritySemiSenior,
		"Senior":         models.SenioritySenior,
		" senior ":       models.SenioritySenior,
		"lead":           models.SeniorityLead,
		"Tech Lead":      models.SeniorityLead,
		"technical lead": models.SeniorityLead,
		"principal":      models.SeniorityJunior,
		"":               models.SeniorityJunior,
		"rockstar":       models.SeniorityJunior,
	}

	for label, expected := range tests {
		assert.Equal(t, expected, NormalizeSeniority(label), "label=%q", label)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]models.ProcessStatus{
		"pendiente":    models.StatusPending,
		"Pending":      models.StatusPending,
		"revisado":     models.StatusReviewed,
		"reviewed":     models.StatusReviewed,
		"Entrevista":   models.StatusInterview,
		"interview":    models.StatusInterview,
		"interviewing": models.StatusInterview,
		"rechazado":    models.StatusRejected,
		"REJECTED":     models.StatusRejected,
		"contratado":   models.StatusHired,
		"hired":        models.StatusHired,
		"":             models.StatusPending,
		"archived":     models.StatusPending,
	}

	for label, expected := range tests {
		assert.Equal(t, expected, NormalizeStatus(label), "label=%q", label)
	}
}

func TestNormalize_EmptyRecordHasNoNilLists(t *testing.T) {
	c := Normalize(models.CandidateRecord{})

	assert.NotNil(t, c.MainStack)
	assert.NotNil(t, c.WorkExperience)
	assert.NotNil(t, c.TechnicalStack.Languages)
	assert.NotNil(t, c.TechnicalStack.Frameworks)
	assert.NotNil(t, c.TechnicalStack.Databases)
	assert.NotNil(t, c.TechnicalStack.Tools)
	assert.NotNil(t, c.TechnicalStack.Cloud)
	assert.NotNil(t, c.SoftSkills)
	assert.NotNil(t, c.Certifications)
	assert.NotNil(t, c.Education)

	assert.Equal(t, models.SeniorityJunior, c.Seniority)
	assert.Equal(t, models.StatusPending, c.ProcessStatus)
	assert.False(t, c.RemoteAvailable)
	assert.True(t, c.CreatedAt.IsZero())
	assert.Nil(t, c.MatchDetails)
	assert.Nil(t, c.SkillsDistribution)
}

func TestNormalize_EmptyListsEncodeAsArrays(t *testing.T) {
	data, err := json.Marshal(Normalize(models.CandidateRecord{}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []interface{}{}, decoded["mainStack"])
	assert.Equal(t, []interface{}{}, decoded["softSkills"])
}

func TestNormalize_PreservesListOrderAndDoesNotAlias(t *testing.T) {
	r := models.CandidateRecord{MainStack: []string{"Go", "Kafka", "Go"}}
	c := Normalize(r)

	assert.Equal(t, []string{"Go", "Kafka", "Go"}, c.MainStack)

	c.MainStack[0] = "Rust"
	assert.Equal(t, "Go", r.MainStack[0])
}

func TestNormalize_WorkExperience(t *testing.T) {
	r := models.CandidateRecord{
		WorkExperience: []models.WorkExperienceRecord{
			{Dates: "2019 - 2022", Company: "Globant", Position: "Backend Developer"},
			{Dates: "2022 - Actualidad", Company: "Mercado Libre"},
			{Dates: "2018"},
			{},
		},
	}

	exp := Normalize(r).WorkExperience
	require.Len(t, exp, 4)

	assert.Equal(t, "exp-0", exp[0].ID)
	assert.Equal(t, "2019", exp[0].StartDate)
	require.NotNil(t, exp[0].EndDate)
	assert.Equal(t, "2022", *exp[0].EndDate)
	assert.Equal(t, "Globant", exp[0].Company)

	assert.Equal(t, "exp-1", exp[1].ID)
	require.NotNil(t, exp[1].EndDate)
	assert.Equal(t, "Actualidad", *exp[1].EndDate)

	assert.Equal(t, "2018", exp[2].StartDate)
	assert.Nil(t, exp[2].EndDate)

	assert.Equal(t, "exp-3", exp[3].ID)
	assert.Equal(t, "", exp[3].StartDate)
	assert.Nil(t, exp[3].EndDate)
}

func TestNormalize_FieldsAndFallbacks(t *testing.T) {
	remote := true
	r := models.CandidateRecord{
		ID:                "cv-9",
		Name:              "fallback name",
		ProfessionalTitle: "  Data Engineer ",
		SeniorityLabel:    "mid",
		ProcessStatus:     "interviewing",
		RemoteAvailable:   &remote,
		YearsOfExperience: -2,
		Recommendations:   "Strong SQL",
		LinkedInURL:       "linkedin.com/in/someone",
		GitHubURL:         "http://localhost:3000/github.com/someone",
		DevOpsTools:       []string{"Docker"},
		CloudPlatforms:    []string{"AWS"},
		CreatedAt:         "2024-03-10T12:30:00.123456+00:00",
	}

	c := Normalize(r)

	assert.Equal(t, "fallback name", c.FullName)
	assert.Equal(t, "Data Engineer", c.ProfessionalTitle)
	assert.Equal(t, models.SenioritySemiSenior, c.Seniority)
	assert.Equal(t, "mid", c.SeniorityLabel)
	assert.Equal(t, models.StatusInterview, c.ProcessStatus)
	assert.True(t, c.RemoteAvailable)
	assert.Equal(t, 0.0, c.YearsOfExperience)
	assert.Equal(t, "Strong SQL", c.Notes)
	assert.Equal(t, "https://linkedin.com/in/someone", c.LinkedInURL)
	assert.Equal(t, "https://github.com/someone", c.GitHubURL)
	assert.Equal(t, "", c.PortfolioURL)
	assert.Equal(t, []string{"Docker"}, c.TechnicalStack.Tools)
	assert.Equal(t, []string{"AWS"}, c.TechnicalStack.Cloud)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 30, 0, 123456000, time.UTC), c.CreatedAt)
}

func TestNormalize_FullNamePreferredOverName(t *testing.T) {
	c := Normalize(models.CandidateRecord{FullName: "Ana Gómez", Name: "ana"})
	assert.Equal(t, "Ana Gómez", c.FullName)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		isZero bool
	}{
		{"2024-01-15T10:30:00Z", false},
		{"2024-01-15T10:30:00.5+02:00", false},
		{"2024-01-15T10:30:00.123456", false},
		{"2024-01-15 10:30:00+00", false},
		{"2024-01-15", false},
		{"", true},
		{"yesterday", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.isZero, parseTimestamp(tt.in).IsZero(), "in=%q", tt.in)
	}
}

func TestCandidateRecord_TolerantDecoding(t *testing.T) {
	payload := `{
		"id": "cv-1",
		"nombre_completo": "María López",
		"anos_experiencia": "4.5",
		"educacion": "Licenciatura en Informática",
		"stack_principal": null,
		"disponibilidad_remota": null,
		"match_details": {"stack_requerido": true, "liderazgo": true},
		"distribucion_skills": {"backend": "40", "frontend": 30, "data": null, "devops": 10, "gestión": 20}
	}`

	var r models.CandidateRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, models.FlexibleFloat(4.5), r.YearsOfExperience)
	assert.Equal(t, models.Education{"Licenciatura en Informática"}, r.Education)
	assert.Nil(t, r.MainStack)
	assert.Nil(t, r.RemoteAvailable)
	require.NotNil(t, r.MatchDetails)
	assert.True(t, bool(r.MatchDetails.RequiredStack))
	assert.False(t, bool(r.MatchDetails.EnglishLevel))
	require.NotNil(t, r.SkillsDistribution)
	assert.Equal(t, models.FlexibleFloat(40), r.SkillsDistribution.Backend)
	assert.Equal(t, models.FlexibleFloat(0), r.SkillsDistribution.Data)
	assert.Equal(t, models.FlexibleFloat(20), r.SkillsDistribution.Management)

	c := Normalize(r)
	assert.Equal(t, 4.5, c.YearsOfExperience)
	assert.Equal(t, []string{}, c.MainStack)
}

func TestCandidateRecord_LooseShapes(t *testing.T) {
	payload := `{
		"id": "cv-2",
		"stack_principal": "React, Node.js",
		"lenguajes_programacion": "Go",
		"frameworks_principales": ["Gin", 7, "Echo"],
		"bases_datos": {"main": "PostgreSQL"},
		"educacion": " ",
		"is_qualified": "yes",
		"cumple_requisitos_basicos": "1",
		"match_details": {"stack_requerido": "true", "experiencia_minima": "TRUE", "nivel_ingles": 1, "liderazgo": "sometimes", "certificaciones_relevantes": null}
	}`

	var r models.CandidateRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, models.StringList{"React", "Node.js"}, r.MainStack)
	assert.Equal(t, models.StringList{"Go"}, r.Languages)
	assert.Equal(t, models.StringList{"Gin", "Echo"}, r.Frameworks)
	assert.Nil(t, r.Databases)
	assert.False(t, bool(r.IsQualified))
	assert.True(t, bool(r.MeetsBasics))
	require.NotNil(t, r.MatchDetails)
	assert.Equal(t, models.MatchDetails{
		RequiredStack:     true,
		MinimumExperience: true,
		EnglishLevel:      true,
	}, *r.MatchDetails)

	c := Normalize(r)
	assert.Equal(t, []string{"React", "Node.js"}, c.MainStack)
	assert.Equal(t, []string{}, c.TechnicalStack.Databases)
	assert.Equal(t, []string{" "}, c.Education)

	withoutEducation := c
	withoutEducation.Education = nil
	b := Score(c)
	assert.InDelta(t, 3.5, b.MatchDetails, 1e-9)
	assert.Greater(t, b.Qualifications, Score(withoutEducation).Qualifications)
}

func TestFlexibleFloat_NonFiniteDecodesToZero(t *testing.T) {
	for _, payload := range []string{`"NaN"`, `"nan"`, `"Inf"`, `"-Inf"`, `"+Infinity"`, `"abc"`} {
		f := models.FlexibleFloat(7)
		require.NoError(t, json.Unmarshal([]byte(payload), &f), payload)
		assert.Equal(t, models.FlexibleFloat(0), f, payload)
	}
}

func TestEducation_Decoding(t *testing.T) {
	tests := []struct {
		payload  string
		expected models.Education
	}{
		{`""`, nil},
		{`"   "`, models.Education{"   "}},
		{`null`, nil},
		{`["BSc", "", "MSc"]`, models.Education{"BSc", "MSc"}},
		{`["BSc", 3]`, models.Education{"BSc"}},
		{`[]`, models.Education{}},
	}

	for _, tt := range tests {
		var e models.Education
		require.NoError(t, json.Unmarshal([]byte(tt.payload), &e), tt.payload)
		assert.Equal(t, tt.expected, e, tt.payload)
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"http://localhost:3000/itsdiegoramos.com", "https://itsdiegoramos.com"},
		{"https://localhost:3000/github.com/user", "https://github.com/user"},
		{"itsdiegoramos.com", "https://itsdiegoramos.com"},
		{"github.com/username", "https://github.com/username"},
		{"https://linkedin.com/in/user", "https://linkedin.com/in/user"},
		{"http://itsdiegoramos.com", "http://itsdiegoramos.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeProfileURL(tt.in), "in=%q", tt.in)
	}
}
