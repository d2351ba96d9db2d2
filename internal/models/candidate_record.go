package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CandidateRecord is a row of cv_analysis as produced by the CV extraction
// service. Field names follow the extraction payload, which is Spanish.
type CandidateRecord struct {
	ID        string `json:"id"`
	OwnerID   string `json:"clerk_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	Name              string        `json:"name"`
	FullName          string        `json:"nombre_completo"`
	Email             string        `json:"email"`
	Phone             string        `json:"telefono"`
	Location          string        `json:"ubicacion"`
	ProfessionalTitle string        `json:"titulo_profesional"`
	YearsOfExperience FlexibleFloat `json:"anos_experiencia"`
	SeniorityLabel    string        `json:"nivel_seniority"`
	ProfessionalBrief string        `json:"perfil_profesional"`
	Summary           string        `json:"resumen_profesional"`
	EnglishLevel      string        `json:"english_level"`
	ProcessStatus     string        `json:"estado_del_proceso"`
	PreferredPosition string        `json:"tipo_posicion_preferida"`
	LastJobEnded      string        `json:"ultimo_trabajo_finalizado"`
	Recommendations   string        `json:"recomendaciones"`
	Reason            string        `json:"reason"`

	MainStack      StringList             `json:"stack_principal"`
	Languages      StringList             `json:"lenguajes_programacion"`
	Frameworks     StringList             `json:"frameworks_principales"`
	Databases      StringList             `json:"bases_datos"`
	CloudPlatforms StringList             `json:"cloud_platforms"`
	DevOpsTools    StringList             `json:"herramientas_devops"`
	AgileMethods   StringList             `json:"metodologias_agile"`
	SoftSkills     StringList             `json:"soft_skills"`
	Certifications StringList             `json:"certificaciones"`
	Projects       StringList             `json:"proyectos_destacados"`
	TechKeywords   StringList             `json:"keywords_tech"`
	Education      Education              `json:"educacion"`
	WorkExperience []WorkExperienceRecord `json:"experiencia_laboral"`

	RemoteAvailable   *bool        `json:"disponibilidad_remota"`
	WillingToRelocate *bool        `json:"disponibilidad_traslado"`
	IsQualified       FlexibleBool `json:"is_qualified"`
	MeetsBasics       FlexibleBool `json:"cumple_requisitos_basicos"`

	MatchScore         FlexibleFloat       `json:"match_score"`
	MatchDetails       *MatchDetails       `json:"match_details"`
	SkillsDistribution *SkillsDistribution `json:"distribucion_skills"`

	LinkedInURL  string `json:"linkedin_url"`
	GitHubURL    string `json:"github_url"`
	PortfolioURL string `json:"portfolio_url"`
	PDFURL       string `json:"pdf_url"`
}

// WorkExperienceRecord is one entry of experiencia_laboral. Dates arrive as a
// single "start - end" string.
type WorkExperienceRecord struct {
	Dates       string `json:"fechas"`
	Position    string `json:"puesto"`
	Company     string `json:"empresa"`
	Location    string `json:"ubicacion"`
	Description string `json:"descripcion"`
}

// MatchDetails holds the requirement flags evaluated by the extraction service.
type MatchDetails struct {
	RequiredStack          FlexibleBool `json:"stack_requerido"`
	MinimumExperience      FlexibleBool `json:"experiencia_minima"`
	EnglishLevel           FlexibleBool `json:"nivel_ingles"`
	Leadership             FlexibleBool `json:"liderazgo"`
	RelevantCertifications FlexibleBool `json:"certificaciones_relevantes"`
}

// SkillsDistribution holds the percentage of the profile devoted to each area.
type SkillsDistribution struct {
	Backend    FlexibleFloat `json:"backend"`
	Frontend   FlexibleFloat `json:"frontend"`
	Data       FlexibleFloat `json:"data"`
	DevOps     FlexibleFloat `json:"devops"`
	Management FlexibleFloat `json:"gestión"`
}

// FlexibleFloat accepts a JSON number, a numeric string or null. Anything
// unparseable or non-finite decodes to 0.
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			*f = 0
			return nil
		}
		*f = FlexibleFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexibleFloat(v)
	return nil
}

// FlexibleBool accepts a JSON boolean or any string strconv.ParseBool
// understands. Anything else decodes to false.
type FlexibleBool bool

func (b *FlexibleBool) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	v, err := strconv.ParseBool(strings.TrimSpace(text))
	*b = FlexibleBool(err == nil && v)
	return nil
}

// StringList accepts a list of strings or a single comma-separated string.
// Non-string list items are dropped; any other shape decodes to nil.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = nil
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*l = append(*l, part)
			}
		}
	case '[':
		var items []interface{}
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		*l = out
	}
	return nil
}

// Education accepts either a single string or a list of strings. Empty
// entries are dropped; whitespace-only text still counts as stated education.
type Education []string

func (e *Education) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*e = nil
			return nil
		}
		*e = Education{s}
		return nil
	}

	var list StringList
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	out := make(Education, 0, len(list))
	for _, item := range list {
		if item != "" {
			out = append(out, item)
		}
	}
	*e = out
	return nil
}
