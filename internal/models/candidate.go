package models

import "time"

type Seniority string

const (
	SeniorityJunior     Seniority = "Junior"
	SenioritySemiSenior Seniority = "Semi-Senior"
	SenioritySenior     Seniority = "Senior"
	SeniorityLead       Seniority = "Lead"
)

type ProcessStatus string

const (
	StatusPending   ProcessStatus = "pendiente"
	StatusReviewed  ProcessStatus = "revisado"
	StatusInterview ProcessStatus = "entrevista"
	StatusRejected  ProcessStatus = "rechazado"
	StatusHired     ProcessStatus = "contratado"
)

// AllProcessStatuses lists the recruiting pipeline states in pipeline order.
var AllProcessStatuses = []ProcessStatus{
	StatusPending,
	StatusReviewed,
	StatusInterview,
	StatusRejected,
	StatusHired,
}

// Candidate is the canonical, fixed-shape projection of a CandidateRecord.
// Every slice field is non-nil once produced by the normalizer.
type Candidate struct {
	ID                string           `json:"id"`
	OwnerID           string           `json:"ownerId"`
	FullName          string           `json:"fullName"`
	ProfessionalTitle string           `json:"professionalTitle"`
	Seniority         Seniority        `json:"seniority"`
	SeniorityLabel    string           `json:"seniorityLabel"`
	MainStack         []string         `json:"mainStack"`
	ProcessStatus     ProcessStatus    `json:"processStatus"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	Location          string           `json:"location"`
	RemoteAvailable   bool             `json:"remoteAvailable"`
	PDFURL            string           `json:"pdfUrl,omitempty"`
	LinkedInURL       string           `json:"linkedinUrl,omitempty"`
	GitHubURL         string           `json:"githubUrl,omitempty"`
	PortfolioURL      string           `json:"portfolioUrl,omitempty"`
	WorkExperience    []WorkExperience `json:"workExperience"`
	TechnicalStack    TechnicalStack   `json:"technicalStack"`
	SoftSkills        []string         `json:"softSkills"`
	Certifications    []string         `json:"certifications"`
	Education         []string         `json:"education"`
	EnglishLevel      string           `json:"englishLevel"`
	YearsOfExperience float64          `json:"yearsOfExperience"`
	IsQualified       bool             `json:"isQualified"`
	Notes             string           `json:"notes"`

	MatchDetails       *MatchDetails       `json:"matchDetails,omitempty"`
	SkillsDistribution *SkillsDistribution `json:"skillsDistribution,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	MatchScore float64         `json:"matchScore"`
	Breakdown  *ScoreBreakdown `json:"breakdown,omitempty"`
}

type WorkExperience struct {
	ID          string  `json:"id"`
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Description string  `json:"description"`
}

type TechnicalStack struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Tools      []string `json:"tools"`
	Cloud      []string `json:"cloud"`
}

// ScoreBreakdown carries the six weighted factor contributions. Subtotal is
// their sum before the qualification multiplier; Adjusted is Subtotal times
// Multiplier before clamping; Score is the clamped, rounded composite.
type ScoreBreakdown struct {
	TechnicalSkills    float64 `json:"technicalSkills"`
	Experience         float64 `json:"experience"`
	Seniority          float64 `json:"seniority"`
	Qualifications     float64 `json:"qualifications"`
	MatchDetails       float64 `json:"matchDetails"`
	SkillsDistribution float64 `json:"skillsDistribution"`
	Subtotal           float64 `json:"subtotal"`
	Multiplier         float64 `json:"multiplier"`
	Adjusted           float64 `json:"adjusted"`
	Score              float64 `json:"score"`
}
