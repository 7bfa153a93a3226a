package types

// ParsedField wraps a single candidate value extracted from an uploaded
// resume. Confidence is advisory only: it drives UI badges and never blocks
// selection or commit. Selected is user-controlled and gates whether the
// field is committed into the section model.
type ParsedField[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Selected   bool    `json:"selected"`
}

// Confidence badge labels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// ConfidenceLabel maps a confidence score in [0,1] to its badge label:
// >=0.9 High, >=0.7 Medium, else Low.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return ConfidenceHigh
	case confidence >= 0.7:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Label returns the confidence badge label for the field.
func (f ParsedField[T]) Label() string {
	return ConfidenceLabel(f.Confidence)
}

// ParsedPersonalInfo holds the extracted contact fields, each individually
// selectable.
type ParsedPersonalInfo struct {
	Name     ParsedField[string] `json:"name"`
	Email    ParsedField[string] `json:"email"`
	Phone    ParsedField[string] `json:"phone"`
	Location ParsedField[string] `json:"location"`
	Summary  ParsedField[string] `json:"summary"`
}

// ParsedExperience is one extracted employment entry. Its id, if any, is a
// provisional UI identifier and never becomes an authoritative model id.
type ParsedExperience struct {
	Role      string   `json:"role,omitempty"`
	Company   string   `json:"company,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// ParsedEducation is one extracted education entry.
type ParsedEducation struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// ParsedProject is one extracted project entry.
type ParsedProject struct {
	Name         string   `json:"name,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies string   `json:"technologies,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// ParsedCertification is one extracted certification entry.
type ParsedCertification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ParsedResume is the full extraction result returned by the upload parser,
// every field or item wrapped as a ParsedField for user review.
type ParsedResume struct {
	PersonalInfo   ParsedPersonalInfo                 `json:"personalInfo"`
	Experience     []ParsedField[ParsedExperience]    `json:"experience,omitempty"`
	Education      []ParsedField[ParsedEducation]     `json:"education,omitempty"`
	Skills         []ParsedField[string]              `json:"skills,omitempty"`
	Projects       []ParsedField[ParsedProject]       `json:"projects,omitempty"`
	Certifications []ParsedField[ParsedCertification] `json:"certifications,omitempty"`
}
