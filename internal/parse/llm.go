package parse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

const extractionPrompt = `Extract structured resume data from the text below.
Return a single JSON object with this exact shape (omit empty arrays):
{
  "personalInfo": {
    "name": {"value": "", "confidence": 0.0},
    "email": {"value": "", "confidence": 0.0},
    "phone": {"value": "", "confidence": 0.0},
    "location": {"value": "", "confidence": 0.0},
    "summary": {"value": "", "confidence": 0.0}
  },
  "experience": [{"value": {"role": "", "company": "", "location": "", "startDate": "", "endDate": "", "bullets": []}, "confidence": 0.0}],
  "education": [{"value": {"degree": "", "institution": "", "field": "", "startDate": "", "endDate": ""}, "confidence": 0.0}],
  "skills": [{"value": "", "confidence": 0.0}],
  "projects": [{"value": {"name": "", "url": "", "technologies": "", "bullets": []}, "confidence": 0.0}],
  "certifications": [{"value": {"name": "", "issuer": "", "date": ""}, "confidence": 0.0}]
}
Confidence is your extraction certainty in [0,1]. Do not invent data.

Resume text:
`

// refine asks the language model for a full extraction of the resume text.
func (p *Parser) refine(ctx context.Context, text string) (types.ParsedResume, error) {
	raw, err := p.llm.GenerateJSON(ctx, extractionPrompt+text)
	if err != nil {
		return types.ParsedResume{}, fmt.Errorf("llm extraction failed: %w", err)
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return types.ParsedResume{}, fmt.Errorf("llm returned malformed extraction: %w", err)
	}
	clamp(&parsed)
	return parsed, nil
}

// merge prefers the LLM extraction wherever it produced anything, keeping
// heuristic results for sections the model left empty. Contact fields found
// by regex keep their higher heuristic confidence.
func merge(heuristic, refined types.ParsedResume) types.ParsedResume {
	out := refined

	if out.PersonalInfo.Email.Value == "" || heuristic.PersonalInfo.Email.Confidence > out.PersonalInfo.Email.Confidence {
		out.PersonalInfo.Email = heuristic.PersonalInfo.Email
	}
	if out.PersonalInfo.Phone.Value == "" || heuristic.PersonalInfo.Phone.Confidence > out.PersonalInfo.Phone.Confidence {
		out.PersonalInfo.Phone = heuristic.PersonalInfo.Phone
	}
	if out.PersonalInfo.Name.Value == "" {
		out.PersonalInfo.Name = heuristic.PersonalInfo.Name
	}
	if out.PersonalInfo.Location.Value == "" {
		out.PersonalInfo.Location = heuristic.PersonalInfo.Location
	}
	if out.PersonalInfo.Summary.Value == "" {
		out.PersonalInfo.Summary = heuristic.PersonalInfo.Summary
	}

	if len(out.Experience) == 0 {
		out.Experience = heuristic.Experience
	}
	if len(out.Education) == 0 {
		out.Education = heuristic.Education
	}
	if len(out.Skills) == 0 {
		out.Skills = heuristic.Skills
	}
	if len(out.Projects) == 0 {
		out.Projects = heuristic.Projects
	}
	if len(out.Certifications) == 0 {
		out.Certifications = heuristic.Certifications
	}
	return out
}

// clamp forces confidences into [0,1] and applies the default selection
// rule (Medium or better pre-selected) to model output, which does not set
// the selected flag itself.
func clamp(parsed *types.ParsedResume) {
	for _, f := range []*types.ParsedField[string]{
		&parsed.PersonalInfo.Name,
		&parsed.PersonalInfo.Email,
		&parsed.PersonalInfo.Phone,
		&parsed.PersonalInfo.Location,
		&parsed.PersonalInfo.Summary,
	} {
		clampField(f)
		if f.Value == "" {
			f.Selected = false
		}
	}
	for i := range parsed.Experience {
		clampField(&parsed.Experience[i])
	}
	for i := range parsed.Education {
		clampField(&parsed.Education[i])
	}
	for i := range parsed.Skills {
		clampField(&parsed.Skills[i])
	}
	for i := range parsed.Projects {
		clampField(&parsed.Projects[i])
	}
	for i := range parsed.Certifications {
		clampField(&parsed.Certifications[i])
	}
}

func clampField[T any](f *types.ParsedField[T]) {
	if f.Confidence < 0 {
		f.Confidence = 0
	}
	if f.Confidence > 1 {
		f.Confidence = 1
	}
	f.Selected = f.Confidence >= 0.7
}
