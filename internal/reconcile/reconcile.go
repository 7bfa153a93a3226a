// Package reconcile maps confidence-scored parsed resume data onto section
// model edits. Only subtrees the user selected are projected; confidence is
// advisory and never blocks a commit. Parsed ids are provisional and never
// leak into the model: every generated edit carries fresh ids assigned by
// the engine at apply time.
package reconcile

import (
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
)

// Reconcile projects the selected fields of a parsed resume into a batch of
// edits. The batch is applied atomically via sections.ApplyAll; a partial
// selection is a valid commit, but the commit itself is all-or-nothing.
func Reconcile(parsed types.ParsedResume) []sections.Edit {
	var edits []sections.Edit

	edits = append(edits, personalEdits(parsed.PersonalInfo)...)

	for _, field := range parsed.Experience {
		if !field.Selected {
			continue
		}
		exp := field.Value
		edits = append(edits, sections.AddItem{
			Section: types.KeyExperience,
			Item: &types.ExperienceItem{
				ItemBase:  types.ItemBase{BulletPoints: bullets(exp.Bullets)},
				Role:      exp.Role,
				Company:   exp.Company,
				Location:  exp.Location,
				StartDate: exp.StartDate,
				EndDate:   exp.EndDate,
			},
		})
	}

	for _, field := range parsed.Education {
		if !field.Selected {
			continue
		}
		edu := field.Value
		edits = append(edits, sections.AddItem{
			Section: types.KeyEducation,
			Item: &types.EducationItem{
				Degree:      edu.Degree,
				Institution: edu.Institution,
				Field:       edu.Field,
				StartDate:   edu.StartDate,
				EndDate:     edu.EndDate,
			},
		})
	}

	for _, field := range parsed.Skills {
		if !field.Selected {
			continue
		}
		edits = append(edits, sections.AddItem{
			Section: types.KeySkills,
			Item:    &types.SkillItem{Name: field.Value},
		})
	}

	for _, field := range parsed.Projects {
		if !field.Selected {
			continue
		}
		proj := field.Value
		edits = append(edits, sections.AddItem{
			Section: types.KeyProjects,
			Item: &types.ProjectItem{
				ItemBase:     types.ItemBase{BulletPoints: bullets(proj.Bullets)},
				Name:         proj.Name,
				URL:          proj.URL,
				Technologies: proj.Technologies,
			},
		})
	}

	for _, field := range parsed.Certifications {
		if !field.Selected {
			continue
		}
		cert := field.Value
		edits = append(edits, sections.AddItem{
			Section: types.KeyCertifications,
			Item: &types.CertificationItem{
				Name:   cert.Name,
				Issuer: cert.Issuer,
				Date:   cert.Date,
			},
		})
	}

	return edits
}

// Commit reconciles the parsed resume and applies the resulting batch
// atomically. With nothing selected the document is returned unchanged.
func Commit(doc types.Document, parsed types.ParsedResume) (types.Document, error) {
	return sections.ApplyAll(doc, Reconcile(parsed))
}

// personalEdits emits the selected contact fields in a fixed order so a
// given selection always produces the same batch.
func personalEdits(info types.ParsedPersonalInfo) []sections.Edit {
	fields := []struct {
		name  string
		value types.ParsedField[string]
	}{
		{"name", info.Name},
		{"email", info.Email},
		{"phone", info.Phone},
		{"location", info.Location},
		{"summary", info.Summary},
	}

	var edits []sections.Edit
	for _, f := range fields {
		if f.value.Selected {
			edits = append(edits, sections.SetPersonalField{Field: f.name, Value: f.value.Value})
		}
	}
	return edits
}

// Bullet ids are intentionally left empty; the engine assigns fresh ids at
// apply time so parsed identifiers never become authoritative.
func bullets(texts []string) []types.BulletPoint {
	if len(texts) == 0 {
		return nil
	}
	out := make([]types.BulletPoint, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		out = append(out, types.BulletPoint{Text: text})
	}
	return out
}
