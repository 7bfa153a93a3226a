// Package schemas validates resume documents against the shipped JSON
// Schema before they reach the sections engine. Imported or client-supplied
// documents are untrusted input; schema failure is a validation error, not a
// server fault.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-builder/internal/types"
	schemafiles "github.com/jonathan/resume-builder/schemas"
)

// FieldError is a single validation error at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the schema violations of one document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("document validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var documentSchema = gojsonschema.NewBytesLoader(schemafiles.ResumeDocument)

// ValidateDocument validates a raw resume document body against the
// document schema, then checks the id-uniqueness invariants the schema
// cannot express. A nil return means the document is valid.
func ValidateDocument(body []byte) error {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	var doc types.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if errs := uniquenessErrors(doc); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// uniquenessErrors reports item ids repeated within a section and bullet
// ids repeated within an item.
func uniquenessErrors(doc types.Document) []FieldError {
	var errs []FieldError

	section := func(field string, items []types.ItemBase) {
		seen := make(map[string]bool, len(items))
		for _, base := range items {
			if seen[base.ID] {
				errs = append(errs, FieldError{Field: field, Message: "duplicate item id: " + base.ID})
			}
			seen[base.ID] = true

			bulletSeen := make(map[string]bool, len(base.BulletPoints))
			for _, bp := range base.BulletPoints {
				if bulletSeen[bp.ID] {
					errs = append(errs, FieldError{Field: field, Message: "duplicate bullet id: " + bp.ID})
				}
				bulletSeen[bp.ID] = true
			}
		}
	}

	s := doc.Sections
	section("sections.experience", itemBases(s.Experience, func(it types.ExperienceItem) types.ItemBase { return it.ItemBase }))
	section("sections.education", itemBases(s.Education, func(it types.EducationItem) types.ItemBase { return it.ItemBase }))
	section("sections.skills", itemBases(s.Skills, func(it types.SkillItem) types.ItemBase { return it.ItemBase }))
	section("sections.projects", itemBases(s.Projects, func(it types.ProjectItem) types.ItemBase { return it.ItemBase }))
	section("sections.certifications", itemBases(s.Certifications, func(it types.CertificationItem) types.ItemBase { return it.ItemBase }))
	for key, cs := range s.CustomSections {
		section("sections.customSections."+string(key),
			itemBases(cs.Items, func(it types.CustomItem) types.ItemBase { return it.ItemBase }))
	}
	return errs
}

func itemBases[T any](items []T, base func(T) types.ItemBase) []types.ItemBase {
	out := make([]types.ItemBase, len(items))
	for i, item := range items {
		out[i] = base(item)
	}
	return out
}
