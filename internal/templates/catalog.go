// Package templates provides the built-in template catalog. The core only
// reads a template's id and its section order fallback; visual styling is
// applied client-side.
package templates

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Styles holds the subset of template styling the backend consumes.
type Styles struct {
	SectionOrder []types.SectionKey `json:"sectionOrder"`
}

// Template is one catalog entry.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Styles       Styles `json:"styles"`
	ThumbnailURL string `json:"thumbnail,omitempty"`
}

// NotFoundError indicates an unknown template id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// DefaultID is the template assigned when a resume does not specify one.
const DefaultID = "classic"

var catalog = []Template{
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "Traditional single-column layout, experience first.",
		Styles: Styles{SectionOrder: []types.SectionKey{
			types.KeyExperience, types.KeyEducation, types.KeySkills,
			types.KeyProjects, types.KeyCertifications,
		}},
		ThumbnailURL: "/thumbnails/classic.png",
	},
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Skills-forward layout for technical roles.",
		Styles: Styles{SectionOrder: []types.SectionKey{
			types.KeySkills, types.KeyExperience, types.KeyProjects,
			types.KeyEducation, types.KeyCertifications,
		}},
		ThumbnailURL: "/thumbnails/modern.png",
	},
	{
		ID:          "academic",
		Name:        "Academic",
		Description: "Education-first layout for research and teaching.",
		Styles: Styles{SectionOrder: []types.SectionKey{
			types.KeyEducation, types.KeyExperience, types.KeyProjects,
			types.KeyCertifications, types.KeySkills,
		}},
		ThumbnailURL: "/thumbnails/academic.png",
	},
}

// List returns every catalog template.
func List() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns a template by id.
func Get(id string) (Template, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, &NotFoundError{ID: id}
}
