// Package types provides type definitions for the structured resume data
// used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"maps"
	"slices"
)

// SectionKey identifies a resume section. Built-in keys are reserved;
// any other key denotes a custom section.
type SectionKey string

// Built-in section keys.
const (
	KeyExperience     SectionKey = "experience"
	KeyEducation      SectionKey = "education"
	KeySkills         SectionKey = "skills"
	KeyProjects       SectionKey = "projects"
	KeyCertifications SectionKey = "certifications"
)

// BuiltinKeys returns the reserved built-in section keys in default order.
func BuiltinKeys() []SectionKey {
	return []SectionKey{KeyExperience, KeyEducation, KeySkills, KeyProjects, KeyCertifications}
}

// IsBuiltin reports whether key is one of the reserved built-in section keys.
func (k SectionKey) IsBuiltin() bool {
	switch k {
	case KeyExperience, KeyEducation, KeySkills, KeyProjects, KeyCertifications:
		return true
	}
	return false
}

// SectionMeta holds display and behavior metadata for a section key.
// The metadata map is the single source of truth for display names.
type SectionMeta struct {
	Name      string `json:"name"`
	Deletable bool   `json:"deletable"`
	Renamable bool   `json:"renamable"`
}

// BulletPoint is one line of free text attached to an item.
type BulletPoint struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ItemBase carries the fields shared by every section item variant.
// IDs are assigned at creation and never reused after deletion.
type ItemBase struct {
	ID           string        `json:"id"`
	Description  string        `json:"description,omitempty"`
	BulletPoints []BulletPoint `json:"bulletPoints,omitempty"`
}

// Base returns the shared item fields. Item variants embed ItemBase, so the
// method promotes onto each of them.
func (b *ItemBase) Base() *ItemBase { return b }

func (b *ItemBase) mergeBase(p *ItemBase) {
	if p.Description != "" {
		b.Description = p.Description
	}
	// Bullet points are a whole-list replacement, never a per-bullet patch.
	if p.BulletPoints != nil {
		b.BulletPoints = slices.Clone(p.BulletPoints)
	}
}

func (b *ItemBase) cloneBase() ItemBase {
	c := *b
	c.BulletPoints = slices.Clone(b.BulletPoints)
	return c
}

// Item is implemented by every section item variant. Merge applies a patch
// of the same concrete type, overwriting non-empty fields and preserving the
// item id.
type Item interface {
	Base() *ItemBase
	Merge(patch Item) error
}

// ExperienceItem is one employment entry.
type ExperienceItem struct {
	ItemBase
	Role      string `json:"role,omitempty"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Merge implements Item.
func (i *ExperienceItem) Merge(patch Item) error {
	p, ok := patch.(*ExperienceItem)
	if !ok {
		return &PatchTypeError{Want: "experience"}
	}
	mergeStr(&i.Role, p.Role)
	mergeStr(&i.Company, p.Company)
	mergeStr(&i.Location, p.Location)
	mergeStr(&i.StartDate, p.StartDate)
	mergeStr(&i.EndDate, p.EndDate)
	i.mergeBase(&p.ItemBase)
	return nil
}

// EducationItem is one education entry.
type EducationItem struct {
	ItemBase
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Merge implements Item.
func (i *EducationItem) Merge(patch Item) error {
	p, ok := patch.(*EducationItem)
	if !ok {
		return &PatchTypeError{Want: "education"}
	}
	mergeStr(&i.Degree, p.Degree)
	mergeStr(&i.Institution, p.Institution)
	mergeStr(&i.Field, p.Field)
	mergeStr(&i.Location, p.Location)
	mergeStr(&i.StartDate, p.StartDate)
	mergeStr(&i.EndDate, p.EndDate)
	mergeStr(&i.GPA, p.GPA)
	i.mergeBase(&p.ItemBase)
	return nil
}

// SkillItem is one skill entry.
type SkillItem struct {
	ItemBase
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// Merge implements Item.
func (i *SkillItem) Merge(patch Item) error {
	p, ok := patch.(*SkillItem)
	if !ok {
		return &PatchTypeError{Want: "skills"}
	}
	mergeStr(&i.Name, p.Name)
	mergeStr(&i.Level, p.Level)
	mergeStr(&i.Category, p.Category)
	i.mergeBase(&p.ItemBase)
	return nil
}

// ProjectItem is one project entry.
type ProjectItem struct {
	ItemBase
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// Merge implements Item.
func (i *ProjectItem) Merge(patch Item) error {
	p, ok := patch.(*ProjectItem)
	if !ok {
		return &PatchTypeError{Want: "projects"}
	}
	mergeStr(&i.Name, p.Name)
	mergeStr(&i.URL, p.URL)
	mergeStr(&i.Technologies, p.Technologies)
	mergeStr(&i.StartDate, p.StartDate)
	mergeStr(&i.EndDate, p.EndDate)
	i.mergeBase(&p.ItemBase)
	return nil
}

// CertificationItem is one certification entry.
type CertificationItem struct {
	ItemBase
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	Date         string `json:"date,omitempty"`
	URL          string `json:"url,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
}

// Merge implements Item.
func (i *CertificationItem) Merge(patch Item) error {
	p, ok := patch.(*CertificationItem)
	if !ok {
		return &PatchTypeError{Want: "certifications"}
	}
	mergeStr(&i.Name, p.Name)
	mergeStr(&i.Issuer, p.Issuer)
	mergeStr(&i.Date, p.Date)
	mergeStr(&i.URL, p.URL)
	mergeStr(&i.CredentialID, p.CredentialID)
	i.mergeBase(&p.ItemBase)
	return nil
}

// CustomItem is one entry in a user-defined custom section.
type CustomItem struct {
	ItemBase
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Period   string `json:"period,omitempty"`
}

// Merge implements Item.
func (i *CustomItem) Merge(patch Item) error {
	p, ok := patch.(*CustomItem)
	if !ok {
		return &PatchTypeError{Want: "custom"}
	}
	mergeStr(&i.Title, p.Title)
	mergeStr(&i.Subtitle, p.Subtitle)
	mergeStr(&i.Period, p.Period)
	i.mergeBase(&p.ItemBase)
	return nil
}

// PatchTypeError indicates an update patch whose concrete type does not
// match the section it targets.
type PatchTypeError struct {
	Want string
}

func (e *PatchTypeError) Error() string {
	return "patch type does not match " + e.Want + " item"
}

func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// CustomSection is a user-defined section holding ordered items.
type CustomSection struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content,omitempty"`
	Items   []CustomItem `json:"items"`
}

// Sections is the ordered, keyed collection of resume sections. It is the
// canonical representation of a user's resume content. All mutation goes
// through the sections engine; readers treat it as a snapshot.
type Sections struct {
	SectionMeta    map[SectionKey]SectionMeta   `json:"sectionMeta"`
	Experience     []ExperienceItem             `json:"experience"`
	Education      []EducationItem              `json:"education"`
	Skills         []SkillItem                  `json:"skills"`
	Projects       []ProjectItem                `json:"projects"`
	Certifications []CertificationItem          `json:"certifications"`
	CustomSections map[SectionKey]CustomSection `json:"customSections,omitempty"`
}

// PersonalInfo holds the contact block rendered above the sections.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Document is the full editable resume content: personal info, sections and
// the explicit section order. Keys absent from SectionOrder fall back to the
// default built-in order.
type Document struct {
	PersonalInfo PersonalInfo `json:"data"`
	Sections     Sections     `json:"sections"`
	SectionOrder []SectionKey `json:"sectionOrder,omitempty"`
}

// NewDocument returns an empty document with metadata seeded for every
// built-in section. No section is structurally immutable.
func NewDocument() Document {
	meta := make(map[SectionKey]SectionMeta, 5)
	for key, name := range map[SectionKey]string{
		KeyExperience:     "Experience",
		KeyEducation:      "Education",
		KeySkills:         "Skills",
		KeyProjects:       "Projects",
		KeyCertifications: "Certifications",
	} {
		meta[key] = SectionMeta{Name: name, Deletable: true, Renamable: true}
	}
	return Document{Sections: Sections{SectionMeta: meta}}
}

// Clone returns a deep copy of the document. The engine applies every edit
// against a clone so a failed edit never leaves partial mutation behind.
func (d Document) Clone() Document {
	c := d
	c.SectionOrder = slices.Clone(d.SectionOrder)
	c.Sections = d.Sections.clone()
	return c
}

func (s Sections) clone() Sections {
	c := s
	c.SectionMeta = maps.Clone(s.SectionMeta)
	c.Experience = cloneItems(s.Experience)
	c.Education = cloneItems(s.Education)
	c.Skills = cloneItems(s.Skills)
	c.Projects = cloneItems(s.Projects)
	c.Certifications = cloneItems(s.Certifications)
	if s.CustomSections != nil {
		c.CustomSections = make(map[SectionKey]CustomSection, len(s.CustomSections))
		for key, cs := range s.CustomSections {
			cs.Items = cloneItems(cs.Items)
			c.CustomSections[key] = cs
		}
	}
	return c
}

func cloneItems[T any, PT interface {
	*T
	Item
}](items []T) []T {
	if items == nil {
		return nil
	}
	out := slices.Clone(items)
	for i := range out {
		base := PT(&out[i]).Base()
		*base = base.cloneBase()
	}
	return out
}
