package sections

import (
	"github.com/jonathan/resume-builder/internal/types"
)

type itemPtr[T any] interface {
	*T
	types.Item
}

func findIn[T any, PT itemPtr[T]](list []T, id string) types.Item {
	for i := range list {
		p := PT(&list[i])
		if p.Base().ID == id {
			return p
		}
	}
	return nil
}

func deleteByID[T any, PT itemPtr[T]](list []T, id string) ([]T, bool) {
	for i := range list {
		if PT(&list[i]).Base().ID == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// requireSection verifies that key is addressable by an edit: either a
// built-in section, or a registered custom section present in the document.
func requireSection(doc *types.Document, key types.SectionKey) error {
	if key.IsBuiltin() {
		return nil
	}
	if _, ok := doc.Sections.SectionMeta[key]; !ok {
		return &UnknownSectionError{Key: key}
	}
	if _, ok := doc.Sections.CustomSections[key]; !ok {
		return &UnknownSectionError{Key: key}
	}
	return nil
}

func appendItem(doc *types.Document, key types.SectionKey, item types.Item) error {
	s := &doc.Sections
	switch key {
	case types.KeyExperience:
		v, ok := item.(*types.ExperienceItem)
		if !ok {
			return &ValidationError{Message: "experience section requires an experience item"}
		}
		s.Experience = append(s.Experience, *v)
	case types.KeyEducation:
		v, ok := item.(*types.EducationItem)
		if !ok {
			return &ValidationError{Message: "education section requires an education item"}
		}
		s.Education = append(s.Education, *v)
	case types.KeySkills:
		v, ok := item.(*types.SkillItem)
		if !ok {
			return &ValidationError{Message: "skills section requires a skill item"}
		}
		s.Skills = append(s.Skills, *v)
	case types.KeyProjects:
		v, ok := item.(*types.ProjectItem)
		if !ok {
			return &ValidationError{Message: "projects section requires a project item"}
		}
		s.Projects = append(s.Projects, *v)
	case types.KeyCertifications:
		v, ok := item.(*types.CertificationItem)
		if !ok {
			return &ValidationError{Message: "certifications section requires a certification item"}
		}
		s.Certifications = append(s.Certifications, *v)
	default:
		v, ok := item.(*types.CustomItem)
		if !ok {
			return &ValidationError{Message: "custom section requires a custom item"}
		}
		cs := s.CustomSections[key]
		cs.Items = append(cs.Items, *v)
		s.CustomSections[key] = cs
	}
	return nil
}

func findItem(doc *types.Document, key types.SectionKey, id string) (types.Item, error) {
	if err := requireSection(doc, key); err != nil {
		return nil, err
	}
	s := &doc.Sections
	var item types.Item
	switch key {
	case types.KeyExperience:
		item = findIn[types.ExperienceItem](s.Experience, id)
	case types.KeyEducation:
		item = findIn[types.EducationItem](s.Education, id)
	case types.KeySkills:
		item = findIn[types.SkillItem](s.Skills, id)
	case types.KeyProjects:
		item = findIn[types.ProjectItem](s.Projects, id)
	case types.KeyCertifications:
		item = findIn[types.CertificationItem](s.Certifications, id)
	default:
		cs := s.CustomSections[key]
		item = findIn[types.CustomItem](cs.Items, id)
	}
	if item == nil {
		return nil, &ItemNotFoundError{Section: key, ItemID: id}
	}
	return item, nil
}

func itemExists(doc *types.Document, key types.SectionKey, id string) bool {
	item, err := findItem(doc, key, id)
	return err == nil && item != nil
}

func removeItem(doc *types.Document, key types.SectionKey, id string) bool {
	s := &doc.Sections
	var removed bool
	switch key {
	case types.KeyExperience:
		s.Experience, removed = deleteByID[types.ExperienceItem](s.Experience, id)
	case types.KeyEducation:
		s.Education, removed = deleteByID[types.EducationItem](s.Education, id)
	case types.KeySkills:
		s.Skills, removed = deleteByID[types.SkillItem](s.Skills, id)
	case types.KeyProjects:
		s.Projects, removed = deleteByID[types.ProjectItem](s.Projects, id)
	case types.KeyCertifications:
		s.Certifications, removed = deleteByID[types.CertificationItem](s.Certifications, id)
	default:
		cs := s.CustomSections[key]
		cs.Items, removed = deleteByID[types.CustomItem](cs.Items, id)
		s.CustomSections[key] = cs
	}
	return removed
}
