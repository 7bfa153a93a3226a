package sections

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/registry"
	"github.com/jonathan/resume-builder/internal/types"
)

// Edit is one logical change to a resume document. Edits mutate the clone
// they are handed; Apply guarantees the caller's document is untouched on
// failure.
type Edit interface {
	apply(doc *types.Document) error
}

// Apply applies a single edit and returns the new document state. On error
// the input document is returned unchanged.
func Apply(doc types.Document, edit Edit) (types.Document, error) {
	clone := doc.Clone()
	if err := edit.apply(&clone); err != nil {
		return doc, err
	}
	return clone, nil
}

// ApplyAll applies a batch of edits atomically: either every edit applies in
// order or the input document is returned unchanged with the first error.
// Reconciliation commits rely on this all-or-nothing discipline.
func ApplyAll(doc types.Document, edits []Edit) (types.Document, error) {
	clone := doc.Clone()
	for i, edit := range edits {
		if err := edit.apply(&clone); err != nil {
			return doc, fmt.Errorf("edit %d: %w", i, err)
		}
	}
	return clone, nil
}

// AddItem appends an item to a section. The item id is assigned when absent,
// as are missing bullet point ids.
type AddItem struct {
	Section types.SectionKey
	Item    types.Item
}

func (e AddItem) apply(doc *types.Document) error {
	if err := requireSection(doc, e.Section); err != nil {
		return err
	}
	if e.Item == nil {
		return &ValidationError{Message: "item is required"}
	}
	// Ids are assigned into a copy; the caller's item stays untouched so
	// the same edit value can be applied again.
	item := cloneItem(e.Item)
	base := item.Base()
	if base.ID != "" && itemExists(doc, e.Section, base.ID) {
		return &ValidationError{Message: "item id already exists: " + base.ID}
	}
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	for i := range base.BulletPoints {
		if base.BulletPoints[i].ID == "" {
			base.BulletPoints[i].ID = uuid.New().String()
		}
	}
	return appendItem(doc, e.Section, item)
}

func cloneItem(item types.Item) types.Item {
	switch v := item.(type) {
	case *types.ExperienceItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	case *types.EducationItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	case *types.SkillItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	case *types.ProjectItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	case *types.CertificationItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	case *types.CustomItem:
		c := *v
		c.BulletPoints = slices.Clone(v.BulletPoints)
		return &c
	default:
		return item
	}
}

// UpdateItem merges patch fields into an existing item. Non-empty patch
// fields overwrite; bullet points are a whole-list replacement. The item id
// is preserved.
type UpdateItem struct {
	Section types.SectionKey
	ItemID  string
	Patch   types.Item
}

func (e UpdateItem) apply(doc *types.Document) error {
	item, err := findItem(doc, e.Section, e.ItemID)
	if err != nil {
		return err
	}
	if e.Patch == nil {
		return &ValidationError{Message: "patch is required"}
	}
	if err := item.Merge(e.Patch); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	item.Base().ID = e.ItemID
	return nil
}

// RemoveItem removes an item in place. Remaining items keep their ids; the
// removed id is never reused.
type RemoveItem struct {
	Section types.SectionKey
	ItemID  string
}

func (e RemoveItem) apply(doc *types.Document) error {
	if err := requireSection(doc, e.Section); err != nil {
		return err
	}
	if !removeItem(doc, e.Section, e.ItemID) {
		return &ItemNotFoundError{Section: e.Section, ItemID: e.ItemID}
	}
	return nil
}

// AddCustomSection creates a custom section whose key is the slug of the
// given name, registering metadata (deletable, renamable) and an empty item
// list atomically. A colliding key fails with DuplicateKey.
type AddCustomSection struct {
	Name string
}

func (e AddCustomSection) apply(doc *types.Document) error {
	key := Slugify(e.Name)
	if key == "" {
		return &ValidationError{Message: "section name is required"}
	}
	if doc.Sections.SectionMeta == nil {
		doc.Sections.SectionMeta = make(map[types.SectionKey]types.SectionMeta)
	}
	reg := registry.Wrap(doc.Sections.SectionMeta)
	if _, err := reg.RegisterCustom(key, e.Name); err != nil {
		return err
	}
	if doc.Sections.CustomSections == nil {
		doc.Sections.CustomSections = make(map[types.SectionKey]types.CustomSection)
	}
	doc.Sections.CustomSections[key] = types.CustomSection{
		ID:    uuid.New().String(),
		Title: e.Name,
		Items: []types.CustomItem{},
	}
	if len(doc.SectionOrder) > 0 && !slices.Contains(doc.SectionOrder, key) {
		doc.SectionOrder = append(doc.SectionOrder, key)
	}
	return nil
}

// Key returns the section key the edit derives from its name.
func (e AddCustomSection) Key() types.SectionKey {
	return Slugify(e.Name)
}

// RemoveCustomSection removes a custom section and its metadata entry
// atomically.
type RemoveCustomSection struct {
	Key types.SectionKey
}

func (e RemoveCustomSection) apply(doc *types.Document) error {
	if _, ok := doc.Sections.CustomSections[e.Key]; !ok {
		return &registry.NotFoundError{Key: e.Key}
	}
	reg := registry.Wrap(doc.Sections.SectionMeta)
	if err := reg.Unregister(e.Key); err != nil {
		return err
	}
	delete(doc.Sections.CustomSections, e.Key)
	doc.SectionOrder = slices.DeleteFunc(doc.SectionOrder, func(k types.SectionKey) bool {
		return k == e.Key
	})
	return nil
}

// RenameSection changes a section's display name. The key stays stable so
// existing references keep working. Custom section titles follow the
// metadata.
type RenameSection struct {
	Key  types.SectionKey
	Name string
}

func (e RenameSection) apply(doc *types.Document) error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Message: "section name is required"}
	}
	reg := registry.Wrap(doc.Sections.SectionMeta)
	if err := reg.Rename(e.Key, e.Name); err != nil {
		return err
	}
	if cs, ok := doc.Sections.CustomSections[e.Key]; ok {
		cs.Title = e.Name
		doc.Sections.CustomSections[e.Key] = cs
	}
	return nil
}

// AddBullet appends a bullet point to the identified item.
type AddBullet struct {
	Section types.SectionKey
	ItemID  string
	Text    string
}

func (e AddBullet) apply(doc *types.Document) error {
	item, err := findItem(doc, e.Section, e.ItemID)
	if err != nil {
		return err
	}
	base := item.Base()
	base.BulletPoints = append(base.BulletPoints, types.BulletPoint{
		ID:   uuid.New().String(),
		Text: e.Text,
	})
	return nil
}

// RemoveBullet removes a bullet point from the identified item.
type RemoveBullet struct {
	Section  types.SectionKey
	ItemID   string
	BulletID string
}

// BulletNotFoundError indicates a bullet id absent from its item.
type BulletNotFoundError struct {
	Section  types.SectionKey
	ItemID   string
	BulletID string
}

func (e *BulletNotFoundError) Error() string {
	return fmt.Sprintf("bullet not found in %s/%s: %s", e.Section, e.ItemID, e.BulletID)
}

func (e RemoveBullet) apply(doc *types.Document) error {
	item, err := findItem(doc, e.Section, e.ItemID)
	if err != nil {
		return err
	}
	base := item.Base()
	before := len(base.BulletPoints)
	base.BulletPoints = slices.DeleteFunc(base.BulletPoints, func(b types.BulletPoint) bool {
		return b.ID == e.BulletID
	})
	if len(base.BulletPoints) == before {
		return &BulletNotFoundError{Section: e.Section, ItemID: e.ItemID, BulletID: e.BulletID}
	}
	return nil
}

// ReorderSections replaces the explicit section order. Every key must exist
// in the document; duplicates are rejected. Partial orders are allowed, with
// omitted keys falling back to the default order at render time.
type ReorderSections struct {
	Order []types.SectionKey
}

func (e ReorderSections) apply(doc *types.Document) error {
	seen := make(map[types.SectionKey]bool, len(e.Order))
	for _, key := range e.Order {
		if seen[key] {
			return &InvalidOrderError{Key: key}
		}
		seen[key] = true
		if err := requireSection(doc, key); err != nil {
			return &InvalidOrderError{Key: key}
		}
	}
	doc.SectionOrder = slices.Clone(e.Order)
	return nil
}

// SetPersonalField updates one personal info field by name.
type SetPersonalField struct {
	Field string
	Value string
}

func (e SetPersonalField) apply(doc *types.Document) error {
	switch e.Field {
	case "name":
		doc.PersonalInfo.Name = e.Value
	case "email":
		doc.PersonalInfo.Email = e.Value
	case "phone":
		doc.PersonalInfo.Phone = e.Value
	case "location":
		doc.PersonalInfo.Location = e.Value
	case "website":
		doc.PersonalInfo.Website = e.Value
	case "summary":
		doc.PersonalInfo.Summary = e.Value
	default:
		return &ValidationError{Message: "unknown personal info field: " + e.Field}
	}
	return nil
}
