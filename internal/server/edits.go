package server

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
)

// editRequest is the wire form of one edit in a batch. Op selects the
// edit; the remaining fields are op-specific.
type editRequest struct {
	Op       string             `json:"op"`
	Section  types.SectionKey   `json:"section,omitempty"`
	ItemID   string             `json:"itemId,omitempty"`
	BulletID string             `json:"bulletId,omitempty"`
	Name     string             `json:"name,omitempty"`
	Field    string             `json:"field,omitempty"`
	Value    string             `json:"value,omitempty"`
	Text     string             `json:"text,omitempty"`
	Order    []types.SectionKey `json:"order,omitempty"`
	Item     json.RawMessage    `json:"item,omitempty"`
	Patch    json.RawMessage    `json:"patch,omitempty"`
}

// editBatchRequest is the body of POST /resumes/{id}/edits.
type editBatchRequest struct {
	Edits []editRequest `json:"edits"`
}

// decodeEdits converts a wire batch into engine edits. Decoding failures
// reject the whole batch, matching the engine's all-or-nothing apply.
func decodeEdits(reqs []editRequest) ([]sections.Edit, error) {
	if len(reqs) == 0 {
		return nil, &ErrValidation{Field: "edits", Message: "at least one edit is required"}
	}
	edits := make([]sections.Edit, 0, len(reqs))
	for i, req := range reqs {
		edit, err := decodeEdit(req)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

func decodeEdit(req editRequest) (sections.Edit, error) {
	switch req.Op {
	case "add_item":
		item, err := decodeItem(req.Section, req.Item)
		if err != nil {
			return nil, err
		}
		return sections.AddItem{Section: req.Section, Item: item}, nil
	case "update_item":
		patch, err := decodeItem(req.Section, req.Patch)
		if err != nil {
			return nil, err
		}
		return sections.UpdateItem{Section: req.Section, ItemID: req.ItemID, Patch: patch}, nil
	case "remove_item":
		return sections.RemoveItem{Section: req.Section, ItemID: req.ItemID}, nil
	case "add_section":
		return sections.AddCustomSection{Name: req.Name}, nil
	case "remove_section":
		return sections.RemoveCustomSection{Key: req.Section}, nil
	case "rename_section":
		return sections.RenameSection{Key: req.Section, Name: req.Name}, nil
	case "add_bullet":
		return sections.AddBullet{Section: req.Section, ItemID: req.ItemID, Text: req.Text}, nil
	case "remove_bullet":
		return sections.RemoveBullet{Section: req.Section, ItemID: req.ItemID, BulletID: req.BulletID}, nil
	case "reorder_sections":
		return sections.ReorderSections{Order: req.Order}, nil
	case "set_personal":
		return sections.SetPersonalField{Field: req.Field, Value: req.Value}, nil
	default:
		return nil, &ErrValidation{Field: "op", Message: "unknown edit op: " + req.Op}
	}
}

// decodeItem unmarshals the section-specific item shape. Custom sections
// all share the generic item type.
func decodeItem(section types.SectionKey, raw json.RawMessage) (types.Item, error) {
	if len(raw) == 0 {
		return nil, &ErrValidation{Field: "item", Message: "item payload is required"}
	}

	var item types.Item
	switch section {
	case types.KeyExperience:
		item = &types.ExperienceItem{}
	case types.KeyEducation:
		item = &types.EducationItem{}
	case types.KeySkills:
		item = &types.SkillItem{}
	case types.KeyProjects:
		item = &types.ProjectItem{}
	case types.KeyCertifications:
		item = &types.CertificationItem{}
	default:
		item = &types.CustomItem{}
	}

	if err := json.Unmarshal(raw, item); err != nil {
		return nil, &ErrValidation{Field: "item", Message: "invalid item payload: " + err.Error()}
	}
	return item, nil
}
