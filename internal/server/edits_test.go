package server

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEdits_Empty(t *testing.T) {
	_, err := decodeEdits(nil)
	var ve *ErrValidation
	require.ErrorAs(t, err, &ve)
}

func TestDecodeEdits_UnknownOp(t *testing.T) {
	_, err := decodeEdits([]editRequest{{Op: "explode"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edit 0")
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestDecodeEdits_TypedItems(t *testing.T) {
	edits, err := decodeEdits([]editRequest{
		{Op: "add_item", Section: types.KeyExperience,
			Item: json.RawMessage(`{"role":"Engineer","company":"Babbage & Co"}`)},
		{Op: "add_item", Section: "publications",
			Item: json.RawMessage(`{"title":"Note G"}`)},
	})
	require.NoError(t, err)
	require.Len(t, edits, 2)

	first, ok := edits[0].(sections.AddItem)
	require.True(t, ok)
	exp, ok := first.Item.(*types.ExperienceItem)
	require.True(t, ok, "builtin sections decode to their typed item")
	assert.Equal(t, "Engineer", exp.Role)

	second := edits[1].(sections.AddItem)
	custom, ok := second.Item.(*types.CustomItem)
	require.True(t, ok, "custom sections share the generic item type")
	assert.Equal(t, "Note G", custom.Title)
}

func TestDecodeEdits_MissingItemPayload(t *testing.T) {
	_, err := decodeEdits([]editRequest{{Op: "add_item", Section: types.KeySkills}})
	var ve *ErrValidation
	require.ErrorAs(t, err, &ve)
}

func TestDecodeEdits_AllOps(t *testing.T) {
	reqs := []editRequest{
		{Op: "add_item", Section: types.KeySkills, Item: json.RawMessage(`{"name":"Go"}`)},
		{Op: "update_item", Section: types.KeySkills, ItemID: "sk-1", Patch: json.RawMessage(`{"name":"Go"}`)},
		{Op: "remove_item", Section: types.KeySkills, ItemID: "sk-1"},
		{Op: "add_section", Name: "Publications"},
		{Op: "remove_section", Section: "publications"},
		{Op: "rename_section", Section: "publications", Name: "Papers"},
		{Op: "add_bullet", Section: types.KeyExperience, ItemID: "exp-1", Text: "did a thing"},
		{Op: "remove_bullet", Section: types.KeyExperience, ItemID: "exp-1", BulletID: "b-1"},
		{Op: "reorder_sections", Order: []types.SectionKey{types.KeySkills, types.KeyExperience}},
		{Op: "set_personal", Field: "name", Value: "Ada"},
	}
	edits, err := decodeEdits(reqs)
	require.NoError(t, err)
	assert.Len(t, edits, len(reqs))
}
