package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	doc := NewDocument()
	doc.PersonalInfo = PersonalInfo{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}
	doc.Sections.Experience = []ExperienceItem{
		{
			ItemBase: ItemBase{
				ID:          "exp-1",
				Description: "Wrote the first program.",
				BulletPoints: []BulletPoint{
					{ID: "b-1", Text: "Analytical engine notes"},
				},
			},
			Role:      "Engineer",
			Company:   "Babbage & Co",
			StartDate: "1842",
			EndDate:   "1843",
		},
	}
	doc.Sections.Skills = []SkillItem{
		{ItemBase: ItemBase{ID: "sk-1"}, Name: "Mathematics", Level: "Expert"},
	}
	doc.Sections.CustomSections = map[SectionKey]CustomSection{
		"publications": {
			ID:    "cs-1",
			Title: "Publications",
			Items: []CustomItem{
				{ItemBase: ItemBase{ID: "pub-1"}, Title: "Sketch of the Analytical Engine"},
			},
		},
	}
	doc.Sections.SectionMeta["publications"] = SectionMeta{Name: "Publications", Deletable: true, Renamable: true}
	doc.SectionOrder = []SectionKey{KeyExperience, "publications", KeySkills}
	return doc
}

func TestNewDocument_SeedsBuiltinMeta(t *testing.T) {
	doc := NewDocument()

	require.Len(t, doc.Sections.SectionMeta, len(BuiltinKeys()))
	for _, key := range BuiltinKeys() {
		meta, ok := doc.Sections.SectionMeta[key]
		require.True(t, ok, "missing meta for %s", key)
		assert.NotEmpty(t, meta.Name)
		assert.True(t, meta.Deletable)
		assert.True(t, meta.Renamable)
	}
}

func TestSectionKey_IsBuiltin(t *testing.T) {
	for _, key := range BuiltinKeys() {
		assert.True(t, key.IsBuiltin(), "%s should be builtin", key)
	}
	assert.False(t, SectionKey("publications").IsBuiltin())
}

func TestDocument_Clone_Independence(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	clone.PersonalInfo.Name = "Changed"
	clone.Sections.Experience[0].Role = "Changed"
	clone.Sections.Experience[0].BulletPoints[0].Text = "Changed"
	clone.Sections.SectionMeta[KeyExperience] = SectionMeta{Name: "Changed"}
	cs := clone.Sections.CustomSections["publications"]
	cs.Items[0].Title = "Changed"
	clone.Sections.CustomSections["publications"] = cs
	clone.SectionOrder[0] = "changed"

	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.Name)
	assert.Equal(t, "Engineer", doc.Sections.Experience[0].Role)
	assert.Equal(t, "Analytical engine notes", doc.Sections.Experience[0].BulletPoints[0].Text)
	assert.Equal(t, "Experience", doc.Sections.SectionMeta[KeyExperience].Name)
	assert.Equal(t, "Sketch of the Analytical Engine", doc.Sections.CustomSections["publications"].Items[0].Title)
	assert.Equal(t, KeyExperience, doc.SectionOrder[0])
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)
}

func TestDocument_MarshalsPersonalInfoAsData(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "data")
	assert.Contains(t, raw, "sections")
	assert.Contains(t, raw, "sectionOrder")
}

func TestExperienceItem_Merge_PartialPatch(t *testing.T) {
	item := &ExperienceItem{
		ItemBase: ItemBase{ID: "exp-1", Description: "Old description"},
		Role:     "Engineer",
		Company:  "Babbage & Co",
	}
	patch := &ExperienceItem{Role: "Lead Engineer"}

	require.NoError(t, item.Merge(patch))
	assert.Equal(t, "Lead Engineer", item.Role)
	assert.Equal(t, "Babbage & Co", item.Company, "empty patch field keeps existing value")
	assert.Equal(t, "Old description", item.Description)
}

func TestExperienceItem_Merge_ReplacesBulletsWholesale(t *testing.T) {
	item := &ExperienceItem{
		ItemBase: ItemBase{
			ID: "exp-1",
			BulletPoints: []BulletPoint{
				{ID: "b-1", Text: "one"},
				{ID: "b-2", Text: "two"},
			},
		},
	}
	patch := &ExperienceItem{
		ItemBase: ItemBase{
			BulletPoints: []BulletPoint{{ID: "b-3", Text: "three"}},
		},
	}

	require.NoError(t, item.Merge(patch))
	require.Len(t, item.BulletPoints, 1)
	assert.Equal(t, "three", item.BulletPoints[0].Text)
}

func TestExperienceItem_Merge_NilBulletsKeepsExisting(t *testing.T) {
	item := &ExperienceItem{
		ItemBase: ItemBase{
			ID:           "exp-1",
			BulletPoints: []BulletPoint{{ID: "b-1", Text: "one"}},
		},
	}
	patch := &ExperienceItem{Role: "Engineer"}

	require.NoError(t, item.Merge(patch))
	require.Len(t, item.BulletPoints, 1)
}

func TestMerge_WrongPatchType(t *testing.T) {
	item := &ExperienceItem{ItemBase: ItemBase{ID: "exp-1"}}
	patch := &SkillItem{Name: "Go"}

	err := item.Merge(patch)
	require.Error(t, err)
	var typeErr *PatchTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestSkillItem_Merge(t *testing.T) {
	item := &SkillItem{ItemBase: ItemBase{ID: "sk-1"}, Name: "Go", Level: "Intermediate"}
	patch := &SkillItem{Level: "Expert", Category: "Languages"}

	require.NoError(t, item.Merge(patch))
	assert.Equal(t, "Go", item.Name)
	assert.Equal(t, "Expert", item.Level)
	assert.Equal(t, "Languages", item.Category)
}
