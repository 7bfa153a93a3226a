package registry

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	doc := types.NewDocument()
	return Wrap(doc.Sections.SectionMeta)
}

func TestRegistry_GetMeta(t *testing.T) {
	reg := testRegistry()

	meta, err := reg.GetMeta(types.KeyExperience)
	require.NoError(t, err)
	assert.Equal(t, "Experience", meta.Name)

	_, err = reg.GetMeta("nope")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistry_RegisterCustom(t *testing.T) {
	reg := testRegistry()

	meta, err := reg.RegisterCustom("volunteering", "Volunteering")
	require.NoError(t, err)
	assert.Equal(t, "Volunteering", meta.Name)
	assert.True(t, meta.Deletable)
	assert.True(t, meta.Renamable)

	got, err := reg.GetMeta("volunteering")
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestRegistry_RegisterCustom_DuplicateKey(t *testing.T) {
	reg := testRegistry()

	_, err := reg.RegisterCustom("volunteering", "Volunteering")
	require.NoError(t, err)

	_, err = reg.RegisterCustom("volunteering", "Volunteering Again")
	var dup *DuplicateKeyError
	assert.ErrorAs(t, err, &dup)
}

func TestRegistry_RegisterCustom_BuiltinCollision(t *testing.T) {
	reg := testRegistry()

	_, err := reg.RegisterCustom(types.KeySkills, "Skills 2")
	var dup *DuplicateKeyError
	assert.ErrorAs(t, err, &dup)
}

func TestRegistry_Unregister(t *testing.T) {
	reg := testRegistry()

	_, err := reg.RegisterCustom("volunteering", "Volunteering")
	require.NoError(t, err)
	require.NoError(t, reg.Unregister("volunteering"))

	_, err = reg.GetMeta("volunteering")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistry_Unregister_NotDeletable(t *testing.T) {
	meta := map[types.SectionKey]types.SectionMeta{
		"pinned": {Name: "Pinned", Deletable: false, Renamable: true},
	}
	reg := Wrap(meta)

	err := reg.Unregister("pinned")
	var notDeletable *NotDeletableError
	assert.ErrorAs(t, err, &notDeletable)
}

func TestRegistry_Rename(t *testing.T) {
	reg := testRegistry()

	require.NoError(t, reg.Rename(types.KeyExperience, "Work History"))
	meta, err := reg.GetMeta(types.KeyExperience)
	require.NoError(t, err)
	assert.Equal(t, "Work History", meta.Name)
}

func TestRegistry_Rename_NotRenamable(t *testing.T) {
	meta := map[types.SectionKey]types.SectionMeta{
		"fixed": {Name: "Fixed", Deletable: true, Renamable: false},
	}
	reg := Wrap(meta)

	err := reg.Rename("fixed", "Other")
	var notRenamable *NotRenamableError
	assert.ErrorAs(t, err, &notRenamable)
}
