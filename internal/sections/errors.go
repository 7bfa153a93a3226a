// Package sections implements the merge/update engine for resume documents.
// Every edit is a pure transform: it is applied against a deep clone of the
// document and either the whole edit applies or the input is returned
// unchanged.
package sections

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// UnknownSectionError indicates an edit targeting a section key with no
// metadata entry and no built-in fallback.
type UnknownSectionError struct {
	Key types.SectionKey
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %s", e.Key)
}

// ItemNotFoundError indicates an edit targeting an item id that does not
// exist in the section.
type ItemNotFoundError struct {
	Section types.SectionKey
	ItemID  string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found in %s: %s", e.Section, e.ItemID)
}

// InvalidOrderError indicates a section reorder referencing a key absent
// from the document.
type InvalidOrderError struct {
	Key types.SectionKey
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid section order: unknown key %s", e.Key)
}

// ValidationError indicates an edit rejected before application, for example
// an empty custom section name or a patch of the wrong item type.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
