// Package registry provides the section metadata registry: which section
// keys exist, their display names, and whether each section is deletable or
// renamable. Built-in keys are process-wide configuration; custom keys live
// inside each resume document.
package registry

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// NotFoundError indicates a section key with no metadata entry.
type NotFoundError struct {
	Key types.SectionKey
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("section not found: %s", e.Key)
}

// DuplicateKeyError indicates a custom key colliding with a built-in or an
// existing custom key.
type DuplicateKeyError struct {
	Key types.SectionKey
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("section key already exists: %s", e.Key)
}

// NotDeletableError indicates an attempt to unregister a section whose
// metadata marks it as not deletable.
type NotDeletableError struct {
	Key types.SectionKey
}

func (e *NotDeletableError) Error() string {
	return fmt.Sprintf("section is not deletable: %s", e.Key)
}

// NotRenamableError indicates an attempt to rename a section whose metadata
// marks it as not renamable.
type NotRenamableError struct {
	Key types.SectionKey
}

func (e *NotRenamableError) Error() string {
	return fmt.Sprintf("section is not renamable: %s", e.Key)
}

// Registry is pure metadata bookkeeping over a section metadata map. Wrap
// shares the underlying map with the caller, so mutations through the
// registry are visible on the wrapped document.
type Registry struct {
	meta map[types.SectionKey]types.SectionMeta
}

// Wrap returns a registry operating directly on the given metadata map.
func Wrap(meta map[types.SectionKey]types.SectionMeta) *Registry {
	return &Registry{meta: meta}
}

// GetMeta returns the metadata entry for key.
func (r *Registry) GetMeta(key types.SectionKey) (types.SectionMeta, error) {
	meta, ok := r.meta[key]
	if !ok {
		return types.SectionMeta{}, &NotFoundError{Key: key}
	}
	return meta, nil
}

// RegisterCustom registers a custom section key with the given display name.
// Custom sections are always deletable and renamable.
func (r *Registry) RegisterCustom(key types.SectionKey, name string) (types.SectionMeta, error) {
	if key.IsBuiltin() {
		return types.SectionMeta{}, &DuplicateKeyError{Key: key}
	}
	if _, ok := r.meta[key]; ok {
		return types.SectionMeta{}, &DuplicateKeyError{Key: key}
	}
	meta := types.SectionMeta{Name: name, Deletable: true, Renamable: true}
	r.meta[key] = meta
	return meta, nil
}

// Unregister removes the metadata entry for key. Removing a non-deletable
// section is reported as a validation failure, not a silent drop.
func (r *Registry) Unregister(key types.SectionKey) error {
	meta, ok := r.meta[key]
	if !ok {
		return &NotFoundError{Key: key}
	}
	if !meta.Deletable {
		return &NotDeletableError{Key: key}
	}
	delete(r.meta, key)
	return nil
}

// Rename updates the display name of a section. It fails when the section
// metadata marks it as not renamable.
func (r *Registry) Rename(key types.SectionKey, name string) error {
	meta, ok := r.meta[key]
	if !ok {
		return &NotFoundError{Key: key}
	}
	if !meta.Renamable {
		return &NotRenamableError{Key: key}
	}
	meta.Name = name
	r.meta[key] = meta
	return nil
}
