package sections

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Slugify derives a section key from a display name: lowercase with every
// whitespace run collapsed to a single hyphen. "My New Section" becomes
// "my-new-section". No uniquification suffix is applied; a colliding name is
// rejected at registration time with DuplicateKey.
func Slugify(name string) types.SectionKey {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return types.SectionKey(strings.Join(fields, "-"))
}
