// Package export implements the PDF and DOCX export adapters. Both consume
// the same render sequence snapshot and are pure transformations: an export
// failure never touches editor state.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PageFormat selects the PDF paper size.
type PageFormat string

// Supported page formats.
const (
	FormatA4     PageFormat = "A4"
	FormatLetter PageFormat = "Letter"
	FormatLegal  PageFormat = "Legal"
)

// InvalidFormatError indicates an unsupported page format.
type InvalidFormatError struct {
	Format string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("unsupported page format: %q (want A4, Letter or Legal)", e.Format)
}

// ParsePageFormat parses a page format string, case-insensitively. An empty
// string defaults to A4.
func ParsePageFormat(s string) (PageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a4":
		return FormatA4, nil
	case "letter":
		return FormatLetter, nil
	case "legal":
		return FormatLegal, nil
	}
	return "", &InvalidFormatError{Format: s}
}

// paper returns the page dimensions in inches, the unit Chrome's PrintToPDF
// expects.
func (f PageFormat) paper() (width, height float64) {
	switch f {
	case FormatLetter:
		return 8.5, 11
	case FormatLegal:
		return 8.5, 14
	default: // A4: 210mm x 297mm
		return 8.27, 11.69
	}
}

// RenderTimeoutError indicates the rendering engine exceeded its time bound.
// Exports fail with this instead of hanging indefinitely.
type RenderTimeoutError struct {
	Timeout time.Duration
}

func (e *RenderTimeoutError) Error() string {
	return fmt.Sprintf("render timed out after %s", e.Timeout)
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._ -]+`)

// Filename picks the download filename: the custom name when given,
// otherwise the resume title, sanitized and suffixed with ext.
func Filename(custom, title, ext string) string {
	name := strings.TrimSpace(custom)
	if name == "" {
		name = strings.TrimSpace(title)
	}
	if name == "" {
		name = "resume"
	}
	name = unsafeFilename.ReplaceAllString(name, "_")
	name = strings.TrimSuffix(name, "."+ext)
	return name + "." + ext
}
