// Package schemas holds the JSON Schemas shipped with the resume builder.
package schemas

import _ "embed"

// ResumeDocument is the schema for a persisted resume document: personal
// data, sections and section order.
//
//go:embed resume_document.schema.json
var ResumeDocument []byte
