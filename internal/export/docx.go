package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	docxNameSize    = "40" // half-points
	docxHeadingSize = "26"
	docxBodySize    = "22"
	docxMutedColor  = "555555"
)

// DOCX builds a Word document from the render sequence. The sequence is
// traversed exactly as the preview and PDF adapters traverse it, so all
// three outputs agree on section order and filtering.
func DOCX(info types.PersonalInfo, seq *render.Sequence) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	if info.Name != "" {
		doc.AddParagraph().AddText(info.Name).Size(docxNameSize).Bold()
	}
	var contact []string
	for _, part := range []string{info.Email, info.Phone, info.Location, info.Website} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	if len(contact) > 0 {
		doc.AddParagraph().AddText(strings.Join(contact, "  |  ")).Size(docxBodySize).Color(docxMutedColor)
	}
	if info.Summary != "" {
		doc.AddParagraph().AddText(info.Summary).Size(docxBodySize)
	}

	for _, block := range seq.Blocks() {
		doc.AddParagraph().AddText(strings.ToUpper(block.Title)).Size(docxHeadingSize).Bold()
		for _, item := range block.Items {
			if item.Heading != "" {
				head := doc.AddParagraph()
				head.AddText(item.Heading).Size(docxBodySize).Bold()
				if item.Meta != "" {
					head.AddText("    " + item.Meta).Size(docxBodySize).Color(docxMutedColor)
				}
			}
			if item.Subheading != "" {
				doc.AddParagraph().AddText(item.Subheading).Size(docxBodySize).Italic()
			}
			if item.Description != "" {
				doc.AddParagraph().AddText(item.Description).Size(docxBodySize)
			}
			for _, bullet := range item.Bullets {
				doc.AddParagraph().AddText("• " + bullet).Size(docxBodySize)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("docx generation failed: %w", err)
	}
	return buf.Bytes(), nil
}
