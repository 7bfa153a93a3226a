// Package parse extracts structured, confidence-scored resume fields from
// uploaded files. A heuristic text extractor always runs; when a language
// model client is configured its output refines the heuristic result.
// Extracted values are candidates for user review, not committed data.
package parse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// MaxUploadSize caps accepted resume files at 10 MiB.
const MaxUploadSize = 10 << 20

// UnsupportedFormatError indicates a file type the parser cannot read.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (want pdf, docx, html, txt or md)", e.Filename)
}

// Parser turns an uploaded resume file into a ParsedResume.
type Parser struct {
	llm llm.Client // nil disables LLM refinement
}

// New creates a parser. client may be nil.
func New(client llm.Client) *Parser {
	return &Parser{llm: client}
}

// File extracts a ParsedResume from an uploaded file, dispatching on the
// file extension.
func (p *Parser) File(ctx context.Context, filename string, data []byte) (types.ParsedResume, error) {
	if len(data) == 0 {
		return types.ParsedResume{}, fmt.Errorf("empty file: %s", filename)
	}
	if len(data) > MaxUploadSize {
		return types.ParsedResume{}, fmt.Errorf("file too large: %d bytes (max %d)", len(data), MaxUploadSize)
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	case ".html", ".htm":
		text, err = htmlText(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return types.ParsedResume{}, &UnsupportedFormatError{Filename: filename}
	}
	if err != nil {
		return types.ParsedResume{}, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	parsed := ExtractText(text)
	if p.llm != nil {
		if refined, refineErr := p.refine(ctx, text); refineErr == nil {
			parsed = merge(parsed, refined)
		}
		// LLM refinement failures are non-fatal; the heuristic result stands.
	}
	return parsed, nil
}
