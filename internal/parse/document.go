package parse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// htmlText extracts visible text from an HTML resume, one line per block
// element so the heuristic extractor can detect headings and entries.
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, td, div").Each(func(_ int, sel *goquery.Selection) {
		// Skip containers; only leaf-level text becomes a line.
		if sel.Children().Is("h1, h2, h3, h4, p, li, td, div") {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if sel.Is("li") {
			text = "• " + text
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		if sel.Is("h1, h2, h3, h4") {
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return sb.String(), nil
}

// docxText extracts paragraph text from a DOCX file.
func docxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			sb.WriteString(fmt.Sprint(item))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// pdfText extracts plain text from a PDF file.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}
	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	text, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return string(text), nil
}
