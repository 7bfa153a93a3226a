package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/types"
)

// Bundle renders both export formats concurrently from the same sequence
// snapshot and returns them as a single zip archive. Either both renders
// succeed or the bundle fails as a whole.
func Bundle(ctx context.Context, info types.PersonalInfo, seq *render.Sequence, format PageFormat, baseName string, timeout time.Duration) ([]byte, error) {
	html, err := render.HTML(info, seq)
	if err != nil {
		return nil, err
	}

	var pdfBytes, docxBytes []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var pdfErr error
		pdfBytes, pdfErr = PDF(gctx, html, format, timeout)
		return pdfErr
	})
	g.Go(func() error {
		var docxErr error
		docxBytes, docxErr = DOCX(info, seq)
		return docxErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return zipFiles(map[string][]byte{
		Filename("", baseName, "pdf"):  pdfBytes,
		Filename("", baseName, "docx"): docxBytes,
	})
}

func zipFiles(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
