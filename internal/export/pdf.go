package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single PDF render.
const DefaultTimeout = 60 * time.Second

// PDF rasterizes the rendered HTML page into a PDF using a headless Chrome
// instance. The call is bounded by timeout and fails with RenderTimeoutError
// rather than hanging; no partial PDF is ever returned.
func PDF(ctx context.Context, html string, format PageFormat, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if path := os.Getenv("CHROME_PATH"); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	// Chrome resolves file URLs more reliably than data URLs for multi-page
	// documents, so the page is staged in a temp directory.
	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to stage page: %w", err)
	}

	width, height := format.paper()
	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &RenderTimeoutError{Timeout: timeout}
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return pdf, nil
}
