package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	renderOutDir   string
	renderFormat   string
	renderPage     string
	renderTemplate string
)

var renderCmd = &cobra.Command{
	Use:   "render <document.json>",
	Short: "Render a resume document file to PDF and/or DOCX",
	Long:  `Render a resume sections document (the same JSON shape the API stores) to PDF and/or DOCX without running the server. PDF rendering requires Chrome or Chromium.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringVar(&renderFormat, "format", "both", "Output format: pdf, docx, or both")
	renderCmd.Flags().StringVar(&renderPage, "page", "A4", "PDF page size: A4, Letter, or Legal")
	renderCmd.Flags().StringVar(&renderTemplate, "template", templates.DefaultID, "Template id for the section order fallback")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := schemas.ValidateDocument(body); err != nil {
		return err
	}
	var doc types.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	tmpl, err := templates.Get(renderTemplate)
	if err != nil {
		return err
	}
	page, err := export.ParsePageFormat(renderPage)
	if err != nil {
		return err
	}

	wantPDF, wantDOCX, err := renderTargets(renderFormat)
	if err != nil {
		return err
	}

	seq := render.Build(&doc, tmpl.Styles.SectionOrder)
	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

	if wantPDF {
		html, err := render.HTML(doc.PersonalInfo, seq)
		if err != nil {
			return err
		}
		exportCfg, err := config.NewExportConfig()
		if err != nil {
			return err
		}
		pdf, err := export.PDF(context.Background(), html, page, exportCfg.Timeout)
		if err != nil {
			return err
		}
		if err := writeOutput(base+".pdf", pdf, cmd); err != nil {
			return err
		}
	}

	if wantDOCX {
		docx, err := export.DOCX(doc.PersonalInfo, seq)
		if err != nil {
			return err
		}
		if err := writeOutput(base+".docx", docx, cmd); err != nil {
			return err
		}
	}

	return nil
}

func renderTargets(format string) (pdf, docx bool, err error) {
	switch strings.ToLower(format) {
	case "pdf":
		return true, false, nil
	case "docx":
		return false, true, nil
	case "both":
		return true, true, nil
	}
	return false, false, fmt.Errorf("unknown format %q (want pdf, docx, or both)", format)
}

func writeOutput(name string, data []byte, cmd *cobra.Command) error {
	path := filepath.Join(renderOutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("wrote %s (%d bytes)\n", path, len(data))
	return nil
}
