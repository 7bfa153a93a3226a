package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// buildSequence binds the resume document into the render sequence, using
// the resume's template for the section order fallback.
func buildSequence(resume *db.Resume) *render.Sequence {
	fallback := []types.SectionKey(nil)
	if tmpl, err := templates.Get(resume.TemplateID); err == nil {
		fallback = tmpl.Styles.SectionOrder
	}
	return render.Build(&resume.Document, fallback)
}

// handleExportPDF renders the resume to PDF via headless Chrome.
// Query params: format (A4, Letter, Legal), filename.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	format, err := export.ParsePageFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	seq := buildSequence(resume)
	html, err := render.HTML(resume.Document.PersonalInfo, seq)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdf, err := export.PDF(r.Context(), html, format, s.exportCfg.Timeout)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filename := export.Filename(r.URL.Query().Get("filename"), resume.Title, "pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleExportDOCX renders the resume to a Word document.
func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	seq := buildSequence(resume)
	docx, err := export.DOCX(resume.Document.PersonalInfo, seq)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := export.Filename(r.URL.Query().Get("filename"), resume.Title, "docx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(docx)
}

// handleExportBundle renders PDF and DOCX concurrently and returns them
// zipped.
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	format, err := export.ParsePageFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	baseName := strings.TrimSuffix(export.Filename(r.URL.Query().Get("filename"), resume.Title, "zip"), ".zip")
	seq := buildSequence(resume)
	zipped, err := export.Bundle(r.Context(), resume.Document.PersonalInfo, seq, format, baseName, s.exportCfg.Timeout)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+baseName+`.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(zipped)
}
