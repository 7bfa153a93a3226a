package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/templates"
)

// handleListTemplates returns the template catalog.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, templates.List())
}

// handleGetTemplate returns one template by id.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := templates.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}
