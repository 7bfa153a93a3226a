package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/parse"
)

// handleUpload accepts a resume file and returns the parsed result with
// per-field confidence scores. Nothing is written to the document here;
// the client reviews the fields and commits them through the reconcile
// endpoint.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, parse.MaxUploadSize)
	if err := r.ParseMultipartForm(parse.MaxUploadSize); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read file")
		return
	}

	parsed, err := s.parser.File(r.Context(), header.Filename, data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}
