package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

const maxProfileBytes = 1 << 20

// handleGetProfile returns the user's profile sections document. A user
// without a saved profile gets an empty document rather than a 404.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.store.GetUserProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		doc := types.NewDocument()
		profile = &doc
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile validates the incoming document against the JSON
// schema before it is persisted, so malformed section payloads never
// reach storage.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxProfileBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := schemas.ValidateDocument(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var doc types.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpdateUserProfile(r.Context(), userID, doc); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}
