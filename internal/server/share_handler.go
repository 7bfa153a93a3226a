package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// shareLinkResponse is the body returned when a share link is created.
type shareLinkResponse struct {
	ShareLink db.ShareLink `json:"share_link"`
	URL       string       `json:"url"`
}

// handleCreateShareLink creates or replaces the public share link on a
// resume. The body is optional; without it the link never expires.
func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.ShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	link := db.ShareLink{
		ID:     uuid.New().String(),
		Active: true,
	}
	if req.ExpiresInDays > 0 {
		expires := time.Now().AddDate(0, 0, req.ExpiresInDays)
		link.ExpiresAt = &expires
	}

	if err := s.store.SetShareLink(r.Context(), resume.ID, link); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, shareLinkResponse{
		ShareLink: link,
		URL:       "/public/resumes/" + link.ID,
	})
}

// handleDeleteShareLink revokes the share link. Old link ids stop working
// immediately.
func (s *Server) handleDeleteShareLink(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.ClearShareLink(r.Context(), resume.ID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePublicResume serves the read-only public view of a shared resume.
// Revoked and expired links are indistinguishable from unknown ones.
func (s *Server) handlePublicResume(w http.ResponseWriter, r *http.Request) {
	linkID := r.PathValue("id")

	resume, err := s.store.GetResumeByShareLink(r.Context(), linkID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if resume == nil || !resume.ShareLink.Valid(time.Now()) {
		err := &ErrShareLinkNotFound{LinkID: linkID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume.Document)
}
