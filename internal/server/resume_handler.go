package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// loadOwnedResume fetches a resume and checks ownership. A missing resume
// and someone else's resume are both reported as not found.
func (s *Server) loadOwnedResume(r *http.Request) (*db.Resume, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid resume id"}
	}
	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if resume == nil || resume.UserID != userID {
		return nil, &ErrResumeNotFound{ID: id}
	}
	return resume, nil
}

// handleCreateResume creates a resume seeded with an empty sections
// document.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TemplateID == "" {
		req.TemplateID = templates.DefaultID
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if _, err := templates.Get(req.TemplateID); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// A fresh document starts from the user's profile when one exists.
	doc := types.NewDocument()
	if profile, err := s.store.GetUserProfile(r.Context(), userID); err == nil && profile != nil {
		doc = profile.Clone()
	}

	resume, err := s.store.CreateResume(r.Context(), userID, req.Title, req.TemplateID, doc)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleListResumes lists the authenticated user's resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleGetResume returns one resume with its full document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume updates resume metadata (title, template).
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.TemplateID != "" {
		if _, err := templates.Get(req.TemplateID); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := s.store.UpdateResumeMeta(r.Context(), resume.ID, req.Title, req.TemplateID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	updated, err := s.store.GetResume(r.Context(), resume.ID)
	if err != nil || updated == nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to reload resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteResume deletes a resume permanently.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.DeleteResume(r.Context(), resume.ID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleApplyEdits applies an edit batch atomically and persists the
// result. On any failure the stored document is untouched.
func (s *Server) handleApplyEdits(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req editBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	edits, err := decodeEdits(req.Edits)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	updated, err := sections.ApplyAll(resume.Document, edits)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.UpdateResumeDocument(r.Context(), resume.ID, updated); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleReconcile commits selected parsed fields into the document, all
// or nothing.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadOwnedResume(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var parsed types.ParsedResume
	if err := json.NewDecoder(r.Body).Decode(&parsed); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := reconcile.Commit(resume.Document, parsed)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.UpdateResumeDocument(r.Context(), resume.ID, updated); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}
