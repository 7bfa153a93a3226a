package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createResume(t *testing.T, s *Server, userID uuid.UUID, title string) db.Resume {
	t.Helper()

	body := `{"title":"` + title + `"}`
	req := authedRequest(http.MethodPost, "/resumes", strings.NewReader(body), userID)
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resume db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	return resume
}

func TestCreateResume_DefaultsTemplate(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()

	resume := createResume(t, s, userID, "Backend Engineer")
	assert.Equal(t, "Backend Engineer", resume.Title)
	assert.Equal(t, "classic", resume.TemplateID)
	assert.Equal(t, userID, resume.UserID)
	assert.NotNil(t, resume.Document.Sections.SectionMeta)
}

func TestCreateResume_UnknownTemplate(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	body := `{"title":"Backend Engineer","template":"brutalist"}`
	req := authedRequest(http.MethodPost, "/resumes", strings.NewReader(body), uuid.New())
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateResume_MissingTitle(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := authedRequest(http.MethodPost, "/resumes", strings.NewReader(`{}`), uuid.New())
	rec := httptest.NewRecorder()
	s.handleCreateResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateResume_SeedsFromProfile(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := uuid.New()

	profile := types.NewDocument()
	profile.PersonalInfo.Name = "Ada Lovelace"
	profile.Sections.Skills = []types.SkillItem{
		{ItemBase: types.ItemBase{ID: "sk-1"}, Name: "Mathematics"},
	}
	require.NoError(t, store.UpdateUserProfile(t.Context(), userID, profile))

	resume := createResume(t, s, userID, "Backend Engineer")
	assert.Equal(t, "Ada Lovelace", resume.Document.PersonalInfo.Name)
	require.Len(t, resume.Document.Sections.Skills, 1)
	assert.Equal(t, "Mathematics", resume.Document.Sections.Skills[0].Name)
}

func TestListResumes(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()

	req := authedRequest(http.MethodGet, "/resumes", nil, userID)
	rec := httptest.NewRecorder()
	s.handleListResumes(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()), "no resumes is an empty array, not null")

	createResume(t, s, userID, "First")
	createResume(t, s, uuid.New(), "Someone else's")

	rec = httptest.NewRecorder()
	s.handleListResumes(rec, authedRequest(http.MethodGet, "/resumes", nil, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resumes []db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resumes))
	require.Len(t, resumes, 1, "only the owner's resumes are listed")
	assert.Equal(t, "First", resumes[0].Title)
}

func TestGetResume(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	req := resumeRequest(http.MethodGet, "/resumes/"+resume.ID.String(), nil, userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleGetResume(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, resume.ID, got.ID)
}

func TestGetResume_OtherUserIsNotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	resume := createResume(t, s, uuid.New(), "Backend Engineer")

	req := resumeRequest(http.MethodGet, "/resumes/"+resume.ID.String(), nil, uuid.New(), resume.ID)
	rec := httptest.NewRecorder()
	s.handleGetResume(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code, "another user's resume looks missing")
}

func TestGetResume_InvalidID(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := authedRequest(http.MethodGet, "/resumes/not-a-uuid", nil, uuid.New())
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	s.handleGetResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateResume(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Old Title")

	body := `{"title":"New Title","template":"modern"}`
	req := resumeRequest(http.MethodPut, "/resumes/"+resume.ID.String(), strings.NewReader(body), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleUpdateResume(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "modern", updated.TemplateID)
}

func TestUpdateResume_OmittedFieldsKeepCurrent(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Keep Me")

	req := resumeRequest(http.MethodPut, "/resumes/"+resume.ID.String(),
		strings.NewReader(`{"template":"academic"}`), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleUpdateResume(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Keep Me", updated.Title)
	assert.Equal(t, "academic", updated.TemplateID)
}

func TestUpdateResume_UnknownTemplate(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	req := resumeRequest(http.MethodPut, "/resumes/"+resume.ID.String(),
		strings.NewReader(`{"template":"brutalist"}`), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleUpdateResume(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteResume(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	req := resumeRequest(http.MethodDelete, "/resumes/"+resume.ID.String(), nil, userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleDeleteResume(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	s.handleGetResume(rec, resumeRequest(http.MethodGet, "/resumes/"+resume.ID.String(), nil, userID, resume.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyEdits(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	body := `{"edits":[
		{"op":"set_personal","field":"name","value":"Ada Lovelace"},
		{"op":"add_item","section":"skills","item":{"name":"Go","level":"Expert"}}
	]}`
	req := resumeRequest(http.MethodPost, "/resumes/"+resume.ID.String()+"/edits",
		strings.NewReader(body), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleApplyEdits(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.Name)
	require.Len(t, doc.Sections.Skills, 1)
	assert.Equal(t, "Go", doc.Sections.Skills[0].Name)
	assert.NotEmpty(t, doc.Sections.Skills[0].ID, "new items get a generated id")

	stored, err := store.GetResume(t.Context(), resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Document.PersonalInfo.Name, "result is persisted")
}

func TestApplyEdits_FailureLeavesDocumentUntouched(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	// The first edit is fine, the second targets an unknown section. The
	// whole batch must be rejected.
	body := `{"edits":[
		{"op":"set_personal","field":"name","value":"Ada Lovelace"},
		{"op":"remove_item","section":"no-such-section","itemId":"x"}
	]}`
	req := resumeRequest(http.MethodPost, "/resumes/"+resume.ID.String()+"/edits",
		strings.NewReader(body), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleApplyEdits(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	stored, err := store.GetResume(t.Context(), resume.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Document.PersonalInfo.Name, "no partial application")
}

func TestApplyEdits_UnknownOp(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	body := `{"edits":[{"op":"destroy_everything"}]}`
	req := resumeRequest(http.MethodPost, "/resumes/"+resume.ID.String()+"/edits",
		strings.NewReader(body), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleApplyEdits(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "edit 0")
}

func TestApplyEdits_EmptyBatch(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	req := resumeRequest(http.MethodPost, "/resumes/"+resume.ID.String()+"/edits",
		strings.NewReader(`{"edits":[]}`), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleApplyEdits(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReconcile(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := uuid.New()
	resume := createResume(t, s, userID, "Backend Engineer")

	body := `{
		"personalInfo": {
			"name": {"value": "Ada Lovelace", "confidence": 0.9, "selected": true},
			"email": {"value": "wrong@example.com", "confidence": 0.5, "selected": false}
		},
		"skills": [{"value": "Mathematics", "confidence": 0.8, "selected": true}]
	}`
	req := resumeRequest(http.MethodPost, "/resumes/"+resume.ID.String()+"/reconcile",
		strings.NewReader(body), userID, resume.ID)
	rec := httptest.NewRecorder()
	s.handleReconcile(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.Name)
	assert.Empty(t, doc.PersonalInfo.Email, "deselected fields are skipped")
	require.Len(t, doc.Sections.Skills, 1)
	assert.Equal(t, "Mathematics", doc.Sections.Skills[0].Name)
}
