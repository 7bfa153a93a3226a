package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/parse"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*types.Document
	resumes  map[uuid.UUID]*db.Resume
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*types.Document),
		resumes:  make(map[uuid.UUID]*db.Resume),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID uuid.UUID) (*types.Document, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	doc := profile.Clone()
	return &doc, nil
}

func (f *fakeStore) UpdateUserProfile(_ context.Context, userID uuid.UUID, doc types.Document) error {
	stored := doc.Clone()
	f.profiles[userID] = &stored
	return nil
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, title, templateID string, doc types.Document) (*db.Resume, error) {
	now := time.Now()
	resume := &db.Resume{
		ID: uuid.New(), UserID: userID, Title: title, TemplateID: templateID,
		Document: doc.Clone(), CreatedAt: now, UpdatedAt: now,
	}
	f.resumes[resume.ID] = resume
	out := *resume
	return &out, nil
}

func (f *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	resume, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	out := *resume
	out.Document = resume.Document.Clone()
	return &out, nil
}

func (f *fakeStore) GetResumeByShareLink(_ context.Context, linkID string) (*db.Resume, error) {
	for _, resume := range f.resumes {
		if resume.ShareLink != nil && resume.ShareLink.ID == linkID {
			out := *resume
			out.Document = resume.Document.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	var out []db.Resume
	for _, resume := range f.resumes {
		if resume.UserID == userID {
			out = append(out, *resume)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateResumeDocument(_ context.Context, id uuid.UUID, doc types.Document) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	resume.Document = doc.Clone()
	resume.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) UpdateResumeMeta(_ context.Context, id uuid.UUID, title, templateID string) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	if title != "" {
		resume.Title = title
	}
	if templateID != "" {
		resume.TemplateID = templateID
	}
	resume.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id uuid.UUID) error {
	if _, ok := f.resumes[id]; !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	delete(f.resumes, id)
	return nil
}

func (f *fakeStore) SetShareLink(_ context.Context, id uuid.UUID, link db.ShareLink) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	resume.ShareLink = &link
	return nil
}

func (f *fakeStore) ClearShareLink(_ context.Context, id uuid.UUID) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	resume.ShareLink = nil
	return nil
}

// newTestServer wires a server around the fake store, bypassing env-based
// configuration. Bcrypt runs at its cheapest cost to keep the tests fast.
func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()

	jwtService := NewJWTService(&config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 1})
	userService := NewUserService(store, &config.PasswordConfig{BcryptCost: 10})

	return &Server{
		store:       store,
		validator:   validator.New(),
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
		parser:      parse.New(nil),
		exportCfg:   &config.ExportConfig{Timeout: 5 * time.Second},
	}
}

// authedRequest builds a request carrying an authenticated user id, the
// way the auth middleware would.
func authedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// resumeRequest additionally sets the {id} path value.
func resumeRequest(method, target string, body io.Reader, userID, resumeID uuid.UUID) *http.Request {
	req := authedRequest(method, target, body, userID)
	req.SetPathValue("id", resumeID.String())
	return req
}
