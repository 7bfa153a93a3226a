// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/parse"
	"github.com/jonathan/resume-builder/internal/registry"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the user was not found.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates the current password is incorrect.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrResumeNotFound covers both a missing resume and one owned by another
// user; the two are indistinguishable on purpose.
type ErrResumeNotFound struct {
	ID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrShareLinkNotFound indicates a missing, revoked, or expired share link.
type ErrShareLinkNotFound struct {
	LinkID string
}

func (e *ErrShareLinkNotFound) Error() string {
	return fmt.Sprintf("share link not found: %s", e.LinkID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the HTTP status code for an error, unwrapping as
// needed so wrapped engine errors still map correctly.
func HTTPStatus(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if status, ok := statusOf(e); ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

func statusOf(err error) (int, bool) {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict, true
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized, true
	case *ErrUserNotFound, *ErrResumeNotFound, *ErrShareLinkNotFound:
		return http.StatusNotFound, true
	case *ErrValidation:
		return http.StatusBadRequest, true
	case *registry.NotFoundError, *sections.UnknownSectionError,
		*sections.ItemNotFoundError, *sections.BulletNotFoundError,
		*templates.NotFoundError:
		return http.StatusNotFound, true
	case *registry.DuplicateKeyError:
		return http.StatusConflict, true
	case *registry.NotDeletableError, *registry.NotRenamableError,
		*sections.InvalidOrderError, *sections.ValidationError,
		*types.PatchTypeError, *schemas.ValidationError,
		*export.InvalidFormatError:
		return http.StatusBadRequest, true
	case *parse.UnsupportedFormatError:
		return http.StatusUnsupportedMediaType, true
	case *export.RenderTimeoutError:
		return http.StatusGatewayTimeout, true
	default:
		return 0, false
	}
}
