package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User represents a user profile for API responses.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse carries user data plus the authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateResumeRequest represents the request to create a resume document.
type CreateResumeRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	TemplateID string `json:"template" validate:"required"`
}

// UpdateResumeRequest represents a metadata update for a resume document.
type UpdateResumeRequest struct {
	Title      string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	TemplateID string `json:"template,omitempty"`
}

// ShareLinkRequest configures a public read-only share link.
type ShareLinkRequest struct {
	ExpiresInDays int `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

var validate = validator.New()

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateResumeRequest using the validator.
func (r *UpdateResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ShareLinkRequest using the validator.
func (r *ShareLinkRequest) Validate() error {
	return validate.Struct(r)
}
