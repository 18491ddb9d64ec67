package domain

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a single-record lookup miss (HTTP 404).
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "registro não encontrado"
	}
	return fmt.Sprintf("%s não encontrado", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// FieldError is one structured violation produced by the schema validator.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of per-field violations (HTTP 400).
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	if len(e.Fields) > 1 {
		return fmt.Sprintf("%d campos inválidos", len(e.Fields))
	}
	return "dados inválidos"
}

func (e ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ConflictError maps duplicate-record situations (HTTP 409).
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s já cadastrado", e.Resource)
	default:
		return "conflito de dados"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// AuthError indicates a missing, invalid or expired credential (HTTP 401).
type AuthError struct {
	Msg string
	Err error
}

func (e AuthError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "não autenticado"
}

func (e AuthError) Unwrap() error { return e.Err }

// ForbiddenError indicates insufficient role or not-owner (HTTP 403).
type ForbiddenError struct {
	Msg string
	Err error
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "acesso negado"
}

func (e ForbiddenError) Unwrap() error { return e.Err }

// UpstreamError wraps store/cache/storage failures. The underlying provider
// detail stays server-side; the client only sees the fixed message (HTTP 500).
type UpstreamError struct {
	Msg string
	Err error
}

func (e UpstreamError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "erro interno"
}

func (e UpstreamError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}
