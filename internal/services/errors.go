package services

import (
	"errors"
	"fmt"
	"strings"
)

// Expected operation outcomes. Handlers translate these into 4xx responses;
// anything else coming out of the store propagates as an internal failure.
var (
	ErrDealNotFound     = errors.New("deal not found")
	ErrFileNotFound     = errors.New("file attachment not found")
	ErrPermissionDenied = errors.New("you do not have permission to access this deal")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrInvalidEmail     = errors.New("invalid email address")
)

// ValidationError reports the first required field found missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

type requiredField struct {
	name  string
	value string
}

// firstMissingField returns a ValidationError for the first empty value, in
// the order given, or nil when all are present.
func firstMissingField(fields []requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}
