package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// ValidationKind names the stage of payload validation that failed.
type ValidationKind string

const (
	KindMissingProperty ValidationKind = "NOT_CONTAIN_NEEDED_PROPERTY"
	KindDataType        ValidationKind = "NOT_MEET_DATA_TYPE_SPECIFICATION"
)

// ValidationError reports a payload that is missing a required key or carries
// a value of the wrong type. Entity is the upper snake case shape name, e.g.
// NEW_THREAD, so Error() yields "NEW_THREAD.NOT_CONTAIN_NEEDED_PROPERTY".
type ValidationError struct {
	Entity string
	Kind   ValidationKind
	Field  string
}

func (e *ValidationError) Error() string {
	return e.Entity + "." + string(e.Kind)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a referenced thread, comment, reply or user that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AuthorizationError reports an existing resource whose stored owner is not the acting owner.
type AuthorizationError struct {
	Resource string
	ID       string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not allowed to access %s %q", e.Resource, e.ID)
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrForbidden }

// ValidationErrorOf extracts a *ValidationError from err's chain.
func ValidationErrorOf(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
