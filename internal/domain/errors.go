package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

type ValidationKind int

const (
	DuplicateIdentifier ValidationKind = iota + 1
	MissingMotivation
)

// ValidationError rejects a document submitted for creation.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateIdentifier = &ValidationError{
		Kind:    DuplicateIdentifier,
		Message: "Property '@id' indicates this is not a new announcement.",
	}
	ErrMissingMotivation = &ValidationError{
		Kind:    MissingMotivation,
		Message: "Annoucements without 'motivation' are not allowed on this server.",
	}
)

// ErrMethodNotSupported is returned for update and delete. Announcements are
// immutable once created.
var ErrMethodNotSupported = errors.New("method not supported")
