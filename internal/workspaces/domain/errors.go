package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError with errors.Is.
	ErrNotFound = errors.New("workspace not found")
	// ErrDuplicateName is returned when saving a second workspace with a taken name.
	ErrDuplicateName = errors.New("workspace name already exists")
	// ErrNoRepos is returned when a workspace would have no repositories.
	ErrNoRepos = errors.New("workspace needs at least one repository")
)

// NotFoundError reports a missing workspace by name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workspace %q not found", e.Name)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports an invalid workspace field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid workspace %s: %s", e.Field, e.Reason)
}
