package domain

import (
	"context"
	"time"
)

// WorkspaceRepository defines the persistence interface for workspaces.
type WorkspaceRepository interface {
	// Save inserts a new workspace with its repos, or replaces the repos and
	// metadata of an existing one. Returns ErrDuplicateName when another
	// workspace already uses the name.
	Save(ctx context.Context, w *Workspace) error

	// FindByName returns the workspace with name, or a *NotFoundError.
	FindByName(ctx context.Context, name string) (*Workspace, error)

	// List returns all workspaces, most recently opened first, then by name.
	List(ctx context.Context) ([]*Workspace, error)

	// Delete removes a workspace and its repos. Returns a *NotFoundError when
	// nothing matched.
	Delete(ctx context.Context, name string) error

	// Touch records that the workspace with id was opened at t.
	Touch(ctx context.Context, id string, t time.Time) error
}
