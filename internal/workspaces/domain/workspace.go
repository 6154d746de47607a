// Package domain provides the workspace entity and its persistence
// interface. It has no infrastructure dependencies beyond uuid generation.
package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Repo is one git repository within a workspace.
type Repo struct {
	ID   string
	Name string
	Path string
}

// Workspace is a named set of repositories reviewed together.
// Fields are unexported; use NewWorkspace or ReconstituteWorkspace.
type Workspace struct {
	id           string
	name         string
	branch       string
	repos        []Repo
	createdAt    time.Time
	updatedAt    time.Time
	lastOpenedAt *time.Time
}

// RepoSpec describes a repository to add to a new workspace. An empty Name
// defaults to the base name of Path.
type RepoSpec struct {
	Name string
	Path string
}

// NewWorkspace validates the inputs and builds a workspace with fresh IDs.
// Repo paths are cleaned and must be absolute and distinct; repo names must
// be distinct.
func NewWorkspace(name, branch string, specs []RepoSpec) (*Workspace, error) {
	if !namePattern.MatchString(name) {
		return nil, &ValidationError{Field: "name", Reason: "must be 1-64 letters, digits, '.', '_' or '-' and start with a letter or digit"}
	}
	if len(specs) == 0 {
		return nil, ErrNoRepos
	}

	repos := make([]Repo, 0, len(specs))
	seenPath := make(map[string]struct{}, len(specs))
	seenName := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		path := filepath.Clean(spec.Path)
		if !filepath.IsAbs(path) {
			return nil, &ValidationError{Field: "path", Reason: "must be absolute: " + spec.Path}
		}
		if _, dup := seenPath[path]; dup {
			return nil, &ValidationError{Field: "path", Reason: "listed twice: " + path}
		}
		repoName := strings.TrimSpace(spec.Name)
		if repoName == "" {
			repoName = filepath.Base(path)
		}
		if _, dup := seenName[repoName]; dup {
			return nil, &ValidationError{Field: "repo name", Reason: "listed twice: " + repoName}
		}
		seenPath[path] = struct{}{}
		seenName[repoName] = struct{}{}
		repos = append(repos, Repo{ID: uuid.NewString(), Name: repoName, Path: path})
	}

	now := time.Now()
	return &Workspace{
		id:        uuid.NewString(),
		name:      name,
		branch:    strings.TrimSpace(branch),
		repos:     repos,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteWorkspace rebuilds a workspace from persisted data without
// validation.
func ReconstituteWorkspace(
	id, name, branch string,
	repos []Repo,
	createdAt, updatedAt time.Time,
	lastOpenedAt *time.Time,
) *Workspace {
	return &Workspace{
		id:           id,
		name:         name,
		branch:       branch,
		repos:        repos,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastOpenedAt: lastOpenedAt,
	}
}

// ID returns the workspace UUID.
func (w *Workspace) ID() string { return w.id }

// Name returns the unique workspace name.
func (w *Workspace) Name() string { return w.name }

// Branch returns the base branch changes are reviewed against. Empty means
// only uncommitted changes are shown.
func (w *Workspace) Branch() string { return w.branch }

// CreatedAt returns when the workspace was created.
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }

// UpdatedAt returns when the workspace was last modified.
func (w *Workspace) UpdatedAt() time.Time { return w.updatedAt }

// LastOpenedAt returns when the workspace was last opened in the UI.
func (w *Workspace) LastOpenedAt() *time.Time { return w.lastOpenedAt }

// Repos returns a copy of the repositories in display order.
func (w *Workspace) Repos() []Repo {
	return append([]Repo(nil), w.repos...)
}

// RepoCount returns the number of repositories.
func (w *Workspace) RepoCount() int { return len(w.repos) }

// Repo returns the repository with id.
func (w *Workspace) Repo(id string) (Repo, bool) {
	for _, r := range w.repos {
		if r.ID == id {
			return r, true
		}
	}
	return Repo{}, false
}

// MarkOpened records that the workspace was opened at t.
func (w *Workspace) MarkOpened(t time.Time) {
	w.lastOpenedAt = &t
}
