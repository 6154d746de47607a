package sqlite

import (
	"time"

	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

// workspaceModel represents a row of the workspaces table. Times are Unix
// seconds.
type workspaceModel struct {
	ID           string
	Name         string
	Branch       string
	CreatedAt    int64
	UpdatedAt    int64
	LastOpenedAt *int64 // nullable
}

// repoModel represents a row of the workspace_repos table.
type repoModel struct {
	ID          string
	WorkspaceID string
	Name        string
	Path        string
	Position    int
}

func toWorkspaceModel(w *domain.Workspace) *workspaceModel {
	m := &workspaceModel{
		ID:        w.ID(),
		Name:      w.Name(),
		Branch:    w.Branch(),
		CreatedAt: w.CreatedAt().Unix(),
		UpdatedAt: w.UpdatedAt().Unix(),
	}
	if w.LastOpenedAt() != nil {
		opened := w.LastOpenedAt().Unix()
		m.LastOpenedAt = &opened
	}
	return m
}

func toRepoModels(w *domain.Workspace) []repoModel {
	repos := w.Repos()
	out := make([]repoModel, len(repos))
	for i, r := range repos {
		out[i] = repoModel{ID: r.ID, WorkspaceID: w.ID(), Name: r.Name, Path: r.Path, Position: i}
	}
	return out
}

func (m *workspaceModel) toDomain(repos []repoModel) *domain.Workspace {
	domainRepos := make([]domain.Repo, len(repos))
	for i, r := range repos {
		domainRepos[i] = domain.Repo{ID: r.ID, Name: r.Name, Path: r.Path}
	}
	var opened *time.Time
	if m.LastOpenedAt != nil {
		t := time.Unix(*m.LastOpenedAt, 0)
		opened = &t
	}
	return domain.ReconstituteWorkspace(
		m.ID, m.Name, m.Branch,
		domainRepos,
		time.Unix(m.CreatedAt, 0), time.Unix(m.UpdatedAt, 0),
		opened,
	)
}
