package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

const workspaceColumns = `id, name, branch, created_at, updated_at, last_opened_at`

// workspaceRepository implements domain.WorkspaceRepository using SQLite.
type workspaceRepository struct {
	db *sql.DB
}

func newWorkspaceRepository(db *sql.DB) *workspaceRepository {
	return &workspaceRepository{db: db}
}

var _ domain.WorkspaceRepository = (*workspaceRepository)(nil)

func scanWorkspace(scanner interface{ Scan(...any) error }) (*workspaceModel, error) {
	var m workspaceModel
	err := scanner.Scan(&m.ID, &m.Name, &m.Branch, &m.CreatedAt, &m.UpdatedAt, &m.LastOpenedAt)
	return &m, err
}

// Save upserts the workspace row and rewrites its repos in one transaction.
func (r *workspaceRepository) Save(ctx context.Context, w *domain.Workspace) error {
	model := toWorkspaceModel(w)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workspaces (`+workspaceColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			branch = excluded.branch,
			updated_at = excluded.updated_at,
			last_opened_at = excluded.last_opened_at`,
		model.ID, model.Name, model.Branch, model.CreatedAt, model.UpdatedAt, model.LastOpenedAt,
	)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return fmt.Errorf("saving workspace %q: %w", model.Name, domain.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM workspace_repos WHERE workspace_id = ?`, model.ID); err != nil {
		return fmt.Errorf("failed to clear workspace repos: %w", err)
	}
	for _, repo := range toRepoModels(w) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workspace_repos (id, workspace_id, name, path, position) VALUES (?, ?, ?, ?, ?)`,
			repo.ID, repo.WorkspaceID, repo.Name, repo.Path, repo.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to save repo %q: %w", repo.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit workspace: %w", err)
	}
	log.Debug(log.CatDB, "Saved workspace", "name", model.Name, "repos", w.RepoCount())
	return nil
}

// FindByName returns the workspace with name, or a *domain.NotFoundError.
func (r *workspaceRepository) FindByName(ctx context.Context, name string) (*domain.Workspace, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE name = ?`, name)
	model, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	repos, err := r.loadRepos(ctx, `WHERE workspace_id = ?`, model.ID)
	if err != nil {
		return nil, err
	}
	return model.toDomain(repos[model.ID]), nil
}

// List returns all workspaces, most recently opened first, then by name.
func (r *workspaceRepository) List(ctx context.Context) ([]*domain.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces
		ORDER BY last_opened_at IS NULL, last_opened_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var models []*workspaceModel
	for rows.Next() {
		m, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workspaces: %w", err)
	}

	repos, err := r.loadRepos(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Workspace, len(models))
	for i, m := range models {
		out[i] = m.toDomain(repos[m.ID])
	}
	return out, nil
}

// loadRepos returns repos grouped by workspace ID in display order.
func (r *workspaceRepository) loadRepos(ctx context.Context, where string, args ...any) (map[string][]repoModel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, workspace_id, name, path, position FROM workspace_repos `+where+`
		ORDER BY workspace_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load repos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]repoModel)
	for rows.Next() {
		var m repoModel
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.Path, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan repo: %w", err)
		}
		out[m.WorkspaceID] = append(out[m.WorkspaceID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate repos: %w", err)
	}
	return out, nil
}

// Delete removes the workspace with name; its repos cascade.
func (r *workspaceRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.NotFoundError{Name: name}
	}
	log.Debug(log.CatDB, "Deleted workspace", "name", name)
	return nil
}

// Touch sets last_opened_at for the workspace with id.
func (r *workspaceRepository) Touch(ctx context.Context, id string, t time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE workspaces SET last_opened_at = ? WHERE id = ?`, t.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to touch workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.NotFoundError{Name: id}
	}
	return nil
}
