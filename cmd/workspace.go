package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vibekanban/internal/config"
	"github.com/zjrosen/vibekanban/internal/infrastructure/sqlite"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

// rootFinder resolves the repository root containing a directory.
type rootFinder func(ctx context.Context, dir string) (string, error)

var workspaceBranch string

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage saved workspaces",
	Long: `Manage saved workspaces: named sets of git repositories reviewed together.

Examples:
  # Save a workspace of two repositories compared against main
  vibekanban workspace add shop ./api ./web --branch main

  # Review it
  vibekanban --workspace shop

  # Share it as a manifest
  vibekanban workspace export shop shop.yaml
  vibekanban workspace import shop.yaml`,
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add NAME REPO_PATH...",
	Short: "Save a workspace",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo domain.WorkspaceRepository) error {
			specs, err := repoSpecs(ctx, args[1:], repoRoot)
			if err != nil {
				return err
			}
			ws, err := addWorkspace(ctx, repo, args[0], workspaceBranch, specs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved workspace %s with %d repositories\n", ws.Name(), ws.RepoCount())
			return err
		})
	},
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRepository(cmd, func(ctx context.Context, repo domain.WorkspaceRepository) error {
			list, err := repo.List(ctx)
			if err != nil {
				return err
			}
			return printWorkspaces(cmd.OutOrStdout(), list)
		})
	},
}

var workspaceRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a saved workspace",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo domain.WorkspaceRepository) error {
			if err := repo.Delete(ctx, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed workspace %s\n", args[0])
			return err
		})
	},
}

var workspaceImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Save a workspace from a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := config.LoadManifest(args[0])
		if err != nil {
			return err
		}
		return withRepository(cmd, func(ctx context.Context, repo domain.WorkspaceRepository) error {
			ws, err := addWorkspace(ctx, repo, m.Name, m.Branch, manifestSpecs(m))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported workspace %s with %d repositories\n", ws.Name(), ws.RepoCount())
			return err
		})
	},
}

var workspaceExportCmd = &cobra.Command{
	Use:   "export NAME [FILE]",
	Short: "Write a workspace as a YAML manifest (stdout when FILE is omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo domain.WorkspaceRepository) error {
			ws, err := repo.FindByName(ctx, args[0])
			if err != nil {
				return err
			}
			m := toManifest(ws)
			if len(args) == 2 {
				return config.SaveManifest(args[1], m)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encoding manifest: %w", err)
			}
			return enc.Close()
		})
	},
}

func init() {
	workspaceAddCmd.Flags().StringVarP(&workspaceBranch, "branch", "b", "",
		"base branch to diff against (default: working tree changes)")

	workspaceCmd.AddCommand(workspaceAddCmd, workspaceListCmd, workspaceRemoveCmd,
		workspaceImportCmd, workspaceExportCmd)
	rootCmd.AddCommand(workspaceCmd)
}

// withRepository opens the workspace database for the duration of fn.
func withRepository(cmd *cobra.Command, fn func(context.Context, domain.WorkspaceRepository) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(ctx, db.WorkspaceRepository())
}

// resolveWorkspace loads the named workspace and records that it was
// opened. Without a name it builds an unsaved single-repository workspace
// from the repository containing path, or the working directory.
func resolveWorkspace(ctx context.Context, repo domain.WorkspaceRepository, name, path string, findRoot rootFinder) (*domain.Workspace, error) {
	if name != "" {
		ws, err := repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		if err := repo.Touch(ctx, ws.ID(), now); err != nil {
			log.Warn(log.CatDB, "Recording workspace open", "workspace", name, "error", err)
		} else {
			ws.MarkOpened(now)
		}
		return ws, nil
	}

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		path = wd
	}
	specs, err := repoSpecs(ctx, []string{path}, findRoot)
	if err != nil {
		return nil, err
	}
	return domain.NewWorkspace(adHocName(specs[0].Path), "", specs)
}

// repoSpecs resolves each path to its absolute repository root.
func repoSpecs(ctx context.Context, paths []string, findRoot rootFinder) ([]domain.RepoSpec, error) {
	specs := make([]domain.RepoSpec, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		root, err := findRoot(ctx, abs)
		if err != nil {
			return nil, err
		}
		specs = append(specs, domain.RepoSpec{Path: root})
	}
	return specs, nil
}

func addWorkspace(ctx context.Context, repo domain.WorkspaceRepository, name, branch string, specs []domain.RepoSpec) (*domain.Workspace, error) {
	ws, err := domain.NewWorkspace(name, branch, specs)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, ws); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: remove %s first or pick another name", err, name)
		}
		return nil, err
	}
	return ws, nil
}

// adHocName derives a valid workspace name from a repository directory.
func adHocName(root string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		return '-'
	}, filepath.Base(root))
	name = strings.TrimLeft(name, "._-")
	if name == "" {
		return "repo"
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}

func manifestSpecs(m config.Manifest) []domain.RepoSpec {
	specs := make([]domain.RepoSpec, len(m.Repos))
	for i, r := range m.Repos {
		specs[i] = domain.RepoSpec{Name: r.Name, Path: r.Path}
	}
	return specs
}

func toManifest(ws *domain.Workspace) config.Manifest {
	m := config.Manifest{Name: ws.Name(), Branch: ws.Branch()}
	for _, r := range ws.Repos() {
		m.Repos = append(m.Repos, config.ManifestRepo{Name: r.Name, Path: r.Path})
	}
	return m
}

func printWorkspaces(w io.Writer, list []*domain.Workspace) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No workspaces. Add one with: vibekanban workspace add NAME REPO_PATH...")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "BRANCH", "REPOS", "LAST OPENED")
	for _, ws := range list {
		branch := ws.Branch()
		if branch == "" {
			branch = "(working tree)"
		}
		names := make([]string, 0, ws.RepoCount())
		for _, r := range ws.Repos() {
			names = append(names, r.Name)
		}
		opened := "never"
		if at := ws.LastOpenedAt(); at != nil {
			opened = at.Local().Format("2006-01-02 15:04")
		}
		t.Row(ws.Name(), branch, strings.Join(names, ", "), opened)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
