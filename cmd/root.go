package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/vibekanban/internal/app"
	"github.com/zjrosen/vibekanban/internal/clipboard"
	"github.com/zjrosen/vibekanban/internal/config"
	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/git"
	"github.com/zjrosen/vibekanban/internal/infrastructure/sqlite"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/tracing"
	"github.com/zjrosen/vibekanban/internal/ui/review"
	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

func init() {
	// Query the terminal background before bubbletea owns stdin, otherwise
	// the OSC 11 reply can leak into the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "vibekanban",
	Short: "Review uncommitted changes across a workspace of git repositories",
	Long: `A terminal user interface for reviewing the diffs of one or more git
repositories side by side with a file tree that follows the diff as you scroll.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
		}
	},
	RunE: runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vibekanban/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs and enable the log overlay (ctrl+x)")
	rootCmd.Flags().StringP("workspace", "w", "",
		"name of a saved workspace to review")
	rootCmd.Flags().StringP("path", "p", "",
		"repository to review when no workspace is given (default: current directory)")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading when repository files change")
}

// setup loads the configuration and starts logging for every command.
func setup(*cobra.Command, []string) error {
	if debugFlag || log.DebugFromEnv() {
		logPath := os.Getenv("VIBEKANBAN_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		debugFlag = true
		log.Info(log.CatConfig, "vibekanban starting", "version", version, "logPath", logPath)
	}

	loaded, used, err := config.Load(config.NewViper(), cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	log.Debug(log.CatConfig, "Using config", "path", used)
	return nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	name, _ := cmd.Flags().GetString("workspace")
	path, _ := cmd.Flags().GetString("path")
	ws, err := resolveWorkspace(ctx, db.WorkspaceRepository(), name, path, repoRoot)
	if err != nil {
		return err
	}

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	provider, err := tracing.NewProvider(cfg.Tracing.ToTracing())
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatTrace, "Flushing traces", err)
		}
	}()

	zone.NewGlobal()

	model := app.New(app.Services{
		Workspace: ws,
		Loader: diff.NewLoader(
			diff.WithCacheTTL(cfg.Diff.CacheTTL),
			diff.WithLoadTimeout(cfg.Diff.LoadTimeout),
		),
		Executors: func(dir string) git.Executor { return git.NewRealExecutor(dir) },
		Clipboard: clipboard.System{},
		Tracer:    provider.Tracer(),
	}, appOptions(cfg, debugFlag))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()

	closer := model
	if m, ok := final.(app.Model); ok {
		closer = m
	}
	if closeErr := closer.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// appOptions maps the configuration onto the app.
func appOptions(c config.Config, debug bool) app.Options {
	rc := review.DefaultConfig()
	rc.Debounce = c.Scroll.Debounce
	rc.Cooldown = c.Scroll.Cooldown
	rc.AnimationFrames = c.Scroll.AnimationFrames
	rc.Overscan = c.Scroll.Overscan
	rc.ShowStatusBar = c.UI.ShowStatusBar
	return app.Options{
		Review:              rc,
		AutoRefresh:         c.AutoRefresh,
		AutoRefreshDebounce: c.AutoRefreshDebounce,
		LoadTimeout:         c.Diff.LoadTimeout,
		MarkdownStyle:       c.UI.MarkdownStyle,
		Debug:               debug,
	}
}

// repoRoot returns the top level of the repository containing dir.
func repoRoot(ctx context.Context, dir string) (string, error) {
	root, err := git.NewRealExecutor(dir).GetRepoRoot(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNotGitRepo) {
			return "", fmt.Errorf("%s is not inside a git repository", dir)
		}
		return "", fmt.Errorf("finding repository root: %w", err)
	}
	return root, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
