// Package sqlite persists workspaces in a local SQLite database using the
// pure-Go ncruces driver. The schema is managed with golang-migrate from
// embedded SQL files.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB owns the database connection and hands out repositories.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path and migrates it to
// the latest schema. An existing database is copied to path+".bak" before
// pending migrations run.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	_, statErr := os.Stat(path)
	existed := statErr == nil

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(wal)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(existed); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info(log.CatDB, "Database ready", "path", path)
	return db, nil
}

func (db *DB) migrate(existed bool) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	drv, err := newMigrationDriver(db.conn)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}

	if existed {
		pending, err := hasPending(m, src)
		if err != nil {
			return err
		}
		if pending {
			if err := db.backup(); err != nil {
				return err
			}
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Debug(log.CatDB, "Schema migrated", "version", version, "dirty", dirty)
	return nil
}

// hasPending reports whether the source holds a migration newer than the
// database's current version.
func hasPending(m *migrate.Migrate, src source.Driver) (bool, error) {
	current, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading schema version: %w", err)
	}
	if _, err := src.Next(current); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading migrations: %w", err)
	}
	return true, nil
}

// backup writes a consistent copy of the database next to it.
func (db *DB) backup() error {
	bak := db.path + ".bak"
	if err := os.Remove(bak); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if _, err := db.conn.ExecContext(context.Background(), "VACUUM INTO ?", bak); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	log.Info(log.CatDB, "Backed up database before migration", "path", bak)
	return nil
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// WorkspaceRepository returns a repository backed by this database.
func (db *DB) WorkspaceRepository() domain.WorkspaceRepository {
	return newWorkspaceRepository(db.conn)
}
