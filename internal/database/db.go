package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB wraps the library database and provides access to the repositories.
type DB struct {
	conn   *sql.DB
	Movies *MovieRepository
	Users  *UserRepository
}

// Open opens (creating if needed) the sqlite database at the given DSN
// and runs pending migrations.
func Open(dsn string) (*DB, error) {
	// Ensure the parent directory exists for plain file paths.
	if !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:") {
		dbDir := filepath.Dir(dsn)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	connString := dsn
	if !strings.Contains(dsn, "?") {
		connString = fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on", dsn)
	}

	conn, err := sql.Open("sqlite3", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The bot's write load is tiny; a small pool avoids sqlite lock churn.
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(15 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{
		conn:   conn,
		Movies: NewMovieRepository(conn),
		Users:  NewUserRepository(conn),
	}, nil
}

// runMigrations applies pending schema migrations using goose.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	currentVersion, err := goose.GetDBVersion(db)
	if err != nil {
		slog.Warn("database.version_lookup_failed", "error", err)
		currentVersion = 0
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	newVersion, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to verify migration version: %w", err)
	}

	// Sanity check that the core table made it in.
	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='movies'").Scan(&tableName)
	if err != nil {
		return fmt.Errorf("migration verification failed: movies table does not exist: %w", err)
	}

	slog.Info("database.migrated", "from_version", currentVersion, "to_version", newVersion)
	return nil
}

// Ping verifies the underlying connection is still usable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
