package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open creates a new Store for dsn and runs auto-migration.
//
// DSNs starting with postgres:// or postgresql:// are opened with pgx;
// anything else is treated as a SQLite path or file: URI.
func Open(dsn string) (*Store, error) {
	return OpenContext(context.Background(), dsn)
}

// OpenContext is Open with a caller-supplied context for the initial
// connection check and migration.
func OpenContext(ctx context.Context, dsn string) (*Store, error) {
	driverName, dialectName, source := resolveDSN(dsn)

	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &UnavailableError{Op: "ping", Err: err}
	}

	drv := entsql.OpenDB(dialectName, db)
	migrate, err := schema.NewMigrate(drv)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create migration: %w", err)
	}
	if err := migrate.Create(ctx, Tables...); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, dialect: dialectName}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name of the backing database.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProblemRepo returns a ProblemRepo backed by this store.
func (s *Store) ProblemRepo() ProblemRepo {
	return &problemRepo{db: s.db, dialect: s.dialect}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, dialect: s.dialect}
}

// sqlitePragmas configures every pooled SQLite connection.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

func resolveDSN(dsn string) (driverName, dialectName, source string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", dialect.Postgres, dsn
	}
	return "sqlite", dialect.SQLite, withPragmas(dsn)
}

// withPragmas appends the default pragmas unless the DSN sets its own.
func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	params := make([]string, len(sqlitePragmas))
	for i, p := range sqlitePragmas {
		params[i] = "_pragma=" + p
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATHPRACTICE_DB environment variable
// 2. $XDG_DATA_HOME/mathpractice/mathpractice.db
// 3. ~/.local/share/mathpractice/mathpractice.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATHPRACTICE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathpractice", "mathpractice.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a file-backed DSN if it doesn't
// exist. URIs and remote DSNs are left alone.
func EnsureDir(dsn string) error {
	if strings.Contains(dsn, "://") || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	return os.MkdirAll(dir, 0o755)
}
