package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Postgres driver.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database backend. DSN is a file path for sqlite
// and a connection string for postgres.
type Config struct {
	Driver string
	DSN    string
}

// Validate checks that the config names a supported driver and a DSN.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("empty DSN for driver %q", c.Driver)
	}
	return nil
}

// DefaultConfig returns a sqlite config at the default database path.
func DefaultConfig() (Config, error) {
	path, err := DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	return Config{Driver: DriverSQLite, DSN: path}, nil
}

// ConfigFromEnv builds a config from the environment:
// MEMORIZ_DB_DRIVER selects the driver (default sqlite) and MEMORIZ_DB
// supplies the DSN. With sqlite the DSN falls back to the default path.
func ConfigFromEnv() (Config, error) {
	driver := os.Getenv("MEMORIZ_DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverPostgres:
		dsn := os.Getenv("MEMORIZ_DB")
		if dsn == "" {
			return Config{}, fmt.Errorf("MEMORIZ_DB must hold a connection string when MEMORIZ_DB_DRIVER=postgres")
		}
		return Config{Driver: DriverPostgres, DSN: dsn}, nil
	case DriverSQLite:
		path, err := DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		return Config{Driver: DriverSQLite, DSN: path}, nil
	default:
		return Config{}, fmt.Errorf("unknown database driver %q", driver)
	}
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the configured database, applies SQLite pragmas when
// applicable, and creates the schema idempotently.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, driver: cfg.Driver}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DeckRepo returns a DeckRepo backed by this store.
func (s *Store) DeckRepo() DeckRepo {
	return &deckRepo{db: s.db}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user durability and
// concurrency behavior.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) initSchema() error {
	for _, stmt := range schemaFor(s.driver) {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// schemaFor returns the DDL for the given driver. Timestamps are stored
// as epoch milliseconds, matching the deck document format, so the only
// per-driver difference is the auto-increment id column.
func schemaFor(driver string) []string {
	eventID := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		eventID = "id BIGSERIAL PRIMARY KEY"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			card_count INTEGER NOT NULL,
			round INTEGER NOT NULL,
			state TEXT NOT NULL,
			doc TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS review_events (
			%s,
			deck_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			rating TEXT NOT NULL,
			interval_days INTEGER NOT NULL,
			ease DOUBLE PRECISION NOT NULL,
			round INTEGER NOT NULL,
			ts BIGINT NOT NULL
		)`, eventID),
		`CREATE INDEX IF NOT EXISTS idx_review_events_deck ON review_events (deck_id, ts)`,
	}
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MEMORIZ_DB environment variable
// 2. $XDG_DATA_HOME/memoriz/memoriz.db
// 3. ~/.local/share/memoriz/memoriz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MEMORIZ_DB"); p != "" {
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

	p := filepath.Join(dataHome, "memoriz", "memoriz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
