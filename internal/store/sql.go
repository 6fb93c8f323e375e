package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/solorun/internal/campaign"
)

type dialect struct {
	name   string
	schema string
	load   string
	save   string
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `
CREATE TABLE IF NOT EXISTS hero_progress (
	hero_id TEXT PRIMARY KEY,
	progress TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	load: `SELECT progress FROM hero_progress WHERE hero_id = ?`,
	save: `
INSERT INTO hero_progress (hero_id, progress, updated_at) VALUES (?, ?, ?)
ON CONFLICT(hero_id) DO UPDATE SET progress = excluded.progress, updated_at = excluded.updated_at`,
}

var postgresDialect = dialect{
	name: "postgres",
	schema: `
CREATE TABLE IF NOT EXISTS hero_progress (
	hero_id TEXT PRIMARY KEY,
	progress JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`,
	load: `SELECT progress FROM hero_progress WHERE hero_id = $1`,
	save: `
INSERT INTO hero_progress (hero_id, progress, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (hero_id) DO UPDATE SET progress = EXCLUDED.progress, updated_at = EXCLUDED.updated_at`,
}

// SQL mirrors progress into a hero_progress table, one JSON document per hero.
type SQL struct {
	db *sql.DB
	d  dialect
}

var _ Remote = (*SQL)(nil)

// OpenSQLite opens (or creates) a SQLite database. ":memory:" is accepted.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		parent := filepath.Dir(path)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	return newSQL(ctx, db, sqliteDialect)
}

// OpenPostgres connects to PostgreSQL with the given DSN.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return newSQL(ctx, db, postgresDialect)
}

func newSQL(ctx context.Context, db *sql.DB, d dialect) (*SQL, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure %s schema: %w", d.name, err)
	}
	return &SQL{db: db, d: d}, nil
}

func (s *SQL) Load(ctx context.Context, heroID string) (*campaign.Progress, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, s.d.load, heroID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	var p campaign.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &p, nil
}

func (s *SQL) Save(ctx context.Context, heroID string, p campaign.Progress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	var updated any = time.Now().UTC()
	if s.d.name == "sqlite" {
		updated = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if _, err := s.db.ExecContext(ctx, s.d.save, heroID, string(raw), updated); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
