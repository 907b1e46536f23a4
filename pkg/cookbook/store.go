package cookbook

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists cookbook entries in a local SQLite database. The engine is a
// single synchronous actor, so one connection is enough.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

var _ interfaces.CookbookStore = (*Store)(nil)

// OpenStore opens (creating if needed) the cookbook database at path and
// applies migrations.
func OpenStore(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cookbook db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cookbook migrations: %w", err)
	}

	return &Store{db: db, log: logger.Named("cookbook_store")}, nil
}

// Get loads the entry for a fingerprint, or (nil, nil) when none exists.
func (s *Store) Get(ctx context.Context, fingerprint string) (*schemas.CookbookPageEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, url_pattern, actions, page_health, successes, failures, updated_at
		FROM cookbook_entries WHERE fingerprint = ?`, fingerprint)

	var entry schemas.CookbookPageEntry
	var actionsJSON []byte
	var updatedAt int64
	err := row.Scan(&entry.Fingerprint, &entry.URLPattern, &actionsJSON,
		&entry.PageHealth, &entry.Successes, &entry.Failures, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cookbook entry: %w", err)
	}
	if err := json.Unmarshal(actionsJSON, &entry.Actions); err != nil {
		return nil, fmt.Errorf("decode cookbook actions: %w", err)
	}
	entry.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &entry, nil
}

// Put upserts an entry under its fingerprint.
func (s *Store) Put(ctx context.Context, entry *schemas.CookbookPageEntry) error {
	actionsJSON, err := json.Marshal(entry.Actions)
	if err != nil {
		return fmt.Errorf("encode cookbook actions: %w", err)
	}
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cookbook_entries (fingerprint, url_pattern, actions, page_health, successes, failures, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			url_pattern = excluded.url_pattern,
			actions     = excluded.actions,
			page_health = excluded.page_health,
			successes   = excluded.successes,
			failures    = excluded.failures,
			updated_at  = excluded.updated_at`,
		entry.Fingerprint, entry.URLPattern, actionsJSON,
		entry.PageHealth, entry.Successes, entry.Failures, updatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save cookbook entry: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
