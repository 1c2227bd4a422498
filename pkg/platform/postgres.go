// Package platform provides read-mostly access to the product's Postgres:
// user email lookups for job enrichment and the system_logs debug view.
// Writes are limited to marking log rows resolved.
package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readykit/pulse/pkg/models"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

var (
	ErrLogNotFound  = errors.New("system log entry not found")
	ErrInvalidLogID = errors.New("invalid system log id")
	errFailedToOpen = errors.New("failed to open platform database")
)

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the platform Postgres and verifies it with
// a ping.
func Connect(ctx context.Context, url string, connectTimeout time.Duration, maxConns int32) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToOpen, err)
	}

	if connectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = connectTimeout
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToOpen, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: %w", errFailedToOpen, err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	db.pool.Close()
}

// EmailsByID resolves user ids to emails in a single query. Unknown ids
// are simply absent from the result map.
func (db *DB) EmailsByID(ctx context.Context, ids []string) (map[string]string, error) {
	emails := make(map[string]string, len(ids))

	if len(ids) == 0 {
		return emails, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id::text, email FROM users WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, email string

		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}

		emails[id] = email
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return emails, nil
}

// ListSystemLogs returns the newest matching rows first.
func (db *DB) ListSystemLogs(ctx context.Context, filter LogFilter) ([]models.SystemLogEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}

	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	query := `SELECT id::text, level, source, message, details, created_at, resolved, resolved_at
		FROM system_logs WHERE 1=1`

	args := []interface{}{}
	argn := 1

	if filter.Level != "" {
		query += fmt.Sprintf(" AND level = $%d", argn)
		args = append(args, filter.Level)
		argn++
	}

	if filter.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", argn)
		args = append(args, filter.Source)
		argn++
	}

	if filter.UnresolvedOnly {
		query += " AND resolved = FALSE"
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argn)
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query system logs: %w", err)
	}
	defer rows.Close()

	entries := make([]models.SystemLogEntry, 0, limit)

	for rows.Next() {
		var entry models.SystemLogEntry

		if err := rows.Scan(
			&entry.ID, &entry.Level, &entry.Source, &entry.Message,
			&entry.Details, &entry.CreatedAt, &entry.Resolved, &entry.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan system log row: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read system log rows: %w", err)
	}

	return entries, nil
}

// ResolveSystemLog marks one row resolved. Resolving an already-resolved
// row is a no-op, not an error.
func (db *DB) ResolveSystemLog(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogID, id)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE system_logs SET resolved = TRUE, resolved_at = NOW() WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to resolve system log: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}

	return nil
}
