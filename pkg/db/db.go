// Package db pkg/db/db.go provides the local SQLite store for health
// check history. The platform Postgres is deliberately not used for this:
// the diagnostics daemon must keep recording history while the platform
// database itself is the thing that is down.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/readykit/pulse/pkg/models"
)

const createTablesSQL = `
	-- One row per aggregation pass
	CREATE TABLE IF NOT EXISTS health_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		overall TEXT NOT NULL,
		checked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- One row per service per aggregation pass
	CREATE TABLE IF NOT EXISTS service_health (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id INTEGER NOT NULL,
		service_name TEXT NOT NULL,
		status TEXT NOT NULL,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		message TEXT,
		details TEXT,
		checked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (snapshot_id) REFERENCES health_snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_health_snapshots_time
		ON health_snapshots(checked_at);
	CREATE INDEX IF NOT EXISTS idx_service_health_snapshot
		ON service_health(snapshot_id);
	CREATE INDEX IF NOT EXISTS idx_service_health_name_time
		ON service_health(service_name, checked_at);

	PRAGMA foreign_keys=ON;
	`

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}

// SaveSnapshot persists one aggregation pass and its per-service rows in a
// single transaction.
func (db *DB) SaveSnapshot(snapshot *models.SystemHealth) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	var committed bool

	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error rolling back snapshot transaction: %v", rbErr)
			}
		}
	}()

	res, err := tx.Exec(`
		INSERT INTO health_snapshots (overall, checked_at)
		VALUES (?, ?)
	`, string(snapshot.Overall), snapshot.CheckedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	for _, svc := range snapshot.Services {
		_, err := tx.Exec(`
			INSERT INTO service_health
				(snapshot_id, service_name, status, latency_ms, message, details, checked_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, snapshotID, svc.Name, string(svc.Status), svc.LatencyMS, svc.Message,
			string(svc.Details), svc.CheckedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	committed = true

	return nil
}

// GetSnapshots returns the most recent snapshots, newest first, with their
// per-service rows attached.
func (db *DB) GetSnapshots(limit int) ([]models.SystemHealth, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, overall, checked_at
		FROM health_snapshots
		ORDER BY checked_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	type snapshotRow struct {
		id       int64
		snapshot models.SystemHealth
	}

	snapshots := make([]snapshotRow, 0, limit)

	for rows.Next() {
		var row snapshotRow

		var overall string

		if err := rows.Scan(&row.id, &overall, &row.snapshot.CheckedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		row.snapshot.Overall = models.Status(overall)
		snapshots = append(snapshots, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	result := make([]models.SystemHealth, 0, len(snapshots))

	for _, row := range snapshots {
		services, err := db.getSnapshotServices(row.id)
		if err != nil {
			return nil, err
		}

		row.snapshot.Services = services
		result = append(result, row.snapshot)
	}

	return result, nil
}

func (db *DB) getSnapshotServices(snapshotID int64) ([]models.ServiceHealth, error) {
	rows, err := db.Query(`
		SELECT service_name, status, latency_ms, message, details, checked_at
		FROM service_health
		WHERE snapshot_id = ?
		ORDER BY id
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var services []models.ServiceHealth

	for rows.Next() {
		svc, err := scanServiceHealth(rows)
		if err != nil {
			return nil, err
		}

		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return services, nil
}

// GetServiceHistory returns the most recent results for one service,
// newest first.
func (db *DB) GetServiceHistory(serviceName string, limit int) ([]models.ServiceHealth, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(`
		SELECT service_name, status, latency_ms, message, details, checked_at
		FROM service_health
		WHERE service_name = ?
		ORDER BY checked_at DESC
		LIMIT ?
	`, serviceName, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var history []models.ServiceHealth

	for rows.Next() {
		svc, err := scanServiceHealth(rows)
		if err != nil {
			return nil, err
		}

		history = append(history, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return history, nil
}

// CleanOldData removes snapshots (and, via cascade, their service rows)
// older than the retention period.
func (db *DB) CleanOldData(retentionPeriod time.Duration) error {
	cutoff := time.Now().Add(-retentionPeriod)

	res, err := db.Exec(`DELETE FROM health_snapshots WHERE checked_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToClean, err)
	}

	if removed, err := res.RowsAffected(); err == nil && removed > 0 {
		log.Printf("Cleaned %d health snapshots older than %v", removed, retentionPeriod)
	}

	return nil
}

func scanServiceHealth(rows *sql.Rows) (models.ServiceHealth, error) {
	var svc models.ServiceHealth

	var status string

	var message, details sql.NullString

	if err := rows.Scan(&svc.Name, &status, &svc.LatencyMS, &message, &details, &svc.CheckedAt); err != nil {
		return svc, fmt.Errorf("%w: %w", ErrFailedToScan, err)
	}

	svc.Status = models.Status(status)
	svc.Message = message.String

	if details.Valid && details.String != "" {
		svc.Details = json.RawMessage(details.String)
	}

	return svc, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("Error closing rows: %v", err)
	}
}
