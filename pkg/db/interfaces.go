// Package db pkg/db/interfaces.go
//
//go:generate mockgen -destination=mock_db.go -package=db github.com/readykit/pulse/pkg/db Service
package db

import (
	"time"

	"github.com/readykit/pulse/pkg/models"
)

// Service represents all local history store operations.
type Service interface {
	// Snapshot operations.

	SaveSnapshot(snapshot *models.SystemHealth) error
	GetSnapshots(limit int) ([]models.SystemHealth, error)
	GetServiceHistory(serviceName string, limit int) ([]models.ServiceHealth, error)

	// Maintenance operations.

	CleanOldData(retentionPeriod time.Duration) error
	Close() error
}
