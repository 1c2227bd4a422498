// Package health pkg/health/interfaces.go

//go:generate mockgen -destination=mock_health.go -package=health github.com/readykit/pulse/pkg/health HistoryStore

package health

import (
	"time"

	"github.com/readykit/pulse/pkg/models"
)

// HistoryStore is the slice of the local store the monitor writes to.
type HistoryStore interface {
	SaveSnapshot(snapshot *models.SystemHealth) error
	CleanOldData(retention time.Duration) error
}
