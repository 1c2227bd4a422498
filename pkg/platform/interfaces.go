// Package platform pkg/platform/interfaces.go

//go:generate mockgen -destination=mock_platform.go -package=platform github.com/readykit/pulse/pkg/platform Service

package platform

import (
	"context"

	"github.com/readykit/pulse/pkg/models"
)

// LogFilter narrows the system log view.
type LogFilter struct {
	Level          string // error, warn, info; empty matches all
	Source         string // writing subsystem; empty matches all
	UnresolvedOnly bool
	Limit          int
}

// Service is the slice of the platform Postgres this daemon uses: a
// liveness ping, batched user email resolution and the system log view.
type Service interface {
	Ping(ctx context.Context) error
	EmailsByID(ctx context.Context, ids []string) (map[string]string, error)
	ListSystemLogs(ctx context.Context, filter LogFilter) ([]models.SystemLogEntry, error)
	ResolveSystemLog(ctx context.Context, id string) error
	Close()
}
