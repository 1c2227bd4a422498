package probes

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/readykit/pulse/pkg/models"
)

const defaultQueueName = "celery"

// RedisBrokerProbe pings the workflow job broker and measures queue depth.
// A reachable broker with a deep backlog is degraded, not unhealthy: jobs
// still complete, just slowly.
type RedisBrokerProbe struct {
	client    redis.Cmdable
	queueName string
	depthWarn int64
}

func NewRedisBrokerProbe(client redis.Cmdable, queueName string, depthWarn int64) *RedisBrokerProbe {
	if queueName == "" {
		queueName = defaultQueueName
	}

	return &RedisBrokerProbe{
		client:    client,
		queueName: queueName,
		depthWarn: depthWarn,
	}
}

func (*RedisBrokerProbe) Name() string { return "redis" }

func (r *RedisBrokerProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return result(r.Name(), models.StatusUnhealthy, start, fmt.Sprintf("ping failed: %v", err))
	}

	depth, err := r.client.LLen(ctx, r.queueName).Result()
	if err != nil {
		h := result(r.Name(), models.StatusDegraded, start, fmt.Sprintf("queue depth unavailable: %v", err))

		return h
	}

	status := models.StatusHealthy
	msg := "broker responding"

	if r.depthWarn > 0 && depth >= r.depthWarn {
		status = models.StatusDegraded
		msg = fmt.Sprintf("queue backlog at %d (warn threshold %d)", depth, r.depthWarn)
	}

	h := result(r.Name(), status, start, msg)

	return withDetails(h, map[string]interface{}{
		"queue": r.queueName,
		"depth": depth,
	})
}
