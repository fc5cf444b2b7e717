package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/intima/internal/metrics"
)

const publishTimeout = 2 * time.Second

func Channel(accountID uuid.UUID) string {
	return "intima:notifications:" + accountID.String()
}

// Redis publishes events as JSON on the recipient's channel.
type Redis struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRedis(rdb redis.Cmdable) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

func (r *Redis) Notify(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = r.now().UTC()
	}

	payload, err := json.Marshal(e)
	if err != nil {
		slog.Error("failed to encode notification", "kind", e.Kind, "error", err)
		metrics.Notifications.WithLabelValues("error").Inc()

		return
	}

	// The request that triggered the event may already be finished.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = r.rdb.Publish(ctx, Channel(e.AccountID), string(payload)).Err()
	if err != nil {
		slog.Warn("failed to publish notification", "kind", e.Kind, "account_id", e.AccountID, "error", err)
	}

	metrics.Notifications.WithLabelValues(metrics.Outcome(err)).Inc()
}
