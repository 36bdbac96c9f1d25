package notification

import (
	"context"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// QueueEmitter hands events to a Queue and logs enqueue failures.
type QueueEmitter struct {
	queue Queue
	now   func() time.Time
}

func NewQueueEmitter(queue Queue) *QueueEmitter {
	return &QueueEmitter{queue: queue, now: time.Now}
}

func (e *QueueEmitter) Emit(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}
	if err := e.queue.Enqueue(&event); err != nil {
		logger.Error().Err(err).
			Str("kind", string(event.Kind)).
			Uint("team_id", event.TeamID).
			Uint("affected_user_id", event.AffectedUserID).
			Msg("failed to enqueue notification")
	}
}
