package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/DhavalSuthar-24/rosterhub/config"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// Worker consumes notification tasks from Redis.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor func(context.Context, *Event) error
	running   bool
	mu        sync.Mutex
}

// NewWorker returns nil when Redis is disabled.
func NewWorker(cfg *config.RedisConfig, processor func(context.Context, *Event) error) *Worker {
	if !cfg.Enabled {
		return nil
	}

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{queueName: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("task", task.Type()).Msg("[Worker] task failed")
			}),
		},
	)

	return &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		processor: processor,
	}
}

// Start begins processing tasks in the background. Shutdown signals are
// handled by the caller through Stop.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeDeliver, w.HandleDeliverTask)
	logger.Infof("[Worker] Starting notification worker...")
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	w.running = true
	return nil
}

// Stop gracefully shuts down the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	logger.Infof("[Worker] Shutting down...")
	w.server.Shutdown()
	w.running = false
}

// HandleDeliverTask decodes one task and runs the processor on it.
func (w *Worker) HandleDeliverTask(ctx context.Context, t *asynq.Task) error {
	var event Event
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if w.processor == nil {
		return nil
	}
	return w.processor(ctx, &event)
}
