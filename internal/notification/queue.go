package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/DhavalSuthar-24/rosterhub/config"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

const (
	TaskTypeDeliver = "notification:deliver"
	queueName       = "notifications"
)

// Queue carries events from the roster services to the inbox processor.
type Queue interface {
	Enqueue(event *Event) error
	// IsAsync returns true if a separate worker consumes the queue.
	IsAsync() bool
	Close() error
}

// NewQueue returns a Redis-backed queue when enabled and reachable, and an
// in-process queue otherwise.
func NewQueue(cfg *config.RedisConfig) Queue {
	if !cfg.Enabled {
		logger.Infof("[NotificationQueue] Sync queue initialized (Redis disabled)")
		return NewSyncQueue()
	}
	queue, err := NewAsyncQueue(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("[NotificationQueue] Redis unavailable, falling back to sync mode")
		return NewSyncQueue()
	}
	logger.Infof("[NotificationQueue] Async queue initialized with Redis at %s", cfg.Addr)
	return queue
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

const defaultEnqueueTimeout = 2 * time.Second

// AsyncQueue implements Queue using asynq.
type AsyncQueue struct {
	client  *asynq.Client
	timeout time.Duration
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	timeout := cfg.EnqueueTimeout
	if timeout <= 0 {
		timeout = defaultEnqueueTimeout
	}
	opt := redisOpt(cfg)
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		return nil, err
	}
	return newAsyncQueue(opt, timeout), nil
}

// newAsyncQueue builds the producer side. Socket timeouts match the enqueue
// deadline so a stalled Redis cannot hold a request past it.
func newAsyncQueue(opt asynq.RedisClientOpt, timeout time.Duration) *AsyncQueue {
	opt.DialTimeout = timeout
	opt.ReadTimeout = timeout
	opt.WriteTimeout = timeout
	return &AsyncQueue{client: asynq.NewClient(opt), timeout: timeout}
}

// NewDeliverTask encodes an event as an asynq task.
func NewDeliverTask(event *Event) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeliver, payload), nil
}

func (q *AsyncQueue) Enqueue(event *Event) error {
	task, err := NewDeliverTask(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	info, err := q.client.EnqueueContext(ctx, task, asynq.Queue(queueName), asynq.MaxRetry(3))
	if err != nil {
		return err
	}
	logger.Debug().Str("task_id", info.ID).Str("kind", string(event.Kind)).Msg("[AsyncQueue] notification enqueued")
	return nil
}

func (q *AsyncQueue) IsAsync() bool { return true }

func (q *AsyncQueue) Close() error { return q.client.Close() }

// SyncQueue processes events in background goroutines of this process.
type SyncQueue struct {
	mu        sync.RWMutex
	processor func(context.Context, *Event) error
	wg        sync.WaitGroup
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function that handles each event.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *Event) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processor = processor
}

func (q *SyncQueue) Enqueue(event *Event) error {
	q.mu.RLock()
	processor := q.processor
	q.mu.RUnlock()
	if processor == nil {
		logger.Warn().Str("kind", string(event.Kind)).Msg("[SyncQueue] no processor set, notification dropped")
		return nil
	}

	ev := *event
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := processor(context.Background(), &ev); err != nil {
			logger.Error().Err(err).Str("kind", string(ev.Kind)).Msg("[SyncQueue] notification processing failed")
		}
	}()
	return nil
}

func (q *SyncQueue) IsAsync() bool { return false }

// Close waits for in-flight events.
func (q *SyncQueue) Close() error {
	q.wg.Wait()
	return nil
}
