package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/api/metrics"
	"github.com/teamhub/portal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes live-channel pushes to a fixed set of workers using
// consistent hashing on the task ID, so pushes for the same task stay
// ordered while the request goroutine never blocks on delivery.
type Dispatcher struct {
	workers   []chan ports.LiveMessage
	publisher ports.LivePublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.LivePublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.LiveMessage, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LiveMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Push hands a message to the worker responsible for its task. Pushes are
// fire-and-forget: when the worker's buffer is full the message is dropped
// and counted, never blocking the caller.
func (d *Dispatcher) Push(msg ports.LiveMessage) {
	select {
	case d.workers[d.shardIndex(msg.TaskID)] <- msg:
	default:
		metrics.LivePushesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("task_id", msg.TaskID).Msg("live push dropped, worker queue full")
	}
}

// shardIndex maps a task ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LiveMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.publisher.Publish(ctx, msg); err != nil {
				metrics.LivePushesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("task_id", msg.TaskID).
					Int("worker_id", id).
					Msg("live push failed")
				continue
			}
			metrics.LivePushesTotal.WithLabelValues("ok").Inc()
		}
	}
}
