package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/api/metrics"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/service"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher hands access events to a fixed set of workers. Events are
// sharded by client id so one client's events are stored in order.
type Dispatcher struct {
	workers   []chan domain.AccessEvent
	processor service.AuditProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor service.AuditProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.AccessEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues event without blocking. When the worker's buffer is full
// the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AccessEvent) {
	idx := d.shardIndex(event.ClientID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("client_id", event.ClientID).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.processor.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("client_id", event.ClientID).
					Int("worker_id", id).
					Msg("access event not stored")
			}
		}
	}
}
