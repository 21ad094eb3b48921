package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	SalonID   string
	ActorID   string
	ActorKind string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Sink persists a single event.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher hands events to a sink on a background worker so audit
// persistence never blocks or fails a request. A nil *Dispatcher is a no-op,
// and events dispatched after Close are dropped.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Write(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_id", ev.EntityID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
