// Package audit records who changed what, off the request path.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const queueSize = 100

type Event struct {
	BarbershopID *uint
	ActorUID     string
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher queues events for a single writer goroutine. Dispatch never
// blocks: when the queue is full the event is dropped and logged.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, queueSize),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

// NewNop returns a dispatcher that discards every event.
func NewNop() *Dispatcher {
	return &Dispatcher{log: zerolog.Nop()}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error().Err(err).
				Str("action", ev.Action).
				Str("entity", ev.Entity).
				Msg("audit write failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil || d.queue == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// DispatchCtx fills ActorUID from ctx when the event does not name one.
func (d *Dispatcher) DispatchCtx(ctx context.Context, ev Event) {
	if ev.ActorUID == "" {
		ev.ActorUID = ActorFrom(ctx)
	}
	d.Dispatch(ev)
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil || d.queue == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
