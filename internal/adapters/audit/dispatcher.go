package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

type envelope struct {
	ctx context.Context
	rec domain.AuditRecord
}

// Dispatcher decouples committed postings from slow sinks. Emit never blocks: when the
// buffer is full the record is dropped and a warning is logged.
type Dispatcher struct {
	sinks   []portssvc.AuditSink
	queue   chan envelope
	logger  *slog.Logger
	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	dropped atomic.Int64
}

var _ portssvc.AuditSink = (*Dispatcher)(nil)

// NewDispatcher starts one worker delivering to every sink in order.
func NewDispatcher(buffer int, logger *slog.Logger, sinks ...portssvc.AuditSink) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher{
		sinks:  sinks,
		queue:  make(chan envelope, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for env := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, env)
		}
	}
}

func (d *Dispatcher) deliver(sink portssvc.AuditSink, env envelope) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Audit sink panicked", slog.Any("panic", r), slog.String("transaction_id", env.rec.TransactionID))
		}
	}()
	sink.Emit(env.ctx, env.rec)
}

func (d *Dispatcher) Emit(ctx context.Context, rec domain.AuditRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(rec, "dispatcher closed")
		return
	}
	select {
	case d.queue <- envelope{ctx: context.WithoutCancel(ctx), rec: rec}:
	default:
		d.drop(rec, "buffer full")
	}
}

func (d *Dispatcher) drop(rec domain.AuditRecord, reason string) {
	d.dropped.Add(1)
	d.logger.Warn("Audit record dropped",
		slog.String("reason", reason),
		slog.String("transaction_id", rec.TransactionID),
		slog.String("account_id", rec.AccountID))
}

// Dropped returns how many records were discarded.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

// Close stops accepting records and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
