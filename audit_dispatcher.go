package authcore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// auditDispatcher decouples the flows from the sink. Flows hand events over
// on a buffered channel and never wait on sink I/O unless the configuration
// explicitly asks for backpressure (DropIfFull=false).
//
// The dispatcher also owns the client-side event envelope: device id and app
// version are stamped from the caller's context at enqueue time, and the
// timestamp is filled at delivery if the flow left it zero.
type auditDispatcher struct {
	sink       AuditSink
	events     chan AuditEvent
	quit       chan struct{}
	drained    chan struct{}
	dropIfFull bool
	dropped    atomic.Uint64
	closing    atomic.Bool
	closeOnce  sync.Once
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		sink:       sink,
		events:     make(chan AuditEvent, buffer),
		quit:       make(chan struct{}),
		drained:    make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}
	go d.run()
	return d
}

func (d *auditDispatcher) run() {
	defer close(d.drained)

	for {
		select {
		case event := <-d.events:
			d.deliver(event)
		case <-d.quit:
			// Flush whatever was enqueued before Close; Emit rejects new
			// events once closing is set, so this terminates.
			for {
				select {
				case event := <-d.events:
					d.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (d *auditDispatcher) deliver(event AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	d.sink.Emit(context.Background(), event)
}

// Emit enqueues an event, stamping the request-scoped device id and app
// version from ctx. With DropIfFull it never blocks; otherwise it waits for
// buffer space but gives up when the caller's ctx is done or the dispatcher
// shuts down.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.closing.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if event.DeviceID == "" {
		event.DeviceID = deviceIDFromContext(ctx)
	}
	if event.AppVersion == "" {
		event.AppVersion = appVersionFromContext(ctx)
	}

	if d.dropIfFull {
		select {
		case d.events <- event:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.events <- event:
	case <-ctx.Done():
		d.dropped.Add(1)
	case <-d.quit:
	}
}

// Close stops the worker after draining already-enqueued events. Safe to
// call more than once; Emit after Close is a no-op.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closing.Store(true)
		close(d.quit)
		<-d.drained
	})
}

// Dropped reports how many events were discarded because the buffer was full
// or the caller's context expired while waiting.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
