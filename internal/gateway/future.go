package gateway

import (
	"context"
	"log/slog"
	"sync"
)

// Display strings used by callers that show a reply.
const (
	DisplayPending = "N/A"
	DisplayError   = "Err"
)

// Reply is the outcome of one submission, tagged with its sequence number.
type Reply struct {
	Seq  uint64
	Body string
	Err  error
}

// DisplayText maps a reply to what the user sees: the body verbatim, or
// "Err" on any failure.
func DisplayText(r Reply) string {
	if r.Err != nil {
		return DisplayError
	}
	return r.Body
}

// Future is a single pending submission. Nothing is sent until Start or
// Wait is called.
type Future struct {
	seq    uint64
	text   string
	sub    Submitter
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
	reply  Reply
}

func newFuture(ctx context.Context, sub Submitter, seq uint64, text string) *Future {
	ctx, cancel := context.WithCancel(ctx)
	return &Future{
		seq:    seq,
		text:   text,
		sub:    sub,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (f *Future) Seq() uint64 { return f.seq }

// Start sends the request in the background. Later calls do nothing.
func (f *Future) Start() {
	f.once.Do(func() {
		go func() {
			defer close(f.done)
			defer f.cancel()
			body, err := f.sub.Submit(f.ctx, f.text)
			f.reply = Reply{Seq: f.seq, Body: body, Err: err}
		}()
	})
}

// Done is closed once the reply is available. It never closes for a
// future that was not started.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait starts the future if needed and blocks until its reply is ready.
func (f *Future) Wait() Reply {
	f.Start()
	<-f.done
	return f.reply
}

// Cancel aborts the request. A started future then completes with an error.
func (f *Future) Cancel() { f.cancel() }

// Dispatcher hands out futures with increasing sequence numbers. Only the
// most recent one is current; starting a new submission cancels the
// previous one so a slow reply cannot overwrite a newer result.
type Dispatcher struct {
	sub    Submitter
	logger *slog.Logger

	mu       sync.Mutex
	seq      uint64
	inflight *Future
}

func NewDispatcher(sub Submitter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sub: sub, logger: logger}
}

func (d *Dispatcher) Endpoint() string { return d.sub.Endpoint() }

// Submit creates and starts a future for text.
func (d *Dispatcher) Submit(ctx context.Context, text string) *Future {
	f := d.Prepare(ctx, text)
	f.Start()
	return f
}

// Prepare creates the next future without starting it. Any earlier
// in-flight future is canceled.
func (d *Dispatcher) Prepare(ctx context.Context, text string) *Future {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight != nil {
		d.logger.Debug("superseding in-flight request", "seq", d.inflight.seq)
		d.inflight.Cancel()
	}
	d.seq++
	f := newFuture(ctx, d.sub, d.seq, text)
	d.inflight = f
	return f
}

// IsCurrent reports whether seq belongs to the latest submission.
func (d *Dispatcher) IsCurrent(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}

// CancelAll aborts the in-flight submission, if any.
func (d *Dispatcher) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight != nil {
		d.inflight.Cancel()
		d.inflight = nil
	}
}
