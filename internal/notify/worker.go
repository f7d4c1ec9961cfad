// Package notify delivers human-facing notifications off the request path.
// Delivery failures are logged and swallowed; they never fail the caller.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
)

// Sink is one delivery channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, n domain.Notification) error
}

// Worker queues notifications on a buffered channel and fans them out to its
// sinks from a single goroutine. When the buffer is full notifications are dropped.
type Worker struct {
	queue       chan domain.Notification
	sinks       []Sink
	logger      *slog.Logger
	sendTimeout time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

var _ portssvc.NotifierSvc = (*Worker)(nil)

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithLogger sets the logger used for delivery failures.
func WithLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) { w.logger = logger }
}

// WithSendTimeout bounds each sink call.
func WithSendTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) { w.sendTimeout = d }
}

// NewWorker creates a worker. Call Start before use and Shutdown on exit.
func NewWorker(bufferSize int, sinks []Sink, opts ...WorkerOption) *Worker {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		queue:       make(chan domain.Notification, bufferSize),
		sinks:       sinks,
		logger:      slog.Default(),
		sendTimeout: 5 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the delivery goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info("draining notifications before shutdown", slog.Int("remaining", len(w.queue)))
				for {
					select {
					case n := <-w.queue:
						w.deliver(context.Background(), n)
					default:
						return
					}
				}
			case n := <-w.queue:
				w.deliver(w.ctx, n)
			}
		}
	}()
}

// Notify enqueues n without blocking.
func (w *Worker) Notify(ctx context.Context, n domain.Notification) {
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}
	select {
	case w.queue <- n:
	default:
		w.logger.Warn("notification queue full, dropping notification",
			slog.String("event", string(n.Event)), slog.String("team_id", n.TeamID))
	}
}

// Shutdown stops accepting work, drains what is queued and waits for delivery to finish.
func (w *Worker) Shutdown() {
	w.once.Do(func() {
		w.cancel()
		w.wg.Wait()
	})
}

func (w *Worker) deliver(parent context.Context, n domain.Notification) {
	for _, sink := range w.sinks {
		ctx, cancel := context.WithTimeout(parent, w.sendTimeout)
		err := sink.Send(ctx, n)
		cancel()
		if err != nil {
			w.logger.Error("failed to deliver notification",
				slog.String("sink", sink.Name()),
				slog.String("event", string(n.Event)),
				slog.String("team_id", n.TeamID),
				slog.String("error", err.Error()))
		}
	}
}

// Discard is a notifier that drops everything.
type Discard struct{}

func (Discard) Notify(context.Context, domain.Notification) {}
