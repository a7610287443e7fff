package logging

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AsyncLogger decouples message production from message emission: Write
// only enqueues a thunk, a single background goroutine evaluates it and
// hands the resulting string to emit. This mirrors the original engine's
// lock-free-queue-plus-event-loop logger: while the queue has room, the
// firing hot path does not wait on the actual sink (file, network, stderr);
// once the queue is full, Write blocks until the goroutine catches up.
type AsyncLogger struct {
	emit  func(string)
	queue chan func() string
	group *errgroup.Group
	stop  context.CancelFunc
}

// NewAsyncLogger builds a logger with the given queue depth. emit is called
// from the single background goroutine only, never concurrently.
func NewAsyncLogger(capacity int, emit func(string)) *AsyncLogger {
	if capacity <= 0 {
		capacity = 256
	}
	return &AsyncLogger{
		emit:  emit,
		queue: make(chan func() string, capacity),
	}
}

// Open starts the drain goroutine. Safe to call once.
func (l *AsyncLogger) Open() error {
	ctx, cancel := context.WithCancel(context.Background())
	l.stop = cancel
	g, ctx := errgroup.WithContext(ctx)
	l.group = g
	g.Go(func() error {
		for {
			select {
			case msg, ok := <-l.queue:
				if !ok {
					return nil
				}
				l.emit(msg())
			case <-ctx.Done():
				l.drainRemaining()
				return nil
			}
		}
	})
	return nil
}

// drainRemaining flushes whatever is still buffered once cancellation
// arrives, so Close never silently drops a message that was already
// accepted.
func (l *AsyncLogger) drainRemaining() {
	for {
		select {
		case msg, ok := <-l.queue:
			if !ok {
				return
			}
			l.emit(msg())
		default:
			return
		}
	}
}

// Write enqueues msg for background evaluation. It blocks if the queue is
// full, applying backpressure rather than dropping a diagnostic silently.
func (l *AsyncLogger) Write(msg func() string) {
	if l.queue == nil {
		return
	}
	l.queue <- msg
}

// Close stops accepting new messages, drains what is queued, and waits for
// the background goroutine to exit.
func (l *AsyncLogger) Close() error {
	close(l.queue)
	if l.stop != nil {
		l.stop()
	}
	if l.group != nil {
		return l.group.Wait()
	}
	return nil
}
