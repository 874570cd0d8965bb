package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher sends queued messages on a fixed set of workers. Each message
// gets exactly one delivery attempt; failures are logged and dropped.
type Dispatcher struct {
	client  EmailClient
	from    string
	queue   chan Message
	workers int
	timeout time.Duration
}

func NewDispatcher(client EmailClient, from string, queueSize, workers int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Dispatcher{
		client:  client,
		from:    from,
		queue:   make(chan Message, queueSize),
		workers: workers,
		timeout: timeout,
	}
}

// Submit enqueues m without blocking. It reports false when the queue is
// full and the message was dropped.
func (d *Dispatcher) Submit(m Message) bool {
	select {
	case d.queue <- m:
		return true
	default:
		slog.Warn("mail queue full, dropping message", "to", m.To, "subject", m.Subject)
		return false
	}
}

// Send delivers m synchronously, bypassing the queue.
func (d *Dispatcher) Send(ctx context.Context, m Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.client.Send(ctx, d.from, m.To, m.Subject, m.Body)
}

// Run processes the queue until ctx is cancelled, then sends whatever is
// still queued and returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("mail dispatcher started", "workers", d.workers, "queue", cap(d.queue))

	var wg sync.WaitGroup
	for range d.workers {
		wg.Go(func() { d.work(ctx) })
	}
	wg.Wait()

	if n := len(d.queue); n > 0 {
		slog.Warn("mail dispatcher stopped with undelivered messages", "count", n)
		return nil
	}
	slog.Info("mail dispatcher stopped")
	return nil
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case m := <-d.queue:
			d.deliver(m)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case m := <-d.queue:
			d.deliver(m)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(m Message) {
	// Detached from request and server lifetimes.
	if err := d.Send(context.Background(), m); err != nil {
		slog.Error("failed to send email", "to", m.To, "subject", m.Subject, "error", err)
		return
	}
	slog.Info("email sent", "to", m.To, "subject", m.Subject)
}
