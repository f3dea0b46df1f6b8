// Package notify implements the fire-and-forget notification dispatcher.
// Services hand notifications to the dispatcher and never wait for delivery;
// a single worker drains the queue and sends emails. Delivery failures are
// logged and never reach the producing operation.
package notify

import (
	"context"
	"log/slog"
	"time"

	"eventboard/internal/domain"
)

// DefaultQueueSize is used when the configured queue size is not positive.
const DefaultQueueSize = 256

// deliveryTimeout bounds a single email send so a slow provider cannot stall
// the queue indefinitely.
const deliveryTimeout = 30 * time.Second

type Dispatcher struct {
	logger *slog.Logger
	emails domain.EmailService
	queue  chan domain.Notification
}

// NewDispatcher returns a Dispatcher with a buffered queue of the given size.
// Run must be started for notifications to be delivered.
func NewDispatcher(logger *slog.Logger, emails domain.EmailService, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		logger: logger,
		emails: emails,
		queue:  make(chan domain.Notification, queueSize),
	}
}

// Notify enqueues a notification without blocking. When the queue is full the
// notification is dropped; dispatch is best-effort by contract.
func (d *Dispatcher) Notify(n domain.Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping",
			"kind", n.Kind,
			"recipient", n.RecipientEmail,
		)
	}
}

// Run consumes the queue until ctx is canceled, then delivers whatever is
// already queued and returns. Intended to run in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			d.logger.Info("notification dispatcher stopped")
			return
		case n := <-d.queue:
			d.deliver(n)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	data := &domain.EventEmailData{Email: n.RecipientEmail, EventTitle: n.EventTitle}
	var err error
	switch n.Kind {
	case domain.NotificationEventCreated:
		err = d.emails.SendEventCreated(ctx, data)
	case domain.NotificationEventApproved:
		err = d.emails.SendEventApproved(ctx, data)
	case domain.NotificationEventDeleted:
		err = d.emails.SendEventDeleted(ctx, data)
	default:
		d.logger.Warn("unknown notification kind", "kind", n.Kind)
		return
	}
	if err != nil {
		d.logger.Error("notification delivery failed",
			"kind", n.Kind,
			"recipient", n.RecipientEmail,
			"err", err,
		)
	}
}
