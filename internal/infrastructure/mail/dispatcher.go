package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/craftbase/auth-api/internal/api/metrics"
	"github.com/craftbase/auth-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	queueBuffer    = 128
)

// Dispatcher delivers mail on background workers so request handlers never
// wait on, or fail because of, the mail transport. Delivery errors surface
// through logs and metrics only.
type Dispatcher struct {
	queue   chan ports.Mail
	workers int
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers delivery workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		queue:   make(chan ports.Mail, queueBuffer),
		workers: numWorkers,
		mailer:  mailer,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Enqueue hands a mail to the workers without blocking. When the buffer is
// full the mail is dropped and the drop recorded; the request path must not
// stall on a slow relay.
func (d *Dispatcher) Enqueue(m ports.Mail) {
	select {
	case d.queue <- m:
		metrics.MailQueueDepth.Set(float64(len(d.queue)))
	default:
		metrics.MailDispatchTotal.WithLabelValues("dropped").Inc()
		d.log.Error().
			Str("recipient", m.Recipient).
			Str("template", m.TemplateID).
			Msg("mail queue full, notification dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-d.queue:
			if !ok {
				return
			}
			metrics.MailQueueDepth.Set(float64(len(d.queue)))
			if err := d.mailer.Send(ctx, m); err != nil {
				metrics.MailDispatchTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("recipient", m.Recipient).
					Str("template", m.TemplateID).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailDispatchTotal.WithLabelValues("sent").Inc()
		}
	}
}
