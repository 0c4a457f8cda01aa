package ports

import "context"

// BruteForceGate throttles login attempts per identity. The blocking decision
// belongs to the HTTP layer; the session service only emits the success reset.
type BruteForceGate interface {
	// Allow reports whether the identity is still under the attempt threshold.
	Allow(ctx context.Context, identity string) (bool, error)
	// RegisterFailure records one failed attempt inside the current window.
	RegisterFailure(ctx context.Context, identity string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, identity string) error
}

// Mail carries one notification to be delivered.
type Mail struct {
	Recipient  string
	TemplateID string
	Variables  map[string]string
}

// Mailer performs the actual delivery.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// MailDispatcher queues mail without blocking the caller. Delivery failures
// are observable through logs and metrics only, never through the caller.
type MailDispatcher interface {
	Enqueue(m Mail)
}
