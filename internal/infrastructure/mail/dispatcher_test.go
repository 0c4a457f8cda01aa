package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftbase/auth-api/internal/core/ports"
)

type stubMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatcher_DeliversEnqueuedMail(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.Mail{Recipient: "a@test.com", TemplateID: "password-reset"})

	deadline := time.Now().Add(2 * time.Second)
	for mailer.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("mail was not delivered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// No workers running: the queue fills up and further mail is dropped.
	d := NewDispatcher(1, &stubMailer{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueBuffer+10; i++ {
			d.Enqueue(ports.Mail{Recipient: "a@test.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_SenderFailureStaysInternal(t *testing.T) {
	mailer := &stubMailer{err: errors.New("relay down")}
	d := NewDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Enqueue has no error return; a failing sender must not panic or block.
	d.Enqueue(ports.Mail{Recipient: "a@test.com", TemplateID: "password-reset"})
	time.Sleep(50 * time.Millisecond)

	if mailer.count() != 0 {
		t.Fatalf("expected no successful deliveries")
	}
}

func TestDispatcher_WorkersStopOnCancel(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)

	d.Enqueue(ports.Mail{Recipient: "a@test.com"})
	time.Sleep(50 * time.Millisecond)

	if mailer.count() != 0 {
		t.Fatalf("expected no delivery after cancellation")
	}
}
