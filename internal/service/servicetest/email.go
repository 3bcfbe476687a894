package servicetest

import (
	"context"
	"slices"
	"sync"
)

// SentEmail is one message captured by EmailRecorder.
type SentEmail struct {
	Kind string
	To   string
	Name string
	Ref  string
}

// EmailRecorder captures outgoing e-mails instead of sending them. When
// Block is set every send waits for it to be closed first.
type EmailRecorder struct {
	Err   error
	Block chan struct{}

	mu   sync.Mutex
	sent []SentEmail
}

func (e *EmailRecorder) SendWelcome(ctx context.Context, to, employeeName, loginURL string) error {
	return e.record(ctx, SentEmail{Kind: "welcome", To: to, Name: employeeName, Ref: loginURL})
}

func (e *EmailRecorder) SendPasswordResetNotice(ctx context.Context, to, employeeName, resetBy string) error {
	return e.record(ctx, SentEmail{Kind: "password_reset", To: to, Name: employeeName, Ref: resetBy})
}

// Sent returns a snapshot of the delivered messages.
func (e *EmailRecorder) Sent() []SentEmail {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.sent)
}

func (e *EmailRecorder) record(ctx context.Context, m SentEmail) error {
	if e.Block != nil {
		select {
		case <-e.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Err != nil {
		return e.Err
	}
	e.sent = append(e.sent, m)
	return nil
}
