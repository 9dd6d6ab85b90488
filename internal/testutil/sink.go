package testutil

import (
	"context"
	"sync"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/notification"
)

// InMemorySink captures notifications for assertions. Setting FailNext
// makes the next Notify call fail, which lets tests exercise delivery
// failure paths.
type InMemorySink struct {
	mu       sync.Mutex
	sent     []notification.Notification
	failNext bool
	failAll  bool
}

// NewInMemorySink creates a new capturing sink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

// Notify records the notification, or fails if failure injection is armed.
func (s *InMemorySink) Notify(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll || s.failNext {
		s.failNext = false
		return ierr.NewError("notification delivery failed").
			WithHint("The notification channel is unavailable").
			Mark(ierr.ErrSinkUnavailable)
	}

	s.sent = append(s.sent, *n)
	return nil
}

// Sent returns a copy of the captured notifications.
func (s *InMemorySink) Sent() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]notification.Notification, len(s.sent))
	copy(out, s.sent)
	return out
}

// FailNext arms a one-shot delivery failure.
func (s *InMemorySink) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// SetFailAll makes every delivery fail until reset.
func (s *InMemorySink) SetFailAll(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = fail
}

// Reset clears captured notifications and failure injection.
func (s *InMemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
	s.failNext = false
	s.failAll = false
}
