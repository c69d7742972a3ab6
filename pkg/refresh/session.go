package refresh

import (
	"context"
)

// Session is one run of the refresh algorithm. A session that is superseded by a
// newer one is cancelled and stops touching controller state.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	preference string

	// Guarded by Controller.mu
	errors   []string
	produced bool
}

func newSession(parent context.Context, preference string) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		preference: preference,
	}
}

// Done is closed when the session has finished or has observed its cancellation.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session is done or ctx expires.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) Cancel() {
	s.cancel()
}

func (s *Session) Preference() string {
	return s.preference
}
