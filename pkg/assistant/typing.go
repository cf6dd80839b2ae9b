package assistant

import (
	"context"
	"time"
)

type typingResponder struct {
	next  Responder
	delay time.Duration
}

// WithTypingDelay holds every resolution back for delay so a chat widget
// can show a typing indicator. A cancelled context returns immediately
// with the resolution already computed.
func WithTypingDelay(next Responder, delay time.Duration) Responder {
	if delay <= 0 {
		return next
	}
	return &typingResponder{next: next, delay: delay}
}

func (t *typingResponder) Respond(ctx context.Context, utterance string, history []Message) Resolution {
	res := t.next.Respond(ctx, utterance, history)

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	return res
}
