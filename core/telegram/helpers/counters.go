package helpers

import (
	"context"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

type countersCtxKey struct{}

// Counters tracks the replies queued while one update is handled.
type Counters struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// Add counts one message; keyboard marks that it carried reply markup.
func (c *Counters) Add(keyboard bool) {
	if c == nil {
		return
	}
	c.messages.Add(1)
	if keyboard {
		c.keyboard.Store(true)
	}
}

// Snapshot returns the message count and whether any message had a keyboard.
func (c *Counters) Snapshot() (int, bool) {
	if c == nil {
		return 0, false
	}
	return int(c.messages.Load()), c.keyboard.Load()
}

// AttachCounters creates fresh counters for the update handled by c.
func AttachCounters(c tele.Context) *Counters {
	counters := &Counters{}
	c.Set(countersKey, counters)
	if ctx, ok := ContextFrom(c); ok {
		StoreContext(c, WithCounters(ctx, counters))
	}
	return counters
}

// CountersOf returns the counters attached to c, if any.
func CountersOf(c tele.Context) *Counters {
	counters, _ := c.Get(countersKey).(*Counters)
	return counters
}

// WithCounters stores counters in ctx so senders outside the handler see them.
func WithCounters(ctx context.Context, counters *Counters) context.Context {
	return context.WithValue(ctx, countersCtxKey{}, counters)
}

// CountersFrom returns the counters carried by ctx; nil is safe to Add to.
func CountersFrom(ctx context.Context) *Counters {
	if ctx == nil {
		return nil
	}
	counters, _ := ctx.Value(countersCtxKey{}).(*Counters)
	return counters
}
