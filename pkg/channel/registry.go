package channel

import (
	"context"
	"fmt"
	"sync"

	"github.com/campusalert/campusalert/pkg/alert"
)

// Registry maps channel names to implementations. When a message names a
// channel nobody registered, delivery falls back to email so an outdated
// preference degrades to the universal transport instead of failing.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Channel
	fallback string
}

// NewRegistry creates a registry with the given channels. The email channel
// is the fallback when present.
func NewRegistry(channels ...Channel) *Registry {
	r := &Registry{
		channels: make(map[string]Channel, len(channels)),
		fallback: alert.ChannelEmail,
	}
	for _, c := range channels {
		r.channels[c.Name()] = c
	}
	return r
}

// Register adds or replaces a channel.
func (r *Registry) Register(c Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[c.Name()] = c
}

// Resolve returns the channel registered under name, or the fallback channel
// when the name is unknown. The returned name reflects the channel actually
// chosen.
func (r *Registry) Resolve(name string) (Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.channels[name]; ok {
		return c, nil
	}
	if c, ok := r.channels[r.fallback]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// Deliver routes the message to its channel, falling back to email for
// unknown channel names. It returns the name of the channel actually used
// so callers can record the real transport rather than the requested one.
func (r *Registry) Deliver(ctx context.Context, msg alert.Message) (string, error) {
	c, err := r.Resolve(msg.Channel)
	if err != nil {
		return "", err
	}
	msg.Channel = c.Name()
	return c.Name(), c.Deliver(ctx, msg)
}
