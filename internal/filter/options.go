package filter

import (
	"github.com/Iron-Ham/sift/internal/event"
	"github.com/Iron-Ham/sift/internal/logging"
)

type options struct {
	bus    *event.Bus
	logger *logging.Logger
	id     string
}

// Option configures a Manager at Init time.
type Option func(*options)

// WithBus publishes the manager's events on bus instead of a private one.
// Events carry the manager ID, so several managers can share a bus.
func WithBus(bus *event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithLogger sets the logger used for debug traces of staged operations
// and activations.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithID overrides the generated manager ID.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
