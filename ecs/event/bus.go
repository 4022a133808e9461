// Package event provides a typed, synchronous publish/subscribe bus that
// systems use to talk to each other without holding references to one
// another.
package event

import (
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Bus stores event handlers keyed by event type. Emitting an event calls
// every handler for that type right away, in subscription order; nothing is
// queued. A handler that emits another event runs that emission to
// completion before the outer emission continues.
//
// A Bus is not safe for concurrent use.
type Bus struct {
	handlers map[reflect.Type][]any
	log      *zap.Logger
}

// NewBus creates an empty bus. A nil logger disables logging.
func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[reflect.Type][]any),
		log:      log,
	}
}

// Subscribe registers handler for events of type E. Handlers are usually
// method values bound to their owning system, e.g. bus.Subscribe(s.OnHit).
func Subscribe[E any](b *Bus, handler func(*E)) {
	t := reflect.TypeFor[E]()
	b.handlers[t] = append(b.handlers[t], handler)
}

// Emit delivers ev to every handler subscribed to E. All handlers receive a
// pointer to the same event value.
func Emit[E any](b *Bus, ev E) {
	handlers := b.handlers[reflect.TypeFor[E]()]
	for _, h := range handlers {
		h.(func(*E))(&ev)
	}
}

// Reset drops every subscription for every event type.
func (b *Bus) Reset() {
	clear(b.handlers)
}

// HandlerCount returns the number of handlers subscribed to E.
func HandlerCount[E any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[E]()])
}

// Listener describes the handlers registered for one event type.
type Listener struct {
	EventType string
	Handlers  int
}

// Listeners returns the handler count of every event type with at least one
// subscription, sorted by event type name.
func (b *Bus) Listeners() []Listener {
	out := make([]Listener, 0, len(b.handlers))
	for t, hs := range b.handlers {
		if len(hs) == 0 {
			continue
		}
		out = append(out, Listener{EventType: t.String(), Handlers: len(hs)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventType < out[j].EventType
	})
	return out
}

// LogListeners writes the current listener table to the bus logger at debug
// level.
func (b *Bus) LogListeners() {
	for _, l := range b.Listeners() {
		b.log.Debug("event listener",
			zap.String("event", l.EventType),
			zap.Int("handlers", l.Handlers))
	}
}
