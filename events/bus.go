// Package events provides the publish/subscribe channel entities use to talk
// to each other without holding references. A Bus lives exactly as long as
// the level that created it; Close drops every subscriber.
package events

import "github.com/sirupsen/logrus"

// Topic is a typed event name.
type Topic[T any] struct {
	name string
}

func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

func (t Topic[T]) Name() string { return t.name }

// Bus delivers events synchronously on the caller's goroutine. It is not safe
// for concurrent use.
type Bus struct {
	log    logrus.FieldLogger
	subs   map[string][]*Subscription
	closed bool
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	bus     *Bus
	topic   string
	handler func(any)
	active  bool
}

func NewBus(log logrus.FieldLogger) *Bus {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bus{
		log:  log,
		subs: make(map[string][]*Subscription),
	}
}

// Subscribe registers fn for topic. Handlers of one topic run in subscription
// order.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T)) *Subscription {
	s := &Subscription{
		bus:   b,
		topic: topic.name,
		handler: func(payload any) {
			if v, ok := payload.(T); ok {
				fn(v)
			}
		},
		active: true,
	}
	if b == nil || b.closed || fn == nil {
		s.active = false
		return s
	}
	b.subs[topic.name] = append(b.subs[topic.name], s)
	return s
}

// Emit delivers payload to every handler subscribed to topic at the time of
// the call. Handlers unsubscribed during delivery are skipped.
func Emit[T any](b *Bus, topic Topic[T], payload T) {
	if b == nil || b.closed {
		return
	}
	subs := b.subs[topic.name]
	b.log.WithFields(logrus.Fields{"topic": topic.name, "subscribers": len(subs)}).Debug("emit")
	for _, s := range subs {
		if s.active {
			s.handler(payload)
		}
	}
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	b := s.bus
	if b == nil || b.closed {
		return
	}
	old := b.subs[s.topic]
	// copy so an Emit iterating the old slice is unaffected
	next := make([]*Subscription, 0, len(old))
	for _, o := range old {
		if o != s {
			next = append(next, o)
		}
	}
	if len(next) == 0 {
		delete(b.subs, s.topic)
		return
	}
	b.subs[s.topic] = next
}

// Active reports whether the handler is still subscribed.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Subscribers returns the number of handlers subscribed to name.
func (b *Bus) Subscribers(name string) int {
	if b == nil {
		return 0
	}
	return len(b.subs[name])
}

// Close unsubscribes everything. Emits after Close are dropped.
func (b *Bus) Close() {
	if b == nil || b.closed {
		return
	}
	for _, subs := range b.subs {
		for _, s := range subs {
			s.active = false
		}
	}
	b.subs = nil
	b.closed = true
}
