package eventbus

import (
	"sync"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"

	"go.uber.org/zap"
)

// Handler receives every event published after its subscription was
// registered. Handlers must return quickly: slow consumers hand the event
// off to their own goroutine (see the stream hub and the Kafka relay).
type Handler func(events.Event)

// Subscription is the cancellation handle returned by Subscribe.
type Subscription struct {
	id  uint64
	bus *Bus
}

// Unsubscribe removes the subscription. It is idempotent and safe to call
// concurrently with Publish, including from within the handler itself.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
}

// Bus is the in-process publish/subscribe registry. Delivery is
// synchronous-per-subscriber, best effort, at most once: there is no
// retry and no replay to late subscribers. The bus never caps subscriber
// count; callers opening unbounded fan-in (test harnesses, many dashboard
// tabs) own that growth.
type Bus struct {
	logger  *zap.Logger
	metrics *Metrics

	// pubMu serializes fan-out so all subscribers observe a single global
	// publish order.
	pubMu sync.Mutex

	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]Handler
	order  []uint64
}

func New(logger ...*zap.Logger) *Bus {
	l := zap.L().Named("eventbus")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("eventbus")
	}
	return &Bus{
		logger: l,
		subs:   make(map[uint64]Handler),
	}
}

func (b *Bus) WithMetrics(m *Metrics) *Bus {
	b.metrics = m
	return b
}

// Subscribe registers a handler for all subsequently published events.
// Events published before registration are never replayed.
func (b *Bus) Subscribe(h Handler) *Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = h
	b.order = append(b.order, id)
	count := len(b.subs)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.Subscribers.Set(float64(count))
	}
	b.logger.Debug("subscriber registered",
		zap.Uint64("subscriber_id", id),
		zap.Int("subscribers", count),
	)
	return &Subscription{id: id, bus: b}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	if _, ok := b.subs[id]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subs, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	count := len(b.subs)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.Subscribers.Set(float64(count))
	}
	b.logger.Debug("subscriber removed",
		zap.Uint64("subscriber_id", id),
		zap.Int("subscribers", count),
	)
}

// SubscriberCount reports the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

type delivery struct {
	id uint64
	h  Handler
}

// Publish stamps the event and delivers it to every subscriber active at
// the moment of the call, in registration order. A panicking handler is
// recovered and logged; remaining subscribers still receive the event.
// The registry lock is released before any handler runs, so handlers may
// subscribe and unsubscribe freely; they must not publish synchronously
// back into the bus from inside a handler.
func (b *Bus) Publish(e events.Event) {
	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	targets := make([]delivery, 0, len(b.order))
	for _, id := range b.order {
		if h, ok := b.subs[id]; ok {
			targets = append(targets, delivery{id: id, h: h})
		}
	}
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.Published.WithLabelValues(string(e.Kind)).Inc()
	}
	b.logger.Debug("publishing event",
		zap.String("kind", string(e.Kind)),
		zap.Int("subscribers", len(targets)),
	)

	for _, t := range targets {
		b.deliver(t, e)
	}
}

func (b *Bus) deliver(t delivery, e events.Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.HandlerPanics.WithLabelValues(string(e.Kind)).Inc()
			}
			b.logger.Error("subscriber handler panicked",
				zap.Uint64("subscriber_id", t.id),
				zap.String("kind", string(e.Kind)),
				zap.Any("panic", r),
			)
		}
	}()

	t.h(e)

	if b.metrics != nil {
		b.metrics.Delivered.WithLabelValues(string(e.Kind)).Inc()
	}
}
