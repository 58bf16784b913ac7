package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the slice of kafka-go the relay needs; tests swap in a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Relay mirrors every bus event onto Kafka so other processes can follow
// the same timeline. The bus handler only enqueues into a buffered
// channel; the broker round-trip happens on the relay goroutine, keeping
// the fan-out path fast. Delivery stays best effort: a full channel drops
// the event rather than blocking the bus.
type Relay struct {
	bus    *eventbus.Bus
	writer Writer
	logger *zap.Logger

	queue chan events.Event
	sub   *eventbus.Subscription
}

const relayQueueSize = 256

func NewRelay(bus *eventbus.Bus, writer Writer, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.relay")
	}
	return &Relay{
		bus:    bus,
		writer: writer,
		logger: l,
		queue:  make(chan events.Event, relayQueueSize),
	}
}

// NewWriter builds the production kafka-go writer the relay runs against.
func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}
}

// Start subscribes to the bus and launches the forwarding loop. It runs
// until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	r.sub = r.bus.Subscribe(func(e events.Event) {
		select {
		case r.queue <- e:
		default:
			r.logger.Warn("relay queue full, event dropped",
				zap.String("kind", string(e.Kind)),
			)
		}
	})

	go r.run(ctx)
	r.logger.Info("kafka relay started")
}

func (r *Relay) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.sub.Unsubscribe()
			r.logger.Info("kafka relay stopped")
			return
		case e := <-r.queue:
			if err := r.forward(ctx, e); err != nil {
				r.logger.Error("relay event failed",
					zap.String("kind", string(e.Kind)),
					zap.String("topic", e.Kind.Topic()),
					zap.Error(err),
				)
			}
		}
	}
}

func (r *Relay) forward(ctx context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Topic: e.Kind.Topic(),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(e.Kind)},
		},
	}
	if e.Payload != nil {
		msg.Key = []byte(e.Payload.AggregateID())
	}

	return r.writer.WriteMessages(ctx, msg)
}
