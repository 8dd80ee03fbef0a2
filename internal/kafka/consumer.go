package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded roster event.
type EventHandler func(ctx context.Context, event RosterEvent) error

// Consumer reads roster events off a topic as part of a consumer group.
// Messages that do not decode into a RosterEvent are skipped.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks, delivering decoded events to handler until the
// context is canceled, the reader fails, or the handler returns an
// error.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return fmt.Errorf("read roster event: %w", err)
		}

		event, ok := decodeEvent(msg.Value)
		if !ok {
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeEvent(payload []byte) (RosterEvent, bool) {
	var event RosterEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return RosterEvent{}, false
	}
	return event, true
}
