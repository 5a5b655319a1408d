package mq

import "context"

// Message is one business message in transit.
type Message struct {
	ID       string            // broker message id (e.g. Redis Stream ID)
	Topic    string            // e.g. "royalty.earnings.batch_processed"
	Key      string            // partition key, e.g. the user id
	Payload  []byte            // JSON body
	Metadata map[string]string
}

// Producer publishes messages.
type Producer interface {
	// Publish sends one message. key selects the partition; an empty key
	// means the broker is free to balance.
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// Consumer subscribes to a topic.
type Consumer interface {
	// Subscribe starts delivering messages to handler. A handler error
	// leaves the message unacknowledged for redelivery.
	Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error

	// Close shuts down the consumer.
	Close() error
}
