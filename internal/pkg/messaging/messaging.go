// Package messaging abstracts the message broker used for domain events.
package messaging

import "context"

// Header is message metadata carried alongside the body.
type Header map[string]string

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Body    []byte
	Headers Header
}

// Messaging publishes messages to a broker.
type Messaging interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, msg OutgoingMessage) error

	// Close drains and closes the broker connection.
	Close() error
}
