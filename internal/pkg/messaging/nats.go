package messaging

import (
	"context"

	"github.com/nats-io/nats.go"
)

// NATS is a Messaging implementation over a core NATS connection.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to the given NATS URL.
func NewNATS(url string) (*NATS, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	return &NATS{conn: conn}, nil
}

// Publish sends a message to the given subject.
func (n *NATS) Publish(_ context.Context, subject string, msg OutgoingMessage) error {
	m := nats.NewMsg(subject)
	m.Data = msg.Body
	for k, v := range msg.Headers {
		m.Header.Set(k, v)
	}

	return n.conn.PublishMsg(m)
}

// Close drains the connection, letting buffered messages flush.
func (n *NATS) Close() error {
	return n.conn.Drain()
}
