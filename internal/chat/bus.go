package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"blog-backend/internal/models"

	"github.com/nats-io/nats.go"
)

const DefaultSubject = "blog.chat.messages"

// LocalBus delivers straight to the in-process hub.
type LocalBus struct {
	Hub *Hub
}

func (b LocalBus) Publish(_ context.Context, m models.ChatMessage) error {
	b.Hub.Broadcast(m)
	return nil
}

// NATSBus fans messages out across instances. Every instance subscribes to
// the subject and feeds what it receives into its own hub, including the
// messages it published itself.
type NATSBus struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	subject string
}

func NewNATSBus(url, subject string, hub *Hub, log *slog.Logger) (*NATSBus, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url, nats.Name("blog-backend"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		var m models.ChatMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			log.Warn("bad chat payload on bus", "subject", msg.Subject, "err", err)
			return
		}
		hub.Broadcast(m)
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats subscribe %s: %w", subject, err)
	}

	// make sure the subscription is live before anything is published
	if err := nc.Flush(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats flush: %w", err)
	}
	return &NATSBus{conn: nc, sub: sub, subject: subject}, nil
}

func (b *NATSBus) Publish(_ context.Context, m models.ChatMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return b.conn.Publish(b.subject, data)
}

// Close drains pending deliveries and closes the connection.
func (b *NATSBus) Close() error {
	return b.conn.Drain()
}
