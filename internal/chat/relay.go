package chat

import (
	"context"
	"fmt"
	"time"

	"blog-backend/config"
	"blog-backend/internal/metrics"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"
)

// Bus carries stored messages to every hub of the deployment.
type Bus interface {
	Publish(ctx context.Context, m models.ChatMessage) error
}

// Relay persists chat messages and hands them to the bus.
type Relay struct {
	Repo         repository.ChatRepository
	Bus          Bus
	HistoryLimit int
	Now          func() time.Time
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	// mongo keeps milliseconds; match it so replayed and live copies agree
	return time.Now().UTC().Truncate(time.Millisecond)
}

// OnMessage stores the message first and only then publishes it, so nobody
// sees a message that is missing from history.
func (r *Relay) OnMessage(ctx context.Context, user, text string) (models.ChatMessage, error) {
	m := models.ChatMessage{User: user, Text: text, CreatedAt: r.now()}
	if err := r.Repo.Save(ctx, &m); err != nil {
		return m, fmt.Errorf("save chat message: %w", err)
	}
	metrics.ChatMessages.Inc()

	if err := r.Bus.Publish(ctx, m); err != nil {
		return m, fmt.Errorf("publish chat message: %w", err)
	}
	return m, nil
}

// History returns the newest messages in chronological order.
func (r *Relay) History(ctx context.Context) ([]models.ChatMessage, error) {
	n := r.HistoryLimit
	if n <= 0 {
		n = config.DefaultHistoryLimit
	}
	msgs, err := r.Repo.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return msgs, nil
}
