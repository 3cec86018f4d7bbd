package mongostore

import (
	"context"
	"slices"
	"time"

	"blog-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ChatRepository struct {
	Col *mongo.Collection
}

func (r *ChatRepository) Save(ctx context.Context, m *models.ChatMessage) error {
	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.Col.InsertOne(ctx, m)
	return mapErr(err)
}

// Recent reads the newest n messages descending and flips them to
// chronological order.
func (r *ChatRepository) Recent(ctx context.Context, n int) ([]models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(n))

	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []models.ChatMessage{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}
