package mongostore

import (
	"context"
	"time"

	"blog-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserRepository struct {
	Col *mongo.Collection
}

// Create relies on the unique username index, so a taken name surfaces as
// repository.ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.Col.InsertOne(ctx, u)
	return mapErr(err)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.Col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
