package mongostore

import (
	"context"
	"time"

	"blog-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	Col *mongo.Collection
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := r.Col.InsertOne(ctx, c)
	return mapErr(err)
}

// ListByPost returns comments newest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Comment{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"postId": postID})
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.Col.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
