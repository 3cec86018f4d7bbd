package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type indexSpec struct {
	col    string
	name   string
	keys   bson.D
	unique bool
}

var indexes = []indexSpec{
	// a racing second registration fails here and maps to 409
	{col: "users", name: "uniq_username", keys: bson.D{{Key: "username", Value: 1}}, unique: true},
	{col: "posts", name: "created_desc", keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	{col: "comments", name: "post_created", keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{col: "chatmessages", name: "created_desc", keys: bson.D{{Key: "createdAt", Value: -1}}},
}

// EnsureIndexes creates the indexes the mongo stores depend on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ix := range indexes {
		opts := options.Index().SetName(ix.name)
		if ix.unique {
			opts.SetUnique(true)
		}
		_, err := db.Collection(ix.col).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: ix.keys, Options: opts})
		if err != nil {
			return fmt.Errorf("index %s.%s: %w", ix.col, ix.name, err)
		}
	}
	return nil
}
