// Package mongostore implements the repository contracts on MongoDB.
package mongostore

import (
	"errors"

	"blog-backend/internal/repository"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	ColUsers        = "users"
	ColPosts        = "posts"
	ColComments     = "comments"
	ColChatMessages = "chatmessages"
)

func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:    &UserRepository{Col: db.Collection(ColUsers)},
		Posts:    &PostRepository{ColPosts: db.Collection(ColPosts), ColComments: db.Collection(ColComments)},
		Comments: &CommentRepository{Col: db.Collection(ColComments)},
		Chat:     &ChatRepository{Col: db.Collection(ColChatMessages)},
	}
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicateKey
	default:
		return err
	}
}
