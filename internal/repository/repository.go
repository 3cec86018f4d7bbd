// Package repository declares the persistence contracts shared by the
// mongo and in-memory stores.
package repository

import (
	"context"
	"errors"
	"math"

	"blog-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Sort keys accepted by PostRepository.List.
const (
	SortCreatedAt    = "createdAt"
	SortLikes        = "likes"
	SortCommentCount = "commentCount"
)

type ListQuery struct {
	Page  int
	Limit int
	Sort  string
}

// Skip is the number of rows before the page. It saturates at math.MaxInt
// instead of wrapping, so a far page is simply empty.
func (q ListQuery) Skip() int {
	if q.Page <= 0 || q.Limit <= 0 {
		return 0
	}
	if q.Page > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return q.Page * q.Limit
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	List(ctx context.Context, q ListQuery) ([]models.PostSummary, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id bson.ObjectID, u models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ToggleLike(ctx context.Context, id, uid bson.ObjectID) (*models.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	ListByPost(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
}

type ChatRepository interface {
	Save(ctx context.Context, m *models.ChatMessage) error
	// Recent returns up to n of the newest messages, oldest first.
	Recent(ctx context.Context, n int) ([]models.ChatMessage, error)
}

// Store bundles every repository a running server needs.
type Store struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Chat     ChatRepository
}
