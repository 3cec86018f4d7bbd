package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"blog-backend/bootstrap"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// testDB connects to MONGO_TEST_URI and hands out a throwaway database.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("blog_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongo_ListDerivesCounts(t *testing.T) {
	db := testDB(t)
	s := NewStore(db)
	ctx := context.Background()

	a := &models.Post{Title: "a", Author: "alice"}
	b := &models.Post{Title: "b", Author: "alice"}
	require.NoError(t, s.Posts.Create(ctx, a))
	require.NoError(t, s.Posts.Create(ctx, b))

	require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: a.ID, Content: "x"}))
	require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: a.ID, Content: "y"}))
	_, err := s.Posts.ToggleLike(ctx, b.ID, bson.NewObjectID())
	require.NoError(t, err)

	byComments, err := s.Posts.List(ctx, repository.ListQuery{Limit: 10, Sort: repository.SortCommentCount})
	require.NoError(t, err)
	require.Len(t, byComments, 2)
	assert.Equal(t, a.ID, byComments[0].ID)
	assert.Equal(t, 2, byComments[0].CommentCount)

	byLikes, err := s.Posts.List(ctx, repository.ListQuery{Limit: 1, Sort: repository.SortLikes})
	require.NoError(t, err)
	require.Len(t, byLikes, 1)
	assert.Equal(t, b.ID, byLikes[0].ID)
	assert.Equal(t, 1, byLikes[0].LikesCount)
}

func TestMongo_ToggleLikeTwice(t *testing.T) {
	db := testDB(t)
	s := NewStore(db)
	ctx := context.Background()

	p := &models.Post{Title: "t", Author: "alice"}
	require.NoError(t, s.Posts.Create(ctx, p))
	uid := bson.NewObjectID()

	got, err := s.Posts.ToggleLike(ctx, p.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{uid}, got.Likes)

	got, err = s.Posts.ToggleLike(ctx, p.ID, uid)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	_, err = s.Posts.ToggleLike(ctx, bson.NewObjectID(), uid)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMongo_RecentChatAscending(t *testing.T) {
	db := testDB(t)
	s := NewStore(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 55; i++ {
		m := &models.ChatMessage{User: "u", Text: fmt.Sprint(i), CreatedAt: base.Add(time.Duration(i) * time.Millisecond)}
		require.NoError(t, s.Chat.Save(ctx, m))
	}

	msgs, err := s.Chat.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 50)
	assert.Equal(t, "5", msgs[0].Text)
	assert.Equal(t, "54", msgs[49].Text)
}

func TestMongo_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	require.NoError(t, bootstrap.EnsureIndexes(ctx, db))
	s := NewStore(db)

	require.NoError(t, s.Users.Create(ctx, &models.User{Username: "alice", Password: "h"}))
	err := s.Users.Create(ctx, &models.User{Username: "alice", Password: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	u, err := s.Users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", u.Password)
}
