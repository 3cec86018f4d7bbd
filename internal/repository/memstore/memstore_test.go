package memstore

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// tick returns a clock that advances one second per call.
func tick() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func seed(t *testing.T, s *repository.Store, n int) []models.Post {
	t.Helper()
	ctx := context.Background()
	out := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Post{Title: fmt.Sprintf("post-%d", i), Author: "alice"}
		require.NoError(t, s.Posts.Create(ctx, p))
		out = append(out, *p)
	}
	return out
}

func TestList_PagingAndHasMore(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	seed(t, s, 7)

	total, err := s.Posts.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 7, total)

	for page := 0; page < 4; page++ {
		q := repository.ListQuery{Page: page, Limit: 3, Sort: repository.SortCreatedAt}
		rows, err := s.Posts.List(ctx, q)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rows), q.Limit)

		hasMore := total > int64(q.Skip()+len(rows))
		assert.Equal(t, page < 2, hasMore, "page %d", page)
	}
}

func TestList_CreatedAtNewestFirst(t *testing.T) {
	s := New(tick())
	posts := seed(t, s, 4)

	rows, err := s.Posts.List(context.Background(), repository.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, posts[3].ID, rows[0].ID)
	assert.Equal(t, posts[0].ID, rows[3].ID)
}

func TestList_SortByLikes(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	posts := seed(t, s, 3)

	for i := 0; i < 3; i++ {
		_, err := s.Posts.ToggleLike(ctx, posts[1].ID, bson.NewObjectID())
		require.NoError(t, err)
	}
	_, err := s.Posts.ToggleLike(ctx, posts[2].ID, bson.NewObjectID())
	require.NoError(t, err)

	rows, err := s.Posts.List(ctx, repository.ListQuery{Limit: 10, Sort: repository.SortLikes})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, posts[1].ID, rows[0].ID)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].LikesCount, rows[i].LikesCount)
	}
}

func TestList_SortByCommentCount(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	posts := seed(t, s, 3)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: posts[0].ID, Content: "hi"}))
	}

	rows, err := s.Posts.List(ctx, repository.ListQuery{Limit: 10, Sort: repository.SortCommentCount})
	require.NoError(t, err)
	assert.Equal(t, posts[0].ID, rows[0].ID)
	assert.Equal(t, 2, rows[0].CommentCount)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].CommentCount, rows[i].CommentCount)
	}
}

func TestList_PageBeyondEnd(t *testing.T) {
	s := New(tick())
	seed(t, s, 2)

	rows, err := s.Posts.List(context.Background(), repository.ListQuery{Page: 5, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestList_SkipSaturates(t *testing.T) {
	s := New(tick())
	seed(t, s, 2)

	for _, q := range []repository.ListQuery{
		{Page: math.MaxInt, Limit: 3},
		{Page: 3074457345618258603, Limit: 3},
		{Page: 4611686018427387904, Limit: 4},
		{Page: 1, Limit: math.MaxInt},
	} {
		assert.Equal(t, math.MaxInt, q.Skip(), "%+v", q)
		rows, err := s.Posts.List(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, rows, "%+v", q)
	}

	rows, err := s.Posts.List(context.Background(), repository.ListQuery{Page: 0, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestToggleLike_TwiceRestores(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	p := seed(t, s, 1)[0]
	uid := bson.NewObjectID()

	liked, err := s.Posts.ToggleLike(ctx, p.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{uid}, liked.Likes)

	unliked, err := s.Posts.ToggleLike(ctx, p.ID, uid)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
	assert.NotNil(t, unliked.Likes)

	_, err = s.Posts.ToggleLike(ctx, bson.NewObjectID(), uid)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteByPost_RemovesOnlyThatPost(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	posts := seed(t, s, 2)

	require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: posts[0].ID, Content: "a"}))
	require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: posts[0].ID, Content: "b"}))
	require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: posts[1].ID, Content: "c"}))

	n, err := s.Comments.DeleteByPost(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := s.Comments.CountByPost(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Zero(t, left)

	other, err := s.Comments.ListByPost(ctx, posts[1].ID)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestListByPost_NewestFirst(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	pid := bson.NewObjectID()

	for _, txt := range []string{"first", "second", "third"} {
		require.NoError(t, s.Comments.Create(ctx, &models.Comment{PostID: pid, Content: txt}))
	}

	items, err := s.Comments.ListByPost(ctx, pid)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Content)
	assert.Equal(t, "first", items[2].Content)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, &models.User{Username: "alice", Password: "h"}))
	err := s.Users.Create(ctx, &models.User{Username: "alice", Password: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	_, err = s.Users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatRecent_LatestAscending(t *testing.T) {
	s := New(tick())
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, s.Chat.Save(ctx, &models.ChatMessage{User: "u", Text: fmt.Sprint(i)}))
	}

	msgs, err := s.Chat.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 50)
	assert.Equal(t, "10", msgs[0].Text)
	assert.Equal(t, "59", msgs[49].Text)
}

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	s := New(tick())
	ctx := context.Background()
	p := seed(t, s, 1)[0]

	title := "renamed"
	got, err := s.Posts.Update(ctx, p.ID, models.PostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, p.Author, got.Author)
	assert.Nil(t, got.Cover)
}
