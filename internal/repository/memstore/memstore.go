// Package memstore is an in-process implementation of the repository
// contracts. It mirrors the mongo store's ordering and paging rules and
// backs STORE_BACKEND=memory as well as the service and handler tests.
package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type db struct {
	mu       sync.RWMutex
	users    map[string]models.User // by username
	posts    map[bson.ObjectID]models.Post
	comments []models.Comment
	chat     []models.ChatMessage
	now      func() time.Time
}

// New returns an empty store. now may be nil.
func New(now func() time.Time) *repository.Store {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	d := &db{
		users: map[string]models.User{},
		posts: map[bson.ObjectID]models.Post{},
		now:   now,
	}
	return &repository.Store{
		Users:    (*users)(d),
		Posts:    (*posts)(d),
		Comments: (*comments)(d),
		Chat:     (*chat)(d),
	}
}

func clonePost(p models.Post) models.Post {
	p.Likes = slices.Clone(p.Likes)
	if p.Likes == nil {
		p.Likes = []bson.ObjectID{}
	}
	return p
}

func compareID(a, b bson.ObjectID) int {
	return bytes.Compare(a[:], b[:])
}

type users db

func (u *users) Create(_ context.Context, usr *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[usr.Username]; ok {
		return repository.ErrDuplicateKey
	}
	now := u.now()
	if usr.ID.IsZero() {
		usr.ID = bson.NewObjectID()
	}
	usr.CreatedAt, usr.UpdatedAt = now, now
	u.users[usr.Username] = *usr
	return nil
}

func (u *users) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	usr, ok := u.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &usr, nil
}

type posts db

func (p *posts) Create(_ context.Context, post *models.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []bson.ObjectID{}
	}
	post.CreatedAt, post.UpdatedAt = now, now
	p.posts[post.ID] = clonePost(*post)
	return nil
}

func (p *posts) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, ok := p.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clonePost(post)
	return &out, nil
}

func sortValue(s models.PostSummary, key string) int64 {
	switch key {
	case repository.SortLikes:
		return int64(s.LikesCount)
	case repository.SortCommentCount:
		return int64(s.CommentCount)
	default:
		return s.CreatedAt.UnixNano()
	}
}

func (p *posts) List(_ context.Context, q repository.ListQuery) ([]models.PostSummary, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	byPost := lo.GroupBy(p.comments, func(c models.Comment) bson.ObjectID { return c.PostID })

	rows := make([]models.PostSummary, 0, len(p.posts))
	for _, post := range p.posts {
		rows = append(rows, models.PostSummary{
			Post:         clonePost(post),
			LikesCount:   len(post.Likes),
			CommentCount: len(byPost[post.ID]),
		})
	}

	slices.SortFunc(rows, func(a, b models.PostSummary) int {
		if c := cmp.Compare(sortValue(b, q.Sort), sortValue(a, q.Sort)); c != 0 {
			return c
		}
		return compareID(b.ID, a.ID) // _id descending
	})

	skip := min(q.Skip(), len(rows))
	end := skip + min(max(q.Limit, 0), len(rows)-skip)
	return rows[skip:end], nil
}

func (p *posts) Count(_ context.Context) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int64(len(p.posts)), nil
}

func (p *posts) Update(_ context.Context, id bson.ObjectID, u models.PostUpdate) (*models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, ok := p.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Title != nil {
		post.Title = *u.Title
	}
	if u.Summary != nil {
		post.Summary = *u.Summary
	}
	if u.Content != nil {
		post.Content = *u.Content
	}
	if u.Cover != nil {
		cover := *u.Cover
		post.Cover = &cover
	}
	post.UpdatedAt = p.now()
	p.posts[id] = post

	out := clonePost(post)
	return &out, nil
}

func (p *posts) Delete(_ context.Context, id bson.ObjectID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p *posts) ToggleLike(_ context.Context, id, uid bson.ObjectID) (*models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, ok := p.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if post.LikedBy(uid) {
		post.Likes = lo.Without(post.Likes, uid)
	} else {
		post.Likes = append(slices.Clone(post.Likes), uid)
	}
	post.UpdatedAt = p.now()
	p.posts[id] = post

	out := clonePost(post)
	return &out, nil
}

type comments db

func (c *comments) Create(_ context.Context, cm *models.Comment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if cm.ID.IsZero() {
		cm.ID = bson.NewObjectID()
	}
	cm.CreatedAt, cm.UpdatedAt = now, now
	c.comments = append(c.comments, *cm)
	return nil
}

func (c *comments) ListByPost(_ context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := lo.Filter(c.comments, func(cm models.Comment, _ int) bool { return cm.PostID == postID })
	slices.SortFunc(items, func(a, b models.Comment) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return compareID(b.ID, a.ID)
	})
	return items, nil
}

func (c *comments) CountByPost(_ context.Context, postID bson.ObjectID) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return int64(lo.CountBy(c.comments, func(cm models.Comment) bool { return cm.PostID == postID })), nil
}

func (c *comments) DeleteByPost(_ context.Context, postID bson.ObjectID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := lo.Reject(c.comments, func(cm models.Comment, _ int) bool { return cm.PostID == postID })
	n := int64(len(c.comments) - len(kept))
	c.comments = kept
	return n, nil
}

type chat db

func (c *chat) Save(_ context.Context, m *models.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = c.now()
	}
	c.chat = append(c.chat, *m)
	return nil
}

func (c *chat) Recent(_ context.Context, n int) ([]models.ChatMessage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sorted := slices.Clone(c.chat)
	slices.SortStableFunc(sorted, func(a, b models.ChatMessage) int {
		if d := a.CreatedAt.Compare(b.CreatedAt); d != 0 {
			return d
		}
		return compareID(a.ID, b.ID)
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted, nil
}
