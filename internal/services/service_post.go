package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"blog-backend/config"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PostService struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Log      *slog.Logger
	OnLike   func(liked bool)
}

type PostInput struct {
	Title   string
	Summary string
	Content string
	Cover   *string
}

type ListResult struct {
	Posts   []models.PostSummary `json:"posts"`
	HasMore bool                 `json:"hasMore"`
	Total   int64                `json:"total"`
}

// ParseListQuery turns raw query values into a usable ListQuery. Numbers
// are read from their leading digits, so "2abc" is 2 and "1.5" is 1. Bad or
// negative page becomes 0, bad or non-positive limit becomes the default and
// a limit above MaxPageLimit is capped. Unknown sort keys fall back to
// createdAt.
func ParseListQuery(page, limit, sort string) repository.ListQuery {
	q := repository.ListQuery{Page: 0, Limit: config.DefaultPageLimit, Sort: repository.SortCreatedAt}

	if p, ok := leadingInt(page); ok && p >= 0 {
		q.Page = p
	}
	if l, ok := leadingInt(limit); ok && l > 0 {
		q.Limit = min(l, config.MaxPageLimit)
	}
	switch sort {
	case repository.SortLikes, repository.SortCommentCount:
		q.Sort = sort
	}
	return q
}

// leadingInt reads an optionally signed run of digits at the start of s.
// Values too large for an int saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, err == nil
}

func (s *PostService) Create(ctx context.Context, author string, in PostInput) (*models.Post, error) {
	p := &models.Post{
		Title:   in.Title,
		Summary: in.Summary,
		Content: in.Content,
		Cover:   in.Cover,
		Author:  author,
		Likes:   []bson.ObjectID{},
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, q repository.ListQuery) (ListResult, error) {
	rows, err := s.Posts.List(ctx, q)
	if err != nil {
		return ListResult{}, fmt.Errorf("list posts: %w", err)
	}
	total, err := s.Posts.Count(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("count posts: %w", err)
	}
	return ListResult{
		Posts:   rows,
		HasMore: uint64(total) > uint64(q.Skip())+uint64(len(rows)),
		Total:   total,
	}, nil
}

func (s *PostService) Get(ctx context.Context, id bson.ObjectID) (*models.PostDetail, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find post")
	}
	n, err := s.Comments.CountByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &models.PostDetail{Post: *p, CommentCount: n}, nil
}

// authorize loads the post and checks that username wrote it.
func (s *PostService) authorize(ctx context.Context, id bson.ObjectID, username string) (*models.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find post")
	}
	if p.Author != username {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id bson.ObjectID, username string, u models.PostUpdate) (*models.Post, error) {
	current, err := s.authorize(ctx, id, username)
	if err != nil {
		return nil, err
	}
	if u.Empty() {
		return current, nil
	}
	p, err := s.Posts.Update(ctx, id, u)
	if err != nil {
		return nil, notFound(err, "update post")
	}
	return p, nil
}

// Delete removes the post, then its comments. The two steps are not atomic;
// when the second fails the post is already gone and the orphaned comments
// are logged.
func (s *PostService) Delete(ctx context.Context, id bson.ObjectID, username string) error {
	if _, err := s.authorize(ctx, id, username); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		return notFound(err, "delete post")
	}

	n, err := s.Comments.DeleteByPost(ctx, id)
	if err != nil {
		s.Log.ErrorContext(ctx, "comment cascade failed", "post_id", id.Hex(), "err", err)
		return fmt.Errorf("delete comments of %s: %w", id.Hex(), err)
	}
	s.Log.DebugContext(ctx, "post deleted", "post_id", id.Hex(), "comments", n)
	return nil
}

func (s *PostService) ToggleLike(ctx context.Context, id, uid bson.ObjectID) (*models.Post, error) {
	p, err := s.Posts.ToggleLike(ctx, id, uid)
	if err != nil {
		return nil, notFound(err, "toggle like")
	}
	if s.OnLike != nil {
		s.OnLike(p.LikedBy(uid))
	}
	return p, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
