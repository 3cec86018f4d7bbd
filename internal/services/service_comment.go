package services

import (
	"context"
	"fmt"
	"strings"

	"blog-backend/internal/models"
	"blog-backend/internal/repository"
	"blog-backend/internal/utils"
)

type CommentService struct {
	Comments repository.CommentRepository
}

type CommentInput struct {
	PostID  string
	Author  string
	Content string
}

// Create stores a comment. The referenced post is not checked.
func (s *CommentService) Create(ctx context.Context, in CommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, required("content")
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		return nil, required("author")
	}
	if in.PostID == "" {
		return nil, required("postId")
	}
	postID, err := utils.Oid(in.PostID)
	if err != nil {
		return nil, ErrInvalidID
	}

	c := &models.Comment{PostID: postID, Author: author, Content: content}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	oid, err := utils.Oid(postID)
	if err != nil {
		return nil, ErrInvalidID
	}
	items, err := s.Comments.ListByPost(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return items, nil
}
