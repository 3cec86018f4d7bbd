package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-backend/internal/auth"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"
)

type AuthService struct {
	Users  repository.UserRepository
	Hasher auth.Hasher
	Tokens *auth.Tokens
}

// Register stores a new user. Uniqueness is left to the store, so two
// concurrent registrations of one name yield exactly one success.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, required("username")
	}
	if password == "" {
		return nil, required("password")
	}

	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{Username: username, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Identity, string, error) {
	u, err := s.Users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return models.Identity{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("find user: %w", err)
	}

	if err := s.Hasher.Compare(u.Password, password); err != nil {
		return models.Identity{}, "", ErrInvalidCredentials
	}

	id := models.Identity{ID: u.ID.Hex(), Username: u.Username}
	token, err := s.Tokens.Issue(id)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("issue token: %w", err)
	}
	return id, token, nil
}
