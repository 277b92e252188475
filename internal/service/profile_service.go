package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/repository"
)

// ErrUsernameTaken signals a registration attempt with a username that
// already exists. Duplicates are rejected, never overwritten.
var ErrUsernameTaken = errors.New("username already taken")

// ProfileService owns user registration and profile lookup.
type ProfileService struct {
	users repository.Users
}

func NewProfileService(users repository.Users) *ProfileService {
	return &ProfileService{users: users}
}

var _ Profile = (*ProfileService)(nil)

// Register hashes the password and persists a new user. The returned user
// carries the store-assigned ID and an empty image collection.
func (s *ProfileService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is empty")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}

	return &models.User{
		ID:       id,
		Username: username,
		Images:   []models.Image{},
	}, nil
}

// GetProfile returns the full user record, images included, or
// ErrUserNotFound.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
