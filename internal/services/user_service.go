package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
)

type UserService interface {
	// Register creates a user and returns the plaintext bearer token once.
	Register(ctx context.Context, name string) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	// EnsureLocal returns the named user, creating it without a token when
	// missing. It backs unauthenticated local mode.
	EnsureLocal(ctx context.Context, name string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

// HashToken returns the stored form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() string {
	return "bsk_" + strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *userService) Register(ctx context.Context, name string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}

	token := newToken()
	u := &models.User{
		Name:      name,
		TokenHash: HashToken(token),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindByTokenHash(ctx, HashToken(token))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) EnsureLocal(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	u, err := s.users.FindByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	// the hash of a random token nobody knows keeps the unique index happy
	u = &models.User{Name: name, TokenHash: HashToken(newToken())}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}
