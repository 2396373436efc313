package services

import (
	"context"

	"github.com/fieldsmith/dispatch/internal/db/models"
	"github.com/fieldsmith/dispatch/internal/db/repos"
)

// User provides business logic for user operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository) *User {
	return &User{repo: repo}
}

// CreateUser creates a new user
func (s *User) CreateUser(ctx context.Context, user *models.User) error {
	return s.repo.CreateUser(ctx, user)
}

// GetUserByID retrieves a user by their ID
func (s *User) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetUserByUsername retrieves a user by their username
func (s *User) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// GetUsers retrieves users with pagination
func (s *User) GetUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetUsers(ctx, opts)
}

// DeleteUser removes a user by their ID
func (s *User) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.DeleteUser(ctx, id)
}
