package repository

import (
	"context"

	"wallet-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, passwordHash string) error
	// Search returns users whose first or last name contains filter, ignoring case.
	Search(ctx context.Context, filter string) ([]domain.User, error)
}
