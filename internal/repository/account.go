package repository

import (
	"context"

	"wallet-api/internal/domain"
)

// AccountRepository manages the balance record paired with each user.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (string, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
}
