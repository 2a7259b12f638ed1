package service

import (
	"context"
	"errors"

	"wallet-api/internal/domain"
	"wallet-api/internal/repository"
)

// ErrAccountNotFound is returned when a user has no account, e.g. after an interrupted signup.
var ErrAccountNotFound = errors.New("account not found")

// AccountService exposes read access to the account paired with a user.
type AccountService interface {
	Balance(ctx context.Context, userID string) (*domain.Account, error)
}

type accountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Balance(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
