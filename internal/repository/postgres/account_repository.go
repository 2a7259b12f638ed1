package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wallet-api/internal/domain"
	"wallet-api/internal/repository"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	query :=
		`INSERT INTO accounts (id, user_id, balance, created_at)
		 VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, id, account.UserID, account.Balance, now)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert account for user %s: %w", account.UserID, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	account.ID = id
	account.CreatedAt = now
	return id, nil
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("account for user %q: %w", userID, repository.ErrNotFound)
	}

	query :=
		`SELECT id, user_id, balance, created_at FROM accounts
		 WHERE user_id = $1`

	account := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&account.ID, &account.UserID, &account.Balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
