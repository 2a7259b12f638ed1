package sqlite

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

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (string, error) {
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (id, user_id, balance, created_at)
VALUES (?, ?, ?, ?)`,
		account.ID,
		account.UserID,
		account.Balance,
		account.CreatedAt,
	)
	if err != nil {
		account.ID = ""
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert account for user %s: %w", account.UserID, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert account: %w", err)
	}
	return account.ID, nil
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, balance, created_at
FROM accounts
WHERE user_id = ?`,
		userID,
	).Scan(&account.ID, &account.UserID, &account.Balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &account, nil
}
