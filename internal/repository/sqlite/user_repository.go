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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.UserName,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		user.ID = ""
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert user %s: %w", user.UserName, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at
FROM users
WHERE user_name = ?`,
		userName,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET first_name=?, last_name=?, password_hash=?, updated_at=?
WHERE id=?`,
		firstName,
		lastName,
		passwordHash,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update user %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, filter string) ([]domain.User, error) {
	pattern := "%" + foldCase(repository.EscapeLike(filter)) + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at
FROM users
WHERE casefold(first_name) LIKE ? ESCAPE '\' OR casefold(last_name) LIKE ? ESCAPE '\'
ORDER BY created_at, id`,
		pattern,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
