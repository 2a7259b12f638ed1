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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	id := uuid.NewString()

	query :=
		`INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		id, user.UserName, user.PasswordHash, user.FirstName, user.LastName, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert user %s: %w", user.UserName, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return id, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query :=
		`SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at FROM users
		 WHERE user_name = $1`

	return scanUser(r.db.QueryRowContext(ctx, query, userName))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user %q: %w", id, repository.ErrNotFound)
	}

	query :=
		`SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at FROM users
		 WHERE id = $1`

	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, passwordHash string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("user %q: %w", id, repository.ErrNotFound)
	}

	query :=
		`UPDATE users SET first_name = $1, last_name = $2, password_hash = $3, updated_at = $4
		 WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, firstName, lastName, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update user %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, filter string) ([]domain.User, error) {
	query :=
		`SELECT id, user_name, password_hash, first_name, last_name, created_at, updated_at FROM users
		 WHERE first_name ILIKE $1 ESCAPE '\' OR last_name ILIKE $1 ESCAPE '\'
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, "%"+repository.EscapeLike(filter)+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
