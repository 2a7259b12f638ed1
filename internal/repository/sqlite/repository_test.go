package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-api/internal/domain"
	"wallet-api/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "wallet.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, repo repository.UserRepository, userName, first, last string) *domain.User {
	t.Helper()
	user := &domain.User{
		UserName:     userName,
		PasswordHash: "$2a$10$hash",
		FirstName:    first,
		LastName:     last,
	}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	user := createUser(t, repo, "a@b.com", "Jane", "Doe")
	require.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.GetByUserName(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "Jane", byName.FirstName)
	assert.Equal(t, "Doe", byName.LastName)
	assert.Equal(t, "$2a$10$hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byID.UserName)
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.GetByUserName(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	createUser(t, repo, "a@b.com", "Jane", "Doe")

	dup := &domain.User{UserName: "a@b.com", PasswordHash: "x", FirstName: "J", LastName: "D"}
	_, err := repo.Create(context.Background(), dup)
	require.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Empty(t, dup.ID)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	user := createUser(t, repo, "a@b.com", "Jane", "Doe")

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Janet", "Roe", "$2a$10$other"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)
	assert.Equal(t, "Roe", got.LastName)
	assert.Equal(t, "$2a$10$other", got.PasswordHash)
	assert.Equal(t, "a@b.com", got.UserName)

	err = repo.UpdateProfile(ctx, "missing", "a", "b", "c")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	jane := createUser(t, repo, "a@b.com", "Jane", "Doe")
	createUser(t, repo, "c@d.com", "Bob", "Janssen")
	createUser(t, repo, "e@f.com", "Alice", "Smith")
	createUser(t, repo, "g@h.com", "Per_cent", "Odd")

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"first name", "jan", []string{"a@b.com", "c@d.com"}},
		{"case insensitive", "SMI", []string{"e@f.com"}},
		{"empty matches all", "", []string{"a@b.com", "c@d.com", "e@f.com", "g@h.com"}},
		{"underscore is literal", "_", []string{"g@h.com"}},
		{"percent is literal", "%", nil},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, u := range users {
				got = append(got, u.UserName)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}

	users, err := repo.Search(ctx, "doe")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, jane.ID, users[0].ID)
}

func TestUserRepository_SearchNonASCII(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	createUser(t, repo, "e@o.com", "Élodie", "Øster")
	createUser(t, repo, "a@b.com", "Jane", "Doe")

	for _, filter := range []string{"élo", "ÉLO", "Élodie", "øst", "ØST", "ster"} {
		users, err := repo.Search(ctx, filter)
		require.NoError(t, err, filter)
		require.Len(t, users, 1, filter)
		assert.Equal(t, "e@o.com", users[0].UserName, filter)
	}
}

func TestCasefold(t *testing.T) {
	got, err := casefold(nil, []driver.Value{"ÉLODIE"})
	require.NoError(t, err)
	assert.Equal(t, "élodie", got)

	got, err = casefold(nil, []driver.Value{[]byte("ØSTER")})
	require.NoError(t, err)
	assert.Equal(t, "øster", got)

	got, err = casefold(nil, []driver.Value{nil})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = casefold(nil, []driver.Value{int64(1)})
	assert.Error(t, err)
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	accounts := NewAccountRepository(db)
	ctx := context.Background()
	user := createUser(t, users, "a@b.com", "Jane", "Doe")

	account := &domain.Account{UserID: user.ID, Balance: 900000}
	id, err := accounts.Create(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, account.ID, id)

	got, err := accounts.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(900000), got.Balance)
	assert.Equal(t, user.ID, got.UserID)

	_, err = accounts.Create(ctx, &domain.Account{UserID: user.ID, Balance: 800000})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAccountRepository_Constraints(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	ctx := context.Background()

	_, err := accounts.Create(ctx, &domain.Account{UserID: "no-such-user", Balance: 800000})
	require.Error(t, err, "foreign key must reject accounts without a user")
	assert.NotErrorIs(t, err, repository.ErrDuplicate)

	user := createUser(t, NewUserRepository(db), "a@b.com", "Jane", "Doe")
	_, err = accounts.Create(ctx, &domain.Account{UserID: user.ID, Balance: -1})
	require.Error(t, err, "balance must not be negative")
	assert.NotErrorIs(t, err, repository.ErrDuplicate)

	_, err = accounts.GetByUserID(ctx, "no-such-user")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")
	db, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("unique constraint failed")), "plain text is not a sqlite error")
	assert.False(t, isUniqueViolation(nil))

	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
VALUES ('1', 'a@b.com', 'h', 'a', 'b', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
VALUES ('2', 'a@b.com', 'h', 'a', 'b', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.True(t, isUniqueViolation(err), "duplicate user name")

	_, err = db.Exec(`INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
VALUES ('1', 'c@d.com', 'h', 'a', 'b', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.True(t, isUniqueViolation(err), "duplicate primary key")

	_, err = db.Exec(`INSERT INTO users (id, user_name, password_hash, first_name, last_name, created_at, updated_at)
VALUES ('3', 'e@f.com', NULL, 'a', 'b', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err), "not null is a different constraint")
}
