package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"wallet-api/internal/domain"
	"wallet-api/internal/repository"
	"wallet-api/internal/request"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing user name.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when the authenticated user no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// PasswordHasher hashes passwords and checks candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer mints session tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// BalanceSource returns the opening balance of a new account in minor units.
type BalanceSource func() int64

// RandomOpeningBalance picks 8000, 9000 or 10000 whole units uniformly, expressed in minor units.
func RandomOpeningBalance() int64 {
	return int64(rand.IntN(3)+8) * 1000 * 100
}

// UserService describes the signup, signin, profile update and directory search flows.
// Inputs are expected to be normalized and validated by the request package.
type UserService interface {
	Signup(ctx context.Context, in request.Signup) (string, error)
	Signin(ctx context.Context, in request.Signin) (string, error)
	Update(ctx context.Context, userID string, in request.Update) error
	Search(ctx context.Context, filter string) ([]domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	balance  BalanceSource
}

func NewUserService(users repository.UserRepository, accounts repository.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, balance BalanceSource) UserService {
	if balance == nil {
		balance = RandomOpeningBalance
	}
	return &userService{
		users:    users,
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		balance:  balance,
	}
}

// Signup creates the user and its account and returns a fresh token.
// The existence check, the user insert and the account insert are separate statements: two concurrent signups
// for one user name are stopped only by the store's unique index, and a failure after the user insert leaves
// the user without an account.
func (s *userService) Signup(ctx context.Context, in request.Signup) (string, error) {
	if _, err := s.users.GetByUserName(ctx, in.UserName); err == nil {
		return "", ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		UserName:     in.UserName,
		PasswordHash: hash,
		FirstName:    capitalize(in.FirstName),
		LastName:     capitalize(in.LastName),
	}
	userID, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserAlreadyExists
		}
		return "", err
	}

	account := &domain.Account{
		UserID:  userID,
		Balance: s.balance(),
	}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		return "", fmt.Errorf("create account for user %s: %w", userID, err)
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Signin returns ErrInvalidCredentials for both an unknown user name and a wrong password.
func (s *userService) Signin(ctx context.Context, in request.Signin) (string, error) {
	user, err := s.users.GetByUserName(ctx, in.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Update rewrites first name, last name and password together.
func (s *userService) Update(ctx context.Context, userID string, in request.Update) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	firstName, lastName := in.Names()
	if err := s.users.UpdateProfile(ctx, userID, firstName, lastName, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Search(ctx context.Context, filter string) ([]domain.User, error) {
	users, err := s.users.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	return users, nil
}

func sanitizeUser(user domain.User) domain.User {
	user.PasswordHash = ""
	return user
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
