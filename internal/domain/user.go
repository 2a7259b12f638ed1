package domain

import "time"

// User represents a registered member of the directory.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
