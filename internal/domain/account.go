package domain

import "time"

// Account holds the balance owned by exactly one User. Balance is in minor units.
type Account struct {
	ID        string
	UserID    string
	Balance   int64
	CreatedAt time.Time
}
