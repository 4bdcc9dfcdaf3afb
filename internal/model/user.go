package model

import "time"

// User is the owner of accounts and transactions. Every query and
// mutation in the system is scoped to exactly one user.
type User struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Email     string
}
