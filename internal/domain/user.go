package domain

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        int64
	Username  string
	Email     string
	Password  Password
	CreatedAt time.Time
}

// Password holds the bcrypt hash of a user's password. The plaintext is never
// stored; it only passes through Set and Matches.
type Password struct {
	Hash []byte
}

func (p *Password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.Hash = hash

	return nil
}

func (p *Password) Matches(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext)) == nil
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
