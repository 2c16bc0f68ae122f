package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids. Sessions carry no
// expiry; they live until Delete.
type Store interface {
	Get(ctx context.Context, token string) (uint, error)
	Put(ctx context.Context, token string, userID uint) error
	Delete(ctx context.Context, token string) error
}

// NewToken returns a fresh opaque session identifier.
func NewToken() string {
	return uuid.NewString()
}
