// Package lock serializes work on a single key, such as concurrent refreshes of
// one refresh token.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Locker grants exclusive access to key until the returned release func is called.
// Acquire blocks until the lock is free or ctx is done.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Key derives a fixed-length lock key so raw credentials never become lock names.
func Key(prefix string, secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
