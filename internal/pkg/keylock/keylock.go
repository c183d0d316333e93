// Package keylock provides mutual exclusion scoped to a string key.
package keylock

import "context"

// Unlock releases a lock obtained from a Locker. It is safe to call more than once.
type Unlock func() error

// Locker serializes callers that present the same key. Callers with different keys never block
// each other.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}
