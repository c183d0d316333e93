package keylock

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
)

// Redsync is a Locker backed by Redis through the redlock algorithm, for deployments that run
// more than one replica behind a load balancer.
type Redsync struct {
	rs     *redsync.Redsync
	prefix string
	expiry time.Duration
}

var _ Locker = (*Redsync)(nil)

func NewRedsync(rs *redsync.Redsync, prefix string, expiry time.Duration) *Redsync {
	return &Redsync{
		rs:     rs,
		prefix: prefix,
		expiry: expiry,
	}
}

func (r *Redsync) Lock(ctx context.Context, key string) (Unlock, error) {
	mutex := r.rs.NewMutex(r.prefix+key,
		redsync.WithExpiry(r.expiry),
		redsync.WithTries(5),
		redsync.WithRetryDelay(time.Millisecond*250),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "keylock: failed to acquire lock for key %q", key)
	}

	var once sync.Once
	return func() (err error) {
		once.Do(func() {
			_, err = mutex.Unlock()
		})
		return err
	}, nil
}
