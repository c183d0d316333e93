package keylock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.dev/activities/internal/pkg/redistest"
)

func TestMain(m *testing.M) {
	redistest.Main(m)
}

// newReplica gives each locker its own connection pool, as separate processes would have.
func newReplica(t *testing.T) *Redsync {
	t.Helper()
	rs := redsync.New(goredis.NewPool(redistest.Client(t)))
	return NewRedsync(rs, "mutex:idempotency-request:", time.Minute)
}

func TestRedsyncExcludesAcrossReplicas(t *testing.T) {
	a, b := newReplica(t), newReplica(t)
	ctx := context.Background()

	unlockA, err := a.Lock(ctx, "POST /activities/Chess%20Club/signup key1")
	require.NoError(t, err)

	var acquired int32
	done := make(chan error, 1)
	go func() {
		unlockB, err := b.Lock(ctx, "POST /activities/Chess%20Club/signup key1")
		if err != nil {
			done <- err
			return
		}
		atomic.StoreInt32(&acquired, 1)
		done <- unlockB()
	}()

	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 0, atomic.LoadInt32(&acquired), "second replica entered while the first held the lock")

	require.NoError(t, unlockA())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second replica never acquired the released lock")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&acquired))
}

func TestRedsyncDifferentKeysDoNotBlock(t *testing.T) {
	a, b := newReplica(t), newReplica(t)
	ctx := context.Background()

	unlockA, err := a.Lock(ctx, "key1")
	require.NoError(t, err)
	defer unlockA()

	start := time.Now()
	unlockB, err := b.Lock(ctx, "key2")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
	require.NoError(t, unlockB())
}

func TestRedsyncUnlockOnce(t *testing.T) {
	l := newReplica(t)

	unlock, err := l.Lock(context.Background(), "key1")
	require.NoError(t, err)
	require.NoError(t, unlock())
	assert.NoError(t, unlock())

	unlock, err = l.Lock(context.Background(), "key1")
	require.NoError(t, err)
	assert.NoError(t, unlock())
}

func TestRedsyncGivesUpWhileHeld(t *testing.T) {
	a, b := newReplica(t), newReplica(t)

	unlockA, err := a.Lock(context.Background(), "key1")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = b.Lock(ctx, "key1")
	assert.Error(t, err)
}
