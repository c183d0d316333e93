package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/pkg/fiberstore"
	"mergington.dev/activities/internal/pkg/keylock"
	"mergington.dev/activities/internal/pkg/redistest"
)

func TestMain(m *testing.M) {
	redistest.Main(m)
}

func TestRedisConfigured(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	client, err := Redis(lc, &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{RedisURL: redistest.URL(t)}})
	require.NoError(t, err)
	require.NotNil(t, client)
	lc.RequireStart()
	defer lc.RequireStop()

	require.NoError(t, client.Ping(context.Background()).Err())

	rs := RedSync(client)
	require.NotNil(t, rs)

	store := IdempotencyStore(client)
	require.IsType(t, &fiberstore.Redis{}, store)
	assert.Equal(t, "mergington:idempotency:", store.(*fiberstore.Redis).Prefix)

	locker := IdempotencyLocker(rs)
	require.IsType(t, &keylock.Redsync{}, locker)

	unlock, err := locker.Lock(context.Background(), "key1")
	require.NoError(t, err)
	assert.NoError(t, unlock())
}
