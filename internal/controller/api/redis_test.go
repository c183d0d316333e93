package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/redistest"
)

func TestMain(m *testing.M) {
	redistest.Main(m)
}

func TestIdempotentSignupThroughRedis(t *testing.T) {
	redisURL := redistest.URL(t)
	withRedis := func(conf *appconfig.Config) {
		conf.RedisURL = redisURL
	}

	// two replicas sharing one Redis
	first, second := startup(t, withRedis), startup(t, withRedis)

	send := func(a *fiber.App, key string) (*http.Response, string) {
		req := httptest.NewRequest(http.MethodPost, rosterPath("Drama Club", "signup", "retry@mergington.edu"), nil)
		req.Header.Set(constant.IdempotencyKeyHeader, key)
		return request(t, a, req)
	}

	resp, saved := send(first, "3b1f0c5e9d2a4f7b8c6e1a0d9f2b4c7e")
	require.Equal(t, http.StatusOK, resp.StatusCode, saved)
	assert.Equal(t, "saved", resp.Header.Get(constant.IdempotencyHeader))

	resp, replay := send(second, "3b1f0c5e9d2a4f7b8c6e1a0d9f2b4c7e")
	require.Equal(t, http.StatusOK, resp.StatusCode, replay)
	assert.Equal(t, "hit", resp.Header.Get(constant.IdempotencyHeader))
	assert.Equal(t, saved, replay)
	assert.Equal(t, "Signed up retry@mergington.edu for Drama Club", gjson.Get(replay, "message").String())

	// the replayed request never reached the second replica's directory
	assert.NotContains(t, participants(t, second, "Drama Club"), "retry@mergington.edu")
	assert.Contains(t, participants(t, first, "Drama Club"), "retry@mergington.edu")

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	keys, err := client.Keys(context.Background(), constant.IdempotencyRedisHashKey+":*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], constant.IdempotencyRedisHashKey+":POST /activities/Drama%20Club/signup"), keys[0])
	assert.True(t, strings.HasSuffix(keys[0], " 3b1f0c5e9d2a4f7b8c6e1a0d9f2b4c7e"), keys[0])

	ttl, err := client.TTL(context.Background(), keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)

	resp, body := request(t, first, httptest.NewRequest(http.MethodGet, "/_/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "up", gjson.Get(body, "redis").String())
}
