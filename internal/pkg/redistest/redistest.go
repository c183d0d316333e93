// Package redistest runs a throwaway Redis container for integration tests.
package redistest

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const image = "redis:7-alpine"

var (
	url         string
	unavailable string
)

// Main starts Redis, runs the package tests and terminates the container. Call it from TestMain.
// Under -short, or when no container runtime is reachable, the Redis tests are skipped and the
// rest of the package still runs.
func Main(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		unavailable = "short mode"
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, image)
	if err != nil {
		unavailable = fmt.Sprintf("redis container: %v", err)
		fmt.Fprintf(os.Stderr, "redistest: %s; skipping redis tests\n", unavailable)
		os.Exit(m.Run())
	}

	url, err = container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "redistest: redis endpoint: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

// URL returns the connection string of the running container, flushed of earlier test data.
func URL(t *testing.T) string {
	t.Helper()
	if url == "" {
		t.Skipf("skipping redis integration test: %s", unavailable)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()
	if err := client.FlushAll(context.Background()).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return url
}

// Client returns a client for the running container, closed when the test ends.
func Client(t *testing.T) *redis.Client {
	t.Helper()

	opts, err := redis.ParseURL(URL(t))
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
