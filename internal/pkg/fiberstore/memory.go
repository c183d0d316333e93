package fiberstore

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// Memory is an in-process fiber.Storage. Entries written with a zero expiry never expire.
type Memory struct {
	c *cache.Cache
}

// Memory implements fiber.Storage
var _ fiber.Storage = &Memory{}

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{
		c: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Close implements fiber.Storage
func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}

// Delete implements fiber.Storage
func (m *Memory) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

// Get implements fiber.Storage
func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, nil
	}
	return v.([]byte), nil
}

// Reset implements fiber.Storage
func (m *Memory) Reset() error {
	m.c.Flush()
	return nil
}

// Set implements fiber.Storage
func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	// callers may reuse val after Set returns
	stored := make([]byte, len(val))
	copy(stored, val)
	m.c.Set(key, stored, exp)
	return nil
}
