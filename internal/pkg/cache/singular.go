package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Singular caches exactly one value of type T under a fixed key.
type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get(dest *T) error {
	result, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	v, ok := result.(T)
	if !ok {
		return ErrNotFound
	}
	*dest = v

	return nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) error {
	c.c.Set(c.key, value, expire)
	return nil
}

// MutexGetSetFresh writes the cached value to dest. When the value is absent, or fresh returns
// false for it, valueFunc runs under a mutex, so concurrent callers rebuild it only once, and its
// result is cached and written to dest. A nil fresh accepts every cached value.
func (c *Singular[T]) MutexGetSetFresh(dest *T, fresh func(T) bool, valueFunc func() (T, error), expire time.Duration) error {
	if c.getFresh(dest, fresh) {
		return nil
	}
	// onwards, cache key does not exist or is stale

	return c.slowMutexGetSet(dest, fresh, valueFunc, expire)
}

func (c *Singular[T]) getFresh(dest *T, fresh func(T) bool) bool {
	var v T
	if err := c.Get(&v); err != nil {
		return false
	}
	if fresh != nil && !fresh(v) {
		return false
	}
	*dest = v
	return true
}

func (c *Singular[T]) slowMutexGetSet(dest *T, fresh func(T) bool, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()

	if c.getFresh(dest, fresh) {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}

	err = c.Set(value, expire)
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to set value to cache in MutexGetSet")
		return err
	}

	*dest = value

	return nil
}
