package activity

import (
	"time"

	"mergington.dev/activities/internal/pkg/cache"
)

const (
	cacheKeyDirectory = "activities"

	// directoryCacheLifetime only bounds memory; freshness is decided by the directory version.
	directoryCacheLifetime = 24 * time.Hour
)

func newDirectoryCache() *cache.Singular[*Directory] {
	return cache.NewSingular[*Directory](cacheKeyDirectory)
}
