package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"mergington.dev/activities/internal/core/activity"
)

var (
	ErrRedisNotReachable = errors.New("redis not reachable")
	ErrDirectoryEmpty    = errors.New("activity directory is empty")
)

const (
	RedisDisabled = "disabled"
	RedisUp       = "up"
)

// HealthReport describes a passing health check.
type HealthReport struct {
	Status           string `json:"status"`
	Activities       int    `json:"activities"`
	DirectoryVersion uint64 `json:"directory_version"`
	Redis            string `json:"redis"`
}

type Health struct {
	Redis        *redis.Client
	ActivityRepo *activity.Repo
}

// NewHealth accepts a nil Redis client, in which case Redis is not probed.
func NewHealth(redis *redis.Client, activityRepo *activity.Repo) *Health {
	return &Health{
		Redis:        redis,
		ActivityRepo: activityRepo,
	}
}

// Check probes every dependency and fails on the first one that is not ready.
func (s *Health) Check(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{
		Status:           "ok",
		Activities:       len(s.ActivityRepo.Names()),
		DirectoryVersion: s.ActivityRepo.Version(),
		Redis:            RedisDisabled,
	}

	if report.Activities == 0 {
		return nil, ErrDirectoryEmpty
	}

	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrap(ErrRedisNotReachable, err.Error())
		}
		report.Redis = RedisUp
	}

	return report, nil
}
