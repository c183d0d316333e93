package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/cache"
	"mergington.dev/activities/internal/pkg/observability"
)

const (
	operationSignup     = "signup"
	operationUnregister = "unregister"

	resultOK = "ok"
)

type Service struct {
	Config *appconfig.Config
	Repo   *Repo

	directory *cache.Singular[*Directory]
}

func NewService(conf *appconfig.Config, repo *Repo) *Service {
	return &Service{
		Config:    conf,
		Repo:      repo,
		directory: newDirectoryCache(),
	}
}

// GetActivities returns every activity in directory order.
// Cache: (singular) activities, rebuilt whenever the directory version moved on
func (s *Service) GetActivities(ctx context.Context) (Roster, error) {
	var dir *Directory
	err := s.directory.MutexGetSetFresh(&dir, func(cached *Directory) bool {
		return cached.Version == s.Repo.Version()
	}, func() (*Directory, error) {
		start := time.Now()
		defer func() {
			observability.DirectoryBuildDuration.Observe(time.Since(start).Seconds())
		}()
		zerolog.Ctx(ctx).Trace().
			Str("evt.name", "activity.directory.rebuild").
			Msg("rebuilding activity directory")
		return s.Repo.GetActivities()
	}, directoryCacheLifetime)
	if err != nil {
		return nil, err
	}

	return dir.Activities, nil
}

func (s *Service) GetActivity(ctx context.Context, name string) (*Model, error) {
	return s.Repo.GetActivity(name)
}

// Signup adds email to the participants of the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	count, err := s.Repo.AddParticipant(name, email, s.Config.EnforceCapacity)
	if err != nil {
		s.observeFailure(ctx, operationSignup, name, email, err)
		return "", err
	}

	observability.RosterChanges.WithLabelValues(operationSignup, resultOK).Inc()
	zerolog.Ctx(ctx).Info().
		Str("evt.name", "activity.signup").
		Str("activity", name).
		Str("email", email).
		Int("participants", count).
		Msg("student signed up")

	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the participants of the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	count, err := s.Repo.RemoveParticipant(name, email)
	if err != nil {
		s.observeFailure(ctx, operationUnregister, name, email, err)
		return "", err
	}

	observability.RosterChanges.WithLabelValues(operationUnregister, resultOK).Inc()
	zerolog.Ctx(ctx).Info().
		Str("evt.name", "activity.unregister").
		Str("activity", name).
		Str("email", email).
		Int("participants", count).
		Msg("student unregistered")

	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

func (s *Service) observeFailure(ctx context.Context, operation, name, email string, err error) {
	result := "error"
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		result = strings.ToLower(apiErr.ErrorCode)
	}
	observability.RosterChanges.WithLabelValues(operation, result).Inc()

	zerolog.Ctx(ctx).Debug().
		Err(err).
		Str("evt.name", "activity."+operation+".rejected").
		Str("activity", name).
		Str("email", email).
		Msg("roster change rejected")
}
