package appconfig

import (
	"time"

	"mergington.dev/activities/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8000"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFilePath is an optional file that receives a copy of every log line, rotated at 100MB. Leaving this empty disables file logging.
	LogFilePath string `split_words:"true"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging
	// (pprof and fgprof endpoints) and log at trace level.
	DevMode bool `split_words:"true"`

	// StaticDir is the directory served under /static. The front end lives there; when the directory
	// does not exist static serving is skipped and only the root redirect remains.
	StaticDir string `split_words:"true" default:"static"`

	// SeedPath points to a JSON document shaped like the GET /activities response that replaces the
	// built-in activity list. Leaving this empty uses the embedded seed.
	SeedPath string `split_words:"true"`

	// EnforceCapacity rejects signups once an activity reached max_participants.
	// Disabled by default: the directory historically never rejected a signup for capacity reasons.
	EnforceCapacity bool `split_words:"true" default:"false"`

	// IdempotencyLifetime is how long a successful signup/unregister response is replayed for
	// requests that carry the same Idempotency-Key header.
	IdempotencyLifetime time.Duration `required:"true" split_words:"true" default:"24h"`

	// RedisURL is the URL of an optional Redis server. When set, idempotency records and their locks
	// are shared through Redis instead of being kept in-process. See
	// https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL for the URL format.
	RedisURL string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"stdout"`

	// TracingSampleRate is the fraction of requests traced, by OpenTelemetry and by Sentry transactions.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
