package constant

const (
	ServiceName = "mergington"

	// SlimHeaderKey marks a request that Sentry tracing should skip.
	SlimHeaderKey = "X-Slim"
)
