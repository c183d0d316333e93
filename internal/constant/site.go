package constant

const (
	// IndexPath is where the root path redirects browsers to; the front end is served from StaticPrefix.
	IndexPath    = "/static/index.html"
	StaticPrefix = "/static"
)
