// Package httpapi wires the reconciliation model to HTTP request handlers.
// Every handler is stateless: upstream address and credentials arrive per
// request in side-channel headers and never outlive the call.
package httpapi

import (
	"net/http"
	"time"

	"formgate.org/internal/obs"
)

// Options configures the API surface.
type Options struct {
	Version            string
	UpstreamTimeout    time.Duration
	DefaultUpstreamURL string
	RateBurst          int
	RatePerSec         int
	MaxBodyBytes       int64
}

// API is the HTTP layer.
type API struct {
	mux     *http.ServeMux
	version string

	// upstreamHTTP is shared by all per-request frappe clients.
	upstreamHTTP       *http.Client
	defaultUpstreamURL string

	rateBurst    int
	ratePerSec   int
	maxBodyBytes int64
}

func New(opts Options) *API {
	if opts.UpstreamTimeout <= 0 {
		opts.UpstreamTimeout = 20 * time.Second
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 40
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 20
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	a := &API{
		mux:                http.NewServeMux(),
		version:            opts.Version,
		upstreamHTTP:       &http.Client{Timeout: opts.UpstreamTimeout},
		defaultUpstreamURL: opts.DefaultUpstreamURL,
		rateBurst:          opts.RateBurst,
		ratePerSec:         opts.RatePerSec,
		maxBodyBytes:       opts.MaxBodyBytes,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.healthz)
	a.mux.HandleFunc("/readyz", a.ready)
	a.mux.HandleFunc("/v1/info", a.info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// admin resources
	a.mux.HandleFunc("/v1/doctypes", a.handleDocTypes)
	a.mux.HandleFunc("/v1/doctypes/", a.handleDocTypeResource)
	a.mux.HandleFunc("/v1/forms", a.handleForms)
	a.mux.HandleFunc("/v1/forms/assign", a.handleAssign)
	a.mux.HandleFunc("/v1/forms/share", a.handleShare)
	a.mux.HandleFunc("/v1/forms/", a.handleFormResource)
	a.mux.HandleFunc("/v1/users", a.handleUsers)

	// mobile-facing views
	a.mux.HandleFunc("/v1/mobile/assigned-forms", a.handleMobileAssignedForms)
	a.mux.HandleFunc("/v1/mobile/doctype-meta", a.handleMobileDocTypeMeta)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "resource not found")
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, a.maxBodyBytes)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = CORS(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
