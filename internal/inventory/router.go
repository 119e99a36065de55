package inventory

import (
	"net/http"
	"time"

	"github.com/nerrad567/gray-logic-components/internal/webserver"
)

// Route is the path the Router answers on. A single trailing slash is
// also accepted.
const Route = "/components"

const contentTypeJSON = "application/json"

// RouterOptions configures a Router.
type RouterOptions struct {
	Source           Source
	Logger           Logger
	Metrics          *Metrics
	MaxDocumentBytes int // 0 means no cap
}

// Router is the webserver.Handler for /components.
//
// Thread Safety: HandleRequest may run concurrently; each call walks the
// source independently.
type Router struct {
	source   Source
	logger   Logger
	metrics  *Metrics
	maxBytes int
}

// NewRouter creates a Router over opts.Source.
func NewRouter(opts RouterOptions) (*Router, error) {
	if opts.Source == nil {
		return nil, ErrSourceRequired
	}
	return &Router{
		source:   opts.Source,
		logger:   orNoop(opts.Logger),
		metrics:  opts.Metrics,
		maxBytes: opts.MaxDocumentBytes,
	}, nil
}

// CanHandle matches "/components" and "/components/" exactly, for any method.
// The query string is not part of req.Path and is ignored.
func (r *Router) CanHandle(req *webserver.Request) bool {
	return req.Path == Route || req.Path == Route+"/"
}

// HandleRequest enumerates the registry and sends the document. On failure
// it sends a 500 JSON error instead; the request is always answered.
func (r *Router) HandleRequest(req *webserver.Request, resp webserver.Responder) {
	start := time.Now()

	snap, err := Render(r.source, r.maxBytes)
	if err != nil {
		r.logger.Error("building components document failed",
			"error", err,
			"method", req.Method,
			"request_id", req.RequestID,
		)
		resp.Send(http.StatusInternalServerError, contentTypeJSON,
			webserver.ErrorBody(http.StatusInternalServerError, webserver.ErrCodeInternal, "failed to build components document"))
		r.metrics.observeRequest(http.StatusInternalServerError, time.Since(start))
		return
	}

	resp.Send(http.StatusOK, contentTypeJSON, snap.Body)
	r.metrics.observeRequest(http.StatusOK, time.Since(start))
	r.metrics.observeCounts(snap.Counts)

	r.logger.Debug("served components",
		"entities", snap.Total,
		"bytes", len(snap.Body),
		"request_id", req.RequestID,
	)
}
