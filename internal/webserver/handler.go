package webserver

import (
	"context"
	"net/http"
)

// Request is the transport-neutral view of an inbound HTTP request that
// handlers in the chain match and serve against.
type Request struct {
	Method     string
	Path       string // URL path only; the query string is never part of it
	RawQuery   string
	RemoteAddr string
	RequestID  string

	ctx context.Context
}

// Context returns the request's context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// NewRequest builds a Request directly. Backends use fromHTTP; this is for
// callers that drive handlers without a live connection.
func NewRequest(ctx context.Context, method, path string) *Request {
	return &Request{Method: method, Path: path, ctx: ctx}
}

// fromHTTP converts a net/http request.
func fromHTTP(r *http.Request) *Request {
	id, _ := r.Context().Value(ctxKeyRequestID).(string)
	return &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		RawQuery:   r.URL.RawQuery,
		RemoteAddr: r.RemoteAddr,
		RequestID:  id,
		ctx:        r.Context(),
	}
}

// Responder sends exactly one response for a request.
type Responder interface {
	Send(status int, contentType string, body []byte)
}

// Handler is an entry in the server's handler chain.
//
// The server asks each handler in registration order whether it wants the
// request; the first that answers true serves it.
type Handler interface {
	CanHandle(req *Request) bool
	HandleRequest(req *Request, resp Responder)
}

// httpResponder adapts http.ResponseWriter to Responder.
type httpResponder struct {
	w    http.ResponseWriter
	sent bool
}

// Send writes status, content type and body. Calls after the first are ignored.
func (h *httpResponder) Send(status int, contentType string, body []byte) {
	if h.sent {
		return
	}
	h.sent = true
	h.w.Header().Set("Content-Type", contentType)
	h.w.WriteHeader(status)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	h.w.Write(body)
}
