package webserver

import "net/http"

// buildStdHandler creates the std backend: a bare net/http handler that
// serves /health and otherwise walks the handler chain. It carries panic
// recovery and nothing else.
func (s *Server) buildStdHandler() http.Handler {
	return s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" && r.Method == http.MethodGet {
			s.handleHealth(w, r)
			return
		}
		s.dispatch(w, r)
	}))
}
