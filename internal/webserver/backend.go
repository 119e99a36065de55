package webserver

import (
	"net/http"
	"slices"

	"github.com/nerrad567/gray-logic-components/internal/infrastructure/config"
)

// SupportedBackends returns the backend names built into this binary.
func SupportedBackends() []string {
	return []string{config.BackendChi, config.BackendStd}
}

// IsSupportedBackend reports whether name is one of SupportedBackends.
func IsSupportedBackend(name string) bool {
	return slices.Contains(SupportedBackends(), name)
}

// buildHandler returns the root http.Handler for the configured backend.
func (s *Server) buildHandler() http.Handler {
	switch s.backend {
	case config.BackendStd:
		return s.buildStdHandler()
	default:
		return s.buildChiRouter()
	}
}
