// Package proxy exposes a Link client over HTTP so callers without the
// client secret can reach the API through a trusted host.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/link"
)

// maxBodyBytes bounds POST bodies forwarded upstream.
const maxBodyBytes = 1 << 20

// API is the subset of *link.Client the proxy forwards to.
type API interface {
	Get(ctx context.Context, path string, inputs link.Inputs) (any, error)
	Post(ctx context.Context, path string, inputs link.Inputs) (any, error)
}

// Server forwards /v1/* requests to the Link API.
type Server struct {
	api API
	mux *http.ServeMux
}

// NewServer creates a proxy Server for api.
func NewServer(api API) *Server {
	s := &Server{
		api: api,
		mux: http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.mux.HandleFunc("/v1/", s.handleForward)
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loggingMiddleware(s.mux).ServeHTTP(w, r)
}

// Start listens on addr and serves the proxy.
func (s *Server) Start(addr string) error {
	logger.Get().Info().Msgf("Starting Link proxy on %s", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	// Forward the escaped form so %3F and %23 stay inside the path upstream.
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/v1")

	var (
		outputs any
		err     error
	)
	switch r.Method {
	case http.MethodGet:
		inputs := link.Inputs{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				inputs[key] = values[0]
			}
		}
		outputs, err = s.api.Get(r.Context(), path, inputs)
	case http.MethodPost:
		inputs := link.Inputs{}
		body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if readErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(readErr, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "could not read request body")
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			decoder := json.NewDecoder(bytes.NewReader(body))
			decoder.UseNumber()
			if err := decoder.Decode(&inputs); err != nil {
				writeError(w, http.StatusBadRequest, "request body must be a JSON object")
				return
			}
		}
		outputs, err = s.api.Post(r.Context(), path, inputs)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err != nil {
		var authErr *link.AuthenticationError
		if errors.As(err, &authErr) {
			logger.Get().Error().Err(err).Msg("Upstream authentication failed")
			writeError(w, http.StatusBadGateway, authErr.Details...)
			return
		}
		logger.Get().Error().Err(err).Str("path", path).Msg("Upstream request failed")
		writeError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	writeJSON(w, http.StatusOK, outputs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to write response")
	}
}

// writeError renders details in the Link {"errors":[{"detail":...}]} shape.
func writeError(w http.ResponseWriter, status int, details ...string) {
	type detail struct {
		Detail string `json:"detail"`
	}
	errs := make([]detail, 0, len(details))
	for _, d := range details {
		errs = append(errs, detail{Detail: d})
	}
	writeJSON(w, status, map[string]any{"errors": errs})
}
