package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/registry"
	"github.com/aretw0/canopy/pkg/schema"
)

// maxBodyBytes bounds the size of a document accepted by the parse endpoint.
const maxBodyBytes = 1 << 20

// ParseResponse is the body returned by POST /schemas/{name}/parse.
type ParseResponse struct {
	Value  any            `json:"value"`
	Errors []schema.Issue `json:"errors"`
}

// Server exposes a registry of schemas over HTTP.
type Server struct {
	Registry *registry.Registry
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithMetrics serves the gatherer's metrics on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	server := &Server{Registry: reg, Logger: slog.Default()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/schemas", server.ListSchemas)
	r.Post("/schemas/{name}/parse", server.Parse)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Parse handles the POST /schemas/{name}/parse request.
// The body is exactly one JSON document. Numbers decode as float64.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.Registry.Lookup(name); !ok {
		http.Error(w, "Schema not found: "+name, http.StatusNotFound)
		return
	}

	doc, err := decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Parse: Invalid request body", "schema", name, "error", err)
		return
	}

	value, errs, err := s.Registry.Parse(name, doc)
	if errors.Is(err, registry.ErrSchemaNotFound) {
		// Unregistered between the lookup and the parse.
		http.Error(w, "Schema not found: "+name, http.StatusNotFound)
		return
	}

	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
		s.Logger.Debug("Parse: Document rejected", "schema", name, "errors", len(errs))
	}
	writeJSON(w, status, ParseResponse{Value: value, Errors: schema.Issues(errs)}, s.Logger)
}

// decodeBody reads one JSON value and rejects anything after it.
func decodeBody(body io.Reader) (any, error) {
	dec := json.NewDecoder(body)
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON document")
		}
		return nil, err
	}
	return doc, nil
}

// ListSchemas handles the GET /schemas request.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Names(), s.Logger)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "canopy-http",
		"version": canopy.Version,
	}, s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
