// Package web provides the JSON HTTP API for trip-planner.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/logging"
	"github.com/evcraddock/trip-planner/internal/planner"
)

// Options configures the middleware around the API.
type Options struct {
	AllowedOrigins    []string
	RequestsPerMinute int
}

// Server is the API HTTP server.
type Server struct {
	planner *planner.Service
	saved   *itinerary.Repository
	log     *zap.Logger
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates an API server. saved may be nil, in which case the
// saved-itinerary endpoints respond 503.
func NewServer(svc *planner.Service, saved *itinerary.Repository, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		planner: svc,
		saved:   saved,
		log:     logger,
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/destinations", s.apiListDestinations)
	s.mux.HandleFunc("GET /api/destinations/{name}", s.apiGetDestination)
	s.mux.HandleFunc("POST /api/itineraries", s.apiPlan)
	s.mux.HandleFunc("GET /api/itineraries", s.apiListSaved)
	s.mux.HandleFunc("GET /api/itineraries/{id}", s.apiGetSaved)
	s.mux.HandleFunc("DELETE /api/itineraries/{id}", s.apiDeleteSaved)
	s.mux.HandleFunc("POST /api/bookings/confirm", s.apiConfirm)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
	})

	s.handler = c.Handler(rateLimit(opts.RequestsPerMinute, logger, logging.RequestLogger(logger, s.mux)))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("starting API", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
