package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/cedar/internal/league"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. ws is an optional handler for
// live snapshot subscriptions, mounted at /ws when non-nil.
func NewServer(port string, cache *league.Cache, refresher Refresher, ws http.Handler) *Server {
	handler := NewHandler(cache, refresher)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Service metadata and health
	router.HandleFunc("/", handler.Index).Methods("GET")
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// League data
	router.HandleFunc("/api/data", handler.GetData).Methods("GET")
	router.HandleFunc("/api/standings", handler.GetStandings).Methods("GET")
	router.HandleFunc("/api/results", handler.GetResults).Methods("GET")
	router.HandleFunc("/api/upcoming", handler.GetUpcoming).Methods("GET")
	router.HandleFunc("/api/stats", handler.GetStats).Methods("GET")
	router.HandleFunc("/api/game/{gameId}", handler.GetGame).Methods("GET")
	router.HandleFunc("/api/refresh", handler.Refresh).Methods("POST")

	if ws != nil {
		router.Handle("/ws", ws)
	}

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
