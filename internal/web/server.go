// Package web exposes the matching engine over a small JSON API, used by
// review tooling and upstream recipe importers.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/brewmatch/internal/catalog"
	"github.com/brewmatch/internal/config"
	"github.com/brewmatch/internal/matcher"
)

// Server hosts the resolution API.
type Server struct {
	settings   config.Settings
	engine     *matcher.Engine
	source     catalog.Source
	policy     matcher.Policy
	httpServer *http.Server
	router     *mux.Router
}

// NewServer wires the engine and catalog source into an HTTP server.
func NewServer(settings config.Settings, engine *matcher.Engine, source catalog.Source) *Server {
	s := &Server{
		settings: settings,
		engine:   engine,
		source:   source,
		policy:   matcher.Policy{AutoApplyScore: settings.AutoApplyScore},
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         settings.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/resolve", s.handleResolve).Methods("GET")
	api.HandleFunc("/substitutes", s.handleSubstitutes).Methods("GET")
	api.HandleFunc("/aliases", s.handleAliases).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.router.Use(cors())
	s.router.Use(requestLogging())
}

// Handler returns the configured router, used directly in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	if closer, ok := s.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			fmt.Printf("Catalog close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
	return nil
}
