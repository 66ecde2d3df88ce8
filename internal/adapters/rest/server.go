package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_ports "github.com/Sterdizzy/ez-olx/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

func NewServer(port string, searchHandlers *SearchHandlers, storageHandlers *StorageHandlers, proxyHandler *ProxyHandler, baseLogger core_ports.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	// The API is consumed by browser frontends on arbitrary origins, so the
	// relay keeps the permissive policy the original proxy had.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", searchHandlers.HandleSearch)

		r.Get("/proxy", proxyHandler.HandleProxy)

		r.Route("/searches/recent", func(r chi.Router) {
			r.Get("/", storageHandlers.HandleListRecentSearches)
			r.Delete("/{searchID}", storageHandlers.HandleRemoveRecentSearch)
			r.Delete("/", storageHandlers.HandleClearRecentSearches)
		})

		r.Route("/listings/saved", func(r chi.Router) {
			r.Get("/", storageHandlers.HandleListSavedListings)
			r.Post("/toggle", storageHandlers.HandleToggleSavedListing)
			r.Get("/{listingID}", storageHandlers.HandleIsListingSaved)
			r.Delete("/{listingID}", storageHandlers.HandleRemoveSavedListing)
			r.Delete("/", storageHandlers.HandleClearSavedListings)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Start runs the HTTP server until it fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
