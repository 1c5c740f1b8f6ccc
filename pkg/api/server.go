package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/pong/pkg/api/handlers"
	"github.com/cbodonnell/pong/pkg/api/middleware"
	authproviders "github.com/cbodonnell/pong/pkg/auth/providers"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/repositories"
	"github.com/cbodonnell/pong/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	TLS  *TLSConfig
	// AuthProvider protects the match history when set
	AuthProvider authproviders.AuthProvider
	Repository   repositories.Repository
	StateManager state.StateManager
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)

	r.HandleFunc("/healthz", handlers.HandleHealth()).Methods(http.MethodGet)
	r.HandleFunc("/state", handlers.HandleGetState(opts.StateManager)).Methods(http.MethodGet)

	matches := r.PathPrefix("/matches").Subrouter()
	if opts.AuthProvider != nil {
		matches.Use(middleware.NewAuthMiddleware(opts.AuthProvider))
	}
	matches.HandleFunc("", handlers.HandleListMatches(opts.Repository)).Methods(http.MethodGet)
	matches.HandleFunc("/{matchID}", handlers.HandleGetMatch(opts.Repository)).Methods(http.MethodGet)

	return r
}

// Start serves the API until ctx is done.
func (s *APIServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.Stop(context.Background()); err != nil {
			log.Error("Failed to stop API server: %v", err)
		}
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return nil
		}
		return fmt.Errorf("failed to serve API: %v", err)
	}
	return nil
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
