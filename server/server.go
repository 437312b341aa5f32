// Package server wires the auth operations onto the HTTP surface: routing,
// request validation, middleware, and the domain-error-to-status mapping.
package server

import (
	"net/http"

	"github.com/myjarvis/auth-api/auth"
	"github.com/myjarvis/auth-api/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	auth    *auth.Service
	metrics *Metrics
	log     zerolog.Logger
}

func New(cfg config.Config, authService *auth.Service, log zerolog.Logger) (*Server, error) {
	if authService == nil {
		return nil, errors.New("[Server New] auth service is required")
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		auth:    authService,
		metrics: NewMetrics(),
		log:     log.With().Str("component", "server").Logger(),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		s.log.Info().Str("route", route).Msg("registered")
	}
}
