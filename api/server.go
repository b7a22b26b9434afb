package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog/log"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Projects    services.ProjectService
	Skills      services.SkillService
	Experiences services.ExperienceService
	Profile     services.ProfileService
	Portfolio   services.PortfolioService
	Resume      services.ResumeService
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, pinger Pinger, svcs Services) (Server, error) {
	// Capture startup time
	startupTime := time.Now()

	router := newRouter(svcs, pinger,
		withSecurity(cfg.Security()),
		withOrigins(cfg.Origins()),
		withStartupTime(startupTime),
		withExposeErrors(!cfg.IsProduction()),
		withColoredLogs(cfg.LogFormat == "console"),
	)

	server := &http.Server{
		Addr:         cfg.Addr(), // Bind to 0.0.0.0 for external access
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	security     config.Security
	origins      []string
	startupTime  time.Time
	exposeErrors bool
	coloredLogs  bool
}

func withSecurity(security config.Security) func(*router) {
	return func(r *router) {
		r.security = security
	}
}

func withOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.origins = origins
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withExposeErrors(expose bool) func(*router) {
	return func(r *router) {
		r.exposeErrors = expose
	}
}

func withColoredLogs(colored bool) func(*router) {
	return func(r *router) {
		r.coloredLogs = colored
	}
}

func newRouter(svcs Services, pinger Pinger, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors(router.exposeErrors))
	chiRouter.Use(ColoredHTTPLoggingMiddleware(router.coloredLogs))

	// Initialize all handlers
	handlers := initializeHandlers(svcs, pinger, router.startupTime, router.exposeErrors)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(router.security, router.exposeErrors)

	// Apply CORS middleware
	chiRouter.Use(CORSCheckMiddleware(router.origins, router.exposeErrors))
	chiRouter.Use(corsMiddleware(router.origins))

	// Setup all route types
	setupHealthRoutes(chiRouter, handlers)
	setupAPIRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
