package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/metrics"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/client"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/config"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/endpoint"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/handlers"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second
)

type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics // nil when metrics are disabled
}

// NewServer creates the ui server. The backend address is taken from cfg and passed explicitly to the api client.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	if cfg.MetricsEnabled {
		s.metrics = metrics.New("ewarranty_ui")
	}

	s.setupMiddleware()
	s.RegisterRoutes(s.router)
	return s
}

// Handler returns the server's router (used by tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// RegisterRoutes registers the ui routes on router.
//
// Pages render immediately with loading placeholders; the /ui-api routes return the html fragments that replace them
// and the results of form actions.
func (s *Server) RegisterRoutes(router chi.Router) {
	apiClient := client.NewClient(endpoint.NewResolver(s.config.APIRoot()), s.config.ClientTimeout)

	handlerService := &handlers.HandlerService{
		ApiClient:     apiClient,
		Environment:   s.config.Environment,
		ImagePatterns: types.RemoteImagePatterns,
	}

	router.Get("/health/live", handlerService.HandleHealth)

	if s.metrics != nil {
		apiClient.SetCallObserver(s.metrics)
		router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	router.Get("/", handlerService.HandleHome)

	// pages
	router.Get("/claims", handlerService.ClaimsPage)
	router.Get("/claims/new", handlerService.NewClaimPage)
	router.Get("/claims/{claimID}", handlerService.ClaimDetailPage)
	router.Get("/claims/{claimID}/edit", handlerService.EditClaimPage)
	router.Get("/users/{userID}/password", handlerService.ChangePasswordPage)

	// fragments
	router.Get("/ui-api/claims", handlerService.RenderClaimsTable)
	router.Get("/ui-api/claims/{claimID}", handlerService.RenderClaimDetail)
	router.Get("/ui-api/claims/{claimID}/form", handlerService.RenderClaimForm)
	router.Get("/ui-api/car-parts", handlerService.RenderCarPartOptions)

	// actions
	router.Group(func(r chi.Router) {
		r.Use(RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))

		r.Post("/ui-api/claims", handlerService.CreateClaim)
		r.Post("/ui-api/claims/{claimID}", handlerService.UpdateClaim)
		r.Post("/ui-api/claims/{claimID}/approval", handlerService.UpdateClaimApproval)
		r.Post("/ui-api/claims/{claimID}/status", handlerService.UpdateClaimStatus)
		r.Post("/ui-api/claim-warranty-parts/{partID}/approval", handlerService.UpdateClaimPartApproval)
		r.Post("/ui-api/claim-warranty-parts/{partID}/status", handlerService.UpdateClaimPartStatus)
		r.Post("/ui-api/users/{userID}/password", handlerService.UpdatePassword)
	})
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
}

// Start runs the ui server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening", slog.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
