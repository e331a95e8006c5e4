package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/liliang-cn/claimwizard/internal/api"
	"github.com/liliang-cn/claimwizard/internal/api/middleware"
	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/config"
	"github.com/liliang-cn/claimwizard/internal/logger"
	"github.com/liliang-cn/claimwizard/internal/repository"
	"github.com/liliang-cn/claimwizard/internal/service"
	"github.com/liliang-cn/claimwizard/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ClaimWizard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		srv, err := newServer(cfg, log)
		if err != nil {
			return err
		}
		defer srv.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.run(ctx)
	},
}

// server owns everything serve starts and stops
type server struct {
	cfg       *config.Config
	logger    *zap.Logger
	scheduler *assistant.Scheduler
	store     repository.SessionStore
	sweeper   *repository.SQLiteSessionStore
	sessions  *service.SessionService
	handler   http.Handler
}

func newServer(cfg *config.Config, logger *zap.Logger) (*server, error) {
	templates, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	s := &server{
		cfg:       cfg,
		logger:    logger,
		scheduler: assistant.NewScheduler(),
	}

	switch cfg.Session.Store {
	case config.StoreSQLite:
		db, err := repository.NewDB(cfg.Database.Path)
		if err != nil {
			s.scheduler.Stop()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.sweeper = repository.NewSQLiteSessionStore(db, cfg.Session.TTL)
		s.store = s.sweeper
	default:
		s.store = repository.NewMemorySessionStore(cfg.Session.TTL, cfg.Session.CleanupInterval, func(id string) {
			s.sessions.Evicted(id)
		})
	}
	s.sessions = service.NewSessionService(s.store, s.scheduler, logger)

	router, err := api.SetupRouter(api.Services{
		Sessions: s.sessions,
		Wizard:   service.NewWizardService(s.sessions, cat, logger),
		Chat:     service.NewChatService(s.sessions, s.scheduler, cfg.Assistant.ReplyDelay, logger),
		Catalog:  service.NewCatalogService(cat),
	}, api.RouterConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Session: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			MaxAge:     int(cfg.Session.TTL.Seconds()),
		},
		Templates: templates,
		Logger:    logger,
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	s.handler = router
	return s, nil
}

// run serves until ctx is done, then shuts down gracefully
func (s *server) run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting ClaimWizard server",
			zap.String("address", s.cfg.Address()),
			zap.String("base_url", s.cfg.Server.BaseURL),
			zap.String("session_store", s.cfg.Session.Store),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if s.sweeper != nil && s.cfg.Session.CleanupInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(s.cfg.Session.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					s.sweep(ctx)
				}
			}
		})
	}

	err := g.Wait()
	s.logger.Info("Server exited")
	return err
}

// sweep drops expired sqlite sessions and releases their pending replies
func (s *server) sweep(ctx context.Context) {
	ids, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Warn("session sweep failed", zap.Error(err))
		return
	}
	for _, id := range ids {
		s.sessions.Evicted(id)
	}
	if len(ids) > 0 {
		s.logger.Debug("expired sessions removed", zap.Int("count", len(ids)))
	}
}

func (s *server) close() {
	s.scheduler.Stop()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close session store", zap.Error(err))
	}
}
