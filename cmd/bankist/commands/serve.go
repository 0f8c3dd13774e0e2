package commands

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/joeldanieldsouza8/bankist/internal/auth"
	"github.com/joeldanieldsouza8/bankist/internal/bootstrap"
	"github.com/joeldanieldsouza8/bankist/internal/config"
	"github.com/joeldanieldsouza8/bankist/internal/handler"
	appmiddleware "github.com/joeldanieldsouza8/bankist/internal/middleware"
	"github.com/joeldanieldsouza8/bankist/internal/session"
)

func NewServeCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the bank API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer cancel()

			cfg, err := config.Parse(configPath)
			if err != nil {
				return err
			}

			log := logrus.New()
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			log.SetLevel(level)

			seeds := bootstrap.DefaultSeed()
			if cfg.SeedPath != "" {
				if seeds, err = bootstrap.LoadSeedFile(cfg.SeedPath); err != nil {
					return err
				}
			}

			repo, err := bootstrap.BuildRepository(seeds)
			if err != nil {
				return fmt.Errorf("failed to build account directory: %w", err)
			}
			log.WithField("accounts", repo.Count()).Info("account directory seeded")

			sessions := session.NewStore(cfg.Session.TTL, cfg.Session.CleaningInterval)
			defer sessions.Close()

			processor := session.NewProcessor(repo, sessions)

			authService := auth.NewService(auth.Config{
				Secret:      []byte(cfg.Session.JWTSecret),
				TokenExpiry: cfg.Session.TokenExpiry,
				Issuer:      "bankist",
			})
			authMiddleware := appmiddleware.NewAuthMiddleware(authService)

			sessionHandler := handler.NewSessionHandler(processor, authService, log)
			accountHandler := handler.NewAccountHandler(processor, log)

			r := chi.NewRouter()
			r.Use(chimiddleware.RequestID)
			r.Use(chimiddleware.Recoverer)
			r.Use(appmiddleware.CORS(cfg.AllowedOrigins))

			r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"status": "healthy", "accounts": %d}`, repo.Count())
			})
			sessionHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				sessionHandler.RegisterProtectedRoutes(r)
				accountHandler.RegisterRoutes(r)
			})

			server := &http.Server{
				Addr:         cfg.HTTPServer.Address,
				Handler:      r,
				ReadTimeout:  cfg.HTTPServer.ReadTimeout,
				WriteTimeout: cfg.HTTPServer.WriteTimeout,
			}

			go func() {
				log.WithField("address", cfg.HTTPServer.Address).Info("server starting")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Fatal("server failed")
				}
			}()

			<-ctx.Done()
			log.Info("shutting down server")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info("server stopped")
			return nil
		},
	}
	c.Flags().StringVar(&configPath, "config", "", "path to yaml config (environment only if empty)")
	return c
}
