package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RMahshie/reynolds/internal/api"
	"github.com/RMahshie/reynolds/internal/charts"
	"github.com/RMahshie/reynolds/internal/config"
	"github.com/RMahshie/reynolds/internal/export"
	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/internal/repository/memory"
	"github.com/RMahshie/reynolds/internal/storage"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reynolds-server",
		Short:         "Seepage Reynolds number calculator API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().String("port", "", "HTTP port (overrides PORT)")
	cmd.Flags().String("env", "", "environment name, selects .env.<env> (overrides ENVIRONMENT)")
	_ = viper.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("ENVIRONMENT", cmd.Flags().Lookup("env"))

	return cmd
}

func run(cfg *config.Config) error {
	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Content-Type"},
		ExposedHeaders:     []string{"Content-Disposition"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: false,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Reynolds API", api.Version)
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Object storage is optional
	var s3Service storage.S3Service
	if cfg.AWS.PublishingEnabled() {
		var err error
		s3Service, err = storage.NewS3Service(storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
			URLExpiry: cfg.AWS.URLExpiry,
		})
		if err != nil {
			return err
		}
		log.Info().Str("bucket", cfg.AWS.S3Bucket).Str("endpoint", cfg.AWS.S3Endpoint).Msg("Export publishing enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, export publishing disabled")
	}

	sessions := memory.NewSessionRepository(cfg.Sessions.TTL)
	go sessions.Start()
	defer sessions.Stop()

	api.RegisterHealth(humaAPI)
	api.RegisterRoutes(humaAPI,
		sessions,
		s3Service,
		processing.NewProcessingService(),
		charts.NewRenderer(charts.Config{DPI: cfg.Charts.DPI}),
		export.NewExporter(),
	)

	// Start server
	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("Starting Reynolds API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Str("request_id", middleware.GetReqID(r.Context())).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Str("user_agent", r.UserAgent()).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
