// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/archive"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/config"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/extractor"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/monitoring"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Logging)

	client := httpclient.New(httpclient.Config{
		Timeout:       cfg.Fetch.Timeout,
		RetryAttempts: cfg.Fetch.RetryAttempts,
		RetryDelay:    cfg.Fetch.RetryDelay,
		RateLimit:     cfg.Fetch.RateLimit,
		RateBurst:     cfg.Fetch.RateBurst,
		UserAgents:    cfg.Fetch.UserAgents,
	})

	var robots *compliance.Checker
	if cfg.Compliance.RespectRobotsTxt {
		robots = compliance.NewChecker(cfg.Compliance.UserAgent)
	}

	metrics := monitoring.NewMetrics("post_extractor")

	pipeline := extractor.NewPipeline(extractor.PipelineConfig{
		Rendered: extractor.RenderedConfig{
			ServiceURL:   cfg.Rendering.ServiceURL,
			Token:        cfg.Rendering.Token,
			Timeout:      cfg.Rendering.Timeout,
			SelectorWait: cfg.Rendering.SelectorWait,
		},
		Client: client,
		Robots: robots,
	}, metrics, log.Logger)

	if cfg.Rendering.Token == "" {
		log.Warn().Msg("no rendering service token configured, rendered-DOM strategy will be skipped")
	}

	store, err := archive.New(archive.Options{
		Backend:    cfg.Archive.Backend,
		DSN:        cfg.Archive.DSN,
		Table:      cfg.Archive.Table,
		Database:   cfg.Archive.Database,
		Collection: cfg.Archive.Collection,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open extraction archive")
	}
	if store != nil {
		defer store.Close()
	}

	srv := server.New(pipeline, metrics, store, log.Logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	switch strings.ToLower(cfg.Level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
