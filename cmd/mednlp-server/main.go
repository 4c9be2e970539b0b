package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mednlp/mednlp/internal/config"
	"github.com/mednlp/mednlp/internal/domain/coding"
	"github.com/mednlp/mednlp/internal/domain/extract"
	"github.com/mednlp/mednlp/internal/domain/forms"
	"github.com/mednlp/mednlp/internal/domain/pipeline"
	"github.com/mednlp/mednlp/internal/domain/vocabulary"
	"github.com/mednlp/mednlp/internal/platform/db"
	"github.com/mednlp/mednlp/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mednlp-server",
		Short: "Medical document NLP API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(vocabCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the NLP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func vocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the terminology vocabulary",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show vocabulary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := zerolog.Nop()
			store, pool, err := buildStore(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			stats := store.Stats()
			fmt.Printf("Terms:         %d\n", stats.Terms)
			fmt.Printf("Synonyms:      %d\n", stats.Synonyms)
			fmt.Printf("Abbreviations: %d\n", stats.Abbreviations)
			fmt.Printf("Codes:         %d\n", stats.Codes)
			fmt.Printf("Search terms:  %d\n", stats.SearchTerms)

			fmt.Println("Codes by system:")
			systems := make([]string, 0, len(stats.CodesBySystem))
			for sys := range stats.CodesBySystem {
				systems = append(systems, string(sys))
			}
			sort.Strings(systems)
			for _, sys := range systems {
				fmt.Printf("  %-12s %d\n", sys, stats.CodesBySystem[vocabulary.System(sys)])
			}

			fmt.Println("Terms by category:")
			categories := make([]string, 0, len(stats.Categories))
			for cat := range stats.Categories {
				categories = append(categories, cat)
			}
			sort.Strings(categories)
			for _, cat := range categories {
				fmt.Printf("  %-12s %d\n", cat, stats.Categories[cat])
			}
			return nil
		},
	}
	cmd.AddCommand(statsCmd)

	return cmd
}

// buildStore assembles the frozen vocabulary store from the builtin seed data
// plus any configured file and database sources. The returned pool is non-nil
// only when DATABASE_URL is configured; the caller owns closing it.
func buildStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*vocabulary.Store, *pgxpool.Pool, error) {
	builder := vocabulary.NewBuilder()

	if err := builder.Load(ctx, vocabulary.Seed()); err != nil {
		return nil, nil, fmt.Errorf("load builtin vocabulary: %w", err)
	}

	if cfg.VocabFile != "" {
		if err := builder.Load(ctx, vocabulary.NewFileSource(cfg.VocabFile)); err != nil {
			return nil, nil, fmt.Errorf("load vocabulary file: %w", err)
		}
		logger.Info().Str("path", cfg.VocabFile).Msg("loaded vocabulary file")
	}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := builder.Load(ctx, vocabulary.NewPGSource(pool)); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("load database vocabulary: %w", err)
		}
		logger.Info().Msg("loaded database vocabulary")
	}

	return builder.Freeze(), pool, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Vocabulary store (seed + optional file and database sources)
	ctx := context.Background()
	store, pool, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build vocabulary store")
	}
	if pool != nil {
		defer pool.Close()
	}

	stats := store.Stats()
	logger.Info().
		Int("terms", stats.Terms).
		Int("codes", stats.Codes).
		Int("abbreviations", stats.Abbreviations).
		Msg("vocabulary store ready")

	// Optional external NER model adapter
	var adapter extract.ModelAdapter
	if cfg.ModelAdapterURL != "" {
		adapter = extract.NewRESTAdapter(cfg.ModelAdapterURL,
			time.Duration(cfg.ModelAdapterTimeoutMS)*time.Millisecond)
		logger.Info().Str("url", cfg.ModelAdapterURL).Msg("model adapter enabled")
	}

	// Services
	coder := coding.NewService(store)
	registry := forms.NewRegistry()
	mapper := forms.NewMapper(registry)
	nlp := pipeline.NewService(store, coder, mapper, adapter, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.BodyLimit("1M", "10M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// -- Register domain handlers --
	vocabulary.NewHandler(store).RegisterRoutes(apiV1)
	coding.NewHandler(coder).RegisterRoutes(apiV1)
	forms.NewHandler(registry).RegisterRoutes(apiV1)
	pipeline.NewHandler(nlp).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
