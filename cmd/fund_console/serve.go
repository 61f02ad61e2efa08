package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/address"
	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/db"
	"github.com/meridian/fund-console/internal/draft"
	"github.com/meridian/fund-console/internal/enrich"
	"github.com/meridian/fund-console/internal/forms"
	"github.com/meridian/fund-console/internal/logger"
	"github.com/meridian/fund-console/internal/notify"
	"github.com/meridian/fund-console/internal/quickpaste"
	"github.com/meridian/fund-console/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the console's REST endpoints: paste parsing, address normalization, portfolio CRUD, draft persistence, and enrichment.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	} else {
		log.Warn("DATABASE_URL not set, portfolio routes disabled")
	}

	normalizer, err := buildNormalizer(cfg, log)
	if err != nil {
		return err
	}

	store, err := buildDraftStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open draft store: %w", err)
	}

	toasts := notify.NewHub()
	sessions := forms.NewRegistry(store, toasts, log, forms.RegistryOptions{
		Debounce:     time.Duration(cfg.DebounceMillis) * time.Millisecond,
		PasteRelease: time.Duration(cfg.PasteReleaseMillis) * time.Millisecond,
	})

	var enricher *enrich.Service
	if cfg.GeminiAPIKey != "" {
		client, err := enrich.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close() //nolint:errcheck
		enricher = enrich.NewService(client)
	} else {
		log.Warn("GEMINI_API_KEY not set, enrichment routes disabled")
	}

	srv, err := server.New(server.Options{
		Config:   cfg,
		Log:      log,
		DB:       database,
		Toasts:   toasts,
		Engine:   quickpaste.New(normalizer),
		Addr:     normalizer,
		Drafts:   store,
		Sessions: sessions,
		Enricher: enricher,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// buildNormalizer assembles the address chain. Without a geocoder URL the
// chain starts at the regex tier.
func buildNormalizer(cfg *config.Config, log *zap.Logger) (*address.Normalizer, error) {
	if cfg.GeocoderURL == "" {
		log.Warn("GEOCODER_URL not set, address normalization degrades to regex")
		return address.NewNormalizer(nil, log), nil
	}
	geo, err := address.NewGeocodeClient(cfg.GeocoderURL, address.GeocodeOptions{
		APIKey:              cfg.GeocoderAPIKey,
		ConfidenceThreshold: cfg.GeocoderConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode client: %w", err)
	}
	return address.NewNormalizer(geo, log), nil
}

// buildDraftStore opens the configured persistence backend.
func buildDraftStore(ctx context.Context, cfg *config.Config) (draft.Store, error) {
	switch cfg.DraftBackend {
	case "", "memory":
		return draft.NewMemoryStore(), nil
	case "sqlite":
		return draft.NewSQLiteStore(cfg.DraftSQLitePath)
	case "redis":
		return draft.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 0)
	default:
		return nil, fmt.Errorf("unknown draft backend %q", cfg.DraftBackend)
	}
}
