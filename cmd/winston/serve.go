package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/WinstonAC/winston-global-scraper/internal/config"
	"github.com/WinstonAC/winston-global-scraper/internal/export"
	"github.com/WinstonAC/winston-global-scraper/internal/fetch"
	"github.com/WinstonAC/winston-global-scraper/internal/pipeline"
	"github.com/WinstonAC/winston-global-scraper/internal/search"
	"github.com/WinstonAC/winston-global-scraper/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scrape, batch, download and sheets endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Search and page fetches share one fetcher so browser sessions are
	// gated globally.
	fetcher := buildFetcher(cfg)
	searcher := search.NewDuckDuckGo(fetcher, cfg.SearchTimeout())
	pipe := pipeline.New(cfg, searcher, fetcher, store)

	log.Printf("[serve] artifact TTL %s, browser=%t", cfg.ArtifactTTL(), cfg.UseBrowser)
	return server.New(cfg.Port, pipe, store).Start()
}

// buildStore selects Postgres when DATABASE_URL is set, a temp-dir file store
// otherwise. Both sweep expired artifacts in the background.
func buildStore(ctx context.Context, cfg config.Config) (export.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := export.ConnectPostgres(ctx, cfg.DatabaseURL, cfg.ArtifactTTL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect artifact store: %w", err)
		}
		pg.StartSweeper(ctx, cfg.ArtifactTTL()/4)
		log.Printf("[serve] using Postgres artifact store")
		return pg, pg.Close, nil
	}

	fs, err := export.NewFileStore(cfg.ArtifactDir, cfg.ArtifactTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open artifact directory: %w", err)
	}
	fs.StartSweeper(ctx, cfg.ArtifactTTL()/4)
	log.Printf("[serve] using file artifact store in %s", cfg.ArtifactDir)
	return fs, func() {}, nil
}

func buildFetcher(cfg config.Config) fetch.PageFetcher {
	if cfg.UseBrowser {
		return fetch.NewBrowser(cfg.BrowserSessions, cfg.Verbose)
	}
	return fetch.NewClient()
}
