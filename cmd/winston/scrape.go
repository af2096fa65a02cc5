package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WinstonAC/winston-global-scraper/internal/config"
	"github.com/WinstonAC/winston-global-scraper/internal/pipeline"
	"github.com/WinstonAC/winston-global-scraper/internal/search"
)

var (
	scrapeOut    string
	scrapeURL    bool
	scrapeTier   string
	scrapeConfig string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <keyword>...",
	Short: "Run a one-shot scrape and write the CSV to a file",
	Long: `Scrape leads for one or more search keywords (or, with --url, a direct page
URL) and write the resulting CSV to a file instead of the artifact store.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeOut, "out", "leads.csv", "Output CSV path")
	scrapeCmd.Flags().BoolVar(&scrapeURL, "url", false, "Treat the argument as a page URL instead of a keyword")
	scrapeCmd.Flags().StringVar(&scrapeTier, "tier", "all", "Quality tier filter: all, good or excellent")
	scrapeCmd.Flags().StringVar(&scrapeConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scrapeConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// One-shot runs keep artifacts out of the store and write straight to disk.
	fetcher := buildFetcher(cfg)
	searcher := search.NewDuckDuckGo(fetcher, cfg.SearchTimeout())
	pipe := pipeline.New(cfg, searcher, fetcher, discardStore{})

	result, err := runScrapeMode(ctx, pipe, args)
	if err != nil {
		return err
	}

	if err := os.WriteFile(scrapeOut, []byte(result.CSVData), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	log.Printf("[scrape] wrote %d leads to %s", len(result.Rows), scrapeOut)
	if result.Truncated {
		log.Printf("[scrape] run hit its time budget, results are partial")
	}
	return nil
}

func runScrapeMode(ctx context.Context, pipe *pipeline.Pipeline, args []string) (*pipeline.Result, error) {
	opts := pipeline.RunOptions{Tier: scrapeTier}

	switch {
	case scrapeURL:
		if len(args) != 1 {
			return nil, fmt.Errorf("--url takes exactly one argument")
		}
		return pipe.RunURL(ctx, args[0])
	case len(args) == 1 && !strings.Contains(args[0], ","):
		return pipe.RunKeyword(ctx, args[0], opts)
	default:
		keywords := args
		if len(args) == 1 {
			keywords = strings.Split(args[0], ",")
		}
		return pipe.RunBatch(ctx, keywords, opts)
	}
}

// discardStore satisfies export.Store for CLI runs where the CSV goes to a
// local file.
type discardStore struct{}

func (discardStore) Save(context.Context, string) (string, error) { return "", nil }
func (discardStore) Load(context.Context, string) (string, error) { return "", os.ErrNotExist }
