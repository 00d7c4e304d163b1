package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/analysis"
	"github.com/jonathan/job-assistant/internal/cache"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/coverletter"
	"github.com/jonathan/job-assistant/internal/ingestion"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/pipeline"
)

// connectTimeout bounds Redis and PostgreSQL startup checks.
const connectTimeout = 10 * time.Second

// loadConfig resolves environment, --config file and defaults. Explicit flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}
	return cfg, nil
}

// app holds the components shared by every command.
type app struct {
	cfg          config.Config
	client       llm.Client
	scraper      *ingestion.Scraper
	analyzer     *analysis.Analyzer
	personalizer *coverletter.Personalizer
	cache        *cache.RedisCache
	closers      []func()
}

// newApp builds the components. Without an API key, analysis and cover
// letters use their fallbacks. Without REDIS_URL, scrapes are not cached.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{
		cfg:     cfg,
		scraper: ingestion.NewScraper(cfg.ScraperOptions()),
	}

	if cfg.APIKey == "" {
		log.Printf("[config] GEMINI_API_KEY is not set; analysis and cover letters use fallbacks")
	} else {
		client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.client = client
		a.closers = append(a.closers, func() { _ = client.Close() })
	}

	a.analyzer = analysis.NewAnalyzer(a.client, analysis.WithTier(cfg.Tier()), analysis.WithVerbose(cfg.Verbose))
	a.personalizer = coverletter.NewPersonalizer(a.client, cfg.Tier())

	if cfg.RedisURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		rdb, err := cache.NewRedisClient(connectCtx, cfg.RedisURL)
		if err != nil {
			log.Printf("[cache] disabled: %v", err)
		} else {
			a.cache = cache.NewRedisCache(rdb, time.Duration(cfg.CacheTTL))
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	return a, nil
}

// runner returns a pipeline over the app's components. store may be nil.
func (a *app) runner(store pipeline.Store) *pipeline.Runner {
	r := &pipeline.Runner{
		Scraper:      a.scraper,
		Analyzer:     a.analyzer,
		Personalizer: a.personalizer,
		Verbose:      a.cfg.Verbose,
	}
	if a.cache != nil {
		r.Cache = a.cache
	}
	if store != nil {
		r.Store = store
	}
	return r
}

// Close releases clients in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
