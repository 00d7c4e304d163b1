package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/scheduler"
	"github.com/jonathan/job-assistant/internal/server"
)

var (
	servePort  int
	pruneSpec  string
	noDatabase bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing scrape, analyze, cover-letter and process-job endpoints.
Templates, job history and sessions need DATABASE_URL; idle sessions are pruned on a schedule.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 5001)")
	serveCmd.Flags().StringVar(&pruneSpec, "prune-schedule", scheduler.DefaultPruneSpec, "Cron spec for pruning idle sessions")
	serveCmd.Flags().BoolVar(&noDatabase, "no-database", false, "Run without PostgreSQL even if DATABASE_URL is set")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := server.Deps{
		Scraper:      a.scraper,
		Analyzer:     a.analyzer,
		Personalizer: a.personalizer,
	}
	if a.cache != nil {
		deps.Cache = a.cache
	}

	if cfg.DatabaseURL != "" && !noDatabase {
		database, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		deps.Store = database

		pruner := scheduler.New(database, time.Duration(cfg.SessionTTL), pruneSpec)
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
	} else {
		log.Printf("[server] DATABASE_URL not set; template, history and session routes are disabled")
	}

	srv := server.New(server.Config{Port: cfg.Port, Verbose: cfg.Verbose}, deps)
	return srv.Start()
}
