package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/types"
)

// defaultScrapeConcurrency bounds parallel fetches in `scrape`.
const defaultScrapeConcurrency = 4

var (
	scrapeConcurrency int
	scrapeJSON        bool
	scrapeRefresh     bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>...",
	Short: "Scrape one or more job postings into clean text",
	Long:  "Fetch each URL, extract the job description and print it. Postings are fetched concurrently; output keeps argument order.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().IntVarP(&scrapeConcurrency, "concurrency", "n", defaultScrapeConcurrency, "Maximum postings fetched at once")
	scrapeCmd.Flags().BoolVar(&scrapeJSON, "json", false, "Print postings as a JSON array")
	scrapeCmd.Flags().BoolVar(&scrapeRefresh, "refresh", false, "Ignore and replace cached postings")
	rootCmd.AddCommand(scrapeCmd)
}

// postingScraper is satisfied by pipeline.Runner, which consults the cache.
type postingScraper interface {
	Scrape(ctx context.Context, url string) (*types.JobPosting, bool)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	runner := a.runner(nil)
	runner.Refresh = scrapeRefresh
	postings, err := scrapeAll(cmd.Context(), runner, args, scrapeConcurrency)
	if err != nil {
		return err
	}

	if err := writePostings(cmd.OutOrStdout(), postings, scrapeJSON); err != nil {
		return err
	}

	failed := 0
	for _, p := range postings {
		if !p.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d postings failed", failed, len(postings))
	}
	return nil
}

// scrapeAll scrapes urls with at most limit in flight. Results keep input order.
func scrapeAll(ctx context.Context, s postingScraper, urls []string, limit int) ([]*types.JobPosting, error) {
	if limit <= 0 {
		limit = defaultScrapeConcurrency
	}

	postings := make([]*types.JobPosting, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			postings[i], _ = s.Scrape(ctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return postings, nil
}

func writePostings(w io.Writer, postings []*types.JobPosting, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(postings)
	}

	printer := observability.NewPrinter(w)
	for _, p := range postings {
		printer.PrintPosting(p)
	}
	return nil
}
