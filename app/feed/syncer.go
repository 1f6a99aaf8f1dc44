package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/rejsermedboern/feedsync/app/catalog"
)

const (
	// Caps bound memory use, not correctness; both preserve input order.
	maxProductsPerFeed = 500
	maxTotalProducts   = 3000
)

// RunRecorder persists per-run operational telemetry. Recording is
// best-effort: a recorder failure never fails a sync.
type RunRecorder interface {
	StartRun(startedAt time.Time) (int64, error)
	FinishRun(runID int64, totalProducts int, status string) error
	AddFeedResult(runID int64, feedName, feedID string, fetched, kept int, errMsg string) error
}

// FeedOutcome summarizes one feed's contribution to a sync run.
type FeedOutcome struct {
	Feed    string
	FeedID  string
	Fetched int // items parsed from the payload
	Kept    int // items surviving filtering, capping and normalization
	Err     error
}

// Summary describes a completed sync run.
type Summary struct {
	Products    int
	PerCategory map[catalog.Category]int
	Outcomes    []FeedOutcome
	Duration    time.Duration
}

// Syncer drives the full ingestion pass: fetch, decode, parse, filter,
// normalize per feed, then aggregate, cap, sort and persist. Feeds are
// fetched sequentially with a politeness delay between requests; a
// failing feed yields zero products and the run continues.
type Syncer struct {
	configCache *ConfigCache
	httpClient  *http.Client
	parser      *Parser
	filterer    *Filterer
	normalizer  *Normalizer
	recorder    RunRecorder

	cachePath    string
	userAgent    string
	fetchTimeout time.Duration
	feedDelay    time.Duration
}

func NewSyncer(configCache *ConfigCache, httpClient *http.Client, recorder RunRecorder,
	cachePath, userAgent string, fetchTimeout, feedDelay time.Duration) *Syncer {
	return &Syncer{
		configCache:  configCache,
		httpClient:   httpClient,
		parser:       NewParser(),
		filterer:     NewFilterer(),
		normalizer:   NewNormalizer(),
		recorder:     recorder,
		cachePath:    cachePath,
		userAgent:    userAgent,
		fetchTimeout: fetchTimeout,
		feedDelay:    feedDelay,
	}
}

// Run executes one sync pass. Individual feed failures are recovered
// (partial success is success); only a cache write failure is returned
// as an error.
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	configs := s.configCache.GetConfigsOrdered()

	slog.Info("Starting feed sync", "feeds", len(configs))

	runID := s.startRun(start)

	allProducts := make([]catalog.Product, 0)
	outcomes := make([]FeedOutcome, 0, len(configs))

	for i, feedConfig := range configs {
		products, outcome := s.processFeed(ctx, feedConfig)
		allProducts = append(allProducts, products...)
		outcomes = append(outcomes, outcome)
		s.recordFeedResult(runID, outcome)

		if i < len(configs)-1 {
			select {
			case <-ctx.Done():
				s.finishRun(runID, 0, "canceled")
				return nil, ctx.Err()
			case <-time.After(s.feedDelay):
			}
		}
	}

	if len(allProducts) > maxTotalProducts {
		slog.Info("Limiting aggregated products", "from", len(allProducts), "to", maxTotalProducts)
		allProducts = allProducts[:maxTotalProducts]
	}

	sortProducts(allProducts)

	if err := catalog.WriteSnapshot(s.cachePath, allProducts); err != nil {
		s.finishRun(runID, len(allProducts), "failed")
		return nil, fmt.Errorf("failed to persist product cache: %w", err)
	}

	s.finishRun(runID, len(allProducts), "success")

	summary := &Summary{
		Products:    len(allProducts),
		PerCategory: countByCategory(allProducts),
		Outcomes:    outcomes,
		Duration:    time.Since(start),
	}

	slog.Info("Feed sync complete", "products", summary.Products, "duration", summary.Duration.String(), "cache", s.cachePath)
	for category, count := range summary.PerCategory {
		slog.Info("Category summary", "category", string(category), "products", count)
	}

	return summary, nil
}

// processFeed runs the per-feed stage chain. Any failure yields zero
// products for this feed; the error lands in the outcome, not the run.
func (s *Syncer) processFeed(ctx context.Context, feedConfig *Config) ([]catalog.Product, FeedOutcome) {
	outcome := FeedOutcome{Feed: feedConfig.Name, FeedID: feedConfig.ID}

	slog.Info("Fetching feed", "feed", feedConfig.Name, "id", feedConfig.ID)

	body, contentType, err := s.fetchFeed(ctx, feedConfig.URL)
	if err != nil {
		slog.Error("Feed fetch failed", "feed", feedConfig.Name, "error", err)
		outcome.Err = err
		return nil, outcome
	}

	xmlText := DecodeBody(body, contentType)

	items, err := s.parser.Run(xmlText)
	if err != nil {
		slog.Error("Feed parse failed", "feed", feedConfig.Name, "error", err)
		outcome.Err = err
		return nil, outcome
	}
	outcome.Fetched = len(items)

	items = s.filterer.Run(items, feedConfig)
	if feedConfig.StrictFilter {
		slog.Debug("Filtered to relevant products", "feed", feedConfig.Name, "kept", len(items))
	}

	if len(items) > maxProductsPerFeed {
		slog.Debug("Limiting feed products", "feed", feedConfig.Name, "from", len(items), "to", maxProductsPerFeed)
		items = items[:maxProductsPerFeed]
	}

	products := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		products = append(products, s.normalizer.Run(item, feedConfig))
	}
	outcome.Kept = len(products)

	slog.Info("Feed processed", "feed", feedConfig.Name, "products", len(products))
	return products, outcome
}

func (s *Syncer) fetchFeed(ctx context.Context, url string) ([]byte, string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// sortProducts orders in-stock products first, then by name under
// Danish collation. The sort is stable, so aggregation order breaks
// ties.
func sortProducts(products []catalog.Product) {
	collator := catalog.NewCollator()
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].InStock != products[j].InStock {
			return products[i].InStock
		}
		return collator.CompareString(products[i].Name, products[j].Name) < 0
	})
}

func countByCategory(products []catalog.Product) map[catalog.Category]int {
	counts := make(map[catalog.Category]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

func (s *Syncer) startRun(startedAt time.Time) int64 {
	if s.recorder == nil {
		return 0
	}
	runID, err := s.recorder.StartRun(startedAt)
	if err != nil {
		slog.Warn("Failed to record sync run start", "error", err)
		return 0
	}
	return runID
}

func (s *Syncer) finishRun(runID int64, total int, status string) {
	if s.recorder == nil || runID == 0 {
		return
	}
	if err := s.recorder.FinishRun(runID, total, status); err != nil {
		slog.Warn("Failed to record sync run completion", "error", err)
	}
}

func (s *Syncer) recordFeedResult(runID int64, outcome FeedOutcome) {
	if s.recorder == nil || runID == 0 {
		return
	}
	errMsg := ""
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}
	if err := s.recorder.AddFeedResult(runID, outcome.Feed, outcome.FeedID, outcome.Fetched, outcome.Kept, errMsg); err != nil {
		slog.Warn("Failed to record feed result", "feed", outcome.Feed, "error", err)
	}
}
