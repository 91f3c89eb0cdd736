package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
	"github.com/fortuna/cedar/internal/scrape"
)

// Source fetches the two pages a refresh cycle needs. The production
// implementation is scrape.Client; tests substitute fixture-backed fakes.
type Source interface {
	LeaguePage(ctx context.Context) (*goquery.Document, error)
	SchedulePage(ctx context.Context) (*goquery.Document, error)
	BaseURL() string
}

// Broadcaster pushes a freshly scraped snapshot to live subscribers.
type Broadcaster interface {
	BroadcastSnapshot(snap *league.Snapshot)
}

// SnapshotStore persists the last good snapshot across restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap *league.Snapshot) error
	Load(ctx context.Context) (*league.Snapshot, error)
}

// Config holds refresh loop configuration.
type Config struct {
	RefreshInterval time.Duration // Default: 5m
}

// DefaultConfig returns the default refresh configuration.
func DefaultConfig() *Config {
	return &Config{RefreshInterval: 5 * time.Minute}
}

// Orchestrator runs the scrape-and-replace refresh loop. All cycle errors
// are logged and swallowed: a failed cycle leaves the previous snapshot in
// place (stale-but-available) and never stops the loop.
type Orchestrator struct {
	source      Source
	cache       *league.Cache
	store       SnapshotStore // optional
	broadcaster Broadcaster   // optional
	config      *Config
	cancel      context.CancelFunc
}

// NewOrchestrator creates the refresh orchestrator. store and broadcaster
// may be nil.
func NewOrchestrator(source Source, cache *league.Cache, store SnapshotStore, broadcaster Broadcaster, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		source:      source,
		cache:       cache,
		store:       store,
		broadcaster: broadcaster,
		config:      config,
	}
}

// Start runs one cycle immediately, then refreshes on a fixed interval
// until the context is cancelled. Blocks until then.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	log.Printf("→ League refresh loop started (interval: %v)", o.config.RefreshInterval)

	o.warmStart(ctx)

	if err := o.RunCycle(ctx); err != nil {
		log.Printf("  ⚠️  Initial scrape failed: %v (serving warm-start data if any)", err)
	}

	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("→ League refresh loop stopped")
			return
		case <-ticker.C:
			if err := o.RunCycle(ctx); err != nil {
				log.Printf("  ⚠️  Refresh cycle failed: %v (keeping previous snapshot)", err)
			}
		}
	}
}

// Stop cancels the refresh loop.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// RunCycle performs one fetch-extract-swap cycle. On any fetch failure the
// cached snapshot is left untouched and the error is returned; extraction
// problems never fail a cycle, they only drop individual records.
func (o *Orchestrator) RunCycle(ctx context.Context) error {
	start := time.Now()

	leagueDoc, err := o.source.LeaguePage(ctx)
	if err != nil {
		return err
	}
	scheduleDoc, err := o.source.SchedulePage(ctx)
	if err != nil {
		return err
	}

	standings, skippedStandings := scrape.ParseStandings(leagueDoc)
	results, skippedResults := scrape.ParseResults(leagueDoc, scheduleDoc, o.source.BaseURL())
	upcoming, skippedUpcoming := scrape.ParseUpcoming(scheduleDoc)
	leaders, skippedStats := scrape.ParseStats(leagueDoc)

	now := time.Now()
	snap := &league.Snapshot{
		Standings:    standings,
		Results:      results,
		Upcoming:     upcoming,
		StatsLeaders: leaders,
		LastUpdated:  &now,
	}
	o.cache.Replace(snap)

	log.Printf("✓ League data refreshed in %v: %d standings, %d results, %d upcoming",
		time.Since(start).Round(time.Millisecond), len(standings), len(results), len(upcoming))
	logSkipped("standings", skippedStandings)
	logSkipped("results", skippedResults)
	logSkipped("upcoming", skippedUpcoming)
	logSkipped("stats", skippedStats)

	if o.broadcaster != nil {
		o.broadcaster.BroadcastSnapshot(snap)
	}
	if o.store != nil {
		if err := o.store.Save(ctx, snap); err != nil {
			log.Printf("  ⚠️  Failed to persist snapshot: %v", err)
		}
	}

	return nil
}

// warmStart loads the last persisted snapshot so the API serves data
// before the first scrape completes.
func (o *Orchestrator) warmStart(ctx context.Context) {
	if o.store == nil {
		return
	}
	snap, err := o.store.Load(ctx)
	if err != nil {
		log.Printf("  ⚠️  Warm start failed: %v", err)
		return
	}
	if snap == nil {
		return
	}
	o.cache.Replace(snap)
	log.Printf("✓ Warm start: loaded snapshot from %v", snap.LastUpdated)
}

func logSkipped(what string, diags []string) {
	for _, d := range diags {
		log.Printf("  ⚠️  Skipped %s record: %s", what, d)
	}
}
