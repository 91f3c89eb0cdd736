package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leagueFixture = `
<html><body>
<table>
  <tr><th>#</th><th>Team</th><th>Record</th></tr>
  <tr><td>1</td><td><a href="/team/riyadi">Al Riyadi</a></td><td>8-0</td></tr>
  <tr><td>2</td><td><a href="/team/sagesse">Sagesse</a></td><td>6-2</td></tr>
</table>
<div>
  <h3>PPG</h3>
  <table>
    <tr><td><a href="/player/wael">Wael Arakji</a></td><td>Al Riyadi</td><td>22.5</td></tr>
  </table>
</div>
</body></html>`

const scheduleFixture = `
<html><body>
<table>
  <tr><td colspan="4">Round 12</td></tr>
  <tr>
    <td>Feb.9</td>
    <td><img alt="Al Riyadi"></td>
    <td><a href="/boxScores/Lebanon/2026/0209_2628_2682.aspx">[80-74]</a></td>
    <td><img alt="Sagesse"></td>
  </tr>
  <tr>
    <td>Feb.16</td>
    <td><img alt="Sagesse"></td>
    <td></td>
    <td><img alt="Al Riyadi"></td>
  </tr>
</table>
</body></html>`

// fakeSource serves fixture documents, or errors when failing is set.
type fakeSource struct {
	failing bool
}

func (f *fakeSource) LeaguePage(ctx context.Context) (*goquery.Document, error) {
	return f.doc(leagueFixture)
}

func (f *fakeSource) SchedulePage(ctx context.Context) (*goquery.Document, error) {
	return f.doc(scheduleFixture)
}

func (f *fakeSource) BaseURL() string { return "https://example.test" }

func (f *fakeSource) doc(html string) (*goquery.Document, error) {
	if f.failing {
		return nil, errors.New("connection refused")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type fakeBroadcaster struct {
	snapshots []*league.Snapshot
}

func (f *fakeBroadcaster) BroadcastSnapshot(snap *league.Snapshot) {
	f.snapshots = append(f.snapshots, snap)
}

type fakeStore struct {
	saved  *league.Snapshot
	loaded *league.Snapshot
}

func (f *fakeStore) Save(ctx context.Context, snap *league.Snapshot) error {
	f.saved = snap
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (*league.Snapshot, error) {
	return f.loaded, nil
}

func TestRunCycleReplacesSnapshot(t *testing.T) {
	source := &fakeSource{}
	cache := league.NewCache()
	broadcaster := &fakeBroadcaster{}
	store := &fakeStore{}
	o := NewOrchestrator(source, cache, store, broadcaster, nil)

	require.NoError(t, o.RunCycle(context.Background()))

	snap := cache.Snapshot()
	require.NotNil(t, snap.LastUpdated)
	require.Len(t, snap.Standings, 2)
	assert.Equal(t, "Al Riyadi", snap.Standings[0].Team)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "2026_2628_2682", snap.Results[0].GameID)
	require.Len(t, snap.Upcoming, 1)
	assert.Equal(t, "Round 12", snap.Upcoming[0].Round)
	require.Len(t, snap.StatsLeaders[league.CategoryPPG], 1)
	assert.Equal(t, 22.5, snap.StatsLeaders[league.CategoryPPG][0].Value)

	// The new snapshot fanned out to subscribers and the warm store.
	require.Len(t, broadcaster.snapshots, 1)
	assert.Same(t, snap, broadcaster.snapshots[0])
	assert.Same(t, snap, store.saved)
}

func TestRunCycleFetchFailureKeepsStaleSnapshot(t *testing.T) {
	source := &fakeSource{}
	cache := league.NewCache()
	o := NewOrchestrator(source, cache, nil, nil, nil)

	require.NoError(t, o.RunCycle(context.Background()))
	before := cache.Snapshot()
	require.NotNil(t, before.LastUpdated)

	source.failing = true
	err := o.RunCycle(context.Background())
	require.Error(t, err)

	after := cache.Snapshot()
	assert.Same(t, before, after, "a failed cycle must not touch the cache")
	assert.Equal(t, before.LastUpdated, after.LastUpdated)
}

func TestWarmStartLoadsStoredSnapshot(t *testing.T) {
	stored := league.NewSnapshot()
	stored.Standings = []league.StandingEntry{{Rank: 1, Team: "Al Riyadi"}}

	cache := league.NewCache()
	o := NewOrchestrator(&fakeSource{failing: true}, cache, &fakeStore{loaded: stored}, nil, nil)

	o.warmStart(context.Background())
	assert.Same(t, stored, cache.Snapshot())
}
