package league

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheServesEmptySnapshot(t *testing.T) {
	c := NewCache()

	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.NotNil(t, snap.Standings)
	assert.NotNil(t, snap.Results)
	assert.NotNil(t, snap.Upcoming)
	assert.Len(t, snap.StatsLeaders, len(Categories))
	assert.Nil(t, snap.LastUpdated)
}

func TestCacheReplace(t *testing.T) {
	c := NewCache()
	now := time.Now()
	snap := &Snapshot{
		Standings:   []StandingEntry{{Rank: 1, Team: "Al Riyadi", Wins: 8}},
		LastUpdated: &now,
	}

	c.Replace(snap)
	assert.Same(t, snap, c.Snapshot())

	// Nil replacements are ignored.
	c.Replace(nil)
	assert.Same(t, snap, c.Snapshot())
}

// TestCacheNoTornReads replaces the snapshot concurrently with readers and
// verifies a reader never observes fields from two different refreshes.
func TestCacheNoTornReads(t *testing.T) {
	c := NewCache()

	makeSnapshot := func(i int) *Snapshot {
		team := fmt.Sprintf("Team %d", i)
		return &Snapshot{
			Standings: []StandingEntry{{Rank: 1, Team: team}},
			Results:   []GameResult{{HomeTeam: team}},
			Upcoming:  []UpcomingGame{{HomeTeam: team}},
		}
	}
	c.Replace(makeSnapshot(0))

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			c.Replace(makeSnapshot(i))
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := c.Snapshot()
				team := snap.Standings[0].Team
				if snap.Results[0].HomeTeam != team || snap.Upcoming[0].HomeTeam != team {
					t.Errorf("torn read: %q / %q / %q",
						team, snap.Results[0].HomeTeam, snap.Upcoming[0].HomeTeam)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestUpcomingKey(t *testing.T) {
	assert.Equal(t, "Al Riyadi-Sagesse", UpcomingKey("Al Riyadi", "Sagesse"))
}
