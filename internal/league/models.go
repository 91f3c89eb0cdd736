package league

import "time"

// Stat leader categories scraped from the league page, in display order.
const (
	CategoryPPG = "ppg"
	CategoryRPG = "rpg"
	CategoryAPG = "apg"
	CategorySPG = "spg"
	CategoryBPG = "bpg"
)

// Categories lists every stat-leader category in scrape order.
var Categories = []string{CategoryPPG, CategoryRPG, CategoryAPG, CategorySPG, CategoryBPG}

// StandingEntry is one row of the league table. Rank is the row position
// in the standings table, not a value read from the page.
type StandingEntry struct {
	Rank   int    `json:"rank"`
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// GameResult is a completed game. GameID and BoxScoreURL are present only
// when the schedule page linked the score to a box-score page.
type GameResult struct {
	Date        string `json:"date"`
	HomeTeam    string `json:"homeTeam"`
	HomeScore   int    `json:"homeScore"`
	AwayTeam    string `json:"awayTeam"`
	AwayScore   int    `json:"awayScore"`
	GameID      string `json:"gameId,omitempty"`
	BoxScoreURL string `json:"boxScoreUrl,omitempty"`
}

// UpcomingGame is a scheduled game. Scores are always null in JSON; the
// source site does not publish tip-off times or venues, so Time and Venue
// are placeholders.
type UpcomingGame struct {
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	Time      string `json:"time"`
	Round     string `json:"round,omitempty"`
	Venue     string `json:"venue"`
}

// StatEntry is one line of a stat-leaders list. Team is best-effort and
// falls back to "Unknown" when the page gives no usable team text.
type StatEntry struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Value  float64 `json:"value"`
}

// Snapshot is the complete set of league data from one scrape. It is
// replaced wholesale on every successful refresh and never mutated.
type Snapshot struct {
	Standings    []StandingEntry        `json:"standings"`
	Results      []GameResult           `json:"results"`
	Upcoming     []UpcomingGame         `json:"upcoming"`
	StatsLeaders map[string][]StatEntry `json:"stats_leaders"`
	LastUpdated  *time.Time             `json:"last_updated"`
}

// NewSnapshot returns an empty snapshot with all collections allocated so
// JSON responses render [] and {} rather than null before the first scrape.
func NewSnapshot() *Snapshot {
	leaders := make(map[string][]StatEntry, len(Categories))
	for _, cat := range Categories {
		leaders[cat] = []StatEntry{}
	}
	return &Snapshot{
		Standings:    []StandingEntry{},
		Results:      []GameResult{},
		Upcoming:     []UpcomingGame{},
		StatsLeaders: leaders,
	}
}

// UpcomingKey is the composite lookup key used by the game endpoint for
// games that have not been played yet. It can collide for repeated
// fixtures across dates; that matches the upstream behavior.
func UpcomingKey(home, away string) string {
	return home + "-" + away
}
