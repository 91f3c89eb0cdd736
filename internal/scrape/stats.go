package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
)

const maxLeadersPerCategory = 5

var (
	numberRe   = regexp.MustCompile(`\d+\.?\d*`)
	teamWordRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
)

// ParseStats extracts the five stat-leader lists (PPG, RPG, APG, SPG, BPG)
// from the main league page. For each category label found in the page
// text, the nearest enclosing container with player-profile links is
// scanned: the last number in a player's row is the stat value, and the
// team name is a best-effort capitalized run ("Unknown" when absent).
func ParseStats(doc *goquery.Document) (map[string][]league.StatEntry, []string) {
	leaders := make(map[string][]league.StatEntry, len(league.Categories))
	for _, cat := range league.Categories {
		leaders[cat] = []league.StatEntry{}
	}
	var skipped []string
	if doc == nil {
		return leaders, nil
	}

	for _, cat := range league.Categories {
		container := leaderContainer(doc, strings.ToUpper(cat))
		if container == nil {
			continue
		}

		container.Find(`a[href*="/player/"]`).EachWithBreak(func(i int, link *goquery.Selection) bool {
			if len(leaders[cat]) >= maxLeadersPerCategory {
				return false
			}

			player := strings.TrimSpace(link.Text())
			if player == "" {
				return true
			}

			row := link.Closest("tr")
			if row.Length() == 0 {
				row = link.Closest("div")
			}
			if row.Length() == 0 {
				skipped = append(skipped, fmt.Sprintf("%s leader %q: no enclosing row", cat, player))
				return true
			}

			rowText := row.Text()
			numbers := numberRe.FindAllString(rowText, -1)
			if len(numbers) == 0 {
				skipped = append(skipped, fmt.Sprintf("%s leader %q: no stat value in row", cat, player))
				return true
			}
			value, err := strconv.ParseFloat(numbers[len(numbers)-1], 64)
			if err != nil {
				skipped = append(skipped, fmt.Sprintf("%s leader %q: bad stat value %q", cat, player, numbers[len(numbers)-1]))
				return true
			}

			leaders[cat] = append(leaders[cat], league.StatEntry{
				Player: player,
				Team:   bestEffortTeam(rowText, player),
				Value:  value,
			})
			return true
		})
	}

	return leaders, skipped
}

// leaderContainer locates the category label in the page text and climbs
// to the nearest ancestor that contains player-profile links.
func leaderContainer(doc *goquery.Document, label string) *goquery.Selection {
	lower := strings.ToLower(label)
	var container *goquery.Selection

	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 || !strings.Contains(strings.ToLower(s.Text()), lower) {
			return true
		}
		for cur := s.Parent(); cur.Length() > 0; cur = cur.Parent() {
			if cur.Find(`a[href*="/player/"]`).Length() > 0 {
				container = cur
				return false
			}
		}
		return true
	})

	return container
}

// bestEffortTeam extracts a team name from the row's text. The row text
// usually runs the player name and team together, so the player's name is
// trimmed off the first capitalized run.
func bestEffortTeam(text, player string) string {
	for _, m := range teamWordRe.FindAllString(text, -1) {
		m = strings.TrimSpace(strings.TrimPrefix(m, player))
		if m == "" {
			continue
		}
		return m
	}
	return "Unknown"
}
