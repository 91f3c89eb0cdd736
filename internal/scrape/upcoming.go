package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
)

const maxUpcoming = 15

// upcomingMarker appears in the score cell of schedule rows that link to
// team form instead of a final score.
const upcomingMarker = "Last 10 Games"

var roundLabelRe = regexp.MustCompile(`(?i)Round\s+(\d+)`)

// ParseUpcoming extracts scheduled games from the schedule page. A row is
// upcoming when its score cell has no link (or carries the team-form
// marker). The round label is the nearest "Round n" heading above the row.
// Duplicate (home, away, date) rows are collapsed.
func ParseUpcoming(scheduleDoc *goquery.Document) ([]league.UpcomingGame, []string) {
	upcoming := []league.UpcomingGame{}
	var skipped []string
	if scheduleDoc == nil {
		return upcoming, nil
	}

	seen := make(map[string]bool)
	currentRound := ""

	scheduleDoc.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")

		// Round headings are rendered as short separator rows.
		if cells.Length() < 4 {
			if m := roundLabelRe.FindStringSubmatch(row.Text()); m != nil {
				currentRound = "Round " + m[1]
			}
			return
		}
		if len(upcoming) >= maxUpcoming {
			return
		}

		date := normalizeDate(cells.Eq(0).Text())
		if !gameDateRe.MatchString(date) {
			return
		}

		scoreCell := cells.Eq(2)
		played := scoreCell.Find("a").Length() > 0 &&
			!strings.Contains(scoreCell.Text(), upcomingMarker)
		if played {
			return
		}

		home, hok := teamFromLogoCell(cells.Eq(1))
		away, aok := teamFromLogoCell(cells.Eq(3))
		if !hok || !aok {
			skipped = append(skipped, fmt.Sprintf("schedule row %d: missing team logo alt", i))
			return
		}

		key := home + "|" + away + "|" + date
		if seen[key] {
			return
		}
		seen[key] = true

		upcoming = append(upcoming, league.UpcomingGame{
			Date:     date,
			HomeTeam: home,
			AwayTeam: away,
			Time:     "TBD",
			Round:    currentRound,
			Venue:    "TBD",
		})
	})

	return upcoming, skipped
}
