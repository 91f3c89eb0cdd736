package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
)

// maxStandings caps the league table at the top teams.
const maxStandings = 12

var (
	recordRe        = regexp.MustCompile(`(\d+)-(\d+)`)
	standingsLineRe = regexp.MustCompile(`(\d+)\s+([A-Za-z\s]+?)\s+(\d+)-(\d+)`)
)

// ParseStandings extracts the league table from the main league page.
//
// Primary strategy: the first <table> on the page (the site renders the
// standings first). If no table exists, the table following a "Standings"
// text label is used instead. If neither yields rows, the plain text of
// the whole page is scanned for "<rank> <team> <wins>-<losses>" lines.
//
// Returns the entries plus diagnostics for rows that were skipped.
func ParseStandings(doc *goquery.Document) ([]league.StandingEntry, []string) {
	standings := []league.StandingEntry{}
	var skipped []string
	if doc == nil {
		return standings, nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		if alt := tableAfterLabel(doc, "Standings"); alt != nil {
			table = alt
		}
	}

	if table.Length() > 0 {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 || len(standings) >= maxStandings {
				return // header row, or table already full
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			team := teamNameFromRow(cells)
			if team == "" {
				skipped = append(skipped, fmt.Sprintf("standings row %d: no team name", i))
				return
			}

			wins, losses := 0, 0
			if cells.Length() > 2 {
				record := strings.TrimSpace(cells.Eq(cells.Length() - 1).Text())
				if m := recordRe.FindStringSubmatch(record); m != nil {
					wins, _ = strconv.Atoi(m[1])
					losses, _ = strconv.Atoi(m[2])
				}
			}

			standings = append(standings, league.StandingEntry{
				Rank:   i,
				Team:   team,
				Wins:   wins,
				Losses: losses,
			})
		})
	}

	if len(standings) == 0 {
		standings = standingsFromText(doc)
	}

	if len(standings) > maxStandings {
		standings = standings[:maxStandings]
	}
	return standings, skipped
}

// teamNameFromRow prefers the first anchor in the first two cells, falling
// back to the raw text of the second cell.
func teamNameFromRow(cells *goquery.Selection) string {
	link := cells.Eq(0).Find("a").First()
	if link.Length() == 0 {
		link = cells.Eq(1).Find("a").First()
	}
	if link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	return strings.TrimSpace(cells.Eq(1).Text())
}

// standingsFromText is the last-resort strategy: scan every line of the
// page's text content for rank/team/record patterns.
func standingsFromText(doc *goquery.Document) []league.StandingEntry {
	standings := []league.StandingEntry{}
	for _, line := range strings.Split(doc.Text(), "\n") {
		m := standingsLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rank, _ := strconv.Atoi(m[1])
		wins, _ := strconv.Atoi(m[3])
		losses, _ := strconv.Atoi(m[4])
		standings = append(standings, league.StandingEntry{
			Rank:   rank,
			Team:   strings.TrimSpace(m[2]),
			Wins:   wins,
			Losses: losses,
		})
		if len(standings) >= maxStandings {
			break
		}
	}
	return standings
}

// tableAfterLabel finds the first table that follows an element containing
// the given label text. Returns nil when no such table exists.
func tableAfterLabel(doc *goquery.Document, label string) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 || !strings.Contains(s.Text(), label) {
			return true
		}
		for cur := s.Parent(); cur.Length() > 0; cur = cur.Parent() {
			if next := cur.NextAllFiltered("table").First(); next.Length() > 0 {
				table = next
				return false
			}
			if next := cur.NextAll().Find("table").First(); next.Length() > 0 {
				table = next
				return false
			}
		}
		return true
	})
	return table
}
