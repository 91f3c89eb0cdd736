package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/cedar/internal/league"
)

const (
	maxResults         = 30
	maxResultsFallback = 20
)

var (
	// gameDateRe matches the abbreviated date in a schedule row's first
	// cell, e.g. "Feb.9" or "Sept 14". Pages occasionally carry encoding
	// artifacts (non-breaking spaces, U+FFFD) which normalizeDate strips.
	gameDateRe = regexp.MustCompile(`^[A-Za-z]{3,4}\.?\s*\d{1,2}`)

	resultScoreRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

	// Box-score hrefs come in two shapes: a year directory followed by a
	// date-prefixed file ("/boxScores/Lebanon/2026/0209_2628_2682.aspx")
	// or a flat year-prefixed file ("/2026_2628_2682.aspx").
	boxScoreYearRe = regexp.MustCompile(`/(\d{4})/\d+_(\d+)_(\d+)\.aspx$`)
	boxScoreFlatRe = regexp.MustCompile(`/(\d{4})_(\d+)_(\d+)\.aspx$`)
)

// ParseResults extracts completed games. The schedule page is the primary
// source: its rows carry team logos (alt text is the team name) and a
// box-score link whose text is the final score. When the schedule page
// yields nothing, the main league page is scanned with the simpler layout
// (raw cell text for team names, no box-score metadata).
func ParseResults(doc, scheduleDoc *goquery.Document, baseURL string) ([]league.GameResult, []string) {
	results := []league.GameResult{}
	var skipped []string

	if scheduleDoc != nil {
		scheduleDoc.Find("tr").Each(func(i int, row *goquery.Selection) {
			if len(results) >= maxResults {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 4 {
				return
			}
			date := normalizeDate(cells.Eq(0).Text())
			if !gameDateRe.MatchString(date) {
				return
			}

			home, hok := teamFromLogoCell(cells.Eq(1))
			away, aok := teamFromLogoCell(cells.Eq(3))
			if !hok || !aok {
				skipped = append(skipped, fmt.Sprintf("schedule row %d: missing team logo alt", i))
				return
			}

			link := cells.Eq(2).Find("a").First()
			if link.Length() == 0 {
				return // not yet played, handled by ParseUpcoming
			}
			homeScore, awayScore, ok := parseScore(link.Text())
			if !ok {
				skipped = append(skipped, fmt.Sprintf("schedule row %d: unparsable score %q", i, strings.TrimSpace(link.Text())))
				return
			}

			result := league.GameResult{
				Date:      date,
				HomeTeam:  home,
				HomeScore: homeScore,
				AwayTeam:  away,
				AwayScore: awayScore,
			}
			if href, exists := link.Attr("href"); exists {
				if id := ParseGameID(href); id != "" {
					result.GameID = id
					result.BoxScoreURL = baseURL + href
				}
			}
			results = append(results, result)
		})
	}

	if len(results) == 0 && doc != nil {
		results = resultsFromLeaguePage(doc, &skipped)
	}

	return results, skipped
}

// resultsFromLeaguePage is the fallback over the main page: every table is
// scanned, team names come from raw cell text, and no box-score metadata
// is available.
func resultsFromLeaguePage(doc *goquery.Document, skipped *[]string) []league.GameResult {
	results := []league.GameResult{}
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if len(results) >= maxResultsFallback {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		date := normalizeDate(cells.Eq(0).Text())
		if !gameDateRe.MatchString(date) {
			return
		}

		link := cells.Eq(2).Find("a").First()
		if link.Length() == 0 {
			return
		}
		homeScore, awayScore, ok := parseScore(link.Text())
		if !ok {
			*skipped = append(*skipped, fmt.Sprintf("league row %d: unparsable score %q", i, strings.TrimSpace(link.Text())))
			return
		}

		results = append(results, league.GameResult{
			Date:      date,
			HomeTeam:  strings.TrimSpace(cells.Eq(1).Text()),
			HomeScore: homeScore,
			AwayTeam:  strings.TrimSpace(cells.Eq(3).Text()),
			AwayScore: awayScore,
		})
	})
	return results
}

// ParseGameID derives a stable game id from a box-score href. The year
// comes from the directory segment when present; the trailing two numbers
// identify the fixture. Returns "" when the href has no box-score shape.
func ParseGameID(href string) string {
	if m := boxScoreYearRe.FindStringSubmatch(href); m != nil {
		return m[1] + "_" + m[2] + "_" + m[3]
	}
	if m := boxScoreFlatRe.FindStringSubmatch(href); m != nil {
		return m[1] + "_" + m[2] + "_" + m[3]
	}
	return ""
}

// teamFromLogoCell reads the team name from the logo image's alt attribute.
func teamFromLogoCell(cell *goquery.Selection) (string, bool) {
	img := cell.Find("img").First()
	if img.Length() == 0 {
		return "", false
	}
	alt := strings.TrimSpace(img.AttrOr("alt", ""))
	return alt, alt != ""
}

// parseScore parses "[80-74]" or "80-74" into the two scores.
func parseScore(text string) (home, away int, ok bool) {
	text = strings.Trim(strings.TrimSpace(text), "[]")
	m := resultScoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	home, _ = strconv.Atoi(m[1])
	away, _ = strconv.Atoi(m[2])
	return home, away, true
}

// normalizeDate strips the encoding artifacts seen in the site's date
// cells and trims whitespace.
func normalizeDate(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "�", "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "*")
	return strings.TrimSpace(s)
}
