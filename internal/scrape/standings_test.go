package scrape

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseStandingsFromTable(t *testing.T) {
	doc := mustDoc(t, `
<html><body>
<table>
  <tr><th>#</th><th>Team</th><th>Record</th></tr>
  <tr><td>1</td><td><a href="/team/riyadi">Al Riyadi</a></td><td>8-0</td></tr>
  <tr><td>2</td><td><a href="/team/beirut">Beirut Club</a></td><td>7-1</td></tr>
  <tr><td>3</td><td>Sagesse</td><td>5-3</td></tr>
</table>
</body></html>`)

	standings, skipped := ParseStandings(doc)
	if len(skipped) != 0 {
		t.Errorf("expected no skipped rows, got %v", skipped)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(standings))
	}

	for i, entry := range standings {
		if entry.Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, entry.Rank)
		}
	}

	first := standings[0]
	if first.Team != "Al Riyadi" || first.Wins != 8 || first.Losses != 0 {
		t.Errorf("unexpected first entry: %+v", first)
	}
	// No anchor in the third row: team comes from raw cell text.
	if standings[2].Team != "Sagesse" || standings[2].Wins != 5 || standings[2].Losses != 3 {
		t.Errorf("unexpected third entry: %+v", standings[2])
	}
}

func TestParseStandingsTruncatesToTwelve(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><table><tr><th>h</th></tr>")
	for i := 1; i <= 16; i++ {
		fmt.Fprintf(&b, `<tr><td>%d</td><td><a href="/t/%d">Team %d</a></td><td>%d-0</td></tr>`, i, i, i, i)
	}
	b.WriteString("</table></body></html>")

	standings, _ := ParseStandings(mustDoc(t, b.String()))
	if len(standings) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(standings))
	}
	for i := 1; i < len(standings); i++ {
		if standings[i].Rank <= standings[i-1].Rank {
			t.Fatalf("ranks not strictly increasing: %d then %d", standings[i-1].Rank, standings[i].Rank)
		}
	}
}

func TestParseStandingsTextFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body><pre>
1 Al Riyadi 8-0
2 Beirut Club 7-1
</pre></body></html>`)

	standings, _ := ParseStandings(doc)
	if len(standings) != 2 {
		t.Fatalf("expected 2 entries from text fallback, got %d", len(standings))
	}
	if standings[0].Team != "Al Riyadi" || standings[0].Wins != 8 {
		t.Errorf("unexpected entry: %+v", standings[0])
	}
	if standings[1].Rank != 2 || standings[1].Losses != 1 {
		t.Errorf("unexpected entry: %+v", standings[1])
	}
}

func TestParseStandingsEmptyDocument(t *testing.T) {
	standings, skipped := ParseStandings(mustDoc(t, "<html><body></body></html>"))
	if len(standings) != 0 {
		t.Errorf("expected empty result, got %d entries", len(standings))
	}
	if standings == nil {
		t.Error("expected empty slice, not nil")
	}
	if len(skipped) != 0 {
		t.Errorf("expected no diagnostics, got %v", skipped)
	}
}

func TestTableAfterLabel(t *testing.T) {
	doc := mustDoc(t, `
<html><body>
<div><span>Standings</span></div>
<table><tr><td>after</td></tr></table>
</body></html>`)

	table := tableAfterLabel(doc, "Standings")
	if table == nil || table.Length() == 0 {
		t.Fatal("expected to find the table after the label")
	}
	if got := strings.TrimSpace(table.Text()); got != "after" {
		t.Errorf("found wrong table: %q", got)
	}

	if tbl := tableAfterLabel(doc, "Nonexistent"); tbl != nil {
		t.Error("expected nil for a missing label")
	}
}
