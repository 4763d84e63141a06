/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package aub

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const entriesHTML = `
<html><body>
<table id="pairs">
<thead><tr><th>#</th><th>Pair</th><th>Category</th></tr></thead>
<tbody>
<tr><td>1</td><td>Ana Pereira &amp; Luis Techera</td><td>Libre</td></tr>
<tr><td>2</td><td>Marta&nbsp;Silva &amp; Juan Acosta</td><td></td></tr>
<tr><td></td><td>header repeat</td><td></td></tr>
</tbody>
</table>
</body></html>`

const rankingHTML = `
<html><body>
<table id="ranking">
<tbody>
<tr><td>Ana Pereira</td><td>-0,5</td></tr>
<tr><td>Luis Techera</td><td>1,5</td></tr>
<tr><td>Marta Silva</td><td>3</td></tr>
</tbody>
</table>
</body></html>`

func TestParseEntries(t *testing.T) {
	entriesDoc, err := goquery.NewDocumentFromReader(strings.NewReader(entriesHTML))
	if err != nil {
		t.Fatalf("parsing entries fixture: %v", err)
	}
	rankingDoc, err := goquery.NewDocumentFromReader(strings.NewReader(rankingHTML))
	if err != nil {
		t.Fatalf("parsing ranking fixture: %v", err)
	}

	tourney := &Tournament{EventID: 42, source: SourceWebsite}
	handicaps := parseRanking(rankingDoc)
	if err := parseEntries(entriesDoc, handicaps, tourney); err != nil {
		t.Fatalf("parseEntries returned error: %v", err)
	}

	if len(tourney.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tourney.Entries))
	}

	e := tourney.Entries[0]
	if e.PairID != 1 || e.Player1Name != "Ana Pereira" ||
		e.Player2Name != "Luis Techera" {
		t.Errorf("first entry parsed as %+v", e)
	}
	if e.Player1Handicap != -0.5 || e.Player2Handicap != 1.5 {
		t.Errorf("first entry handicaps %v/%v; want -0.5/1.5",
			e.Player1Handicap, e.Player2Handicap)
	}
	if e.Handicap() != 0.5 {
		t.Errorf("first entry pair handicap %v; want 0.5", e.Handicap())
	}
	if e.Category != "Libre" {
		t.Errorf("first entry category %q; want Libre", e.Category)
	}

	// second pair: nbsp in name, Juan Acosta absent from the ranking
	e = tourney.Entries[1]
	if e.Player1Name != "Marta Silva" || e.Player1Handicap != 3 {
		t.Errorf("second entry parsed as %+v", e)
	}
	if e.Player2Handicap != 0 {
		t.Errorf("unranked player handicap %v; want 0", e.Player2Handicap)
	}
}

func TestSplitPairNames(t *testing.T) {
	cases := []struct {
		in     string
		p1, p2 string
	}{
		{"Ana Pereira & Luis Techera", "Ana Pereira", "Luis Techera"},
		{"  Solo  Name  ", "Solo Name", ""},
		{"A B & C​D", "A B", "CD"},
	}
	for _, c := range cases {
		p1, p2 := splitPairNames(c.in)
		if p1 != c.p1 || p2 != c.p2 {
			t.Errorf("splitPairNames(%q) = %q, %q; want %q, %q", c.in, p1, p2,
				c.p1, c.p2)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0,5", 0.5, false},
		{"-1,25", -1.25, false},
		{" 3 ", 3, false},
		{"2.75", 2.75, false},
		{"unranked", 0, true},
	}
	for _, c := range cases {
		got, err := parseDecimal(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseDecimal(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDecimal(%q): %v", c.in, err)
		} else if got != c.want {
			t.Errorf("parseDecimal(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}
