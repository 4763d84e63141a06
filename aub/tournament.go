/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package aub

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/aubridge/aub-tdbot/internal"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	if s == SourceAPI {
		return "api"
	} else if s == SourceWebsite {
		return "website"
	} else {
		return "?"
	}
}

// Tournament represents the registered pairs for a specific event.
type Tournament struct {
	EventID int64
	Entries []PairEntry

	source Source
}

func (t Tournament) Source() Source {
	return t.source
}

// GetTournament fetches the registered pairs for an event from the AUB
// JSON API and the public website concurrently, preferring the API.
func GetTournament(eventId int64) (*Tournament, error) {
	var wg sync.WaitGroup
	var tViaApi, tViaWeb *Tournament
	var apiErr, webErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		tViaApi, apiErr = getTournamentViaApi(eventId)
	}()
	go func() {
		defer wg.Done()
		tViaWeb, webErr = getTournamentViaWeb(eventId)
	}()
	wg.Wait()

	// prefer the api response
	if apiErr != nil {
		if webErr != nil {
			return tViaApi, apiErr
		} // else
		return tViaWeb, nil
	} // else

	return tViaApi, nil
}

func getTournamentViaApi(eventId int64) (*Tournament, error) {
	detail, err := GetEventDetail(eventId)
	if err != nil {
		return &Tournament{}, err
	}
	if len(detail.Entries) == 0 {
		return &Tournament{},
			fmt.Errorf("aub event API returned no registered pairs")
	}

	return &Tournament{
		EventID: eventId,
		Entries: detail.Entries,
		source:  SourceAPI,
	}, nil
}

// getTournamentViaWeb scrapes the public website: the entries page for
// the pair list and the club ranking page for each player's handicap.
func getTournamentViaWeb(eventId int64) (*Tournament, error) {
	entriesURL := fmt.Sprintf("https://aubridge.uy/tournament/entries/%d",
		eventId)
	const rankingURL = "https://aubridge.uy/ranking"

	var entriesDoc, rankingDoc *goquery.Document
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		entriesDoc, err = fetchDoc(entriesURL)
		return err
	})
	g.Go(func() error {
		var err error
		rankingDoc, err = fetchDoc(rankingURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("unable to fetch aub pages: %w", err)
	}

	tourney := &Tournament{EventID: eventId, source: SourceWebsite}

	handicaps := parseRanking(rankingDoc)
	if err := parseEntries(entriesDoc, handicaps, tourney); err != nil {
		return nil, fmt.Errorf("unable to parse pair entries: %w", err)
	}

	return tourney, nil
}

// parseEntries extracts PairEntry rows from the entries table, filling
// in player handicaps from the ranking lookup (0 for unranked players,
// the club's convention for newcomers).
func parseEntries(doc *goquery.Document, handicaps map[string]float64,
	t *Tournament) error {

	t.Entries = nil
	doc.Find("table#pairs tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 2 {
			return
		}
		num, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if num == 0 {
			return
		}
		p1, p2 := splitPairNames(cells.Eq(1).Text())
		if p1 == "" {
			return
		}

		entry := PairEntry{
			PairID:          int64(num),
			Player1Name:     p1,
			Player2Name:     p2,
			Player1Handicap: handicaps[normalizeName(p1)],
			Player2Handicap: handicaps[normalizeName(p2)],
		}
		if cells.Length() > 2 {
			entry.Category = strings.TrimSpace(cells.Eq(2).Text())
		}
		t.Entries = append(t.Entries, entry)
	})

	if len(t.Entries) == 0 {
		return fmt.Errorf("no pairs found on entries page")
	}

	return nil
}

// parseRanking extracts a player name to handicap lookup from the club
// ranking table.
func parseRanking(doc *goquery.Document) map[string]float64 {
	handicaps := make(map[string]float64)
	doc.Find("table#ranking tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := normalizeName(cells.Eq(0).Text())
		if name == "" {
			return
		}
		if h, err := parseDecimal(cells.Eq(1).Text()); err == nil {
			handicaps[name] = h
		}
	})

	return handicaps
}

// splitPairNames separates "Nombre1 Apellido1 & Nombre2 Apellido2" into
// the two player names.
func splitPairNames(text string) (string, string) {
	text = normalizeName(text)
	if idx := strings.Index(text, "&"); idx != -1 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
	}
	return text, ""
}

// parseDecimal parses a number that may use the comma decimal separator
// the club site publishes ("0,5").
func parseDecimal(text string) (float64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	return strconv.ParseFloat(text, 64)
}

// normalizeName collapses whitespace and strips the invisible characters
// that show up in the site's exported tables.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, " ", " ")
	name = strings.ReplaceAll(name, "​", "")
	return strings.Join(strings.Fields(name), " ")
}

var webClient *http.Client
var webClientOnce sync.Once

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent. Scraped pages are served from the S3-backed cache when
// available to avoid pegging aubridge.uy.
func fetchDoc(url string) (*goquery.Document, error) {
	webClientOnce.Do(func() {
		webClient = internal.NewCachedHttpClient(context.Background(),
			1*time.Hour)
	})

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := webClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
