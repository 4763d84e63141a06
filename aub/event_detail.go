/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package aub

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aubridge/aub-tdbot/balance"
	"github.com/aubridge/aub-tdbot/internal"
)

// vended by https://beta.aubridge.uy/api/event/<eventId>
// EventDetail represents detailed information about a specific tournament.
type EventDetail struct {
	EventID             int         `json:"eventId"`
	Title               string      `json:"title"`
	StartDate           time.Time   `json:"startDate"`
	EndDate             time.Time   `json:"endDate"`
	DateDisplay         string      `json:"dateDisplay"`
	Description         string      `json:"description"`
	Movement            string      `json:"movement"`
	BoardCount          int         `json:"boardCount"`
	IsRegistrationOpen  bool        `json:"isRegistrationOpen"`
	RegistrationEndDate time.Time   `json:"registrationEndDate"`
	EntryFeeSummary     string      `json:"entryFeeSummary"`
	NumEntries          int         `json:"numEntries"`
	Entries             []PairEntry `json:"entries"`
}

// PairEntry represents a registered pair: two players playing as one
// unit, each with their own handicap on the club ranking.
type PairEntry struct {
	PairID           int64     `json:"pairId"`
	Player1Name      string    `json:"player1Name"`
	Player2Name      string    `json:"player2Name"`
	Player1Handicap  float64   `json:"player1Handicap"`
	Player2Handicap  float64   `json:"player2Handicap"`
	Category         string    `json:"category"`
	Direction        string    `json:"direction"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// DisplayName renders the pair the way the club lists it.
func (e PairEntry) DisplayName() string {
	return fmt.Sprintf("%s & %s", e.Player1Name, e.Player2Name)
}

// Handicap is the pair's handicap: the simple average of both players'.
// Lower is stronger; negative values occur for the top of the ranking.
func (e PairEntry) Handicap() float64 {
	return (e.Player1Handicap + e.Player2Handicap) / 2
}

// ToBalancePairs converts registered pairs into the balancing engine's
// input, rejecting non-finite handicaps before they reach the engine.
func ToBalancePairs(entries []PairEntry) ([]balance.Pair, error) {
	pairs := make([]balance.Pair, 0, len(entries))
	for _, e := range entries {
		h := e.Handicap()
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("pair %v (%v) has invalid handicap %v",
				e.PairID, e.DisplayName(), h)
		}
		pairs = append(pairs, balance.Pair{ID: e.PairID, Handicap: h})
	}

	return pairs, nil
}

// GetEventDetail fetches detailed tournament info from the AUB API for a
// given eventId, including the registered pairs.
func GetEventDetail(eventId int64) (EventDetail, error) {
	url := fmt.Sprintf("https://beta.aubridge.uy/api/event/%d", eventId)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return EventDetail{}, fmt.Errorf("unable to fetch aub event detail (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return EventDetail{}, fmt.Errorf("unable to fetch aub event detail (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EventDetail{}, fmt.Errorf("unable to fetch aub event detail (http): %v", resp.StatusCode)
	}

	var detail EventDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return EventDetail{}, fmt.Errorf("unable to parse aub event detail: %w", err)
	}

	return detail, nil
}

// Custom unmarshaller for EventDetail to handle flexible date parsing.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartDate           string      `json:"startDate"`
		EndDate             string      `json:"endDate"`
		RegistrationEndDate string      `json:"registrationEndDate"`
		Entries             []PairEntry `json:"entries"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}
	var err error
	ed.StartDate, err = internal.ParseDateOrZero(aux.StartDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.StartDate: %w", err)
	}
	ed.EndDate, err = internal.ParseDateOrZero(aux.EndDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.EndDate: %w", err)
	}
	ed.RegistrationEndDate, err = internal.ParseDateOrZero(aux.RegistrationEndDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.RegistrationEndDate: %w", err)
	}
	ed.Entries = aux.Entries
	return nil
}

// Custom unmarshaller for PairEntry to handle flexible date parsing.
func (e *PairEntry) UnmarshalJSON(data []byte) error {
	type Alias PairEntry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("PairEntry unmarshal: %w", err)
	}
	var err error
	e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate)
	if err != nil {
		return fmt.Errorf("parsing PairEntry.RegistrationDate: %w", err)
	}
	return nil
}

// BuildEventOutput formats an EventDetail into a pretty printed string
// output; boldTag lets the discord front end emphasize field names.
func BuildEventOutput(detail *EventDetail, boldTag string, includeTitle,
	includeUrl bool) string {

	var sb strings.Builder
	if includeTitle {
		sb.WriteString(fmt.Sprintf("%vTitle%v: %v\n", boldTag, boldTag,
			detail.Title))
	}
	if includeUrl {
		sb.WriteString(fmt.Sprintf("%vURL%v: https://aubridge.uy/events/%d\n",
			boldTag, boldTag, detail.EventID))
	}

	sb.WriteString(fmt.Sprintf("%vEventID%v: %d\n", boldTag, boldTag,
		detail.EventID))
	sb.WriteString(fmt.Sprintf("%vDate%v: %s\n", boldTag, boldTag,
		detail.DateDisplay))
	if detail.Movement != "" {
		sb.WriteString(fmt.Sprintf("%vMovement%v: %s\n", boldTag, boldTag,
			detail.Movement))
	}
	if detail.BoardCount > 0 {
		sb.WriteString(fmt.Sprintf("%vBoards%v: %d\n", boldTag, boldTag,
			detail.BoardCount))
	}
	if detail.EntryFeeSummary != "" {
		sb.WriteString(fmt.Sprintf("%vEntry Fee%v: %s\n", boldTag, boldTag,
			detail.EntryFeeSummary))
	}
	sb.WriteString(fmt.Sprintf("%vPairs Entered%v: %d\n", boldTag, boldTag,
		len(detail.Entries)))
	if detail.Description != "" {
		sb.WriteString(fmt.Sprintf("%vDescription%v: %s\n", boldTag, boldTag,
			detail.Description))
	}

	return sb.String()
}
