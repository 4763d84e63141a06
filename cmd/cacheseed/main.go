/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"time"

	"github.com/aubridge/aub-tdbot/aub"
)

// this program exists just to seed the http cache for aub events; the
// cache fronts the scraped entries and ranking pages, which
// GetTournament fetches for every event

func main() {
	events, err := aub.GetEvents()
	if err != nil {
		// best effort
		return
	}

	for _, event := range events {
		_, err := aub.GetTournament(int64(event.EventID))
		time.Sleep(2 * time.Second) // avoid pegging aubridge.uy
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded ev:%v\n", event.Title)
	}
}
