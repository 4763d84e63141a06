/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package aub

import (
	"fmt"
	"strings"

	"github.com/aubridge/aub-tdbot/balance"
)

// direction labels are fixed here, not in the engine: group A seats
// North-South and group B seats East-West.
const (
	DirectionNS = "North-South"
	DirectionEW = "East-West"
)

// BuildDirectionsOutput formats a direction assignment into grouped,
// aligned string output, one table per direction plus the balance
// summary line.
func BuildDirectionsOutput(entries []PairEntry, asn *balance.Assignment) string {
	byID := make(map[int64]PairEntry, len(entries))
	for _, e := range entries {
		byID[e.PairID] = e
	}

	var sb strings.Builder

	if len(asn.GroupA) == 0 && len(asn.GroupB) == 0 {
		sb.WriteString("No pairs to assign\n")
		return sb.String()
	}

	writeDirectionTable(&sb, DirectionNS, asn.GroupA, byID)
	writeDirectionTable(&sb, DirectionEW, asn.GroupB, byID)

	sb.WriteString(fmt.Sprintf("Average handicap: %v %.2f | %v %.2f | difference %.2f\n",
		DirectionNS, asn.AverageA, DirectionEW, asn.AverageB, asn.Difference))

	return sb.String()
}

func writeDirectionTable(sb *strings.Builder, direction string, ids []int64,
	byID map[int64]PairEntry) {

	if len(ids) == 0 {
		return
	}

	type row struct{ table, pair, hcp string }
	var rows []row
	for i, id := range ids {
		entry, ok := byID[id]
		if !ok {
			// engine output referencing an unknown pair is a caller bug
			panic(fmt.Sprintf("aub: assignment references unknown pair %v", id))
		}
		rows = append(rows, row{
			table: fmt.Sprintf("%d.", i+1),
			pair:  entry.DisplayName(),
			hcp:   fmt.Sprintf("%.2f", entry.Handicap()),
		})
	}

	// Compute column widths
	maxT, maxP, maxH := len("Table"), len("Pair"), len("Handicap")
	for _, r := range rows {
		if l := len(r.table); l > maxT {
			maxT = l
		}
		if l := len(r.pair); l > maxP {
			maxP = l
		}
		if l := len(r.hcp); l > maxH {
			maxH = l
		}
	}

	sb.WriteString(fmt.Sprintf("%s\n", direction))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxT, "Table", maxP,
		"Pair", maxH, "Handicap"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxT, r.table,
			maxP, r.pair, maxH, r.hcp))
	}
	sb.WriteString("\n")
}
