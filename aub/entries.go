/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package aub

import (
	"fmt"
	"sort"
	"strings"
)

// BuildEntriesOutput formats the registered pairs into aligned string
// output, strongest pairs (lowest handicap) first.
func BuildEntriesOutput(t *Tournament) string {
	if len(t.Entries) == 0 {
		return "No pairs registered\n"
	}

	type row struct {
		pair, hcp, category string
		hcpVal              float64
	}
	var rows []row
	for _, e := range t.Entries {
		cat := e.Category
		if cat == "" {
			cat = "-"
		}
		rows = append(rows, row{
			pair:     e.DisplayName(),
			hcp:      fmt.Sprintf("%.2f", e.Handicap()),
			category: cat,
			hcpVal:   e.Handicap(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].hcpVal < rows[j].hcpVal
	})

	// Compute column widths
	maxP, maxH, maxC := len("Pair"), len("Handicap"), len("Category")
	for _, r := range rows {
		if l := len(r.pair); l > maxP {
			maxP = l
		}
		if l := len(r.hcp); l > maxH {
			maxH = l
		}
		if l := len(r.category); l > maxC {
			maxC = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, "Pair", maxH,
		"Handicap", maxC, "Category"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, r.pair,
			maxH, r.hcp, maxC, r.category))
	}

	return sb.String()
}
