/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package balance assigns tournament pairs to the two playing directions
// (North-South and East-West) so that the directions end up as close as
// possible in size and in average handicap. Small fields are solved
// exactly by exhaustive search; larger fields use a greedy construction
// refined by local search. All randomness flows from the caller's seed,
// so a given (pairs, seed) input always produces the same assignment and
// re-balancing is just a fresh call with a fresh seed.
package balance

import (
	"fmt"
	"math"
	"math/rand"
)

// Pair is one tournament pair with its averaged handicap. Lower
// handicaps denote stronger play; negative values are legitimate.
type Pair struct {
	ID       int64
	Handicap float64
}

// Assignment is a complete direction split. GroupA and GroupB together
// hold every input pair id exactly once and differ in size by at most
// one. Averages are 0 for an empty group.
type Assignment struct {
	GroupA     []int64
	GroupB     []int64
	AverageA   float64
	AverageB   float64
	Difference float64
}

const (
	// ExactThreshold is the largest field solved by exhaustive search.
	// C(22,11) is about 705k subsets, still fast enough for
	// interactive use.
	ExactThreshold = 22

	// epsilon treats floating point near-ties in the difference as
	// exact ties so duplicate handicaps yield multiple candidates.
	epsilon = 1e-9
)

// Balance splits pairs into two direction groups minimizing the gap
// between the groups' average handicaps. The result is a deterministic
// function of (pairs, seed); calling again with a different seed may
// return a different, equally good split.
func Balance(pairs []Pair, seed int64) (Assignment, error) {
	for _, p := range pairs {
		if math.IsNaN(p.Handicap) || math.IsInf(p.Handicap, 0) {
			return Assignment{}, fmt.Errorf(
				"balance: pair %v has non-finite handicap %v", p.ID, p.Handicap)
		}
	}

	n := len(pairs)
	if n == 0 {
		return Assignment{}, nil
	}
	if n == 1 {
		// lone pair sits in group A; difference is 0 by convention
		return Assignment{
			GroupA:   []int64{pairs[0].ID},
			AverageA: pairs[0].Handicap,
		}, nil
	}

	rng := rand.New(rand.NewSource(seed))

	var groupA, groupB []Pair
	if n <= ExactThreshold {
		groupA, groupB = balanceExact(pairs, rng)
	} else {
		groupA, groupB = balanceHeuristic(pairs, rng)
	}

	// order within a direction carries no meaning; shuffle it so
	// repeated runs also vary the listing
	rng.Shuffle(len(groupA), func(i, j int) {
		groupA[i], groupA[j] = groupA[j], groupA[i]
	})
	rng.Shuffle(len(groupB), func(i, j int) {
		groupB[i], groupB[j] = groupB[j], groupB[i]
	})

	asn := buildAssignment(groupA, groupB)
	checkInvariants(pairs, &asn)

	return asn, nil
}

func buildAssignment(groupA, groupB []Pair) Assignment {
	asn := Assignment{
		GroupA: make([]int64, 0, len(groupA)),
		GroupB: make([]int64, 0, len(groupB)),
	}

	var sumA, sumB float64
	for _, p := range groupA {
		asn.GroupA = append(asn.GroupA, p.ID)
		sumA += p.Handicap
	}
	for _, p := range groupB {
		asn.GroupB = append(asn.GroupB, p.ID)
		sumB += p.Handicap
	}

	if len(groupA) > 0 {
		asn.AverageA = sumA / float64(len(groupA))
	}
	if len(groupB) > 0 {
		asn.AverageB = sumB / float64(len(groupB))
	}
	asn.Difference = math.Abs(asn.AverageA - asn.AverageB)

	return asn
}

// checkInvariants panics on a size or partition breach; either would be
// a bug in one of the balancers, never a user input problem.
func checkInvariants(pairs []Pair, asn *Assignment) {
	szA := len(asn.GroupA)
	szB := len(asn.GroupB)
	if szA-szB > 1 || szB-szA > 1 {
		panic(fmt.Sprintf("balance: size invariant breached: %v vs %v", szA,
			szB))
	}
	if szA+szB != len(pairs) {
		panic(fmt.Sprintf("balance: assigned %v of %v pairs", szA+szB,
			len(pairs)))
	}
	assigned := make(map[int64]bool, szA+szB)
	for _, id := range asn.GroupA {
		assigned[id] = true
	}
	for _, id := range asn.GroupB {
		assigned[id] = true
	}
	for _, p := range pairs {
		if !assigned[p.ID] {
			panic(fmt.Sprintf("balance: pair %v missing from assignment", p.ID))
		}
	}
}
