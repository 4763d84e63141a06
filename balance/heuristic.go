/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package balance

import (
	"math"
	"math/rand"
	"sort"
)

// maxSweeps bounds the swap refinement. Every applied swap strictly
// reduces the difference beyond epsilon, so convergence normally lands
// well before this.
const maxSweeps = 1000

// balanceHeuristic handles fields too large for exhaustive search:
// greedy construction followed by pairwise-swap hill climbing. No
// optimality guarantee, but the refined difference never exceeds the
// constructive one.
func balanceHeuristic(pairs []Pair, rng *rand.Rand) (groupA, groupB []Pair) {
	groupA, groupB, sumA, sumB := greedyPartition(pairs, rng)
	refineBySwaps(groupA, groupB, sumA, sumB)
	return groupA, groupB
}

// greedyPartition walks the pairs from highest handicap to lowest,
// putting each into the group with the smaller running sum while
// respecting the ceil(n/2) size quota on both groups. Ties between
// equal running sums are broken by a seeded coin flip, which is what
// lets distinct seeds reach distinct local optima.
func greedyPartition(pairs []Pair, rng *rand.Rand) (groupA, groupB []Pair, sumA, sumB float64) {
	n := len(pairs)
	quota := (n + 1) / 2

	ordered := make([]Pair, n)
	copy(ordered, pairs)
	// stable sort keeps equal handicaps in input order
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Handicap > ordered[j].Handicap
	})

	groupA = make([]Pair, 0, quota)
	groupB = make([]Pair, 0, quota)
	for _, p := range ordered {
		var toA bool
		switch {
		case len(groupA) >= quota:
			toA = false
		case len(groupB) >= quota:
			toA = true
		case math.Abs(sumA-sumB) <= epsilon:
			toA = rng.Intn(2) == 0
		default:
			toA = sumA < sumB
		}
		if toA {
			groupA = append(groupA, p)
			sumA += p.Handicap
		} else {
			groupB = append(groupB, p)
			sumB += p.Handicap
		}
	}

	return groupA, groupB, sumA, sumB
}

// refineBySwaps repeatedly applies the single cross-group swap that most
// reduces the difference of averages, stopping when no swap improves it
// beyond epsilon or the sweep bound trips. Swaps are size neutral, so
// the size invariant holds throughout. Best-improvement rather than
// first-improvement keeps the refinement deterministic for a fixed
// starting partition.
func refineBySwaps(groupA, groupB []Pair, sumA, sumB float64) (float64, float64) {
	szA := float64(len(groupA))
	szB := float64(len(groupB))
	if szA == 0 || szB == 0 {
		return sumA, sumB
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		bestDiff := math.Abs(sumA/szA - sumB/szB)
		bestI, bestJ := -1, -1

		for i, pa := range groupA {
			for j, pb := range groupB {
				newSumA := sumA - pa.Handicap + pb.Handicap
				newSumB := sumB - pb.Handicap + pa.Handicap
				diff := math.Abs(newSumA/szA - newSumB/szB)
				if diff < bestDiff-epsilon {
					bestDiff = diff
					bestI, bestJ = i, j
				}
			}
		}

		if bestI < 0 {
			break
		}
		pa, pb := groupA[bestI], groupB[bestJ]
		sumA += pb.Handicap - pa.Handicap
		sumB += pa.Handicap - pb.Handicap
		groupA[bestI], groupB[bestJ] = pb, pa
	}

	return sumA, sumB
}
