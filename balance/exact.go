/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package balance

import (
	"math"
	"math/rand"
)

// maxCandidates caps how many minimal splits are retained; beyond it a
// reservoir sample keeps the eventual choice uniform over all ties.
const maxCandidates = 500

// balanceExact enumerates every subset of size floor(n/2) as a candidate
// group A, collects all splits whose difference ties the minimum within
// epsilon, and picks one of them at random. Guaranteed optimal; viable
// up to ExactThreshold pairs.
func balanceExact(pairs []Pair, rng *rand.Rand) (groupA, groupB []Pair) {
	n := len(pairs)
	sizeA := n / 2
	sizeB := n - sizeA

	var total float64
	for _, p := range pairs {
		total += p.Handicap
	}

	bestDiff := math.Inf(1)
	var best [][]int
	tiesSeen := 0

	idx := newCombination(sizeA)
	for {
		var sumA float64
		for _, i := range idx {
			sumA += pairs[i].Handicap
		}
		avgA := sumA / float64(sizeA)
		avgB := (total - sumA) / float64(sizeB)
		diff := math.Abs(avgA - avgB)

		// overflowed sums yield Inf or NaN diffs that defeat both
		// comparisons below; keep the first candidate unconditionally
		// and let finite diffs displace a NaN best
		if len(best) == 0 || math.IsNaN(bestDiff) || diff < bestDiff-epsilon {
			bestDiff = diff
			best = append(best[:0], snapshot(idx))
			tiesSeen = 1
		} else if math.Abs(diff-bestDiff) <= epsilon {
			tiesSeen++
			if len(best) < maxCandidates {
				best = append(best, snapshot(idx))
			} else if k := rng.Intn(tiesSeen); k < maxCandidates {
				best[k] = snapshot(idx)
			}
		}

		if !nextCombination(idx, n) {
			break
		}
	}

	chosen := best[rng.Intn(len(best))]
	inA := make([]bool, n)
	for _, i := range chosen {
		inA[i] = true
	}

	groupA = make([]Pair, 0, sizeA)
	groupB = make([]Pair, 0, sizeB)
	for i, p := range pairs {
		if inA[i] {
			groupA = append(groupA, p)
		} else {
			groupB = append(groupB, p)
		}
	}

	return groupA, groupB
}

// newCombination returns the first k-combination of indexes {0..k-1}.
func newCombination(k int) []int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// nextCombination advances idx to the next k-combination of {0..n-1} in
// lexicographic order, odometer style, returning false after the last
// one.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

func snapshot(idx []int) []int {
	return append([]int(nil), idx...)
}
