/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package balance

import (
	"math"
	"math/rand"
	"testing"
)

// referenceMinDiff recomputes the optimal difference by recursive
// enumeration, independently of the iterative generator under test.
func referenceMinDiff(hcps []float64) float64 {
	n := len(hcps)
	sizeA := n / 2
	var total float64
	for _, h := range hcps {
		total += h
	}

	best := math.Inf(1)
	var walk func(next, taken int, sumA float64)
	walk = func(next, taken int, sumA float64) {
		if taken == sizeA {
			avgA := sumA / float64(sizeA)
			avgB := (total - sumA) / float64(n-sizeA)
			if d := math.Abs(avgA - avgB); d < best {
				best = d
			}
			return
		}
		if next >= n {
			return
		}
		walk(next+1, taken+1, sumA+hcps[next])
		walk(next+1, taken, sumA)
	}
	walk(0, 0, 0)

	return best
}

func TestExactMatchesReferenceBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{2, 3, 4, 8, 12} {
		for trial := 0; trial < 5; trial++ {
			hcps := make([]float64, n)
			for i := range hcps {
				hcps[i] = rng.Float64()*30 - 10
			}

			asn, err := Balance(pairsFromHandicaps(hcps), int64(trial))
			if err != nil {
				t.Fatalf("n=%d: Balance returned error: %v", n, err)
			}

			want := referenceMinDiff(hcps)
			if math.Abs(asn.Difference-want) > 1e-9 {
				t.Errorf("n=%d trial=%d: got difference %v, brute force says %v",
					n, trial, asn.Difference, want)
			}
		}
	}
}

func TestExactCollectsAllTies(t *testing.T) {
	// four pairs of equal handicap: every 2v2 split ties at 0, and
	// C(4,2)=6 subsets should all be reachable across seeds
	pairs := pairsFromHandicaps([]float64{2, 2, 2, 2})

	groupings := make(map[string]bool)
	for seed := int64(0); seed < 60; seed++ {
		asn, err := Balance(pairs, seed)
		if err != nil {
			t.Fatalf("Balance returned error: %v", err)
		}
		if asn.Difference > 1e-12 {
			t.Fatalf("expected difference 0, got %v", asn.Difference)
		}
		groupings[groupKey(asn.GroupA)] = true
	}
	if len(groupings) < 3 {
		t.Errorf("expected several distinct tying groups, got %d", len(groupings))
	}
}

func TestExactOverflowingHandicaps(t *testing.T) {
	// finite handicaps whose group sums overflow float64 make every
	// enumerated diff Inf or NaN; a valid partition must still come back
	for _, hcps := range [][]float64{
		{1e308, 1e308},
		{1e308, 1e308, 1e308},
		{1e308, -1e308, 1e308},
	} {
		asn, err := Balance(pairsFromHandicaps(hcps), 1)
		if err != nil {
			t.Fatalf("n=%d: Balance returned error: %v", len(hcps), err)
		}

		szA, szB := len(asn.GroupA), len(asn.GroupB)
		if szA+szB != len(hcps) {
			t.Errorf("n=%d: assignment covers %d pairs: %+v", len(hcps),
				szA+szB, asn)
		}
		if d := szA - szB; d > 1 || d < -1 {
			t.Errorf("n=%d: unbalanced sizes %dv%d", len(hcps), szA, szB)
		}
	}
}

func TestNextCombination(t *testing.T) {
	cases := []struct {
		n, k, want int
	}{
		{4, 2, 6},
		{5, 2, 10},
		{6, 3, 20},
		{7, 1, 7},
		{3, 3, 1},
	}
	for _, c := range cases {
		idx := newCombination(c.k)
		seen := make(map[string]bool)
		count := 0
		for {
			count++
			key := ""
			prev := -1
			for _, i := range idx {
				if i <= prev || i >= c.n {
					t.Fatalf("C(%d,%d): invalid combination %v", c.n, c.k, idx)
				}
				prev = i
				key += string(rune('a' + i))
			}
			if seen[key] {
				t.Fatalf("C(%d,%d): duplicate combination %v", c.n, c.k, idx)
			}
			seen[key] = true
			if !nextCombination(idx, c.n) {
				break
			}
		}
		if count != c.want {
			t.Errorf("C(%d,%d): generated %d combinations, want %d", c.n, c.k,
				count, c.want)
		}
	}
}
