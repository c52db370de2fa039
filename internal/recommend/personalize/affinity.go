// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package personalize

import (
	"math"

	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/session"
)

// decay is the weight of an interaction age steps older than the newest.
func decay(age int, halfLife float64) float64 {
	return math.Exp(-math.Ln2 * float64(age) / halfLife)
}

// rawAffinity folds the interaction log, oldest first, into a decayed,
// satisfaction-weighted sum per selected item.
func rawAffinity(interactions []session.Interaction, halfLife float64) map[string]float64 {
	out := make(map[string]float64)
	n := len(interactions)
	for i, in := range interactions {
		out[in.SelectedItemID] += in.SatisfactionWeight * decay(n-1-i, halfLife)
	}
	return out
}

// referenceMass is the affinity of an item chosen in every one of n
// interactions at weight 1. It sums in the same order as rawAffinity so
// the two agree exactly for such an item.
func referenceMass(n int, halfLife float64) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += decay(n-1-i, halfLife)
	}
	return sum
}

// normalize maps raw affinities onto [0,1] across candidates. The lower
// bound is the candidate minimum; the upper bound is the larger of the
// candidate maximum and the reference mass. A damped selection therefore
// scores below 1 even when it is the only one.
func normalize(raw map[string]float64, candidates []string, refMass float64) map[string]float64 {
	out := make(map[string]float64, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	lo, hi := math.Inf(1), refMass
	for _, id := range candidates {
		v := raw[id]
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	for _, id := range candidates {
		v := raw[id]
		switch {
		case span <= 1e-12:
			if v > 0 {
				out[id] = 1
			} else {
				out[id] = 0
			}
		default:
			out[id] = math.Max(0, math.Min(1, (v-lo)/span))
		}
	}
	return out
}

// theme returns the dominant non-default purpose or motion, or "mixed".
// Purposes win ties over motions; within a dimension the enumeration
// order decides.
func theme(interactions []session.Interaction, minCount int) string {
	purposes := make(map[intent.Purpose]int)
	motions := make(map[intent.Motion]int)
	for _, in := range interactions {
		if in.Purpose != "" && in.Purpose != intent.PurposeGeneral {
			purposes[in.Purpose]++
		}
		if in.Motion != "" && in.Motion != intent.MotionNone {
			motions[in.Motion]++
		}
	}

	best, bestCount := "mixed", minCount-1
	for _, p := range intent.PurposeValues {
		if c := purposes[p]; c > bestCount {
			best, bestCount = string(p), c
		}
	}
	for _, m := range intent.MotionValues {
		if c := motions[m]; c > bestCount {
			best, bestCount = string(m), c
		}
	}
	return best
}
