package match

import "sort"

// rank orders scored candidates by composite score descending, flags
// near-ties, and truncates to topK.
//
// The sort is stable, so equal scores keep their original catalog order —
// ranking is fully deterministic. The ambiguity gap is measured between
// rank 1 and rank 2 before truncation and is inclusive on the unambiguous
// side: a gap of exactly disambigGap is not ambiguous. Fewer than two
// results are never ambiguous.
func rank(results []MatchResult, topK int, disambigGap float64) RankedOutcome {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	ambiguous := len(results) >= 2 && results[0].Score-results[1].Score < disambigGap

	if len(results) > topK {
		results = results[:topK]
	}

	return RankedOutcome{
		Results:   results,
		Ambiguous: ambiguous,
	}
}
