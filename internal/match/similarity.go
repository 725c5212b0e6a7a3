package match

// Jaro-Winkler constants. Standard values from the literature; the prefix
// boost rewards strings that agree on their leading characters, which suits
// device names like "ceiling_light" vs "ceiling_lamp".
const (
	winklerPrefixScale = 0.1
	winklerMaxPrefix   = 4
)

// Similarity returns the Jaro-Winkler similarity of two strings in [0,1].
//
// Both inputs are canonicalised with NormalizeToken first, so the comparison
// is case-, spacing- and diacritic-insensitive. Two identical strings score
// 1.0 (including two empty ones); if exactly one side is empty the score
// is 0.0.
func Similarity(a, b string) float64 {
	return jaroWinkler([]rune(NormalizeToken(a)), []rune(NormalizeToken(b)))
}

// jaroWinkler applies the prefix boost on top of the base Jaro similarity.
// The boost counts matching leading runes (bounded by the shorter string)
// up to winklerMaxPrefix, each adding winklerPrefixScale·(1−jaro).
func jaroWinkler(a, b []rune) float64 {
	j := jaro(a, b)

	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	if limit > winklerMaxPrefix {
		limit = winklerMaxPrefix
	}

	prefix := 0
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	return j + float64(prefix)*winklerPrefixScale*(1-j)
}

// jaro computes the classic Jaro similarity: matching runes within a bounded
// search window, discounted by half the transposition count.
func jaro(a, b []rune) float64 {
	la, lb := len(a), len(b)
	if la == 0 && lb == 0 {
		return 1
	}
	if la == 0 || lb == 0 {
		return 0
	}

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)

	matches := 0
	for i, ra := range a {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if bMatched[j] || b[j] != ra {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count transpositions: matched runes compared in order.
	transpositions := 0
	j := 0
	for i := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}
