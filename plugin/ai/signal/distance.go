package signal

// EditDistance computes the Levenshtein distance between a and b with unit
// cost for insert, delete and substitute. It satisfies d(a,a)=0, symmetry
// and the triangle inequality.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row dynamic programming over the (len(a)+1) x (len(b)+1) table.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FuzzyTolerance returns the number of edits tolerated when matching against
// a target of the given length. Typo rates scale with word length: very
// short targets require an exact match because a single edit can turn them
// into a different word entirely.
func FuzzyTolerance(targetLen int) int {
	switch {
	case targetLen <= 3:
		return 0
	case targetLen <= 5:
		return 1
	case targetLen <= 8:
		return 2
	default:
		return 3
	}
}

// FuzzyMatch reports whether word matches target within the length-scaled
// edit tolerance. The length-difference check is a cheap lower bound on the
// edit distance that rejects obviously-unrelated words before the O(n*m)
// table is computed.
func FuzzyMatch(word, target string) bool {
	if word == target {
		return true
	}
	tolerance := FuzzyTolerance(len([]rune(target)))
	if tolerance == 0 {
		return false
	}
	diff := len([]rune(word)) - len([]rune(target))
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return false
	}
	return EditDistance(word, target) <= tolerance
}

func minOf(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
