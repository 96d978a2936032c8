package manual

import "github.com/sahilm/fuzzy"

// bestMatch finds the closest candidate to query. Subsequence matches
// (a user typing a fragment of a name) are preferred via fuzzy.Find;
// when none exist the whole candidate set is scored, which catches
// transposition typos that break the subsequence property. The winner
// is kept only if its similarity clears the floor.
func bestMatch(query string, candidates []string, floor int) (string, bool) {
	pool := candidates
	if matches := fuzzy.Find(query, candidates); len(matches) > 0 {
		pool = make([]string, len(matches))
		for i, m := range matches {
			pool[i] = m.Str
		}
	}

	best, bestScore := "", -1
	for _, c := range pool {
		score := similarity(query, c)
		if score > bestScore || (score == bestScore && c < best) {
			best, bestScore = c, score
		}
	}
	if bestScore < floor {
		return "", false
	}
	return best, true
}

// similarity scores two strings on a 0..100 scale using the normalized
// length of their longest common subsequence. The exact scoring is not
// a contract; only behavior relative to the configured floor is.
func similarity(a, b string) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 200 * lcs(a, b) / (len(a) + len(b))
}

func lcs(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
