package sequence

// Similarity returns a normalized edit-distance similarity in [0,1] between
// two symbolic sequences. An empty sequence never matches anything: both
// edge cases (one empty, both empty) score 0.0 so that empty sessions can
// not produce false positives.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	distance := Levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Levenshtein computes the edit distance between two token sequences with
// unit cost for substitution, insertion and deletion.
func Levenshtein(a, b []string) int {
	m, n := len(a), len(b)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+1)
			}
		}
		prev, curr = curr, prev
	}
	return prev[n]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
