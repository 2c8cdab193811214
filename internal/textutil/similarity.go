package textutil

// Levenshtein computes the edit distance between two strings. It runs over
// bytes; callers normalize tokens first so the inputs are plain ASCII in
// practice.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Similarity scores two strings in [0,1] as 1 - distance/maxLen. Two empty
// strings are identical; one empty string scores zero against anything else.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
