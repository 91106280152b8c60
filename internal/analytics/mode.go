package analytics

// Mode returns the most frequent value in the sequence. Ties are broken by
// first occurrence, so the result is deterministic for any input order.
// The boolean is false when the sequence is empty.
func Mode(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}

	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))

	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}

		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}

	return best, true
}
