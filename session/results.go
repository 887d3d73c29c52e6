// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

// ComputeResults counts answers per option index.
// Answers outside [0, len(options)) are ignored.
func ComputeResults(options []string, answers map[string]int) []int {
	counts := make([]int, len(options))
	for _, idx := range answers {
		if idx >= 0 && idx < len(counts) {
			counts[idx]++
		}
	}
	return counts
}
