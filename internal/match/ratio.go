// Package match provides line-sequence similarity scoring for hunk location.
package match

import "strings"

// SequenceRatio computes a similarity ratio between two line sequences,
// equivalent to Python's difflib.SequenceMatcher.ratio() with lines as the
// comparison unit. Uses the Ratcliff/Obershelp algorithm:
// 2 * matching_lines / total_lines.
func SequenceRatio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matches := matchingLines(a, b)
	return 2.0 * float64(matches) / float64(len(a)+len(b))
}

// matchingLines recursively counts matching lines via longest common block
// decomposition. This is the core of the Ratcliff/Obershelp algorithm.
func matchingLines(a, b []string) int {
	start1, start2, length := longestCommonBlock(a, b)
	if length == 0 {
		return 0
	}

	matches := length

	// Left side
	if start1 > 0 && start2 > 0 {
		matches += matchingLines(a[:start1], b[:start2])
	}

	// Right side
	end1 := start1 + length
	end2 := start2 + length
	if end1 < len(a) && end2 < len(b) {
		matches += matchingLines(a[end1:], b[end2:])
	}

	return matches
}

// longestCommonBlock finds the longest run of equal lines shared by a and b.
// Returns start positions in a and b, and the run length.
func longestCommonBlock(a, b []string) (start1, start2, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// Rolling array to keep memory at O(len(b))
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	maxLen := 0
	endPos1 := 0
	endPos2 := 0

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > maxLen {
					maxLen = curr[j]
					endPos1 = i
					endPos2 = j
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
		for k := range curr {
			curr[k] = 0
		}
	}

	if maxLen == 0 {
		return 0, 0, 0
	}
	return endPos1 - maxLen, endPos2 - maxLen, maxLen
}

// StripLines trims whitespace from each line and drops lines that become
// empty. Both the search target and candidate windows are normalized this way
// before comparison, so indentation changes and blank-line churn do not
// defeat a match.
func StripLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
