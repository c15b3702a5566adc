// Package locate finds the most probable position of a multi-line block in a
// file, tolerating whitespace changes, light edits, and relocation.
package locate

import (
	"github.com/kvit-s/unpatch/internal/match"
)

// Locator runs a three-tier escalating search: a fuzzy scan in a window
// around the caller's hint, then a whitespace-insensitive exact scan over the
// whole file, then a fuzzy scan over the whole file. Each tier runs only if
// the previous one found nothing.
type Locator struct {
	threshold float64 // similarity ratio a fuzzy window must exceed
	behind    int     // window lines scanned before the hint
	ahead     int     // window lines scanned after the hint
}

// NewLocator creates a Locator. Ratios must strictly exceed threshold to be
// accepted; behind/ahead bound the hinted window of tier 1.
func NewLocator(threshold float64, behind, ahead int) *Locator {
	return &Locator{threshold: threshold, behind: behind, ahead: ahead}
}

// Locate returns the 0-based index in content where search best matches, and
// whether any match was found. hint is the 0-based line where the block is
// expected; it only narrows the first search tier and is never trusted
// exactly.
func (l *Locator) Locate(content, search []string, hint int) (int, bool) {
	searchStripped := match.StripLines(search)
	if len(searchStripped) == 0 {
		// A blank-only block cannot be located meaningfully.
		return 0, false
	}

	from := hint - l.behind
	if from < 0 {
		from = 0
	}
	to := hint + l.ahead
	if to > len(content) {
		to = len(content)
	}

	if pos, ok := l.fuzzyScan(content, search, searchStripped, from, to); ok {
		return pos, true
	}
	if pos, ok := exactScan(content, search, searchStripped); ok {
		return pos, true
	}
	return l.fuzzyScan(content, search, searchStripped, 0, len(content))
}

// fuzzyScan slides a window of len(search) lines over content[from:to],
// scoring each window against the stripped search block. The best window
// wins if its ratio strictly exceeds the threshold; a perfect ratio returns
// immediately, so ties go to the earliest window scanned.
func (l *Locator) fuzzyScan(content, search, searchStripped []string, from, to int) (int, bool) {
	bestPos := -1
	bestRatio := 0.0

	for i := from; i <= to-len(search); i++ {
		windowStripped := match.StripLines(content[i : i+len(search)])
		if len(windowStripped) == 0 {
			continue
		}

		ratio := match.SequenceRatio(searchStripped, windowStripped)
		if ratio == 1.0 {
			return i, true
		}
		if ratio > bestRatio && ratio > l.threshold {
			bestRatio = ratio
			bestPos = i
		}
	}

	if bestPos < 0 {
		return 0, false
	}
	return bestPos, true
}

// exactScan looks for a window whose stripped form equals the stripped
// search block, anywhere in the file. First occurrence wins. This recovers
// blocks that moved far from the hint but are otherwise unchanged.
func exactScan(content, search, searchStripped []string) (int, bool) {
	for i := 0; i+len(search) <= len(content); i++ {
		if equalStripped(content[i:i+len(search)], searchStripped) {
			return i, true
		}
	}
	return 0, false
}

func equalStripped(window, searchStripped []string) bool {
	windowStripped := match.StripLines(window)
	if len(windowStripped) != len(searchStripped) {
		return false
	}
	for i := range windowStripped {
		if windowStripped[i] != searchStripped[i] {
			return false
		}
	}
	return true
}
