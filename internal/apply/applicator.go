// Package apply reverses file patches: for each hunk it locates the hunk's
// post-patch content in the current file and swaps it for the pre-patch
// content.
package apply

import (
	"github.com/kvit-s/unpatch/internal/locate"
	"github.com/kvit-s/unpatch/internal/patch"
)

// Outcome records what happened to one hunk during a reversal.
type Outcome struct {
	Hunk  *patch.Hunk
	Line  int  // 0-based line where the hunk was applied, -1 when skipped
	Moved bool // match deviated from the hint by more than the notice distance
}

// Result aggregates a reversal over one file.
type Result struct {
	Lines    []string
	Modified bool
	Applied  int
	Skipped  int
	Moved    int
	Outcomes []Outcome
}

// Reverse applies fp to lines in reverse: each hunk's NewLines are located
// and replaced by its OldLines. Hunks are processed in reverse declaration
// order so that splices below an unprocessed hunk never shift the content its
// line-number hint refers to. A hunk that cannot be located is skipped; the
// remaining hunks are still attempted.
//
// movedNotice is the hint deviation (in lines) beyond which a match is
// flagged as moved. Reverse does not touch the filesystem; persisting the
// returned lines is the caller's concern.
func Reverse(lines []string, fp *patch.FilePatch, loc *locate.Locator, movedNotice int) Result {
	res := Result{Lines: lines}

	for i := len(fp.Hunks) - 1; i >= 0; i-- {
		hunk := fp.Hunks[i]

		// Reversal goes B->A: the file currently holds the "new" content.
		search := hunk.NewLines
		replace := hunk.OldLines
		hint := hunk.NewStart - 1

		pos, ok := loc.Locate(res.Lines, search, hint)
		if !ok {
			res.Skipped++
			res.Outcomes = append(res.Outcomes, Outcome{Hunk: hunk, Line: -1})
			continue
		}

		res.Lines = splice(res.Lines, pos, len(search), replace)
		res.Modified = true
		res.Applied++

		moved := abs(pos-hint) > movedNotice
		if moved {
			res.Moved++
		}
		res.Outcomes = append(res.Outcomes, Outcome{Hunk: hunk, Line: pos, Moved: moved})
	}

	return res
}

// splice replaces lines[pos:pos+count] with replacement.
func splice(lines []string, pos, count int, replacement []string) []string {
	out := make([]string, 0, len(lines)-count+len(replacement))
	out = append(out, lines[:pos]...)
	out = append(out, replacement...)
	out = append(out, lines[pos+count:]...)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
