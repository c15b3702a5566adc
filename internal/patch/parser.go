package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRegex matches "@@ -start[,count] +start[,count] @@" headers.
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@`)

// Parse builds a Patch from unified-diff text. It never fails: malformed hunk
// headers are skipped without creating a hunk, and lines that match no known
// prefix (diff metadata such as "\ No newline at end of file") are ignored.
func Parse(text string) Patch {
	var patches Patch
	var current *FilePatch
	var hunk *Hunk

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "--- "):
			// File header: "--- old" must be immediately followed by "+++ new".
			oldPath := pathFromHeader(line)
			if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") {
				i++
				current = &FilePatch{
					OldPath: oldPath,
					NewPath: pathFromHeader(lines[i]),
				}
				patches = append(patches, current)
			}

		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRegex.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			hunk = &Hunk{
				OldStart: mustInt(m[1]),
				OldCount: countOrOne(m[2]),
				NewStart: mustInt(m[3]),
				NewCount: countOrOne(m[4]),
			}
			if current != nil {
				current.Hunks = append(current.Hunks, hunk)
			}

		case hunk != nil:
			switch {
			case strings.HasPrefix(line, "-"):
				hunk.OldLines = append(hunk.OldLines, line[1:])
			case strings.HasPrefix(line, "+"):
				hunk.NewLines = append(hunk.NewLines, line[1:])
			case strings.HasPrefix(line, " "):
				// Context line belongs to both sides.
				hunk.OldLines = append(hunk.OldLines, line[1:])
				hunk.NewLines = append(hunk.NewLines, line[1:])
			}
		}
	}

	return patches
}

// pathFromHeader strips the "--- "/"+++ " prefix and truncates the path at
// the first tab (diff tools append timestamps after a tab).
func pathFromHeader(line string) string {
	path := line[4:]
	if idx := strings.IndexByte(path, '\t'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// countOrOne parses an optional hunk count, which defaults to 1 when the
// header omits it.
func countOrOne(s string) int {
	if s == "" {
		return 1
	}
	return mustInt(s)
}
