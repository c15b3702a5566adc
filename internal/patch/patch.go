// Package patch models unified-diff patches and parses them from text.
package patch

// Hunk is a single change block within a file patch. OldLines and NewLines
// hold the complete pre- and post-patch content of the block: context lines
// appear in both, removed lines only in OldLines, added lines only in
// NewLines.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int // 1-based line where the block begins in the post-patch file
	NewCount int
	OldLines []string
	NewLines []string
}

// FilePatch holds all hunks for a single file, in declaration order.
type FilePatch struct {
	OldPath string
	NewPath string
	Hunks   []*Hunk
}

// Patch is an ordered sequence of file patches, in the order their sections
// appear in the patch text.
type Patch []*FilePatch
