// Package runner orchestrates a reverse-patch run: parse the patch, resolve
// each target file, reverse its hunks, persist the result, and report.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kvit-s/unpatch/internal/apply"
	"github.com/kvit-s/unpatch/internal/config"
	"github.com/kvit-s/unpatch/internal/locate"
	"github.com/kvit-s/unpatch/internal/logging"
	"github.com/kvit-s/unpatch/internal/patch"
	"github.com/kvit-s/unpatch/internal/resolve"
	"github.com/kvit-s/unpatch/internal/ui"
)

// Summary accumulates counters across all file patches of a run.
type Summary struct {
	FilesPatched   int // at least one hunk applied and file written back
	FilesUnchanged int // resolved but no hunk matched
	FilesMissing   int // no file found for the patch path
	FilesErrored   int // read or write failed
	HunksApplied   int
	HunksSkipped   int
	HunksMoved     int // applied far from their declared position
}

// Runner processes one parsed patch against one target tree.
type Runner struct {
	cfg      *config.Config
	baseDir  string
	resolver *resolve.Resolver
	locator  *locate.Locator
	writer   *ui.Writer
	logger   *logging.Logger
}

// New wires a Runner from configuration.
func New(cfg *config.Config, baseDir string, writer *ui.Writer, logger *logging.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		baseDir: baseDir,
		resolver: resolve.NewResolver(
			baseDir,
			cfg.Resolver.StripPrefixes,
			cfg.Resolver.RootMarkers,
		),
		locator: locate.NewLocator(
			cfg.Matcher.Threshold,
			cfg.Matcher.WindowBehind,
			cfg.Matcher.WindowAhead,
		),
		writer: writer,
		logger: logger,
	}
}

// Run reverses every file patch in patchText against the base directory.
// Per-file and per-hunk failures are counted, never fatal: a missing file or
// unmatchable hunk must not block the rest of the batch.
func (r *Runner) Run(patchText string) Summary {
	patches := patch.Parse(patchText)
	r.writer.StartupInfo(fmt.Sprintf("Found %d file(s) to patch", len(patches)))

	var sum Summary
	for _, fp := range patches {
		r.processFile(fp, &sum)
	}

	r.printSummary(sum)
	return sum
}

func (r *Runner) processFile(fp *patch.FilePatch, sum *Summary) {
	// Reversal targets the post-patch tree, so the new path is the one
	// expected to exist.
	target, ok := r.resolver.Resolve(fp.NewPath)
	if !ok {
		r.writer.Error(fmt.Sprintf("could not find file: %s", fp.NewPath))
		r.logger.FileMissing(fp.NewPath)
		sum.FilesMissing++
		return
	}
	r.logger.FileResolved(fp.NewPath, target)
	r.writer.File(r.displayPath(target))

	data, err := os.ReadFile(target)
	if err != nil {
		r.writer.Error(fmt.Sprintf("read %s: %v", target, err))
		r.logger.Error("read failed", err)
		sum.FilesErrored++
		sum.HunksSkipped += len(fp.Hunks)
		return
	}

	before := string(data)
	res := apply.Reverse(strings.Split(before, "\n"), fp, r.locator, r.cfg.Matcher.MovedNotice)
	r.reportOutcomes(target, res)

	if !res.Modified {
		r.writer.Info("no changes applied")
		r.logger.FilePatched(target, 0, res.Skipped, false)
		sum.FilesUnchanged++
		sum.HunksSkipped += res.Skipped
		return
	}

	after := strings.Join(res.Lines, "\n")
	if err := os.WriteFile(target, []byte(after), 0644); err != nil {
		r.writer.Error(fmt.Sprintf("write %s: %v", target, err))
		r.logger.Error("write failed", err)
		sum.FilesErrored++
		sum.HunksSkipped += len(fp.Hunks)
		return
	}

	if r.cfg.Verbose {
		added, deleted := changeStats(before, after)
		r.writer.Detail(fmt.Sprintf("%d line(s) added, %d line(s) removed", added, deleted))
	}

	r.logger.FilePatched(target, res.Applied, res.Skipped, true)
	sum.FilesPatched++
	sum.HunksApplied += res.Applied
	sum.HunksSkipped += res.Skipped
	sum.HunksMoved += res.Moved
}

func (r *Runner) reportOutcomes(target string, res apply.Result) {
	// Outcomes are recorded bottom-up; replay them per hunk.
	for _, out := range res.Outcomes {
		hint := out.Hunk.NewStart
		switch {
		case out.Line < 0:
			r.writer.Warn(fmt.Sprintf("could not find match for hunk (expected around line %d)", hint))
			r.logger.HunkSkipped(target, hint)
		case out.Moved:
			r.writer.Warn(fmt.Sprintf("applied hunk at line %d (moved from expected line %d)", out.Line+1, hint))
			r.logger.HunkApplied(target, out.Line+1, hint, true)
		default:
			r.writer.Ok(fmt.Sprintf("applied hunk at line %d", out.Line+1))
			r.logger.HunkApplied(target, out.Line+1, hint, false)
		}
	}
}

// displayPath shortens a target path to be relative to the base directory.
func (r *Runner) displayPath(target string) string {
	rel, err := filepath.Rel(r.baseDir, target)
	if err != nil {
		return target
	}
	return rel
}

func (r *Runner) printSummary(sum Summary) {
	r.writer.Summary(strings.Repeat("=", 60))
	r.writer.Summary(fmt.Sprintf(
		"Summary: %d file(s) patched, %d unchanged, %d not found, %d errored",
		sum.FilesPatched, sum.FilesUnchanged, sum.FilesMissing, sum.FilesErrored,
	))
	r.writer.Summary(fmt.Sprintf(
		"Hunks: %d applied (%d moved), %d skipped",
		sum.HunksApplied, sum.HunksMoved, sum.HunksSkipped,
	))
}

// changeStats counts lines added and removed between two file versions,
// using a line-granular diff.
func changeStats(before, after string) (added, deleted int) {
	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			deleted += n
		}
	}
	return added, deleted
}
