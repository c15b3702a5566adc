package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kvit-s/unpatch/internal/config"
	"github.com/kvit-s/unpatch/internal/logging"
	"github.com/kvit-s/unpatch/internal/ui"
)

func newTestRunner(t *testing.T, baseDir string) (*Runner, *bytes.Buffer) {
	t.Helper()

	writer := ui.NewWriter()
	var buf bytes.Buffer
	writer.SetOutput(&buf)

	logger, err := logging.NewLogger("")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	return New(config.Default(), baseDir, writer, logger), &buf
}

func writeTarget(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunReversesPatch(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "src/app.c", "a\nb\nc\nd\n")

	patchText := "--- a/src/app.c\n" +
		"+++ b/src/app.c\n" +
		"@@ -2,2 +2,2 @@\n" +
		"-B\n" +
		"-C\n" +
		"+b\n" +
		"+c\n"

	r, _ := newTestRunner(t, dir)
	sum := r.Run(patchText)

	if sum.FilesPatched != 1 || sum.HunksApplied != 1 || sum.HunksSkipped != 0 {
		t.Errorf("summary = %+v, want 1 file patched, 1 hunk applied", sum)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "a\nB\nC\nd\n" {
		t.Errorf("content = %q, want %q", got, "a\nB\nC\nd\n")
	}
}

func TestRunMissingFileDoesNotBlockBatch(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "real.c", "x\ny\n")

	patchText := "--- a/ghost.c\n" +
		"+++ b/ghost.c\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-old\n" +
		"+new\n" +
		"--- a/real.c\n" +
		"+++ b/real.c\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-X\n" +
		"+x\n"

	r, _ := newTestRunner(t, dir)
	sum := r.Run(patchText)

	if sum.FilesMissing != 1 {
		t.Errorf("FilesMissing = %d, want 1", sum.FilesMissing)
	}
	if sum.FilesPatched != 1 {
		t.Errorf("FilesPatched = %d, want 1 (missing file must not block the batch)", sum.FilesPatched)
	}

	got, _ := os.ReadFile(target)
	if string(got) != "X\ny\n" {
		t.Errorf("content = %q, want %q", got, "X\ny\n")
	}
}

func TestRunSkippedHunkStillAppliesOthers(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "app.c", "a\nb\nc\nd\n")

	patchText := "--- a/app.c\n" +
		"+++ b/app.c\n" +
		"@@ -2,1 +2,1 @@\n" +
		"-B\n" +
		"+b\n" +
		"@@ -9,2 +9,2 @@\n" +
		"-OLD\n" +
		"+not here\n" +
		"+or here\n"

	r, _ := newTestRunner(t, dir)
	sum := r.Run(patchText)

	if sum.HunksApplied != 1 || sum.HunksSkipped != 1 {
		t.Errorf("hunks = (applied=%d skipped=%d), want (1 1)", sum.HunksApplied, sum.HunksSkipped)
	}

	got, _ := os.ReadFile(target)
	if string(got) != "a\nB\nc\nd\n" {
		t.Errorf("content = %q, want %q", got, "a\nB\nc\nd\n")
	}
}

func TestRunNoOpLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "app.c", "a\nb\n")
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	modBefore := info.ModTime()

	patchText := "--- a/app.c\n" +
		"+++ b/app.c\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-X\n" +
		"+nothing matches this\n"

	r, _ := newTestRunner(t, dir)
	sum := r.Run(patchText)

	if sum.FilesUnchanged != 1 || sum.FilesPatched != 0 {
		t.Errorf("summary = %+v, want 1 unchanged file", sum)
	}

	info, err = os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(modBefore) {
		t.Error("no-op file was rewritten")
	}
}

func TestRunReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeTarget(t, dir, "app.c", "a\nb\nc\nd\n")

	patchText := "--- a/app.c\n" +
		"+++ b/app.c\n" +
		"@@ -2,2 +2,2 @@\n" +
		"-B\n" +
		"-C\n" +
		"+b\n" +
		"+c\n"

	r, buf := newTestRunner(t, dir)
	r.Run(patchText)

	out := buf.String()
	if !strings.Contains(out, "applied hunk at line 2") {
		t.Errorf("output missing hunk notice:\n%s", out)
	}
	if !strings.Contains(out, "Summary: 1 file(s) patched") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

func TestChangeStats(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nB\nc\nd\n"

	added, deleted := changeStats(before, after)
	if added != 2 || deleted != 1 {
		t.Errorf("changeStats = (added=%d deleted=%d), want (2, 1)", added, deleted)
	}
}
