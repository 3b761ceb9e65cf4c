// Package runner orchestrates a migration over a file tree: traversal,
// a bounded worker pool running the rewrite engine per file, all-or-
// nothing writes, and aggregate counters for the final report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/iconshift/internal/engine"
	"github.com/Sumatoshi-tech/iconshift/internal/walker"
	"github.com/Sumatoshi-tech/iconshift/pkg/textutil"
)

// Status classifies the outcome of processing one file.
type Status int

// File outcomes, in report order.
const (
	StatusUnchanged Status = iota
	StatusModified
	StatusSkipped
	StatusError
)

// String returns the report label for s.
func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FileResult is the outcome of processing one file. It carries no state
// forward; the runner aggregates it into Result for reporting only.
type FileResult struct {
	Path         string
	Status       Status
	Replacements int
	Lines        int
	Reason       string
	Err          error
	Diff         string
	BytesWritten int
}

// Result aggregates one run.
type Result struct {
	Scanned      int
	Modified     int
	Unchanged    int
	Skipped      int
	Errored      int
	BytesWritten int64
	LinesTouched int64

	// ModifiedByDir counts modified files per directory, relative to the
	// run root.
	ModifiedByDir map[string]int

	// Files holds per-file results in traversal (sorted-path) order.
	Files []FileResult
}

// Options configures a run.
type Options struct {
	Root       string
	Extensions []string
	Excludes   []string

	// Workers bounds the pool; zero means one worker per CPU.
	Workers int

	// DryRun plans every rewrite and renders a diff, writing nothing.
	DryRun bool
}

// Runner executes migration runs. The engine is shared read-only across
// workers; each file's read-transform-write cycle is independent.
type Runner struct {
	engine *engine.Engine
	logger *slog.Logger
}

// New returns a Runner. A nil logger disables logging.
func New(eng *engine.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{engine: eng, logger: logger}
}

// Run processes every candidate file under opts.Root. Per-file failures
// are recorded, never fatal; the only returned errors are traversal
// failure and context cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, walkErr := walker.Walk(walker.Options{
		Root:       opts.Root,
		Extensions: opts.Extensions,
		Excludes:   opts.Excludes,
	})
	if walkErr != nil {
		return nil, walkErr
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	r.logger.Debug("starting run",
		slog.String("root", opts.Root),
		slog.Int("files", len(files)),
		slog.Int("workers", workers),
	)

	results := make([]FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = r.processFile(path, opts.DryRun)

			return nil
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return nil, fmt.Errorf("run canceled: %w", waitErr)
	}

	return r.aggregate(opts.Root, results), nil
}

// processFile runs the full per-file pipeline. Every failure is folded
// into the FileResult; nothing escapes as a panic or a run-level error.
func (r *Runner) processFile(path string, dryRun bool) FileResult {
	result := FileResult{Path: path}

	src, readErr := os.ReadFile(path)
	if readErr != nil {
		result.Status = StatusError
		result.Err = readErr

		return result
	}

	if textutil.IsBinary(src) {
		result.Status = StatusSkipped
		result.Reason = "binary file"

		return result
	}

	rewrite, planErr := r.engine.Plan(src)

	switch {
	case errors.Is(planErr, engine.ErrMalformedImport):
		result.Status = StatusSkipped
		result.Reason = "malformed import, needs manual review"

		return result
	case errors.Is(planErr, engine.ErrNameConflict):
		result.Status = StatusSkipped
		result.Reason = fmt.Sprintf("name conflict: %v", planErr)

		return result
	case errors.Is(planErr, engine.ErrNoRewritableImport):
		result.Status = StatusSkipped
		result.Reason = "legacy module referenced without a named import"

		return result
	case planErr != nil:
		result.Status = StatusError
		result.Err = planErr

		return result
	}

	if rewrite == nil {
		result.Status = StatusUnchanged

		return result
	}

	result.Replacements = rewrite.Replacements
	result.Lines = textutil.CountLines(rewrite.Content)

	if rewrite.NeedsReview {
		result.Reason = "second legacy declaration left in place"
	}

	if dryRun {
		result.Status = StatusModified
		result.Diff = renderDiff(src, rewrite.Content)

		return result
	}

	writeErr := writeAtomic(path, rewrite.Content)
	if writeErr != nil {
		result.Status = StatusError
		result.Err = writeErr

		return result
	}

	result.Status = StatusModified
	result.BytesWritten = len(rewrite.Content)

	r.logger.Debug("rewrote file",
		slog.String("path", path),
		slog.Int("replacements", rewrite.Replacements),
	)

	return result
}

// writeAtomic replaces path with content in one step: the new content
// lands in a temp file in the same directory and is renamed over the
// original, so an interrupted run never leaves a half-written file.
func writeAtomic(path string, content []byte) error {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	dir := filepath.Dir(path)

	tmp, tmpErr := os.CreateTemp(dir, ".iconshift-*")
	if tmpErr != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, tmpErr)
	}

	tmpName := tmp.Name()

	_, writeErr := tmp.Write(content)
	if writeErr == nil {
		writeErr = tmp.Chmod(info.Mode().Perm())
	}

	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)

		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", tmpName, writeErr)
		}

		return fmt.Errorf("failed to close %s: %w", tmpName, closeErr)
	}

	renameErr := os.Rename(tmpName, path)
	if renameErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to replace %s: %w", path, renameErr)
	}

	return nil
}

func renderDiff(before, after []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return dmp.DiffPrettyText(diffs)
}

func (r *Runner) aggregate(root string, results []FileResult) *Result {
	res := &Result{
		Scanned:       len(results),
		ModifiedByDir: make(map[string]int),
		Files:         results,
	}

	for _, fr := range results {
		switch fr.Status {
		case StatusModified:
			res.Modified++
			res.BytesWritten += int64(fr.BytesWritten)
			res.LinesTouched += int64(fr.Lines)

			rel, relErr := filepath.Rel(root, fr.Path)
			if relErr != nil {
				rel = fr.Path
			}

			res.ModifiedByDir[filepath.ToSlash(filepath.Dir(rel))]++
		case StatusUnchanged:
			res.Unchanged++
		case StatusSkipped:
			res.Skipped++
		case StatusError:
			res.Errored++
		}
	}

	return res
}
