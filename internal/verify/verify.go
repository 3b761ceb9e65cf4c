// Package verify implements the post-run check over a migrated tree: no
// residual reference to the legacy module may remain unless a file
// legitimately still imports only excluded symbols, and no whole-
// identifier occurrence of a migrated old name may survive anywhere.
//
// Verification reports, it never fixes; a failing file is left for
// manual follow-up.
package verify

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/iconshift/internal/engine"
	"github.com/Sumatoshi-tech/iconshift/internal/mapping"
	"github.com/Sumatoshi-tech/iconshift/internal/walker"
	"github.com/Sumatoshi-tech/iconshift/pkg/textutil"
)

// Finding records one file failing verification.
type Finding struct {
	Path string

	// ResidualModuleRefs counts occurrences of the legacy module string
	// outside a legitimate excluded-only import declaration.
	ResidualModuleRefs int

	// ResidualNames lists migrated old names still present as whole
	// identifiers, sorted.
	ResidualNames []string

	// Err is set when the file could not be checked at all.
	Err error
}

// Clean reports whether the file passed both assertions.
func (f Finding) Clean() bool {
	return f.ResidualModuleRefs == 0 && len(f.ResidualNames) == 0 && f.Err == nil
}

// Report aggregates a verification pass.
type Report struct {
	Scanned       int
	ResidualRefs  int
	ResidualNames int
	Findings      []Finding
}

// Failed reports whether any file failed verification.
func (r *Report) Failed() bool {
	return len(r.Findings) > 0
}

// Options configures a verification pass.
type Options struct {
	Root       string
	Extensions []string
	Excludes   []string
	Workers    int
}

// Verifier re-scans a processed tree.
type Verifier struct {
	table  *mapping.Table
	legacy string
	logger *slog.Logger
}

// New returns a Verifier for the given mapping table and legacy module.
// A nil logger disables logging.
func New(table *mapping.Table, legacy string, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Verifier{table: table, legacy: legacy, logger: logger}
}

// Run checks every candidate file under opts.Root and reports the ones
// with residual legacy references or residual old names.
func (v *Verifier) Run(ctx context.Context, opts Options) (*Report, error) {
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

	findings := make([]Finding, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			findings[i] = v.checkFile(path)

			return nil
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return nil, waitErr
	}

	report := &Report{Scanned: len(files)}

	for _, finding := range findings {
		if finding.Clean() {
			continue
		}

		report.Findings = append(report.Findings, finding)
		report.ResidualRefs += finding.ResidualModuleRefs
		report.ResidualNames += len(finding.ResidualNames)
	}

	return report, nil
}

func (v *Verifier) checkFile(path string) Finding {
	finding := Finding{Path: path}

	src, readErr := os.ReadFile(path)
	if readErr != nil {
		finding.Err = readErr

		return finding
	}

	if textutil.IsBinary(src) {
		return finding
	}

	finding.ResidualModuleRefs = v.residualModuleRefs(src)
	finding.ResidualNames = engine.FindIdentifiers(src, v.table.OldNames())

	return finding
}

// residualModuleRefs counts occurrences of the legacy module string,
// discounting those inside import declarations that pull only excluded
// symbols. Mentions in comments or unrelated strings count as residual:
// they are exactly the stale references the pass exists to surface.
// The count assumes the replacement module does not embed the legacy
// name as a substring; config.Validate rejects such pairs up front.
func (v *Verifier) residualModuleRefs(src []byte) int {
	total := bytes.Count(src, []byte(v.legacy))
	if total == 0 {
		return 0
	}

	decls, locateErr := engine.LocateImports(src, v.legacy)
	if locateErr != nil {
		// Unparseable import block; every mention stays residual.
		return total
	}

	for _, decl := range decls {
		if v.allExcluded(decl.Specifiers) {
			total -= bytes.Count(src[decl.Start:decl.End], []byte(v.legacy))
		}
	}

	return total
}

func (v *Verifier) allExcluded(specs []engine.Specifier) bool {
	for _, spec := range specs {
		if !v.table.IsExcluded(spec.Name) {
			return false
		}
	}

	return true
}
