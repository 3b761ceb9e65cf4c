// Package engine implements the import-migration rewrite: locating the
// legacy named-import declaration in a file, partitioning its specifiers
// against the mapping table, synthesizing replacement declarations, and
// substituting renamed symbols at their usage sites.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/iconshift/internal/mapping"
)

// Sentinel errors for file-scoped rewrite failures. All of them leave the
// file untouched; none abort a run.
var (
	// ErrNameConflict indicates a mapped target name already occurs as a
	// distinct identifier in the file, so substitution would silently
	// merge two symbols.
	ErrNameConflict = errors.New("mapped name collides with existing identifier")

	// ErrNoRewritableImport indicates the file references the legacy
	// module without a parseable named-import declaration (default,
	// namespace or dynamic import, or a bare mention).
	ErrNoRewritableImport = errors.New("legacy module referenced without a named import")
)

// Engine rewrites one file at a time. It is immutable after construction
// and safe for concurrent use across workers.
type Engine struct {
	table       *mapping.Table
	legacy      string
	replacement string
}

// New returns an Engine migrating imports of legacy to replacement using
// table.
func New(table *mapping.Table, legacy, replacement string) *Engine {
	return &Engine{table: table, legacy: legacy, replacement: replacement}
}

// Table exposes the engine's mapping table, read-only.
func (e *Engine) Table() *mapping.Table { return e.table }

// LegacyModule returns the module being migrated away from.
func (e *Engine) LegacyModule() string { return e.legacy }

// ReplacementModule returns the module being migrated to.
func (e *Engine) ReplacementModule() string { return e.replacement }

// Rewrite is the planned new content for one file.
type Rewrite struct {
	// Content is the complete replacement file content.
	Content []byte

	// Replacements counts usage-site substitutions, excluding the import
	// declaration itself.
	Replacements int

	// NeedsReview is set when the file was rewritten but carries a
	// second legacy declaration the engine deliberately left alone.
	NeedsReview bool
}

// Plan computes the rewritten content for src. A nil Rewrite with a nil
// error means the file needs no changes: no legacy import, an
// already-migrated file, or an import of excluded symbols only.
//
// The pipeline within a file is strictly ordered: locate, partition,
// render declarations, rewrite usages. Only the first legacy declaration
// is rewritten; any further one marks the result NeedsReview.
func (e *Engine) Plan(src []byte) (*Rewrite, error) {
	if !bytes.Contains(src, []byte(e.legacy)) {
		return nil, nil
	}

	decls, locateErr := LocateImports(src, e.legacy)
	if locateErr != nil {
		return nil, locateErr
	}

	if len(decls) == 0 {
		return nil, ErrNoRewritableImport
	}

	decl := decls[0]
	part := PartitionSpecifiers(decl.Specifiers, e.table)

	if len(part.Migratable) == 0 {
		// Every imported symbol stays on the legacy module.
		return nil, nil
	}

	conflictErr := e.checkConflicts(src, decl, part)
	if conflictErr != nil {
		return nil, conflictErr
	}

	header := RenderDeclaration(part.Migratable, e.replacement, decl.TypeOnly, decl.Quote)
	if len(part.Excluded) > 0 {
		header += "\n" + RenderDeclaration(part.Excluded, e.legacy, decl.TypeOnly, decl.Quote)
	}

	prefix, prefixCount := RewriteUsages(src[:decl.Start], part.Renames)
	suffix, suffixCount := RewriteUsages(src[decl.End:], part.Renames)

	content := make([]byte, 0, len(prefix)+len(header)+len(suffix))
	content = append(content, prefix...)
	content = append(content, header...)
	content = append(content, suffix...)

	if bytes.Equal(content, src) {
		return nil, nil
	}

	return &Rewrite{
		Content:      content,
		Replacements: prefixCount + suffixCount,
		NeedsReview:  len(decls) > 1,
	}, nil
}

// checkConflicts rejects plans where a rename target would collide with
// an identifier already in the file. Two checks: duplicate local names
// within the rewritten declarations, and rename targets that occur in the
// body outside the declaration span.
func (e *Engine) checkConflicts(src []byte, decl Declaration, part Partition) error {
	seen := make(map[string]struct{})

	for _, local := range part.LocalNames() {
		if _, dup := seen[local]; dup {
			return fmt.Errorf("%w: %q imported twice after mapping", ErrNameConflict, local)
		}

		seen[local] = struct{}{}
	}

	if len(part.Renames) == 0 {
		return nil
	}

	targets := make([]string, 0, len(part.Renames))
	for _, updated := range part.Renames {
		targets = append(targets, updated)
	}

	body := make([]byte, 0, len(src)-(decl.End-decl.Start))
	body = append(body, src[:decl.Start]...)
	body = append(body, src[decl.End:]...)

	hits := FindIdentifiers(body, targets)
	if len(hits) > 0 {
		return fmt.Errorf("%w: %s", ErrNameConflict, strings.Join(hits, ", "))
	}

	return nil
}
