// Package report renders run summaries and verification reports for the
// terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/iconshift/internal/runner"
	"github.com/Sumatoshi-tech/iconshift/internal/verify"
)

// Renderer writes human-readable reports.
type Renderer struct {
	w       io.Writer
	verbose bool
}

// NewRenderer returns a Renderer writing to w. When noColor is set all
// ANSI colors are disabled process-wide.
func NewRenderer(w io.Writer, verbose, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	return &Renderer{w: w, verbose: verbose}
}

// RunSummary renders the aggregate outcome of a migration run: per-file
// lines in verbose mode, the counter table, and per-directory modified
// counts.
func (r *Renderer) RunSummary(res *runner.Result) {
	if r.verbose {
		for _, fr := range res.Files {
			r.fileLine(fr)
		}

		fmt.Fprintln(r.w)
	} else {
		for _, fr := range res.Files {
			if fr.Status == runner.StatusSkipped || fr.Status == runner.StatusError {
				r.fileLine(fr)
			}
		}
	}

	tbl := newTable(r.w)
	tbl.AppendHeader(table.Row{"Outcome", "Files"})
	tbl.AppendRow(table.Row{"scanned", res.Scanned})
	tbl.AppendRow(table.Row{"modified", res.Modified})
	tbl.AppendRow(table.Row{"unchanged", res.Unchanged})
	tbl.AppendRow(table.Row{"skipped", res.Skipped})
	tbl.AppendRow(table.Row{"errors", res.Errored})
	tbl.Render()

	if res.Modified > 0 {
		fmt.Fprintf(r.w, "wrote %s across %d files (%s lines)\n",
			humanize.Bytes(uint64(res.BytesWritten)), res.Modified,
			humanize.Comma(res.LinesTouched))
		r.perDir(res.ModifiedByDir)
	}
}

func (r *Renderer) perDir(byDir map[string]int) {
	if len(byDir) == 0 {
		return
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)

	tbl := newTable(r.w)
	tbl.AppendHeader(table.Row{"Directory", "Modified"})

	for _, dir := range dirs {
		tbl.AppendRow(table.Row{dir, byDir[dir]})
	}

	tbl.Render()
}

func (r *Renderer) fileLine(fr runner.FileResult) {
	switch fr.Status {
	case runner.StatusModified:
		color.New(color.FgGreen).Fprintf(r.w, "  ✓ %s (%d replacements)\n", fr.Path, fr.Replacements)

		if fr.Reason != "" {
			color.New(color.FgYellow).Fprintf(r.w, "    note: %s\n", fr.Reason)
		}

		if fr.Diff != "" {
			fmt.Fprintln(r.w, indent(fr.Diff))
		}
	case runner.StatusSkipped:
		color.New(color.FgYellow).Fprintf(r.w, "  - %s: %s\n", fr.Path, fr.Reason)
	case runner.StatusError:
		color.New(color.FgRed).Fprintf(r.w, "  ! %s: %v\n", fr.Path, fr.Err)
	case runner.StatusUnchanged:
		fmt.Fprintf(r.w, "    %s\n", fr.Path)
	}
}

// VerifySummary renders a verification report. A clean tree is a single
// green line; findings render as a table.
func (r *Renderer) VerifySummary(rep *verify.Report) {
	if !rep.Failed() {
		color.New(color.FgGreen).Fprintf(r.w, "verification clean: %d files, no residual references\n", rep.Scanned)

		return
	}

	color.New(color.FgRed).Fprintf(r.w, "verification failed: %d of %d files need manual follow-up\n",
		len(rep.Findings), rep.Scanned)

	tbl := newTable(r.w)
	tbl.AppendHeader(table.Row{"File", "Legacy refs", "Residual names"})

	for _, finding := range rep.Findings {
		names := strings.Join(finding.ResidualNames, ", ")
		if finding.Err != nil {
			names = fmt.Sprintf("unreadable: %v", finding.Err)
		}

		tbl.AppendRow(table.Row{finding.Path, finding.ResidualModuleRefs, names})
	}

	tbl.Render()
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}

	return strings.Join(lines, "\n")
}
