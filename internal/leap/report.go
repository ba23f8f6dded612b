package leap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Diagnostic is one problem found in a spec file. Line and Col are zero
// when the problem concerns the whole file (for example, it cannot be read).
type Diagnostic struct {
	Path    string `json:"path"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"column,omitempty"`
	EndCol  uint32 `json:"end_column,omitempty"`
	Message string `json:"message"`
	Source  string `json:"-"`
}

// Location renders path:line:col, or just the path without a position.
func (d Diagnostic) Location() string {
	if d.Line == 0 {
		return d.Path
	}
	return fmt.Sprintf("%s:%d:%d", d.Path, d.Line, d.Col)
}

// ErrorReport aggregates the diagnostics of a ParseMany call.
type ErrorReport struct {
	diags []Diagnostic
	files int
}

// Diagnostics returns the individual problems in report order.
func (r *ErrorReport) Diagnostics() []Diagnostic {
	return r.diags
}

// Error renders the full multi-issue report.
func (r *ErrorReport) Error() string {
	var b strings.Builder
	for i, d := range r.diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderDiagnostic(&b, d)
	}
	noun := "errors"
	if len(r.diags) == 1 {
		noun = "error"
	}
	fileNoun := "files"
	if r.files == 1 {
		fileNoun = "file"
	}
	fmt.Fprintf(&b, "\nfound %d %s in %d %s", len(r.diags), noun, r.files, fileNoun)
	return b.String()
}

// renderDiagnostic writes
//
//	error: <message>
//	 --> path:line:col
//	  |
//	3 |     name: strr
//	  |           ^^^^
func renderDiagnostic(b *strings.Builder, d Diagnostic) {
	fmt.Fprintf(b, "error: %s\n", d.Message)
	fmt.Fprintf(b, " --> %s\n", d.Location())
	if d.Line == 0 || d.Source == "" {
		return
	}

	num := strconv.FormatUint(uint64(d.Line), 10)
	gutter := strings.Repeat(" ", len(num))
	line := []rune(d.Source)

	prefix := displayWidth(sliceRunes(line, 0, int(d.Col)-1))
	span := displayWidth(sliceRunes(line, int(d.Col)-1, int(d.EndCol)-1))
	if span < 1 {
		span = 1
	}

	fmt.Fprintf(b, "%s |\n", gutter)
	fmt.Fprintf(b, "%s | %s\n", num, expandTabs(d.Source))
	fmt.Fprintf(b, "%s | %s%s\n", gutter, strings.Repeat(" ", prefix), strings.Repeat("^", span))
}

func sliceRunes(r []rune, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", indent)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
