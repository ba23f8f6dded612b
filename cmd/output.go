package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/eykd/leap-go/internal/config"
	"github.com/eykd/leap-go/internal/domain"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// painter colors diagnostics written to stderr.
type painter struct {
	errc  *color.Color
	warnc *color.Color
}

// newPainter returns a painter for w honoring mode (auto, always, never).
func newPainter(mode string, w io.Writer) *painter {
	p := &painter{
		errc:  color.New(color.FgRed, color.Bold),
		warnc: color.New(color.FgYellow),
	}
	if colorEnabled(mode, w) {
		p.errc.EnableColor()
		p.warnc.EnableColor()
	} else {
		p.errc.DisableColor()
		p.warnc.DisableColor()
	}
	return p
}

func plainPainter() *painter {
	return newPainter(config.ColorNever, nil)
}

// colorEnabled reports whether output to w should be colored.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *painter) prefix() string {
	return p.errc.Sprint("leap:") + " "
}

// line renders one per-file failure; cleanup failures are warnings since
// the formatted content was written.
func (p *painter) line(err error) string {
	if domain.KindOf(err) == domain.KindCleanup {
		return p.prefix() + p.warnc.Sprint(err.Error())
	}
	return p.prefix() + err.Error()
}

// report highlights the "error:" headings of a multi-issue report.
func (p *painter) report(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if rest, ok := strings.CutPrefix(l, "error:"); ok {
			lines[i] = p.errc.Sprint("error:") + rest
		}
	}
	return strings.Join(lines, "\n")
}
