package leap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/eykd/leap-go/internal/source"
)

const (
	commentPrefix = "/--"
	indent        = "    "
)

const (
	noDef      = -1
	discardDef = -2
)

type parser struct {
	spec    *Spec
	diags   []Diagnostic
	pending []string
	cur     int
	discard Def
}

// Parse parses one spec file. Syntax errors do not stop parsing: every
// malformed line yields a Diagnostic and the rest of the file is still read.
func Parse(path, text string) (*Spec, []Diagnostic) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	p := &parser{spec: &Spec{Path: path, lines: lines}, cur: noDef}
	for i, line := range lines {
		p.parseLine(i, line)
	}
	p.spec.Trailing = p.takePending()
	return p.spec, p.diags
}

func (p *parser) takePending() []string {
	out := p.pending
	p.pending = nil
	return out
}

func (p *parser) def() *Def {
	if p.cur == discardDef {
		return &p.discard
	}
	return &p.spec.Defs[p.cur]
}

func (p *parser) errorf(start, end Pos, format string, args ...any) {
	if end.Col <= start.Col {
		end = Pos{Line: start.Line, Col: start.Col + 1}
	}
	p.diags = append(p.diags, Diagnostic{
		Path:    p.spec.Path,
		Line:    start.Line,
		Col:     start.Col,
		EndCol:  end.Col,
		Message: fmt.Sprintf(format, args...),
		Source:  p.spec.Line(start.Line),
	})
}

// errorHere reports at the scanner's position, naming what was found there.
func (p *parser) errorHere(sc *scanner, want string) {
	pos := sc.pos()
	if sc.done() {
		p.errorf(pos, pos, "%s, found end of line", want)
		return
	}
	p.errorf(pos, pos, "%s, found `%c`", want, sc.peek())
}

func (p *parser) parseLine(idx int, raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}
	if strings.HasPrefix(trimmed, commentPrefix) {
		p.pending = append(p.pending, trimmed)
		return
	}

	sc := newScanner(idx, raw)
	indented := raw[0] == ' ' || raw[0] == '\t'
	sc.skipSpace()

	if !indented {
		if sc.peek() != '.' {
			p.errorHere(sc, "expected `.struct` or `.enum`")
			p.cur = discardDef
			p.discard = Def{}
			return
		}
		p.parseHeader(sc)
		return
	}

	if p.cur == noDef {
		pos := sc.pos()
		p.errorf(pos, Pos{Line: pos.Line, Col: pos.Col + toUint32(len([]rune(trimmed)))}, "member outside of a definition")
		return
	}
	p.parseMember(sc)
}

func (p *parser) parseHeader(sc *scanner) {
	start := sc.pos()
	sc.next()
	p.cur = discardDef
	p.discard = Def{}

	kind, kpos, kend, ok := sc.ident()
	if !ok || (kind != KindStruct && kind != KindEnum) {
		if ok {
			p.errorf(kpos, kend, "unknown definition kind `%s`, expected `struct` or `enum`", kind)
		} else {
			p.errorHere(sc, "expected `struct` or `enum` after `.`")
		}
		return
	}
	p.discard.Kind = kind

	if !sc.skipSpace() {
		p.errorHere(sc, "expected space after `."+kind+"`")
		return
	}
	name, _, end, ok := sc.ident()
	if !ok {
		p.errorHere(sc, "expected definition name")
		return
	}

	var params []Param
	sc.skipSpace()
	if sc.accept('[') {
		for {
			sc.skipSpace()
			pname, ppos, pend, ok := sc.ident()
			if !ok {
				p.errorHere(sc, "expected type parameter name")
				return
			}
			params = append(params, Param{Name: pname, Pos: ppos, End: pend})
			sc.skipSpace()
			if sc.accept(',') {
				continue
			}
			if sc.accept(']') {
				end = sc.pos()
				break
			}
			p.errorHere(sc, "expected `,` or `]`")
			return
		}
	}

	sc.skipSpace()
	if !sc.done() {
		p.errorHere(sc, "expected end of line")
		return
	}

	p.spec.Defs = append(p.spec.Defs, Def{
		Kind:     kind,
		Name:     name,
		Params:   params,
		Pos:      start,
		End:      end,
		Comments: p.takePending(),
	})
	p.cur = len(p.spec.Defs) - 1
}

func (p *parser) parseMember(sc *scanner) {
	def := p.def()
	start := sc.pos()
	m := Member{Pos: start, Comments: p.takePending()}

	if def.Kind == KindStruct {
		name, _, _, ok := sc.ident()
		if !ok {
			p.errorHere(sc, "expected property name")
			return
		}
		sc.skipSpace()
		if !sc.accept(':') {
			p.errorHere(sc, "expected `:` after property name")
			return
		}
		sc.skipSpace()
		m.Name = name
	}

	t, ok := p.parseType(sc)
	if !ok {
		return
	}
	sc.skipSpace()
	if !sc.done() {
		p.errorHere(sc, "expected end of line")
		return
	}
	m.Type = t
	m.End = t.End
	def.Members = append(def.Members, m)
}

func (p *parser) parseType(sc *scanner) (TypeExpr, bool) {
	name, pos, end, ok := sc.ident()
	if !ok {
		p.errorHere(sc, "expected type name")
		return TypeExpr{}, false
	}
	t := TypeExpr{Name: name, Pos: pos, End: end}

	save := sc.off
	sc.skipSpace()
	if !sc.accept('[') {
		sc.off = save
		return t, true
	}
	for {
		sc.skipSpace()
		arg, ok := p.parseType(sc)
		if !ok {
			return t, false
		}
		t.Args = append(t.Args, arg)
		sc.skipSpace()
		if sc.accept(',') {
			continue
		}
		if sc.accept(']') {
			t.End = sc.pos()
			return t, true
		}
		p.errorHere(sc, "expected `,` or `]`")
		return t, false
	}
}

type scanner struct {
	runes []rune
	off   int
	line  int
}

func newScanner(line int, text string) *scanner {
	return &scanner{runes: []rune(text), line: line}
}

func (s *scanner) pos() Pos {
	return makePos(s.line, s.off)
}

func (s *scanner) done() bool {
	return s.off >= len(s.runes)
}

func (s *scanner) peek() rune {
	if s.done() {
		return 0
	}
	return s.runes[s.off]
}

func (s *scanner) next() {
	if !s.done() {
		s.off++
	}
}

func (s *scanner) accept(r rune) bool {
	if s.peek() == r && !s.done() {
		s.off++
		return true
	}
	return false
}

// skipSpace reports whether any whitespace was skipped.
func (s *scanner) skipSpace() bool {
	start := s.off
	for !s.done() && (s.runes[s.off] == ' ' || s.runes[s.off] == '\t') {
		s.off++
	}
	return s.off > start
}

func (s *scanner) ident() (name string, start, end Pos, ok bool) {
	start = s.pos()
	if s.done() || !isIdentStart(s.runes[s.off]) {
		return "", start, start, false
	}
	from := s.off
	for !s.done() && isIdentPart(s.runes[s.off]) {
		s.off++
	}
	return source.Ident(string(s.runes[from:s.off])), start, s.pos(), true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
