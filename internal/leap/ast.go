// Package leap implements the Leap spec language services used by the CLI:
// parsing, canonical formatting, cross-file checking and the standard type
// catalogue.
//
// The language is line based:
//
//	/-- comment
//	.struct person
//	    name: str
//	    tags: list[str]
//
//	.enum shape[t]
//	    circle[t]
//	    square
//
// Definitions start at column zero; members are indented.
package leap

import (
	"math"
	"strings"

	"fortio.org/safecast"
)

// Definition kinds.
const (
	KindStruct = "struct"
	KindEnum   = "enum"
)

// Pos is a 1-based line and rune column.
type Pos struct {
	Line uint32
	Col  uint32
}

// IsValid reports whether p points into a file.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func makePos(lineIdx, runeIdx int) Pos {
	return Pos{Line: toUint32(lineIdx + 1), Col: toUint32(runeIdx + 1)}
}

func toUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

// TypeExpr is a type reference such as `str` or `list[person]`.
type TypeExpr struct {
	Name string
	Args []TypeExpr
	Pos  Pos
	End  Pos
}

// String renders the expression canonically.
func (t TypeExpr) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "[" + strings.Join(args, ", ") + "]"
}

// Member is a struct property (Name set) or an enum variant (Name empty).
type Member struct {
	Name     string
	Type     TypeExpr
	Pos      Pos
	End      Pos
	Comments []string
}

// Param is a type parameter of a definition.
type Param struct {
	Name string
	Pos  Pos
	End  Pos
}

// Def is a `.struct` or `.enum` definition.
type Def struct {
	Kind     string
	Name     string
	Params   []Param
	Members  []Member
	Pos      Pos
	End      Pos
	Comments []string
}

// Spec is one parsed file.
type Spec struct {
	Path     string
	Defs     []Def
	Trailing []string
	lines    []string
}

// Line returns the source text of the 1-based line n, or "".
func (s *Spec) Line(n uint32) string {
	if n == 0 || int(n) > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}
