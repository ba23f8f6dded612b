package leap

import "fmt"

// builtins maps the primitive type names to their number of type arguments.
var builtins = map[string]int{
	"str":   0,
	"int":   0,
	"float": 0,
	"bool":  0,
	"list":  1,
}

const stdPath = "<std>"

type symbol struct {
	arity int
	path  string
	pos   Pos
}

type checker struct {
	table map[string]symbol
	diags []Diagnostic
}

// Check runs the cross-file checks over specs, in order: duplicate
// definitions, duplicate members and parameters, and type references.
// Definitions from the standard catalogue are visible to every file.
func Check(specs []*Spec) []Diagnostic {
	return check(specs, nil)
}

// check is Check with extra specs whose definitions are visible to the
// others but which are not checked themselves. ParseMany passes files with
// syntax errors this way so their well-formed definitions do not turn into
// unknown types elsewhere.
func check(specs, declareOnly []*Spec) []Diagnostic {
	c := &checker{table: make(map[string]symbol)}
	for _, d := range stdSpec().Defs {
		c.table[d.Name] = symbol{arity: len(d.Params), path: stdPath, pos: d.Pos}
	}

	for _, s := range specs {
		c.declare(s)
	}
	for _, s := range declareOnly {
		for _, d := range s.Defs {
			if _, ok := c.table[d.Name]; !ok {
				c.table[d.Name] = symbol{arity: len(d.Params), path: s.Path, pos: d.Pos}
			}
		}
	}
	for _, s := range specs {
		for i := range s.Defs {
			c.checkDef(s, &s.Defs[i])
		}
	}
	return c.diags
}

func (c *checker) errorf(s *Spec, start, end Pos, format string, args ...any) {
	if end.Line != start.Line || end.Col <= start.Col {
		end = Pos{Line: start.Line, Col: start.Col + 1}
	}
	c.diags = append(c.diags, Diagnostic{
		Path:    s.Path,
		Line:    start.Line,
		Col:     start.Col,
		EndCol:  end.Col,
		Message: fmt.Sprintf(format, args...),
		Source:  s.Line(start.Line),
	})
}

func (c *checker) declare(s *Spec) {
	for _, d := range s.Defs {
		if _, ok := builtins[d.Name]; ok {
			c.errorf(s, d.Pos, d.End, "definition `%s` shadows a built-in type", d.Name)
			continue
		}
		if prev, ok := c.table[d.Name]; ok {
			if prev.path == stdPath {
				c.errorf(s, d.Pos, d.End, "duplicate definition `%s` (defined in standard types)", d.Name)
			} else {
				c.errorf(s, d.Pos, d.End, "duplicate definition `%s` (first defined at %s:%d:%d)", d.Name, prev.path, prev.pos.Line, prev.pos.Col)
			}
			continue
		}
		c.table[d.Name] = symbol{arity: len(d.Params), path: s.Path, pos: d.Pos}
	}
}

func (c *checker) checkDef(s *Spec, d *Def) {
	params := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if params[p.Name] {
			c.errorf(s, p.Pos, p.End, "duplicate type parameter `%s`", p.Name)
			continue
		}
		params[p.Name] = true
	}

	seen := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		key, what := m.Name, "property"
		if d.Kind == KindEnum {
			key, what = m.Type.Name, "variant"
		}
		if seen[key] {
			c.errorf(s, m.Pos, m.End, "duplicate %s `%s` in `%s`", what, key, d.Name)
		}
		seen[key] = true
		c.checkType(s, m.Type, params)
	}
}

func (c *checker) checkType(s *Spec, t TypeExpr, params map[string]bool) {
	want, ok := c.arity(t.Name, params)
	if !ok {
		c.errorf(s, t.Pos, t.End, "unknown type `%s`", t.Name)
	} else if want != len(t.Args) {
		c.errorf(s, t.Pos, t.End, "type `%s` expects %d type argument(s), got %d", t.Name, want, len(t.Args))
	}
	for _, a := range t.Args {
		c.checkType(s, a, params)
	}
}

func (c *checker) arity(name string, params map[string]bool) (int, bool) {
	if params[name] {
		return 0, true
	}
	if n, ok := builtins[name]; ok {
		return n, true
	}
	if sym, ok := c.table[name]; ok {
		return sym.arity, true
	}
	return 0, false
}
