package leap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, path, text string) *Spec {
	t.Helper()
	spec, diags := Parse(path, text)
	require.Empty(t, diags)
	return spec
}

func messages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestCheck_Valid(t *testing.T) {
	a := mustParse(t, "a.leap", ".struct person\n    name: str\n    pet: option[animal]\n    tags: list[str]\n")
	b := mustParse(t, "b.leap", ".enum animal\n    cat\n    dog\n\n.struct cat\n\n.struct dog\n")

	assert.Empty(t, Check([]*Spec{a, b}))
}

func TestCheck_Problems(t *testing.T) {
	tests := []struct {
		name  string
		specs map[string]string
		want  []string
	}{
		{
			name:  "unknown type",
			specs: map[string]string{"a.leap": ".struct a\n    b: strr\n"},
			want:  []string{"unknown type `strr`"},
		},
		{
			name:  "duplicate property",
			specs: map[string]string{"a.leap": ".struct a\n    b: str\n    b: int\n"},
			want:  []string{"duplicate property `b` in `a`"},
		},
		{
			name:  "duplicate variant",
			specs: map[string]string{"a.leap": ".enum a\n    none\n    none\n"},
			want:  []string{"duplicate variant `none` in `a`"},
		},
		{
			name:  "duplicate parameter",
			specs: map[string]string{"a.leap": ".struct a[t, t]\n    b: t\n"},
			want:  []string{"duplicate type parameter `t`"},
		},
		{
			name:  "builtin arity",
			specs: map[string]string{"a.leap": ".struct a\n    b: list\n"},
			want:  []string{"type `list` expects 1 type argument(s), got 0"},
		},
		{
			name:  "parameter takes no arguments",
			specs: map[string]string{"a.leap": ".struct a[t]\n    b: t[str]\n"},
			want:  []string{"type `t` expects 0 type argument(s), got 1"},
		},
		{
			name:  "shadows builtin",
			specs: map[string]string{"a.leap": ".struct str\n"},
			want:  []string{"definition `str` shadows a built-in type"},
		},
		{
			name:  "redefines standard type",
			specs: map[string]string{"a.leap": ".struct option\n"},
			want:  []string{"duplicate definition `option` (defined in standard types)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var specs []*Spec
			for path, text := range tt.specs {
				specs = append(specs, mustParse(t, path, text))
			}

			assert.Equal(t, tt.want, messages(Check(specs)))
		})
	}
}

func TestCheck_DuplicateAcrossFiles(t *testing.T) {
	a := mustParse(t, "a.leap", ".struct person\n")
	b := mustParse(t, "b.leap", "\n.struct person\n")

	diags := Check([]*Spec{a, b})

	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate definition `person` (first defined at a.leap:1:1)", diags[0].Message)
	assert.Equal(t, "b.leap", diags[0].Path)
	assert.Equal(t, uint32(2), diags[0].Line)
	assert.Equal(t, ".struct person", diags[0].Source)
}
