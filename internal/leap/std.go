package leap

import "sync"

// StdTypes is the standard type catalogue shared by every spec.
const StdTypes = `/-- Standard types available in every Leap spec.
/-- Built-in primitives: str, int, float, bool, list[t].
.struct some[t]
    value: t

.struct none

.enum option[t]
    some[t]
    none

.struct ok[t]
    value: t

.struct err[e]
    error: e

.enum result[t, e]
    ok[t]
    err[e]
`

var stdSpec = sync.OnceValue(func() *Spec {
	spec, diags := Parse(stdPath, StdTypes)
	if len(diags) > 0 {
		panic("leap: standard types do not parse: " + diags[0].Message)
	}
	return spec
})
