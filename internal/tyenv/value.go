package tyenv

import (
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/types"
)

// Value is a typed compile-time value: the (raw, Type) pair spec §3.2
// defines. Pairing every value with its inferred type makes typeOf(x) a
// trivial projection (see Value.Type) and makes reflective property
// access (C5) type-aware.
type Value struct {
	Raw  any
	Type types.Type
}

// Raw payload kinds, per spec §3.2.

// ArrayValue is an ordered sequence of typed values.
type ArrayValue struct{ Elements []Value }

// RecordValue is a keyed map of raw values to typed values, plus the
// field order the Record literal/type declared (so reflection and
// display stay deterministic — map iteration order in Go is not).
type RecordValue struct {
	Order  []string
	Fields map[string]Value
}

func NewRecordValue() *RecordValue {
	return &RecordValue{Fields: make(map[string]Value)}
}

func (r *RecordValue) Set(name string, v Value) {
	if _, ok := r.Fields[name]; !ok {
		r.Order = append(r.Order, name)
	}
	r.Fields[name] = v
}

func (r *RecordValue) Get(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Closure is a captured user-defined lambda: its syntax plus the lexical
// environments in force where it was created (spec §3.2, §4.3's Call
// semantics).
type Closure struct {
	Node       *ir.Lambda
	TypeEnv    *TypeEnv
	ComptimeEnv *ComptimeEnv
}

// Builtin is a native callable distinguished only by carrying a Go
// implementation pointer, interchangeable with user Closures at apply
// sites (spec §9's "built-ins as first-class closures" design note).
type Builtin struct {
	Name string
	// Impl receives already-evaluated argument Values and either returns
	// a Value or an error message (wrapped by the caller into the
	// appropriate diagnostic).
	Impl func(args []Value) (Value, error)
}
