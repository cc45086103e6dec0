package tyenv

import "github.com/funvibe/tycore/internal/ir"

// CellState is the three/four-state lazy binding spec §3.3/§9 describes:
// unevaluated -> evaluating -> {evaluated | unavailable}. Bindings are
// immutable once fully resolved except for this one controlled
// transition (spec §3.3).
type CellState int

const (
	Unevaluated CellState = iota
	Evaluating            // transient cycle-detection marker
	Evaluated
	Unavailable // sticky: known not to reduce at compile time
)

// ComptimeCell is one comptime binding's lazy storage. Expr/CapturedType/
// CapturedComptime are only meaningful while State == Unevaluated;
// Value is only meaningful once State == Evaluated.
type ComptimeCell struct {
	State            CellState
	Expr             ir.Expr
	CapturedType     *TypeEnv
	CapturedComptime *ComptimeEnv
	Value            Value
}

// ComptimeEnv is the lexically-scoped environment of comptime bindings,
// parallel in shape to TypeEnv (spec §3.3: "both environments support
// lexical extension... and produce identically-shaped shadow chains").
type ComptimeEnv struct {
	id    string
	outer *ComptimeEnv
	store map[string]*ComptimeCell
}

func NewComptimeEnv() *ComptimeEnv {
	return &ComptimeEnv{store: make(map[string]*ComptimeCell)}
}

func (e *ComptimeEnv) Extend() *ComptimeEnv {
	return &ComptimeEnv{outer: e, store: make(map[string]*ComptimeCell)}
}

// Define installs a brand-new unevaluated cell, capturing the
// environments in force at the declaration site.
func (e *ComptimeEnv) Define(name string, expr ir.Expr, capturedType *TypeEnv, capturedComptime *ComptimeEnv) {
	e.store[name] = &ComptimeCell{
		State:            Unevaluated,
		Expr:             expr,
		CapturedType:     capturedType,
		CapturedComptime: capturedComptime,
	}
}

// DefineEvaluated installs an already-resolved value directly (used for
// eagerly-evaluated comptimeOnly declarations, spec §4.5.1 step 5, and
// for match-arm/lambda-parameter bindings that never go through the
// unevaluated state at all).
func (e *ComptimeEnv) DefineEvaluated(name string, v Value) {
	e.store[name] = &ComptimeCell{State: Evaluated, Value: v}
}

// DefineUnavailable marks name as known not to reduce at compile time
// (e.g. a runtime lambda parameter).
func (e *ComptimeEnv) DefineUnavailable(name string) {
	e.store[name] = &ComptimeCell{State: Unavailable}
}

// Cell finds the owning scope's cell for name — the scope that actually
// holds the binding, not a child that merely looked it up — because spec
// §4.2 requires the evaluating->evaluated transition to be recorded in
// the owning scope so sibling lookups observe the cached result.
func (e *ComptimeEnv) Cell(name string) (*ComptimeCell, bool) {
	for s := e; s != nil; s = s.outer {
		if c, ok := s.store[name]; ok {
			return c, true
		}
	}
	return nil, false
}
