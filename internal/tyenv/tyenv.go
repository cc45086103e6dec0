// Package tyenv implements the two parallel compile-time binding
// environments spec §3.3/§4.2 describes: a type environment (declared
// types + comptime status) and a comptime environment (values +
// evaluation state), both lexically scoped with a parent-pointer chain.
//
// Grounded on the teacher's internal/evaluator/environment.go
// (Get/Set/outer parent-pointer Environment), generalized into two
// parallel chains and a lazy force-on-read cell for comptime bindings.
package tyenv

import (
	"github.com/google/uuid"

	"github.com/funvibe/tycore/internal/types"
)

// ComptimeStatus classifies a type binding's relationship to runtime
// existence (spec §3.3).
type ComptimeStatus int

const (
	Runtime ComptimeStatus = iota
	Comptime
	ComptimeOnly
)

// TypeBinding is an entry in the type environment.
type TypeBinding struct {
	Type    types.Type
	Status  ComptimeStatus
	Mutable bool // always false; spec §3.3 — kept explicit, never flipped
}

// TypeEnv is the lexically-scoped environment of declared types. Every
// frame is tagged with a UUID (mirroring the teacher's use of
// github.com/google/uuid for synthetic identifiers in internal/ext),
// available through ID(); cycle diagnostics name only the binding, not
// the frame.
type TypeEnv struct {
	id     string
	outer  *TypeEnv
	store  map[string]*TypeBinding
}

func NewTypeEnv() *TypeEnv {
	return &TypeEnv{id: uuid.NewString(), store: make(map[string]*TypeBinding)}
}

// Extend returns a new child scope; children borrow from parents and do
// not outlive them (spec §9's "cyclic lexical scopes with back-pointers"
// design note — realized here as a one-way tree, never mutated by a
// child).
func (e *TypeEnv) Extend() *TypeEnv {
	return &TypeEnv{id: uuid.NewString(), outer: e, store: make(map[string]*TypeBinding)}
}

func (e *TypeEnv) ID() string { return e.id }

// Define introduces a brand-new binding in this frame.
func (e *TypeEnv) Define(name string, b *TypeBinding) {
	e.store[name] = b
}

// Lookup walks the scope chain outward, the parent-pointer traversal spec
// §4.2 names.
func (e *TypeEnv) Lookup(name string) (*TypeBinding, bool) {
	for s := e; s != nil; s = s.outer {
		if b, ok := s.store[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupLocal only looks in this frame, used by pre-registration's
// update-in-place rule (spec §4.5.1, §9): update must never create a
// binding in the wrong scope.
func (e *TypeEnv) LookupLocal(name string) (*TypeBinding, bool) {
	b, ok := e.store[name]
	return b, ok
}
