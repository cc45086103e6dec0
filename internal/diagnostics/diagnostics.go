// Package diagnostics implements the error-reporting contract shared by
// the type checker and the compile-time evaluator (spec §7).
//
// It follows the teacher's diagnostics.NewError(code, token, message)
// call shape one-for-one, rebuilt here because the retrieval pack's copy
// of the teacher elided the package itself while every analyzer call site
// pins its signature exactly.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/tycore/internal/token"
)

// Code enumerates the error kinds spec §7 requires the core to
// distinguish. All of them are fatal at the enclosing top-level
// declaration.
type Code string

const (
	ErrUndefinedBinding      Code = "ErrUndefinedBinding"
	ErrTypeMismatch          Code = "ErrTypeMismatch"
	ErrNonCallable           Code = "ErrNonCallable"
	ErrArity                 Code = "ErrArity"
	ErrNoMatchingOverload    Code = "ErrNoMatchingOverload"
	ErrPropertyMissing       Code = "ErrPropertyMissing"
	ErrInvalidTypeExpression Code = "ErrInvalidTypeExpression"
	ErrCycleInComptime       Code = "ErrCycleInComptime"
	ErrFuelExhausted         Code = "ErrFuelExhausted"
	ErrPatternExhaustion     Code = "ErrPatternExhaustion"
	ErrAssertionFailed       Code = "ErrAssertionFailed"
	ErrSpreadMustBeArray     Code = "ErrSpreadMustBeArray"

	// ErrNotComptime generalizes spec §4.3's "Await / throw are hard
	// errors at compile time" and §3.3's Unavailable cell state into one
	// code: it covers every construct that is unconditionally opaque to
	// the compile-time evaluator (throw, await, forcing a binding already
	// known Unavailable), none of which spec §7's closed list names
	// individually.
	ErrNotComptime Code = "ErrNotComptime"
)

// Phase identifies which subsystem raised the diagnostic. The core only
// ever reports from the "typecheck" phase (§7); C4 failures are always
// surfaced through the checker that invoked the evaluator.
type Phase string

const (
	PhaseTypecheck Phase = "typecheck"
)

// Diagnostic is a single fatal failure, carrying everything needed to
// print a one-line, tool-friendly message and to deduplicate repeats.
type Diagnostic struct {
	Phase   Phase
	Code    Code
	Token   token.Token
	Message string
}

// NewError builds a Diagnostic tagged with the typecheck phase, mirroring
// the teacher's diagnostics.NewError(code, token, message) helper.
func NewError(code Code, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Phase: PhaseTypecheck, Code: code, Token: tok, Message: message}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Token.Pos(), d.Code, d.Message)
}

// dedupKey mirrors walker.addError's key: "line:col:code".
func (d *Diagnostic) dedupKey() string {
	return fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Code)
}

// Collector accumulates diagnostics across a whole compilation, deduping
// by position+code exactly as the teacher's walker.errorSet does, so that
// a single malformed declaration does not flood the output with
// near-identical repeats.
type Collector struct {
	seen  map[string]*Diagnostic
	order []string
}

func NewCollector() *Collector {
	return &Collector{seen: make(map[string]*Diagnostic)}
}

func (c *Collector) Add(d *Diagnostic) {
	key := d.dedupKey()
	if _, ok := c.seen[key]; !ok {
		c.order = append(c.order, key)
	}
	c.seen[key] = d
}

func (c *Collector) Addf(code Code, tok token.Token, format string, args ...any) {
	c.Add(NewError(code, tok, fmt.Sprintf(format, args...)))
}

func (c *Collector) HasErrors() bool { return len(c.order) > 0 }

// All returns diagnostics in first-seen order.
func (c *Collector) All() []*Diagnostic {
	out := make([]*Diagnostic, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.seen[k])
	}
	return out
}
