// Package ctime implements C4, the fuel-limited compile-time evaluator
// (spec §4.3): given an expression and the two tyenv environments, it
// produces a typed value or fails with a diagnostic.
//
// Grounded on the teacher's internal/evaluator/evaluator.go +
// expressions_*.go per-construct dispatch and object.go's tagged-Object
// value model, narrowed from a runtime VM to compile-time-only reduction
// over tyenv.Value (the (raw, Type) pair of spec §3.2).
package ctime

import (
	"fmt"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// Evaluator owns the single decrementing fuel integer spec §5 describes:
// one instance per compilation. Nothing resets Fuel after the Evaluator
// is built, so one budget covers every evaluation in the compilation.
type Evaluator struct {
	Fuel int

	// OnSpeculativeFailure, when set, is invoked by the checker (not by
	// Evaluator itself) whenever a speculative evaluation is swallowed,
	// per spec §9's recommended debug log.
	OnSpeculativeFailure func(*diagnostics.Diagnostic)
}

func New(fuel int) *Evaluator {
	return &Evaluator{Fuel: fuel}
}

// step decrements fuel on every recursive evaluation step; exhaustion is
// a hard compile error pointing at the site that ran out (spec §4.3,
// §8's boundary behavior).
func (e *Evaluator) step(tok token.Token) *diagnostics.Diagnostic {
	e.Fuel--
	if e.Fuel < 0 {
		return diagnostics.NewError(diagnostics.ErrFuelExhausted, tok, "compile-time evaluation ran out of fuel")
	}
	return nil
}

// Eval reduces expr in the given environments to a typed compile-time
// Value, dispatching per spec §4.3's per-construct semantics.
func (e *Evaluator) Eval(expr ir.Expr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	if d := e.step(expr.GetToken()); d != nil {
		return tyenv.Value{}, d
	}

	switch n := expr.(type) {
	case *ir.Literal:
		return literalValue(n), nil

	case *ir.Identifier:
		return e.getValue(n.Name, n.Tok, cenv)

	case *ir.BinaryExpr:
		return e.evalBinary(n, tenv, cenv)

	case *ir.UnaryExpr:
		return e.evalUnary(n, tenv, cenv)

	case *ir.CallExpr:
		return e.evalCall(n, tenv, cenv)

	case *ir.PropertyExpr:
		return e.evalProperty(n, tenv, cenv)

	case *ir.IndexExpr:
		return e.evalIndex(n, tenv, cenv)

	case *ir.ConditionalExpr:
		return e.evalConditional(n, tenv, cenv)

	case *ir.MatchExpr:
		return e.evalMatch(n, tenv, cenv)

	case *ir.RecordExpr:
		return e.evalRecord(n, tenv, cenv)

	case *ir.ArrayExpr:
		return e.evalArray(n, tenv, cenv)

	case *ir.TemplateExpr:
		return e.evalTemplate(n, tenv, cenv)

	case *ir.Lambda:
		return tyenv.Value{
			Raw:  &tyenv.Closure{Node: n, TypeEnv: tenv, ComptimeEnv: cenv},
			Type: types.Function{}, // filled in by the checker, which knows the declared/inferred signature
		}, nil

	case *ir.BlockExpr:
		return e.evalBlock(n, tenv, cenv)

	case *ir.TypeRefExpr:
		return e.getValue(n.Name, n.Tok, cenv)

	case *ir.ThrowExpr, *ir.AwaitExpr:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrNotComptime, expr.GetToken(),
			"throw/await have no compile-time semantics")

	default:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, expr.GetToken(),
			fmt.Sprintf("cannot evaluate expression of kind %T at compile time", expr))
	}
}

// getValue forces name's comptime cell, implementing the lazy
// unevaluated->evaluating->{evaluated|unavailable} transition of spec
// §3.3/§4.2. The transition mutates the cell found by ComptimeEnv.Cell,
// which is the owning scope's pointer — not a copy — so sibling lookups
// observe the cached result once this call returns.
func (e *Evaluator) getValue(name string, tok token.Token, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	cell, ok := cenv.Cell(name)
	if !ok {
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrUndefinedBinding, tok,
			fmt.Sprintf("%q is not defined", name))
	}
	switch cell.State {
	case tyenv.Evaluated:
		return cell.Value, nil
	case tyenv.Evaluating:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrCycleInComptime, tok,
			fmt.Sprintf("cycle forcing binding %q while it is still evaluating", name))
	case tyenv.Unavailable:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrNotComptime, tok,
			fmt.Sprintf("%q is not available at compile time", name))
	default: // Unevaluated
		cell.State = tyenv.Evaluating
		val, d := e.Eval(cell.Expr, cell.CapturedType, cell.CapturedComptime)
		if d != nil {
			cell.State = tyenv.Unavailable
			return tyenv.Value{}, d
		}
		cell.State = tyenv.Evaluated
		cell.Value = val
		return val, nil
	}
}

func literalValue(lit *ir.Literal) tyenv.Value {
	switch lit.Base {
	case ir.LitInt:
		return tyenv.Value{Raw: lit.Raw, Type: types.Literal{Value: lit.Raw, Base: types.BaseInt}}
	case ir.LitFloat:
		return tyenv.Value{Raw: lit.Raw, Type: types.Literal{Value: lit.Raw, Base: types.BaseFloat}}
	case ir.LitString:
		return tyenv.Value{Raw: lit.Raw, Type: types.Literal{Value: lit.Raw, Base: types.BaseString}}
	case ir.LitBoolean:
		return tyenv.Value{Raw: lit.Raw, Type: types.Literal{Value: lit.Raw, Base: types.BaseBoolean}}
	case ir.LitNull:
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Null}}
	default: // LitUndefined
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}
	}
}

func (e *Evaluator) evalBlock(n *ir.BlockExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	inner := cenv.Extend()
	innerT := tenv.Extend()
	for _, stmt := range n.Stmts {
		if cd, ok := stmt.(*ir.ConstDecl); ok {
			inner.Define(cd.Name, cd.Init, innerT, inner)
			continue
		}
		if ed, ok := stmt.(*ir.ExprDecl); ok {
			if _, d := e.Eval(ed.Expr, innerT, inner); d != nil {
				return tyenv.Value{}, d
			}
		}
	}
	if n.Result == nil {
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Void}}, nil
	}
	return e.Eval(n.Result, innerT, inner)
}
