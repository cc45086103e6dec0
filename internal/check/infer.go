package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// checkExpr is the single entry point every construct (and every other
// file in this package) calls through: it infers expr's ExprInfo and
// records it in the side table keyed by node identity, mirroring the
// teacher's walker writing into w.TypeMap as it recurses.
func (c *Checker) checkExpr(expr ir.Expr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	info := c.inferExpr(expr, tenv, cenv, expected)
	c.exprInfo[expr] = &ExprInfo{Type: info.Type, ComptimeOnly: info.ComptimeOnly, ComptimeValue: info.ComptimeValue}
	return info
}

func (c *Checker) inferExpr(expr ir.Expr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	switch n := expr.(type) {
	case *ir.Literal:
		return c.inferLiteral(n)
	case *ir.Identifier:
		return c.inferName(n.Name, n.Tok, tenv, cenv, false)
	case *ir.TypeRefExpr:
		return c.inferName(n.Name, n.Tok, tenv, cenv, true)
	case *ir.BinaryExpr:
		return c.inferBinary(n, tenv, cenv)
	case *ir.UnaryExpr:
		return c.inferUnary(n, tenv, cenv)
	case *ir.CallExpr:
		return c.checkCall(n, tenv, cenv, expected)
	case *ir.PropertyExpr:
		return c.checkPropertyExpr(n, tenv, cenv)
	case *ir.IndexExpr:
		return c.checkIndexExpr(n, tenv, cenv)
	case *ir.Lambda:
		return c.checkLambda(n, tenv, cenv, expected)
	case *ir.ConditionalExpr:
		return c.checkConditional(n, tenv, cenv, expected)
	case *ir.RecordExpr:
		return c.checkRecord(n, tenv, cenv, expected)
	case *ir.ArrayExpr:
		return c.checkArray(n, tenv, cenv, expected)
	case *ir.MatchExpr:
		return c.checkMatch(n, tenv, cenv, expected)
	case *ir.TemplateExpr:
		return c.checkTemplate(n, tenv, cenv)
	case *ir.BlockExpr:
		return c.checkBlockExpr(n, tenv, cenv, expected)
	case *ir.ThrowExpr:
		return c.checkThrow(n, tenv, cenv)
	case *ir.AwaitExpr:
		return c.checkAwait(n, tenv, cenv, expected)
	default:
		c.Diags.Addf(diagnostics.ErrInvalidTypeExpression, expr.GetToken(), "unsupported expression kind %T", expr)
		return ExprInfo{Type: types.NeverT()}
	}
}

func (c *Checker) inferLiteral(n *ir.Literal) ExprInfo {
	switch n.Base {
	case ir.LitInt:
		return ExprInfo{Type: types.Literal{Value: n.Raw, Base: types.BaseInt}, ComptimeValue: litValue(n)}
	case ir.LitFloat:
		return ExprInfo{Type: types.Literal{Value: n.Raw, Base: types.BaseFloat}, ComptimeValue: litValue(n)}
	case ir.LitString:
		return ExprInfo{Type: types.Literal{Value: n.Raw, Base: types.BaseString}, ComptimeValue: litValue(n)}
	case ir.LitBoolean:
		return ExprInfo{Type: types.Literal{Value: n.Raw, Base: types.BaseBoolean}, ComptimeValue: litValue(n)}
	case ir.LitNull:
		t := types.Primitive{Name: types.Null}
		v := tyenv.Value{Raw: nil, Type: t}
		return ExprInfo{Type: t, ComptimeValue: &v}
	default: // LitUndefined
		t := types.Primitive{Name: types.Undefined}
		v := tyenv.Value{Raw: nil, Type: t}
		return ExprInfo{Type: t, ComptimeValue: &v}
	}
}

func litValue(n *ir.Literal) *tyenv.Value {
	var base types.LiteralBase
	switch n.Base {
	case ir.LitInt:
		base = types.BaseInt
	case ir.LitFloat:
		base = types.BaseFloat
	case ir.LitString:
		base = types.BaseString
	case ir.LitBoolean:
		base = types.BaseBoolean
	}
	v := tyenv.Value{Raw: n.Raw, Type: types.Literal{Value: n.Raw, Base: base}}
	return &v
}

// inferName resolves an identifier's declared type from tenv, then
// attempts a speculative comptime evaluation to attach a comptimeValue
// where one is available — per spec §7 this attempt is swallowed on
// failure unless the binding itself is comptimeOnly, in which case the
// failure is a required, propagated diagnostic. asTypeRef additionally
// requires the result be a Type value (used for annotation positions).
func (c *Checker) inferName(name string, tok token.Token, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, asTypeRef bool) ExprInfo {
	binding, ok := tenv.Lookup(name)
	if !ok {
		c.Diags.Addf(diagnostics.ErrUndefinedBinding, tok, "%q is not defined", name)
		return ExprInfo{Type: types.NeverT()}
	}

	if binding.Status == tyenv.ComptimeOnly {
		v, d := c.Eval.Eval(&ir.Identifier{Tok: tok, Name: name}, tenv, cenv)
		if d != nil {
			c.Diags.Add(d)
			return ExprInfo{Type: binding.Type, ComptimeOnly: true}
		}
		if asTypeRef {
			if _, ok := v.Raw.(types.Type); !ok {
				c.Diags.Addf(diagnostics.ErrInvalidTypeExpression, tok, "%q does not denote a type", name)
			}
		}
		return ExprInfo{Type: binding.Type, ComptimeOnly: true, ComptimeValue: &v}
	}

	v, d := c.speculative(&ir.Identifier{Tok: tok, Name: name}, tenv, cenv)
	info := ExprInfo{Type: binding.Type, ComptimeOnly: false, ComptimeValue: v}
	if asTypeRef {
		if v == nil {
			if d != nil {
				c.Diags.Add(d)
			} else {
				c.Diags.Addf(diagnostics.ErrInvalidTypeExpression, tok, "%q has no compile-time value", name)
			}
		} else if _, ok := (*v).Raw.(types.Type); !ok {
			c.Diags.Addf(diagnostics.ErrInvalidTypeExpression, tok, "%q does not denote a type", name)
		}
	}
	return info
}

// speculative runs a compile-time evaluation that is not required to
// succeed (spec §7): failure is reported to OnSpeculativeFailure (if the
// checker wired one) and swallowed rather than raised as a diagnostic,
// since the expression already has a perfectly good runtime type without
// a comptimeValue attached. It still returns the diagnostic so callers
// that DO require success (e.g. a type-annotation position) can promote
// it themselves.
func (c *Checker) speculative(expr ir.Expr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (*tyenv.Value, *diagnostics.Diagnostic) {
	v, d := c.Eval.Eval(expr, tenv, cenv)
	if d != nil {
		if c.Eval.OnSpeculativeFailure != nil {
			c.Eval.OnSpeculativeFailure(d)
		}
		return nil, d
	}
	return &v, nil
}

func (c *Checker) inferBinary(n *ir.BinaryExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	left := c.checkExpr(n.Left, tenv, cenv, nil)
	right := c.checkExpr(n.Right, tenv, cenv, nil)

	boolT := types.Primitive{Name: types.Boolean}
	intT := types.Primitive{Name: types.Int}
	numeric := types.Type(types.Primitive{Name: types.Number})
	if types.Subtype(left.Type, intT) && types.Subtype(right.Type, intT) {
		numeric = intT
	}
	var result types.Type
	switch n.Op {
	case ir.OpAnd, ir.OpOr, ir.OpEq, ir.OpNotEq, ir.OpLt, ir.OpLtEq, ir.OpGt, ir.OpGtEq:
		result = boolT
	case ir.OpAdd:
		if types.Subtype(left.Type, types.Primitive{Name: types.String}) || types.Subtype(right.Type, types.Primitive{Name: types.String}) {
			result = types.Primitive{Name: types.String}
		} else {
			result = numeric
		}
	default:
		result = numeric
	}

	comptimeOnly := left.ComptimeOnly || right.ComptimeOnly
	info := ExprInfo{Type: result, ComptimeOnly: comptimeOnly}
	if left.ComptimeValue != nil && right.ComptimeValue != nil {
		if comptimeOnly {
			v, d := c.Eval.Eval(n, tenv, cenv)
			if d != nil {
				c.Diags.Add(d)
			} else {
				info.ComptimeValue = &v
			}
		} else {
			info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		}
	}
	return info
}

func (c *Checker) inferUnary(n *ir.UnaryExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	operand := c.checkExpr(n.Operand, tenv, cenv, nil)
	result := operand.Type
	if n.Op == ir.OpNot {
		result = types.Primitive{Name: types.Boolean}
	}
	info := ExprInfo{Type: result, ComptimeOnly: operand.ComptimeOnly}
	if operand.ComptimeValue != nil {
		if operand.ComptimeOnly {
			v, d := c.Eval.Eval(n, tenv, cenv)
			if d != nil {
				c.Diags.Add(d)
			} else {
				info.ComptimeValue = &v
			}
		} else {
			info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		}
	}
	return info
}

func (c *Checker) checkTemplate(n *ir.TemplateExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	allComptime := true
	for _, part := range n.Parts {
		if part.Expr == nil {
			continue
		}
		info := c.checkExpr(part.Expr, tenv, cenv, nil)
		if info.ComptimeValue == nil {
			allComptime = false
		}
	}
	info := ExprInfo{Type: types.Primitive{Name: types.String}}
	if allComptime {
		info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
	}
	return info
}

func (c *Checker) checkBlockExpr(n *ir.BlockExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	innerT := tenv.Extend()
	innerC := cenv.Extend()
	c.checkDecls(n.Stmts, innerT, innerC)
	if n.Result == nil {
		return ExprInfo{Type: types.Primitive{Name: types.Void}}
	}
	return c.checkExpr(n.Result, innerT, innerC, expected)
}

// checkThrow has no static return type of its own: spec §4.3 treats
// throw as having no compile-time semantics, and since it never resumes
// into the surrounding expression, its type unifies with anything
// (Never, like an unreachable branch).
func (c *Checker) checkThrow(n *ir.ThrowExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	c.checkExpr(n.Value, tenv, cenv, nil)
	return ExprInfo{Type: types.NeverT()}
}

// checkAwait unwraps nothing special at the type level in this core
// (no Promise<T> is modeled): its static type is the operand's type, but
// it can never carry a comptimeValue — awaiting is unconditionally a
// runtime operation (spec §4.3, ErrNotComptime).
func (c *Checker) checkAwait(n *ir.AwaitExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	info := c.checkExpr(n.Value, tenv, cenv, expected)
	return ExprInfo{Type: info.Type}
}
