package erase

import (
	"github.com/funvibe/tycore/internal/check"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// Expr lowers one expression (spec §4.6's per-construct rules). When the
// checker recorded a runtime-usable comptimeValue for expr, that value
// is inlined as a literal/constructor tree in place of the original
// construct — this subsumes erasing type-reflection property accesses,
// since those are always comptime-only and therefore never reach here
// without either inlining or having already caused their enclosing
// declaration to be dropped.
func Expr(c *check.Checker, expr ir.Expr) ir.Expr {
	if expr == nil {
		return nil
	}
	if info, ok := c.ExprType(expr); ok && info.ComptimeValue != nil && runtimeUsable(info.Type) {
		if inlined, ok := inlineValue(expr, *info.ComptimeValue); ok {
			return inlined
		}
	}

	switch n := expr.(type) {
	case *ir.Literal, *ir.Identifier, *ir.TypeRefExpr:
		return n

	case *ir.BinaryExpr:
		return &ir.BinaryExpr{Tok: n.Tok, Op: n.Op, Left: Expr(c, n.Left), Right: Expr(c, n.Right)}

	case *ir.UnaryExpr:
		return &ir.UnaryExpr{Tok: n.Tok, Op: n.Op, Operand: Expr(c, n.Operand)}

	case *ir.CallExpr:
		return eraseCall(c, n)

	case *ir.PropertyExpr:
		return &ir.PropertyExpr{Tok: n.Tok, Object: Expr(c, n.Object), Property: n.Property}

	case *ir.IndexExpr:
		return &ir.IndexExpr{Tok: n.Tok, Object: Expr(c, n.Object), Index: Expr(c, n.Index)}

	case *ir.Lambda:
		return eraseLambda(c, n)

	case *ir.ConditionalExpr:
		return eraseConditional(c, n)

	case *ir.RecordExpr:
		fields := make([]ir.RecordField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ir.RecordField{Name: f.Name, Value: Expr(c, f.Value), Spread: f.Spread}
		}
		return &ir.RecordExpr{Tok: n.Tok, Fields: fields}

	case *ir.ArrayExpr:
		elems := make([]ir.ArrayElementExpr, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = ir.ArrayElementExpr{Value: Expr(c, e.Value), Spread: e.Spread}
		}
		return &ir.ArrayExpr{Tok: n.Tok, Elements: elems}

	case *ir.MatchExpr:
		arms := make([]ir.MatchArm, len(n.Arms))
		for i, a := range n.Arms {
			var guard ir.Expr
			if a.Guard != nil {
				guard = Expr(c, a.Guard)
			}
			arms[i] = ir.MatchArm{Pattern: a.Pattern, Guard: guard, Body: Expr(c, a.Body)}
		}
		return &ir.MatchExpr{Tok: n.Tok, Scrutinee: Expr(c, n.Scrutinee), Arms: arms}

	case *ir.ThrowExpr:
		return &ir.ThrowExpr{Tok: n.Tok, Value: Expr(c, n.Value)}

	case *ir.AwaitExpr:
		return &ir.AwaitExpr{Tok: n.Tok, Value: Expr(c, n.Value)}

	case *ir.TemplateExpr:
		parts := make([]ir.TemplatePart, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = ir.TemplatePart{Literal: p.Literal, Expr: Expr(c, p.Expr)}
		}
		return &ir.TemplateExpr{Tok: n.Tok, Parts: parts}

	case *ir.BlockExpr:
		var stmts []ir.Decl
		for _, s := range n.Stmts {
			if ed, keep := Decl(c, s); keep {
				stmts = append(stmts, ed)
			}
		}
		return &ir.BlockExpr{Tok: n.Tok, Stmts: stmts, Result: Expr(c, n.Result)}

	default:
		return expr
	}
}

// eraseCall drops arguments that were type parameters at the call site
// (spec §4.6: "filter out arguments whose type is Type or a
// BoundedType"). A spread argument's type is an array type, which
// isTypeValueArg never matches, so spread arguments are always kept.
func eraseCall(c *check.Checker, n *ir.CallExpr) *ir.CallExpr {
	args := make([]ir.Arg, 0, len(n.Args))
	for _, a := range n.Args {
		if info, ok := c.ExprType(a.Value); ok && isTypeValueArg(info.Type) {
			continue
		}
		args = append(args, ir.Arg{Value: Expr(c, a.Value), Spread: a.Spread})
	}
	return &ir.CallExpr{Tok: n.Tok, Callee: Expr(c, n.Callee), Args: args}
}

func isTypeValueArg(t types.Type) bool {
	u := types.Unwrap(t)
	if p, ok := u.(types.Primitive); ok && p.Name == types.TypeType {
		return true
	}
	_, ok := u.(types.BoundedType)
	return ok
}

// eraseLambda drops desugared generic-marker parameters and every
// annotation (spec §4.6's Lambdas rule), keeping the async flag.
func eraseLambda(c *check.Checker, n *ir.Lambda) *ir.Lambda {
	markers := ir.GenericMarkerNames(n)
	params := make([]ir.LambdaParam, 0, len(n.Params))
	for _, p := range n.Params {
		if markers[p.Name] {
			continue
		}
		ep := ir.LambdaParam{Name: p.Name, Optional: p.Optional, Rest: p.Rest}
		if p.Default != nil {
			ep.Default = Expr(c, p.Default)
		}
		params = append(params, ep)
	}
	return &ir.Lambda{Tok: n.Tok, Params: params, Body: Expr(c, n.Body), Async: n.Async}
}

// eraseConditional keeps only the taken branch once the checker recorded
// a comptimeValue for the condition (spec §4.6's dead-branch rule); the
// untaken branch is dropped outright rather than merely left unerased.
func eraseConditional(c *check.Checker, n *ir.ConditionalExpr) ir.Expr {
	if info, ok := c.ExprType(n.Condition); ok && info.ComptimeValue != nil {
		if b, isBool := (*info.ComptimeValue).Raw.(bool); isBool {
			if b {
				return Expr(c, n.Then)
			}
			return Expr(c, n.Else)
		}
	}
	return &ir.ConditionalExpr{
		Tok:       n.Tok,
		Condition: Expr(c, n.Condition),
		Then:      Expr(c, n.Then),
		Else:      Expr(c, n.Else),
	}
}

// runtimeUsable implements spec §4.6's structural rule: Type, Void,
// unbound TypeVar, BoundedType, Keyof, and IndexedAccess are non-runtime;
// every other form is runtime-usable when every component it mentions is.
func runtimeUsable(t types.Type) bool {
	switch v := types.Unwrap(t).(type) {
	case types.Primitive:
		return v.Name != types.TypeType && v.Name != types.Void
	case types.BoundedType, types.Keyof, types.IndexedAccess:
		return false
	case types.TypeVar:
		return v.Bound != nil && runtimeUsable(v.Bound)
	case types.Literal:
		return true
	case types.Record:
		for _, f := range v.Fields {
			if !runtimeUsable(f.Type) {
				return false
			}
		}
		if v.IndexType != nil && !runtimeUsable(v.IndexType) {
			return false
		}
		return true
	case types.Array:
		for _, e := range v.Elements {
			if !runtimeUsable(e.Type) {
				return false
			}
		}
		return true
	case types.Function:
		for _, p := range v.Params {
			if !p.IsTypeParam && !runtimeUsable(p.Type) {
				return false
			}
		}
		return runtimeUsable(v.ReturnType)
	case types.Union:
		for _, m := range v.Types {
			if !runtimeUsable(m) {
				return false
			}
		}
		return true
	case types.Intersection:
		for _, m := range v.Types {
			if !runtimeUsable(m) {
				return false
			}
		}
		return true
	case types.Branded:
		return runtimeUsable(v.Base)
	case types.ThisType:
		return true
	default:
		return false
	}
}

// inlineValue reconstructs a literal/constructor expression tree from a
// compile-time value (spec §4.6: "scalars become literal nodes; arrays
// and records become constructor nodes; closures cannot be inlined").
// tok supplies the source position for the synthesized nodes, since the
// value itself carries none.
func inlineValue(at ir.Expr, v tyenv.Value) (ir.Expr, bool) {
	tok := at.GetToken()
	switch raw := v.Raw.(type) {
	case nil:
		if isVoidOrNull(v.Type) {
			return &ir.Literal{Tok: tok, Base: literalNilBase(v.Type)}, true
		}
		return nil, false
	case int64:
		return &ir.Literal{Tok: tok, Base: ir.LitInt, Raw: raw}, true
	case float64:
		return &ir.Literal{Tok: tok, Base: ir.LitFloat, Raw: raw}, true
	case string:
		return &ir.Literal{Tok: tok, Base: ir.LitString, Raw: raw}, true
	case bool:
		return &ir.Literal{Tok: tok, Base: ir.LitBoolean, Raw: raw}, true
	case *tyenv.ArrayValue:
		elems := make([]ir.ArrayElementExpr, 0, len(raw.Elements))
		for _, ev := range raw.Elements {
			ee, ok := inlineValue(at, ev)
			if !ok {
				return nil, false
			}
			elems = append(elems, ir.ArrayElementExpr{Value: ee})
		}
		return &ir.ArrayExpr{Tok: tok, Elements: elems}, true
	case *tyenv.RecordValue:
		fields := make([]ir.RecordField, 0, len(raw.Order))
		for _, name := range raw.Order {
			fv, _ := raw.Get(name)
			fe, ok := inlineValue(at, fv)
			if !ok {
				return nil, false
			}
			fields = append(fields, ir.RecordField{Name: name, Value: fe})
		}
		return &ir.RecordExpr{Tok: tok, Fields: fields}, true
	default:
		// *tyenv.Closure, *tyenv.Builtin, types.Type: none are inlinable.
		return nil, false
	}
}

func isVoidOrNull(t types.Type) bool {
	p, ok := types.Unwrap(t).(types.Primitive)
	return ok && (p.Name == types.Null || p.Name == types.Undefined || p.Name == types.Void)
}

func literalNilBase(t types.Type) ir.LiteralBase {
	if p, ok := types.Unwrap(t).(types.Primitive); ok && p.Name == types.Null {
		return ir.LitNull
	}
	return ir.LitUndefined
}
