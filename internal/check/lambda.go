package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// checkLambda implements spec §4.5.3's generic-parameter handling plus
// §4.5.2's contextual typing for unannotated parameters: it pre-binds
// any desugared type parameter as a TypeVar before checking later
// parameter annotations that mention it, fills in parameter types from
// an expected function type where the surface left them unannotated,
// and checks the body with the declared (or inferred) return type as
// its contextual type.
func (c *Checker) checkLambda(lam *ir.Lambda, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	childT := tenv.Extend()
	childC := cenv.Extend()

	expectedFn, hasExpectedFn := asFunctionType(expected)

	markers := genericMarkerNames(lam)
	for _, p := range lam.Params {
		if !markers[p.Name] {
			continue
		}
		var bound types.Type
		if p.TypeExpr != nil {
			if bt, d := c.evalTypeExpr(p.TypeExpr, childT, childC); d == nil {
				if b, ok := bt.(types.BoundedType); ok {
					bound = b.Bound
				}
			}
		}
		tv := types.TypeVar{Name: p.Name, Bound: bound}
		childT.Define(p.Name, &tyenv.TypeBinding{Type: types.BoundedType{Bound: bound}, Status: tyenv.ComptimeOnly})
		childC.DefineEvaluated(p.Name, tyenv.Value{Raw: tv, Type: types.BoundedType{Bound: bound}})
	}

	params := make([]types.ParamInfo, 0, len(lam.Params))
	for i, p := range lam.Params {
		if markers[p.Name] {
			params = append(params, types.ParamInfo{Name: p.Name, Type: types.BoundedType{}, Optional: true, IsTypeParam: true})
			continue
		}

		var pType types.Type
		if p.TypeExpr != nil {
			t, d := c.evalTypeExpr(p.TypeExpr, childT, childC)
			if d != nil {
				c.Diags.Add(d)
				pType = types.UnknownT()
			} else {
				pType = t
			}
		} else if hasExpectedFn && i < len(expectedFn.Params) {
			pType = expectedFn.Params[i].Type
		} else {
			c.Diags.Add(diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, lam.Tok,
				"parameter \""+p.Name+"\" has no type annotation and no contextual type is available"))
			pType = types.UnknownT()
		}

		childT.Define(p.Name, &tyenv.TypeBinding{Type: pType, Status: tyenv.Runtime})
		childC.DefineUnavailable(p.Name)
		params = append(params, types.ParamInfo{Name: p.Name, Type: pType, Optional: p.Optional || p.Default != nil, Rest: p.Rest})
	}

	var declaredReturn types.Type
	if lam.ReturnType != nil {
		t, d := c.evalTypeExpr(lam.ReturnType, childT, childC)
		if d != nil {
			c.Diags.Add(d)
		} else {
			declaredReturn = t
		}
	}

	bodyExpected := declaredReturn
	if bodyExpected == nil && hasExpectedFn {
		bodyExpected = expectedFn.ReturnType
	}
	bodyInfo := c.checkExpr(lam.Body, childT, childC, bodyExpected)

	returnType := bodyInfo.Type
	if declaredReturn != nil {
		if !types.Subtype(bodyInfo.Type, declaredReturn) {
			c.Diags.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, lam.Tok,
				"function body type "+bodyInfo.Type.String()+" is not assignable to declared return type "+declaredReturn.String()))
		}
		returnType = declaredReturn
	}

	fnType := types.Function{Params: params, ReturnType: returnType, Async: lam.Async}
	comptimeOnly := types.ContainsTypeType(fnType)

	val := tyenv.Value{Raw: &tyenv.Closure{Node: lam, TypeEnv: tenv, ComptimeEnv: cenv}, Type: fnType}
	var cv *tyenv.Value
	if comptimeOnly {
		cv = &val
	}
	return ExprInfo{Type: fnType, ComptimeOnly: comptimeOnly, ComptimeValue: cv}
}

// asFunctionType unwraps metadata and reports whether t is (structurally)
// a single function signature usable for contextual parameter typing.
// Intersections (overload sets) provide no single contextual signature.
func asFunctionType(t types.Type) (types.Function, bool) {
	if t == nil {
		return types.Function{}, false
	}
	f, ok := types.Unwrap(t).(types.Function)
	return f, ok
}
