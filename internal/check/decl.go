package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// preRegister implements spec §4.5.1 step 2: when a const's initializer
// is a lambda whose every parameter and return type are annotated (and
// no parameter is a desugared type parameter — those are synthesized by
// the surface, not user-annotated), synthesize the function's Type
// before checking the body and register the name at that type, so
// recursive references inside the body resolve. Anything pre-registered
// here is later updated in place by checkConstDecl, never redefined
// (spec §9's "expose define and update as distinct operations").
func (c *Checker) preRegister(cd *ir.ConstDecl, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) {
	lam, ok := cd.Init.(*ir.Lambda)
	if !ok || !c.isFullyAnnotated(lam) {
		return
	}
	fnType, ok := c.synthesizeSignature(lam, tenv, cenv)
	if !ok {
		return
	}
	tenv.Define(cd.Name, &tyenv.TypeBinding{Type: fnType, Status: tyenv.Runtime})
	cenv.Define(cd.Name, cd.Init, tenv, cenv)
}

// isFullyAnnotated reports whether every parameter carries a type
// annotation, none is a desugared type parameter, and the lambda has a
// return type annotation — the "syntactic form is unambiguous" case
// spec §9 requires before pre-registering.
func (c *Checker) isFullyAnnotated(lam *ir.Lambda) bool {
	if lam.ReturnType == nil {
		return false
	}
	markers := genericMarkerNames(lam)
	for _, p := range lam.Params {
		if p.TypeExpr == nil {
			return false
		}
		if _, isMarker := markers[p.Name]; isMarker {
			return false
		}
	}
	return true
}

// synthesizeSignature evaluates every parameter/return annotation to
// build the lambda's Function type, without checking its body.
func (c *Checker) synthesizeSignature(lam *ir.Lambda, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (types.Function, bool) {
	params := make([]types.ParamInfo, 0, len(lam.Params))
	for _, p := range lam.Params {
		if p.TypeExpr == nil {
			return types.Function{}, false
		}
		t, d := c.evalTypeExpr(p.TypeExpr, tenv, cenv)
		if d != nil {
			return types.Function{}, false
		}
		params = append(params, types.ParamInfo{Name: p.Name, Type: t, Optional: p.Optional || p.Default != nil, Rest: p.Rest})
	}
	ret, d := c.evalTypeExpr(lam.ReturnType, tenv, cenv)
	if d != nil {
		return types.Function{}, false
	}
	return types.Function{Params: params, ReturnType: ret, Async: lam.Async}, true
}

// evalTypeExpr runs expr through C4 and requires the result to be a
// Type value (spec §4.5.1 step 1, §7's InvalidTypeExpression).
func (c *Checker) evalTypeExpr(expr ir.Expr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (types.Type, *diagnostics.Diagnostic) {
	v, d := c.Eval.Eval(expr, tenv, cenv)
	if d != nil {
		return nil, d
	}
	t, ok := v.Raw.(types.Type)
	if !ok {
		d := diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, expr.GetToken(), "type annotation did not evaluate to a Type")
		c.Diags.Add(d)
		return nil, d
	}
	return t, nil
}

// checkConstDecl implements spec §4.5.1 in full.
func (c *Checker) checkConstDecl(cd *ir.ConstDecl, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) {
	var declared types.Type
	if cd.TypeExpr != nil {
		t, d := c.evalTypeExpr(cd.TypeExpr, tenv, cenv)
		if d != nil {
			c.setDecl(cd, nil, false)
			return
		}
		declared = t
	}

	wasPreRegistered := false
	if _, ok := tenv.LookupLocal(cd.Name); ok {
		if _, isLambda := cd.Init.(*ir.Lambda); isLambda && c.isFullyAnnotated(cd.Init.(*ir.Lambda)) {
			wasPreRegistered = true
		}
	}

	info := c.checkExpr(cd.Init, tenv, cenv, declared)

	finalType := info.Type
	if declared != nil {
		if !types.Subtype(info.Type, declared) {
			c.Diags.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, cd.Tok,
				"cannot assign "+info.Type.String()+" to declared type "+declared.String()))
		}
		finalType = declared
	}

	comptimeOnly := cd.Comptime || info.ComptimeOnly || types.ContainsTypeType(finalType)

	binding := &tyenv.TypeBinding{Type: finalType, Status: tyenv.Runtime}
	if comptimeOnly {
		binding.Status = tyenv.ComptimeOnly
	} else if info.ComptimeValue != nil {
		binding.Status = tyenv.Comptime
	}

	if wasPreRegistered {
		existing, _ := tenv.LookupLocal(cd.Name)
		*existing = *binding
	} else {
		tenv.Define(cd.Name, binding)
	}

	if comptimeOnly {
		v, d := c.Eval.Eval(cd.Init, tenv, cenv)
		if d != nil {
			c.Diags.Add(d)
			cenv.DefineUnavailable(cd.Name)
		} else {
			cenv.DefineEvaluated(cd.Name, v)
		}
	} else if !wasPreRegistered {
		cenv.Define(cd.Name, cd.Init, tenv, cenv)
	}

	c.setDecl(cd, finalType, comptimeOnly)
}
