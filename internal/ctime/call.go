package ctime

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/typeprops"
	"github.com/funvibe/tycore/internal/types"
)

// evalCall implements spec §4.3's Call semantics: extend a closure's
// captured environment with evaluated arguments (and defaults for
// missing ones), or hand evaluated arguments to a builtin's
// implementation.
func (e *Evaluator) evalCall(n *ir.CallExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	if pe, ok := n.Callee.(*ir.PropertyExpr); ok && (pe.Property == "extends" || pe.Property == "annotation") {
		if v, d, handled := e.evalTypePropertyCall(n, pe, tenv, cenv); handled {
			return v, d
		}
	}

	callee, d := e.Eval(n.Callee, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	args := make([]tyenv.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, d := e.Eval(a.Value, tenv, cenv)
		if d != nil {
			return tyenv.Value{}, d
		}
		if a.Spread {
			arr, ok := v.Raw.(*tyenv.ArrayValue)
			if !ok {
				return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrSpreadMustBeArray, a.Value.GetToken(), "spread argument is not an array")
			}
			args = append(args, arr.Elements...)
			continue
		}
		args = append(args, v)
	}

	switch fn := callee.Raw.(type) {
	case *tyenv.Closure:
		return e.applyClosure(fn, args)
	case *tyenv.Builtin:
		v, err := fn.Impl(args)
		if err != nil {
			if bd, ok := err.(*BuiltinError); ok {
				return tyenv.Value{}, diagnostics.NewError(bd.Code, n.Tok, bd.Msg)
			}
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, n.Tok, err.Error())
		}
		return v, nil
	default:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrNonCallable, n.Tok, "callee is not callable at compile time")
	}
}

// evalTypePropertyCall implements spec §4.4's parameterized reflective
// properties, `.extends(U)` and `.annotation(A)`: unlike the rest of the
// property table, these take an argument, so they are resolved as a call
// form rather than through an ordinary property-then-call. handled is
// false when the receiver did not evaluate to a Type value, so the
// caller falls back to the ordinary call path (e.g. a record field that
// happens to be named "extends").
func (e *Evaluator) evalTypePropertyCall(n *ir.CallExpr, pe *ir.PropertyExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic, bool) {
	obj, d := e.Eval(pe.Object, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d, true
	}
	t, ok := obj.Raw.(types.Type)
	if !ok {
		return tyenv.Value{}, nil, false
	}
	if len(n.Args) != 1 || n.Args[0].Spread {
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrArity, n.Tok,
			pe.Property+" requires exactly one argument"), true
	}
	arg, d := e.Eval(n.Args[0].Value, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d, true
	}
	u, ok := arg.Raw.(types.Type)
	if !ok {
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, n.Tok,
			pe.Property+"'s argument must be a Type value"), true
	}

	if pe.Property == "extends" {
		return boolValue(typeprops.Extends(t, u)), nil, true
	}
	ann, found := typeprops.Annotation(t, u)
	if !found {
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}, nil, true
	}
	return tyenv.Value{Raw: ann.Type, Type: types.Primitive{Name: types.TypeType}}, nil, true
}

// applyClosure extends the closure's captured environments with a fresh
// child scope binding each parameter, filling in defaults for missing
// trailing arguments, then evaluates the body there.
func (e *Evaluator) applyClosure(fn *tyenv.Closure, args []tyenv.Value) (tyenv.Value, *diagnostics.Diagnostic) {
	childT := fn.TypeEnv.Extend()
	childC := fn.ComptimeEnv.Extend()

	// Desugared generic markers (spec §4.5.3's `T: Type = typeOf(x)`) never
	// consume a positional call argument — the surface call elides them
	// entirely. Bind the real parameters first, then each marker from its
	// synthesized default, which refers back to the parameter it names.
	markers := ir.GenericMarkerNames(fn.Node)
	params := fn.Node.Params

	argIdx := 0
	for _, p := range params {
		if markers[p.Name] {
			continue
		}
		if p.Rest {
			rest := &tyenv.ArrayValue{}
			if argIdx < len(args) {
				rest.Elements = append(rest.Elements, args[argIdx:]...)
			}
			childC.DefineEvaluated(p.Name, tyenv.Value{Raw: rest})
			argIdx = len(args)
			continue
		}
		if argIdx < len(args) {
			childC.DefineEvaluated(p.Name, args[argIdx])
			argIdx++
			continue
		}
		if p.Default != nil {
			childC.Define(p.Name, p.Default, childT, childC)
			continue
		}
		childC.DefineUnavailable(p.Name)
	}
	for _, p := range params {
		if markers[p.Name] {
			childC.Define(p.Name, p.Default, childT, childC)
		}
	}

	return e.Eval(fn.Node.Body, childT, childC)
}

// CallClosure is the exported entry point the checker (C6) uses when it
// needs the evaluator to run a closure body it has already located (e.g.
// for the recursive-function end-to-end scenario in spec §8).
func (e *Evaluator) CallClosure(fn *tyenv.Closure, args []tyenv.Value) (tyenv.Value, *diagnostics.Diagnostic) {
	return e.applyClosure(fn, args)
}
