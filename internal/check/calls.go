package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// checkCall implements spec §4.5.4: the callee's type is resolved to one
// or more candidate signatures (a bare Function is one candidate; an
// Intersection of Functions is an overload set). With no union-typed
// argument, candidates are tried in declaration order and the first
// whole-argument match wins — spec §9's Open Question decision. When an
// argument is a union, the union is distributed member-by-member across
// the candidates (cartesianArgTypes) and the call's type becomes the
// union of every matching signature's return type, rather than a single
// signature accepting the whole union at once. comptimeOnly/comptimeValue
// propagate per spec §4.5.1/§7's rules.
func (c *Checker) checkCall(n *ir.CallExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	if pe, ok := n.Callee.(*ir.PropertyExpr); ok {
		if info, handled := c.checkTypePropertyCall(n, pe, tenv, cenv); handled {
			return info
		}
		if info, handled := c.checkGenericArrayMethodCall(n, pe, tenv, cenv); handled {
			return info
		}
	}

	calleeInfo := c.checkExpr(n.Callee, tenv, cenv, nil)

	isAssert := false
	if id, ok := n.Callee.(*ir.Identifier); ok && id.Name == "assert" {
		isAssert = true
	}

	candidates := callCandidates(calleeInfo.Type)
	if len(candidates) == 0 {
		c.Diags.Addf(diagnostics.ErrNonCallable, n.Tok, "%s is not callable", calleeInfo.Type.String())
		return ExprInfo{Type: types.NeverT()}
	}
	// Prelude built-ins carry the bare placeholder type Function{}: their
	// arguments are not matched against a signature, and the call takes the
	// type of its compile-time value when one is computed, else Unknown.
	untypedBuiltin := len(candidates) == 1 && candidates[0].ReturnType == nil && len(candidates[0].Params) == 0

	argInfos := make([]ExprInfo, len(n.Args))
	for i, a := range n.Args {
		var argExpected types.Type
		if !a.Spread && len(candidates) == 1 {
			if params := runtimeParams(candidates[0]); i < len(params) {
				argExpected = params[i].Type
			}
		}
		argInfos[i] = c.checkExpr(a.Value, tenv, cenv, argExpected)
		if a.Spread {
			if _, ok := types.Unwrap(argInfos[i].Type).(types.Array); !ok {
				c.Diags.Add(diagnostics.NewError(diagnostics.ErrSpreadMustBeArray, a.Value.GetToken(), "spread argument must be an array"))
			}
		}
	}

	var chosen *types.Function
	var returnType types.Type
	if untypedBuiltin {
		chosen = &candidates[0]
		returnType = types.UnknownT()
	}

	if len(candidates) > 1 && !hasSpreadArg(n.Args) {
		if combos, ok := cartesianArgTypes(argInfos); ok {
			var matchedReturns []types.Type
			for _, combo := range combos {
				for i := range candidates {
					if argsMatch(candidates[i], n.Args, combo) {
						matchedReturns = append(matchedReturns, candidates[i].ReturnType)
						break
					}
				}
			}
			if len(matchedReturns) == len(combos) {
				chosen = &candidates[0]
				returnType = types.NewUnion(matchedReturns...)
			}
		}
	}

	if chosen == nil {
		for i := range candidates {
			if argsMatch(candidates[i], n.Args, typesOf(argInfos)) {
				chosen = &candidates[i]
				returnType = chosen.ReturnType
				break
			}
		}
	}
	if chosen == nil {
		if len(candidates) == 1 {
			chosen = &candidates[0]
			returnType = chosen.ReturnType
			c.Diags.Addf(diagnostics.ErrArity, n.Tok,
				"call does not match signature %s", chosen.String())
		} else {
			c.Diags.Addf(diagnostics.ErrNoMatchingOverload, n.Tok,
				"no overload of %s matches this call", calleeInfo.Type.String())
			return ExprInfo{Type: types.NeverT()}
		}
	}

	returnComptimeOnly := types.ContainsTypeType(returnType)
	comptimeOnly := isAssert || calleeInfo.ComptimeOnly || returnComptimeOnly
	for _, ai := range argInfos {
		if ai.ComptimeOnly {
			comptimeOnly = true
		}
	}

	info := ExprInfo{Type: returnType, ComptimeOnly: comptimeOnly}
	if comptimeOnly {
		v, d := c.Eval.Eval(n, tenv, cenv)
		if d != nil {
			c.Diags.Add(d)
		} else {
			info.ComptimeValue = &v
			if untypedBuiltin {
				info.Type = v.Type
			}
		}
		return info
	}

	allHaveValues := calleeInfo.ComptimeValue != nil
	for _, ai := range argInfos {
		if ai.ComptimeValue == nil {
			allHaveValues = false
		}
	}
	if allHaveValues {
		info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		if untypedBuiltin && info.ComptimeValue != nil {
			info.Type = info.ComptimeValue.Type
		}
	}
	return info
}

// callCandidates extracts the signature(s) a call against t may target.
func callCandidates(t types.Type) []types.Function {
	switch u := types.Unwrap(t).(type) {
	case types.Function:
		return []types.Function{u}
	case types.Intersection:
		var out []types.Function
		for _, m := range u.Types {
			if f, ok := types.Unwrap(m).(types.Function); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}

// runtimeParams drops the synthesized type parameters spec §4.5.3's
// generic desugaring introduces: surface call syntax never supplies an
// argument for them, so they play no part in argument matching.
func runtimeParams(f types.Function) []types.ParamInfo {
	out := make([]types.ParamInfo, 0, len(f.Params))
	for _, p := range f.Params {
		if !p.IsTypeParam {
			out = append(out, p)
		}
	}
	return out
}

// argsMatch reports whether args, typed as argTypes, satisfy f's runtime
// parameter list. A spread argument (fixed-tuple or variadic) makes the
// remaining arity unknowable at check time, so only the non-spread
// positional prefix is verified once one is seen.
func argsMatch(f types.Function, args []ir.Arg, argTypes []types.Type) bool {
	params := runtimeParams(f)
	rest, hasRest := restParam(params)

	for i, a := range args {
		if a.Spread {
			return true
		}
		if i >= len(params) {
			if !hasRest {
				return false
			}
			if !types.Subtype(argTypes[i], restElementType(rest.Type)) {
				return false
			}
			continue
		}
		if params[i].Rest {
			if !types.Subtype(argTypes[i], restElementType(params[i].Type)) {
				return false
			}
			continue
		}
		if !types.Subtype(argTypes[i], params[i].Type) {
			return false
		}
	}

	required := 0
	for _, p := range params {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	return len(args) >= required
}

func typesOf(argInfos []ExprInfo) []types.Type {
	out := make([]types.Type, len(argInfos))
	for i, ai := range argInfos {
		out[i] = ai.Type
	}
	return out
}

func hasSpreadArg(args []ir.Arg) bool {
	for _, a := range args {
		if a.Spread {
			return true
		}
	}
	return false
}

// argUnionMembers decomposes t for per-member overload matching (spec
// §4.5.4): a bare type is its own single member, a union decomposes into
// its flattened members.
func argUnionMembers(t types.Type) []types.Type {
	if u, ok := types.Unwrap(t).(types.Union); ok {
		return u.Types
	}
	return []types.Type{t}
}

// cartesianArgTypes distributes each union-typed argument over its
// members and returns every combination of per-argument member types,
// so that overload resolution can match a union argument against
// whichever signature accepts each of its variants individually rather
// than requiring one signature to accept the whole union. ok is false
// when no argument is a union, signaling the caller to fall back to
// ordinary single-signature matching.
func cartesianArgTypes(argInfos []ExprInfo) (combos [][]types.Type, ok bool) {
	memberLists := make([][]types.Type, len(argInfos))
	hasUnion := false
	for i, ai := range argInfos {
		members := argUnionMembers(ai.Type)
		if len(members) > 1 {
			hasUnion = true
		}
		memberLists[i] = members
	}
	if !hasUnion {
		return nil, false
	}

	combos = [][]types.Type{{}}
	for _, members := range memberLists {
		var next [][]types.Type
		for _, combo := range combos {
			for _, m := range members {
				next = append(next, append(append([]types.Type{}, combo...), m))
			}
		}
		combos = next
	}
	return combos, true
}

func restParam(params []types.ParamInfo) (types.ParamInfo, bool) {
	if n := len(params); n > 0 && params[n-1].Rest {
		return params[n-1], true
	}
	return types.ParamInfo{}, false
}

func restElementType(t types.Type) types.Type {
	a, ok := types.Unwrap(t).(types.Array)
	if !ok {
		return types.UnknownT()
	}
	members := make([]types.Type, len(a.Elements))
	for i, e := range a.Elements {
		members[i] = e.Type
	}
	return types.NewUnion(members...)
}

// genericArrayMethods is the set spec §4.5.4 names as receiving a
// generic-return post-pass: the overall call's result depends on the
// callback's actually-inferred return type rather than a fixed
// signature, so these bypass the ordinary overload-matching path above.
var genericArrayMethods = map[string]bool{
	"map": true, "flatMap": true, "filter": true, "find": true,
	"findIndex": true, "reduce": true, "some": true, "every": true, "flat": true,
}

// checkGenericArrayMethodCall handles a call of the form
// `arrayExpr.method(callback, ...)` for the generic-return set, handled
// to true only when the receiver actually is an array; otherwise it
// returns handled=false so the ordinary call path (e.g. a record field
// named "map") takes over.
func (c *Checker) checkGenericArrayMethodCall(n *ir.CallExpr, pe *ir.PropertyExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (ExprInfo, bool) {
	if !genericArrayMethods[pe.Property] {
		return ExprInfo{}, false
	}
	objInfo := c.checkExpr(pe.Object, tenv, cenv, nil)
	arr, ok := types.Unwrap(objInfo.Type).(types.Array)
	if !ok {
		return ExprInfo{}, false
	}
	elem := restElementType(arr)

	if len(n.Args) == 0 || n.Args[0].Spread {
		c.Diags.Addf(diagnostics.ErrArity, n.Tok, "%s requires a callback argument", pe.Property)
		return ExprInfo{Type: types.NeverT()}, true
	}

	if pe.Property == "flat" {
		if inner, ok := types.Unwrap(elem).(types.Array); ok {
			return ExprInfo{Type: inner}, true
		}
		return ExprInfo{Type: arr}, true
	}

	var cbReturn types.Type
	if pe.Property == "reduce" {
		acc := elem
		if len(n.Args) > 1 {
			initInfo := c.checkExpr(n.Args[1].Value, tenv, cenv, nil)
			acc = initInfo.Type
		}
		cbExpected := types.Function{Params: []types.ParamInfo{{Name: "acc", Type: acc}, {Name: "cur", Type: elem}}, ReturnType: acc}
		cbInfo := c.checkExpr(n.Args[0].Value, tenv, cenv, cbExpected)
		if fn, ok := asFunctionType(cbInfo.Type); ok && fn.ReturnType != nil {
			cbReturn = fn.ReturnType
		} else {
			cbReturn = acc
		}
		return ExprInfo{Type: cbReturn}, true
	}

	wantBoolean := pe.Property == "filter" || pe.Property == "find" || pe.Property == "findIndex" ||
		pe.Property == "some" || pe.Property == "every"
	var cbExpectedReturn types.Type
	if wantBoolean {
		cbExpectedReturn = types.Primitive{Name: types.Boolean}
	}
	cbExpected := types.Function{Params: []types.ParamInfo{{Name: "x", Type: elem}}, ReturnType: cbExpectedReturn}
	cbInfo := c.checkExpr(n.Args[0].Value, tenv, cenv, cbExpected)
	if fn, ok := asFunctionType(cbInfo.Type); ok && fn.ReturnType != nil {
		cbReturn = fn.ReturnType
	} else {
		cbReturn = types.UnknownT()
	}

	var resultType types.Type
	switch pe.Property {
	case "map":
		resultType = types.Array{Elements: []types.ArrayElement{{Type: cbReturn}}}
	case "flatMap":
		if inner, ok := types.Unwrap(cbReturn).(types.Array); ok {
			resultType = inner
		} else {
			resultType = types.Array{Elements: []types.ArrayElement{{Type: cbReturn}}}
		}
	case "filter":
		resultType = arr
	case "find":
		resultType = types.NewUnion(elem, types.Primitive{Name: types.Undefined})
	case "findIndex":
		resultType = types.Primitive{Name: types.Number}
	case "some", "every":
		resultType = types.Primitive{Name: types.Boolean}
	}
	return ExprInfo{Type: resultType}, true
}
