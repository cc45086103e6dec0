package ir

// GenericMarkerNames detects the surface's generic-parameter desugaring:
// `<T>(x: T) => body` lowers to a regular parameter `T: Type` carrying a
// synthesized default argument `typeOf(x)`, purely to signal T's role
// downstream. Both the checker (which must not treat T as an ordinary
// optional parameter) and the compile-time evaluator (which must not
// consume a positional call argument for T) need this same structural
// test, so it lives here rather than being duplicated per package.
func GenericMarkerNames(lam *Lambda) map[string]bool {
	out := map[string]bool{}
	for _, p := range lam.Params {
		if isTypeOfMarker(p.Default) {
			out[p.Name] = true
		}
	}
	return out
}

func isTypeOfMarker(e Expr) bool {
	if e == nil {
		return false
	}
	call, ok := e.(*CallExpr)
	if !ok || len(call.Args) != 1 || call.Args[0].Spread {
		return false
	}
	id, ok := call.Callee.(*Identifier)
	if !ok || id.Name != "typeOf" {
		return false
	}
	_, ok = call.Args[0].Value.(*Identifier)
	return ok
}
