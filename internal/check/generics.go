package check

import "github.com/funvibe/tycore/internal/ir"

// genericMarkerNames implements spec §4.5.3's detection rule: the
// surface desugars `<T>(x: T) => body` into a regular parameter `T:
// Type` carrying a synthesized default argument `typeOf(x)`, purely to
// signal T's role to the checker. A parameter whose Default matches
// that shape is a type parameter, not an ordinary optional one. The
// structural test itself lives in internal/ir since the compile-time
// evaluator needs the exact same detection when binding call arguments.
func genericMarkerNames(lam *ir.Lambda) map[string]bool {
	return ir.GenericMarkerNames(lam)
}
