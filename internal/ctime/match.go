package ctime

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// evalMatch implements spec §4.3's Match semantics: patterns are tried in
// order; each either rejects or produces a binding set, the body is
// evaluated with those bindings, guards must be boolean, and no match at
// all is a compile error (spec §7's PatternExhaustion).
func (e *Evaluator) evalMatch(n *ir.MatchExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	scrutinee, d := e.Eval(n.Scrutinee, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	for _, arm := range n.Arms {
		bindings, matched, d := e.matchPattern(arm.Pattern, scrutinee, tenv, cenv)
		if d != nil {
			return tyenv.Value{}, d
		}
		if !matched {
			continue
		}
		armC := cenv.Extend()
		for name, v := range bindings {
			armC.DefineEvaluated(name, v)
		}
		if arm.Guard != nil {
			g, d := e.Eval(arm.Guard, tenv, armC)
			if d != nil {
				return tyenv.Value{}, d
			}
			gb, ok := g.Raw.(bool)
			if !ok {
				return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, arm.Guard.GetToken(), "match guard must be boolean")
			}
			if !gb {
				continue
			}
		}
		return e.Eval(arm.Body, tenv, armC)
	}

	return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPatternExhaustion, n.Tok, "no match arm matched at compile time")
}

// matchPattern returns the bindings pat introduces against val, or
// matched=false when pat rejects val.
func (e *Evaluator) matchPattern(pat ir.Pattern, val tyenv.Value, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (map[string]tyenv.Value, bool, *diagnostics.Diagnostic) {
	switch p := pat.(type) {
	case *ir.WildcardPattern:
		return map[string]tyenv.Value{}, true, nil

	case *ir.LiteralPattern:
		if !literalMatches(p, val) {
			return nil, false, nil
		}
		return map[string]tyenv.Value{}, true, nil

	case *ir.TypePattern:
		tv, d := e.Eval(p.TypeExpr, tenv, cenv)
		if d != nil {
			return nil, false, d
		}
		target, ok := tv.Raw.(types.Type)
		if !ok {
			return nil, false, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, p.Tok, "type pattern operand did not evaluate to a Type")
		}
		if !types.Subtype(val.Type, target) {
			return nil, false, nil
		}
		return map[string]tyenv.Value{}, true, nil

	case *ir.BindingPattern:
		bindings := map[string]tyenv.Value{}
		if p.Nested != nil {
			nb, matched, d := e.matchPattern(p.Nested, val, tenv, cenv)
			if d != nil || !matched {
				return nil, matched, d
			}
			for k, v := range nb {
				bindings[k] = v
			}
		}
		bindings[p.Name] = val
		return bindings, true, nil

	case *ir.DestructurePattern:
		rv, ok := val.Raw.(*tyenv.RecordValue)
		if !ok {
			return nil, false, nil
		}
		bindings := map[string]tyenv.Value{}
		for _, f := range p.Fields {
			fv, ok := rv.Get(f.Name)
			if !ok {
				return nil, false, nil
			}
			if f.Nested != nil {
				nb, matched, d := e.matchPattern(f.Nested, fv, tenv, cenv)
				if d != nil {
					return nil, false, d
				}
				if !matched {
					return nil, false, nil
				}
				for k, v := range nb {
					bindings[k] = v
				}
				continue
			}
			name := f.Alias
			if name == "" {
				name = f.Name
			}
			bindings[name] = fv
		}
		return bindings, true, nil

	default:
		return nil, false, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, pat.GetToken(), "unsupported pattern kind")
	}
}

func literalMatches(p *ir.LiteralPattern, val tyenv.Value) bool {
	switch p.Base {
	case ir.LitInt, ir.LitFloat, ir.LitString, ir.LitBoolean:
		return val.Raw == p.Raw
	default:
		return val.Raw == nil
	}
}
