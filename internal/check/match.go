package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// checkMatch implements spec §4.5.5: each arm gets an independent child
// scope in which its pattern narrows the scrutinee (and any bound
// names); guards must be boolean; the overall type is the union of the
// arms' body types.
func (c *Checker) checkMatch(n *ir.MatchExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	scrutinee := c.checkExpr(n.Scrutinee, tenv, cenv, nil)

	var armTypes []types.Type
	comptimeOnly := scrutinee.ComptimeOnly
	allComptime := scrutinee.ComptimeValue != nil
	for _, arm := range n.Arms {
		armT := tenv.Extend()
		armC := cenv.Extend()

		narrowed := c.narrowPattern(arm.Pattern, n.Scrutinee, scrutinee.Type, armT, armC)
		if id, ok := n.Scrutinee.(*ir.Identifier); ok {
			if _, shadowed := armT.LookupLocal(id.Name); !shadowed {
				if b, ok := tenv.Lookup(id.Name); ok {
					nb := *b
					nb.Type = narrowed
					armT.Define(id.Name, &nb)
				}
			}
		}

		if arm.Guard != nil {
			guardInfo := c.checkExpr(arm.Guard, armT, armC, types.Primitive{Name: types.Boolean})
			if !types.Subtype(guardInfo.Type, types.Primitive{Name: types.Boolean}) {
				c.Diags.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, arm.Guard.GetToken(), "match guard must be boolean"))
			}
			if guardInfo.ComptimeOnly {
				comptimeOnly = true
			}
		}

		bodyInfo := c.checkExpr(arm.Body, armT, armC, expected)
		armTypes = append(armTypes, bodyInfo.Type)
		if bodyInfo.ComptimeOnly {
			comptimeOnly = true
		}
		if bodyInfo.ComptimeValue == nil {
			allComptime = false
		}
	}

	info := ExprInfo{Type: types.NewUnion(armTypes...), ComptimeOnly: comptimeOnly}
	if allComptime {
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

// narrowPattern binds/narrows names pat introduces into armT/armC,
// returning the narrowed type it determined for the (sub)scrutinee —
// mostly useful to callers recursing through nested patterns.
func (c *Checker) narrowPattern(pat ir.Pattern, scrutineeExpr ir.Expr, scrutineeType types.Type, armT *tyenv.TypeEnv, armC *tyenv.ComptimeEnv) types.Type {
	switch p := pat.(type) {
	case *ir.WildcardPattern:
		return scrutineeType

	case *ir.LiteralPattern:
		return narrowedLiteralType(p)

	case *ir.TypePattern:
		t, d := c.evalTypeExpr(p.TypeExpr, armT, armC)
		if d != nil {
			c.Diags.Add(d)
			return scrutineeType
		}
		return narrowUnionTo(scrutineeType, t)

	case *ir.BindingPattern:
		narrowed := scrutineeType
		if p.Nested != nil {
			narrowed = c.narrowPattern(p.Nested, scrutineeExpr, scrutineeType, armT, armC)
		}
		armT.Define(p.Name, &tyenv.TypeBinding{Type: narrowed, Status: tyenv.Runtime})
		if scrutineeExpr != nil {
			armC.Define(p.Name, scrutineeExpr, armT, armC)
		} else {
			armC.DefineUnavailable(p.Name)
		}
		return narrowed

	case *ir.DestructurePattern:
		narrowed := narrowRecordShape(scrutineeType, p)
		rec, _ := types.Unwrap(narrowed).(types.Record)
		for _, f := range p.Fields {
			name := f.Alias
			if name == "" {
				name = f.Name
			}
			var fieldType types.Type = types.UnknownT()
			if fi, ok := rec.FieldByName(f.Name); ok {
				fieldType = fi.Type
			}
			if f.Nested != nil {
				fieldType = c.narrowPattern(f.Nested, nil, fieldType, armT, armC)
			}
			armT.Define(name, &tyenv.TypeBinding{Type: fieldType, Status: tyenv.Runtime})
			armC.DefineUnavailable(name)
		}
		return narrowed

	default:
		return scrutineeType
	}
}

func narrowedLiteralType(p *ir.LiteralPattern) types.Type {
	var base types.LiteralBase
	switch p.Base {
	case ir.LitInt:
		base = types.BaseInt
	case ir.LitFloat:
		base = types.BaseFloat
	case ir.LitString:
		base = types.BaseString
	case ir.LitBoolean:
		base = types.BaseBoolean
	default:
		return types.Primitive{Name: types.Null}
	}
	return types.Literal{Value: p.Raw, Base: base}
}

// narrowUnionTo keeps, out of scrutineeType's union members (or the
// whole type, if it isn't a union), only those that are compatible with
// target — spec §4.5.5's type-pattern narrowing.
func narrowUnionTo(scrutineeType, target types.Type) types.Type {
	u, ok := types.Unwrap(scrutineeType).(types.Union)
	if !ok {
		if types.Subtype(scrutineeType, target) || types.Subtype(target, scrutineeType) {
			return target
		}
		return scrutineeType
	}
	var kept []types.Type
	for _, m := range u.Types {
		if types.Subtype(m, target) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return target
	}
	return types.NewUnion(kept...)
}

// narrowRecordShape keeps, out of a union scrutinee, only the variants
// structurally compatible with the destructure pattern's field set —
// spec §4.5.5's "destructure pattern over a union filters variants by
// field-shape compatibility": a variant is eliminated if it's missing a
// pattern field, or if a pattern field nests a literal pattern that the
// variant's field type can't hold (the discriminated-union tag idiom).
func narrowRecordShape(scrutineeType types.Type, p *ir.DestructurePattern) types.Type {
	u, ok := types.Unwrap(scrutineeType).(types.Union)
	if !ok {
		return scrutineeType
	}
	var kept []types.Type
	for _, m := range u.Types {
		r, ok := types.Unwrap(m).(types.Record)
		if !ok {
			continue
		}
		compatible := true
		for _, f := range p.Fields {
			fi, ok := r.FieldByName(f.Name)
			if !ok {
				if r.IndexType == nil {
					compatible = false
					break
				}
				continue
			}
			if lp, ok := f.Nested.(*ir.LiteralPattern); ok {
				if !types.Subtype(narrowedLiteralType(lp), fi.Type) {
					compatible = false
					break
				}
			}
		}
		if compatible {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return scrutineeType
	}
	return types.NewUnion(kept...)
}
