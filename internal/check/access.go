package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/typeprops"
	"github.com/funvibe/tycore/internal/types"
)

// checkPropertyExpr implements spec §4.5.6's three-case dispatch: a Type
// receiver delegates to C5 (reflective properties, comptime-only unless
// typeprops.RuntimeUsable says otherwise); an array/string receiver
// consults the fixed method table; a record receiver resolves a field
// (substituting This with the record's own type first, so fluent chains
// type-check — spec §8 scenario 4) or its indexType, or fails.
func (c *Checker) checkPropertyExpr(n *ir.PropertyExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	obj := c.checkExpr(n.Object, tenv, cenv, nil)

	if types.ContainsTypeType(obj.Type) && isTypeReceiver(obj) {
		return c.checkTypeProp(n, obj, tenv, cenv)
	}

	u := types.Unwrap(obj.Type)
	isString := types.Subtype(obj.Type, types.Primitive{Name: types.String})
	if arr, ok := u.(types.Array); ok {
		if n.Property == "length" {
			return ExprInfo{Type: types.Primitive{Name: types.Number}}
		}
		if m, ok := arrayMethod(n.Property); ok {
			return ExprInfo{Type: types.SubstituteThis(m(arr), obj.Type)}
		}
	}
	if isString {
		if n.Property == "length" {
			return ExprInfo{Type: types.Primitive{Name: types.Number}}
		}
		if m, ok := stringMethod(n.Property); ok {
			return ExprInfo{Type: m}
		}
	}

	if r, ok := u.(types.Record); ok {
		if f, ok := r.FieldByName(n.Property); ok {
			ft := types.SubstituteThis(f.Type, obj.Type)
			info := ExprInfo{Type: ft, ComptimeOnly: obj.ComptimeOnly || types.ContainsTypeType(ft)}
			if obj.ComptimeValue != nil {
				if info.ComptimeOnly {
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
		if r.IndexType != nil {
			return ExprInfo{Type: types.SubstituteThis(r.IndexType, obj.Type)}
		}
	}

	c.Diags.Addf(diagnostics.ErrPropertyMissing, n.Tok, "no property %q on %s", n.Property, obj.Type.String())
	return ExprInfo{Type: types.NeverT()}
}

// isTypeReceiver reports whether obj is itself a reified Type value
// (spec §3.1's "Type : Type"), as opposed to a record/array that merely
// mentions Type somewhere in its structure.
func isTypeReceiver(obj ExprInfo) bool {
	p, ok := obj.Type.(types.Primitive)
	return ok && p.Name == types.TypeType
}

// checkTypeProp dispatches a property access on a Type receiver to C5.
// Every such access requires the receiver's comptime value (the Type
// itself) to exist; a missing one is a hard diagnostic, not speculative,
// because there is no runtime fallback for a reflective property.
func (c *Checker) checkTypeProp(n *ir.PropertyExpr, obj ExprInfo, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	if obj.ComptimeValue == nil {
		c.Diags.Addf(diagnostics.ErrPropertyMissing, n.Tok, "cannot read property %q: receiver has no compile-time type value", n.Property)
		return ExprInfo{Type: types.NeverT()}
	}
	t, ok := (*obj.ComptimeValue).Raw.(types.Type)
	if !ok {
		c.Diags.Addf(diagnostics.ErrPropertyMissing, n.Tok, "receiver is not a reified type")
		return ExprInfo{Type: types.NeverT()}
	}
	result, err := typeprops.Get(t, n.Property)
	if err != nil {
		c.Diags.Add(diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok, err.Error()))
		return ExprInfo{Type: types.NeverT()}
	}
	resultType := typePropResultType(result)
	runtimeUsable := typeprops.RuntimeUsable(n.Property)
	info := ExprInfo{Type: resultType, ComptimeOnly: !runtimeUsable}
	v, d := c.Eval.Eval(n, tenv, cenv)
	if d != nil {
		c.Diags.Add(d)
	} else {
		info.ComptimeValue = &v
	}
	return info
}

// typePropResultType gives the static Type corresponding to a
// typeprops.Get result's dynamic Go shape, independent of any particular
// receiver's value.
func typePropResultType(result any) types.Type {
	switch result.(type) {
	case string:
		return types.Primitive{Name: types.String}
	case *int64:
		return types.Primitive{Name: types.Number}
	case bool:
		return types.Primitive{Name: types.Boolean}
	case []string:
		return types.Array{Elements: []types.ArrayElement{{Type: types.Primitive{Name: types.String}}}}
	case types.Type:
		return types.Primitive{Name: types.TypeType}
	case []types.Type:
		return types.Array{Elements: []types.ArrayElement{{Type: types.Primitive{Name: types.TypeType}}}}
	case []types.FieldInfo:
		return types.Array{}
	default:
		return types.Primitive{Name: types.Undefined}
	}
}

// checkTypePropertyCall implements spec §4.4's parameterized reflective
// properties, `.extends(U)` and `.annotation(A)`: unlike every other
// entry in the property table these take an argument, so the checker
// must recognize the call form `receiver.extends(arg)` directly instead
// of resolving `.extends` as an ordinary property and then calling it.
// handled is false when the receiver isn't a Type value, letting the
// ordinary call path take over (e.g. a record field literally named
// "extends").
func (c *Checker) checkTypePropertyCall(n *ir.CallExpr, pe *ir.PropertyExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (ExprInfo, bool) {
	if pe.Property != "extends" && pe.Property != "annotation" {
		return ExprInfo{}, false
	}
	obj := c.checkExpr(pe.Object, tenv, cenv, nil)
	if !isTypeReceiver(obj) {
		return ExprInfo{}, false
	}
	if len(n.Args) != 1 || n.Args[0].Spread {
		c.Diags.Addf(diagnostics.ErrArity, n.Tok, "%s requires exactly one argument", pe.Property)
		return ExprInfo{Type: types.NeverT()}, true
	}
	argInfo := c.checkExpr(n.Args[0].Value, tenv, cenv, nil)
	if !isTypeReceiver(argInfo) {
		c.Diags.Addf(diagnostics.ErrInvalidTypeExpression, n.Tok, "%s's argument must be a Type value", pe.Property)
		return ExprInfo{Type: types.NeverT()}, true
	}

	resultType := types.Type(types.Primitive{Name: types.Boolean})
	if pe.Property == "annotation" {
		resultType = types.Primitive{Name: types.TypeType}
	}
	info := ExprInfo{Type: resultType, ComptimeOnly: true}
	v, d := c.Eval.Eval(n, tenv, cenv)
	if d != nil {
		c.Diags.Add(d)
	} else {
		info.ComptimeValue = &v
	}
	return info, true
}

// checkIndexExpr implements spec §4.5.6's index form: a numeric index
// into an array/string yields the element/char type, a string key into
// a record behaves like property access.
func (c *Checker) checkIndexExpr(n *ir.IndexExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) ExprInfo {
	obj := c.checkExpr(n.Object, tenv, cenv, nil)
	idx := c.checkExpr(n.Index, tenv, cenv, nil)

	u := types.Unwrap(obj.Type)
	switch v := u.(type) {
	case types.Array:
		members := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			members[i] = e.Type
		}
		return ExprInfo{Type: types.NewUnion(members...)}
	case types.Record:
		if lit, ok := idx.Type.(types.Literal); ok && lit.Base == types.BaseString {
			if key, ok := lit.Value.(string); ok {
				if f, ok := v.FieldByName(key); ok {
					return ExprInfo{Type: types.SubstituteThis(f.Type, obj.Type)}
				}
			}
		}
		if v.IndexType != nil {
			return ExprInfo{Type: types.SubstituteThis(v.IndexType, obj.Type)}
		}
	}
	if types.Subtype(obj.Type, types.Primitive{Name: types.String}) {
		return ExprInfo{Type: types.Primitive{Name: types.String}}
	}

	c.Diags.Add(diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok, "value is not indexable"))
	return ExprInfo{Type: types.NeverT()}
}
