package ctime

import (
	"fmt"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/typeprops"
	"github.com/funvibe/tycore/internal/types"
)

// evalProperty implements spec §4.3's Property access: a Type receiver
// delegates to C5 (typeprops); otherwise dispatch is on the raw payload
// (arrays/strings expose length, records return the named field).
func (e *Evaluator) evalProperty(n *ir.PropertyExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	obj, d := e.Eval(n.Object, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	if t, ok := obj.Raw.(types.Type); ok {
		result, err := typeprops.Get(t, n.Property)
		if err != nil {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok, err.Error())
		}
		return typePropValue(result), nil
	}

	switch v := obj.Raw.(type) {
	case *tyenv.ArrayValue:
		if n.Property == "length" {
			return intValue(int64(len(v.Elements))), nil
		}
	case string:
		if n.Property == "length" {
			return intValue(int64(len([]rune(v)))), nil
		}
	case *tyenv.RecordValue:
		if fv, ok := v.Get(n.Property); ok {
			return fv, nil
		}
		if r, ok := obj.Type.(types.Record); ok && r.IndexType != nil {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok,
				fmt.Sprintf("field %q has no compile-time value", n.Property))
		}
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok,
			fmt.Sprintf("record has no field %q", n.Property))
	}
	return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok,
		fmt.Sprintf("no property %q on this value", n.Property))
}

// typePropValue wraps a typeprops.Get result in a Value. Scalar/bool/
// string results are literal Values; types.Type results carry the
// metatype Type so downstream code can tell a reflective (comptime-only)
// result from an ordinary scalar. []types.Type / []types.FieldInfo /
// []string results are array Values typed types.Array{}; the metatype is
// carried by their elements (the Type values, or each record's "type"
// field), not by the array itself.
func typePropValue(result any) tyenv.Value {
	switch v := result.(type) {
	case string:
		return stringValue(v)
	case *int64:
		if v == nil {
			return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}
		}
		return intValue(*v)
	case bool:
		return boolValue(v)
	case []string:
		arr := &tyenv.ArrayValue{}
		for _, s := range v {
			arr.Elements = append(arr.Elements, stringValue(s))
		}
		return tyenv.Value{Raw: arr, Type: types.Array{}}
	case types.Type:
		return tyenv.Value{Raw: v, Type: types.Primitive{Name: types.TypeType}}
	case []types.Type:
		arr := &tyenv.ArrayValue{}
		for _, t := range v {
			arr.Elements = append(arr.Elements, tyenv.Value{Raw: t, Type: types.Primitive{Name: types.TypeType}})
		}
		return tyenv.Value{Raw: arr, Type: types.Array{}}
	case []types.FieldInfo:
		arr := &tyenv.ArrayValue{}
		for _, f := range v {
			rv := tyenv.NewRecordValue()
			rv.Set("name", stringValue(f.Name))
			rv.Set("type", tyenv.Value{Raw: f.Type, Type: types.Primitive{Name: types.TypeType}})
			rv.Set("optional", boolValue(f.Optional))
			arr.Elements = append(arr.Elements, tyenv.Value{Raw: rv, Type: types.Record{}})
		}
		return tyenv.Value{Raw: arr, Type: types.Array{}}
	case nil:
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}
	default:
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}
	}
}

// evalIndex implements spec §4.3's Index access: numeric index into
// arrays/strings, string key into records.
func (e *Evaluator) evalIndex(n *ir.IndexExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	obj, d := e.Eval(n.Object, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}
	idx, d := e.Eval(n.Index, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	switch v := obj.Raw.(type) {
	case *tyenv.ArrayValue:
		i, ok := asInt(idx)
		if !ok || i < 0 || int(i) >= len(v.Elements) {
			return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}, nil
		}
		return v.Elements[i], nil
	case string:
		i, ok := asInt(idx)
		runes := []rune(v)
		if !ok || i < 0 || int(i) >= len(runes) {
			return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}, nil
		}
		return stringValue(string(runes[i])), nil
	case *tyenv.RecordValue:
		key, ok := idx.Raw.(string)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok, "record index must be a string key")
		}
		fv, ok := v.Get(key)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrPropertyMissing, n.Tok, fmt.Sprintf("record has no field %q", key))
		}
		return fv, nil
	default:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, n.Tok, "value is not indexable at compile time")
	}
}
