// Package typeprops implements reflective access on Type values (spec
// §4.4): the closed property table every Type exposes (.fields,
// .returnType, .extends(U), etc.), each producing a runtime-usable or
// comptime-only result per the fixed table in spec §4.4.
//
// Grounded on the teacher's internal/evaluator/expressions_access.go
// three-way receiver dispatch (type vs. array/string vs. record),
// generalized here to dispatch on the Type variant instead of on a
// runtime Object.
package typeprops

import (
	"fmt"
	"sort"

	"github.com/funvibe/tycore/internal/types"
)

// RuntimeUsable reports whether property p's result type never contains
// the metatype Type, i.e. it may survive erasure (spec §4.4's table).
func RuntimeUsable(p string) bool {
	switch p {
	case "name", "baseName", "fieldNames", "length", "isFixed", "closed", "async", "brand":
		return true
	default:
		return false
	}
}

// Get resolves property p on t, returning its value as a types.Type
// result wrapped in the appropriate representation (a Literal/Array/Record
// payload for runtime-usable properties, or a raw Type/[]Type for
// comptime-only ones that the caller — C4 or C6 — already knows are
// comptime-only and handles accordingly).
//
// The return value's dynamic Go type matches the property:
//   - name/baseName/brand:        string, or nil for Undefined
//   - fieldNames:                 []string
//   - length:                     *int64, nil for Undefined
//   - isFixed/closed/async:       bool
//   - fields:                     []types.FieldInfo
//   - variants/typeArgs/signatures: []types.Type
//   - elementType/returnType/baseType/indexType: types.Type (nil means Undefined)
//   - keysType:                   types.Type
//   - parameterTypes:             []types.Type
func Get(t types.Type, prop string) (any, error) {
	u := types.Unwrap(t)
	switch prop {
	case "name":
		return nameOf(t), nil
	case "baseName":
		return nameOf(u), nil
	case "fieldNames":
		r, ok := u.(types.Record)
		if !ok {
			return nil, fmt.Errorf("fieldNames is only defined on record types")
		}
		return types.SortedFieldNames(r), nil
	case "length":
		a, ok := u.(types.Array)
		if !ok || a.IsVariadic() {
			return (*int64)(nil), nil
		}
		n := int64(len(a.Elements))
		return &n, nil
	case "isFixed":
		a, ok := u.(types.Array)
		if !ok {
			return nil, fmt.Errorf("isFixed is only defined on array types")
		}
		return !a.IsVariadic(), nil
	case "closed":
		r, ok := u.(types.Record)
		if !ok {
			return nil, fmt.Errorf("closed is only defined on record types")
		}
		return r.Closed, nil
	case "async":
		f, ok := u.(types.Function)
		if !ok {
			return nil, fmt.Errorf("async is only defined on function types")
		}
		return f.Async, nil
	case "brand":
		b, ok := u.(types.Branded)
		if !ok {
			return nil, nil
		}
		return b.Brand, nil
	case "fields":
		r, ok := u.(types.Record)
		if !ok {
			return nil, fmt.Errorf("fields is only defined on record types")
		}
		return append([]types.FieldInfo{}, r.Fields...), nil
	case "variants":
		un, ok := u.(types.Union)
		if !ok {
			return nil, fmt.Errorf("variants is only defined on union types")
		}
		return append([]types.Type{}, un.Types...), nil
	case "typeArgs":
		w, ok := t.(types.WithMetadata)
		if !ok {
			return []types.Type{}, nil
		}
		return append([]types.Type{}, w.Meta.TypeArgs...), nil
	case "elementType":
		a, ok := u.(types.Array)
		if !ok {
			return nil, fmt.Errorf("elementType is only defined on array types")
		}
		members := make([]types.Type, len(a.Elements))
		for i, e := range a.Elements {
			members[i] = e.Type
		}
		return types.NewUnion(members...), nil
	case "returnType":
		if _, ok := u.(types.Intersection); ok {
			return nil, fmt.Errorf("returnType is ambiguous on an intersection of function types; use .signatures")
		}
		f, ok := u.(types.Function)
		if !ok {
			return nil, fmt.Errorf("returnType is only defined on function types")
		}
		return f.ReturnType, nil
	case "parameterTypes":
		if _, ok := u.(types.Intersection); ok {
			return nil, fmt.Errorf("parameterTypes is ambiguous on an intersection of function types; use .signatures")
		}
		f, ok := u.(types.Function)
		if !ok {
			return nil, fmt.Errorf("parameterTypes is only defined on function types")
		}
		out := make([]types.Type, len(f.Params))
		for i, p := range f.Params {
			out[i] = p.Type
		}
		return out, nil
	case "signatures":
		it, ok := u.(types.Intersection)
		if !ok {
			return nil, fmt.Errorf("signatures is only defined on an intersection of function types")
		}
		return append([]types.Type{}, it.Types...), nil
	case "baseType":
		switch v := t.(type) {
		case types.Branded:
			return v.Base, nil
		case types.WithMetadata:
			return v.Base, nil
		default:
			return nil, fmt.Errorf("baseType is only defined on branded or annotated types")
		}
	case "keysType":
		r, ok := u.(types.Record)
		if !ok {
			return nil, fmt.Errorf("keysType is only defined on record types")
		}
		return types.KeysUnion(r), nil
	case "indexType":
		r, ok := u.(types.Record)
		if !ok {
			return nil, fmt.Errorf("indexType is only defined on record types")
		}
		return r.IndexType, nil
	default:
		return nil, fmt.Errorf("unknown type property %q", prop)
	}
}

func nameOf(t types.Type) any {
	if w, ok := t.(types.WithMetadata); ok && w.Meta.DisplayName != "" {
		return w.Meta.DisplayName
	}
	switch v := types.Unwrap(t).(type) {
	case types.Primitive:
		return string(v.Name)
	case types.Branded:
		return v.Name
	case types.TypeVar:
		return v.Name
	default:
		return nil
	}
}

// Extends answers t.extends(u) (spec §4.4's comptime-only property),
// structural subtyping except for an unbound type variable, which spec §9
// resolves via its bound (if any) or false — no constraint generation.
func Extends(t, u types.Type) bool {
	if tv, ok := types.Unwrap(t).(types.TypeVar); ok {
		if tv.Bound == nil {
			return false
		}
		return types.Subtype(tv.Bound, u)
	}
	return types.Subtype(t, u)
}

// Annotation answers t.annotation(A): the first annotation (in
// declaration order) whose declared type is <: A (spec §4.4).
func Annotation(t, a types.Type) (types.Annotation, bool) {
	w, ok := t.(types.WithMetadata)
	if !ok {
		return types.Annotation{}, false
	}
	for _, ann := range w.Meta.Annotations {
		if types.Subtype(ann.Type, a) {
			return ann, true
		}
	}
	return types.Annotation{}, false
}

// SortedFieldNames returns r's field names in alphabetical order for
// display/debug use (e.g. CLI dumps). Unlike types.SortedFieldNames,
// which keeps declared order, it sorts the names.
func SortedFieldNames(r types.Record) []string {
	names := types.SortedFieldNames(r)
	sort.Strings(names)
	return names
}
