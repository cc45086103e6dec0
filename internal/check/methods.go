package check

import "github.com/funvibe/tycore/internal/types"

// arrayMethod and stringMethod hold the built-in method signature
// tables spec §1 explicitly calls data, not design: "Array/string method
// signature tables are data fed into §4.1; they are not designed here."
// These cover the common JavaScript-family surface; the generic-return
// set (map/flatMap/filter/find/findIndex/reduce/some/every/flat) is
// additionally special-cased in calls.go so a call expression gets the
// callback's actual inferred return type rather than this table's
// placeholder signature.

func arrayElementUnion(a types.Array) types.Type {
	members := make([]types.Type, len(a.Elements))
	for i, e := range a.Elements {
		members[i] = e.Type
	}
	return types.NewUnion(members...)
}

// arrayMethod returns a*placeholder* Function type for a[prop] accessed
// outside of an immediate call (e.g. passed as a value); callsites going
// through checkCall get the precise generic-return result instead.
func arrayMethod(prop string) (func(types.Array) types.Type, bool) {
	elemParam := func(a types.Array) []types.ParamInfo {
		return []types.ParamInfo{{Name: "x", Type: arrayElementUnion(a)}}
	}
	switch prop {
	case "map", "flatMap":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.UnknownT()}
		}, true
	case "filter":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: a}
		}, true
	case "find":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.NewUnion(arrayElementUnion(a), types.Primitive{Name: types.Undefined})}
		}, true
	case "findIndex":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.Primitive{Name: types.Number}}
		}, true
	case "some", "every":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.Primitive{Name: types.Boolean}}
		}, true
	case "reduce":
		return func(a types.Array) types.Type {
			return types.Function{Params: []types.ParamInfo{
				{Name: "acc", Type: types.UnknownT()},
				{Name: "cur", Type: arrayElementUnion(a)},
			}, ReturnType: types.UnknownT()}
		}, true
	case "flat":
		return func(a types.Array) types.Type {
			return types.Function{Params: []types.ParamInfo{{Name: "depth", Type: types.Primitive{Name: types.Number}, Optional: true}}, ReturnType: a}
		}, true
	case "join":
		return func(a types.Array) types.Type {
			return types.Function{Params: []types.ParamInfo{{Name: "sep", Type: types.Primitive{Name: types.String}, Optional: true}}, ReturnType: types.Primitive{Name: types.String}}
		}, true
	case "includes":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.Primitive{Name: types.Boolean}}
		}, true
	case "slice", "concat", "reverse", "sort":
		return func(a types.Array) types.Type {
			return types.Function{Params: []types.ParamInfo{{Name: "args", Type: types.Array{Elements: []types.ArrayElement{{Type: types.UnknownT(), Spread: true}}}, Rest: true}}, ReturnType: a}
		}, true
	case "indexOf":
		return func(a types.Array) types.Type {
			return types.Function{Params: elemParam(a), ReturnType: types.Primitive{Name: types.Number}}
		}, true
	}
	return nil, false
}

func stringMethod(prop string) (types.Type, bool) {
	str := types.Primitive{Name: types.String}
	num := types.Primitive{Name: types.Number}
	boolean := types.Primitive{Name: types.Boolean}
	strArr := types.Array{Elements: []types.ArrayElement{{Type: str}}}

	switch prop {
	case "toUpperCase", "toLowerCase", "trim", "trimStart", "trimEnd":
		return types.Function{ReturnType: str}, true
	case "charAt":
		return types.Function{Params: []types.ParamInfo{{Name: "index", Type: num}}, ReturnType: str}, true
	case "includes", "startsWith", "endsWith":
		return types.Function{Params: []types.ParamInfo{{Name: "s", Type: str}}, ReturnType: boolean}, true
	case "indexOf":
		return types.Function{Params: []types.ParamInfo{{Name: "s", Type: str}}, ReturnType: num}, true
	case "slice", "concat", "repeat", "padStart", "padEnd", "replace", "replaceAll":
		return types.Function{ReturnType: str}, true
	case "split":
		return types.Function{Params: []types.ParamInfo{{Name: "sep", Type: str}}, ReturnType: strArr}, true
	}
	return nil, false
}
