package ctime

import (
	"os"
	"strconv"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// BuiltinError lets a native implementation request a specific
// diagnostic code instead of the generic InvalidTypeExpression that
// evalCall falls back to for an ordinary Go error (e.g. assert needs
// AssertionFailed, spec §7).
type BuiltinError struct {
	Code diagnostics.Code
	Msg  string
}

func (b *BuiltinError) Error() string { return b.Msg }

// Prelude builds the initial pair of environments spec §6's built-in
// catalog describes: primitives, record/type constructors, reflective
// operators, builders, and the comptime namespace. The checker extends
// these before checking a program's top-level declarations.
func (e *Evaluator) Prelude() (*tyenv.TypeEnv, *tyenv.ComptimeEnv) {
	tenv := tyenv.NewTypeEnv()
	cenv := tyenv.NewComptimeEnv()

	for _, name := range []types.PrimitiveName{
		types.Int, types.Float, types.Number, types.String, types.Boolean,
		types.Null, types.Undefined, types.Never, types.Unknown, types.Void, types.TypeType,
	} {
		defineValue(tenv, cenv, string(name), typeValue(types.Primitive{Name: name}))
	}

	defineBuiltin(tenv, cenv, "FieldInfo", builtinFieldInfo)
	defineBuiltin(tenv, cenv, "ParamInfo", builtinParamInfo)
	defineBuiltin(tenv, cenv, "ArrayElementInfo", builtinArrayElementInfo)
	defineBuiltin(tenv, cenv, "TypeMetadata", builtinTypeMetadata)
	defineBuiltin(tenv, cenv, "Error", builtinError)

	defineBuiltin(tenv, cenv, "RecordType", builtinRecordType)
	defineBuiltin(tenv, cenv, "Union", builtinUnion)
	defineBuiltin(tenv, cenv, "Intersection", builtinIntersection)
	defineBuiltin(tenv, cenv, "FunctionType", builtinFunctionType)
	defineBuiltin(tenv, cenv, "Array", builtinArrayType)
	defineBuiltin(tenv, cenv, "WithMetadata", builtinWithMetadata)
	defineBuiltin(tenv, cenv, "Branded", builtinBranded)
	defineBuiltin(tenv, cenv, "LiteralType", builtinLiteralType)
	defineBuiltin(tenv, cenv, "TryResult", builtinTryResult)

	defineBuiltin(tenv, cenv, "typeOf", builtinTypeOf)
	defineBuiltin(tenv, cenv, "assert", builtinAssert)

	defineBuiltin(tenv, cenv, "fromEntries", builtinFromEntries)
	defineBuiltin(tenv, cenv, "buildRecord", builtinBuildRecord)
	defineBuiltin(tenv, cenv, "parseInt", builtinParseInt)
	defineBuiltin(tenv, cenv, "parseFloat", builtinParseFloat)

	comptimeNS := tyenv.NewRecordValue()
	comptimeNS.Set("readFile", builtinValue("readFile", builtinReadFile))
	defineValue(tenv, cenv, "comptime", tyenv.Value{Raw: comptimeNS, Type: types.Record{Closed: true}})

	defineBuiltin(tenv, cenv, "Try", e.builtinTry)

	return tenv, cenv
}

// defineValue installs a prelude identifier in both environments: the
// comptime value itself, and a Comptime-status type binding so C6 can
// resolve the identifier's type without re-deriving it from the value.
func defineValue(tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, name string, v tyenv.Value) {
	cenv.DefineEvaluated(name, v)
	tenv.Define(name, &tyenv.TypeBinding{Type: v.Type, Status: tyenv.Comptime})
}

func defineBuiltin(tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, name string, impl func([]tyenv.Value) (tyenv.Value, error)) {
	defineValue(tenv, cenv, name, builtinValue(name, impl))
}

func builtinValue(name string, impl func([]tyenv.Value) (tyenv.Value, error)) tyenv.Value {
	return tyenv.Value{Raw: &tyenv.Builtin{Name: name, Impl: impl}, Type: types.Function{}}
}

// typeValue wraps a types.Type as the Value a compile-time expression
// that "is" that type evaluates to: raw payload is the Type itself,
// and its own Type is the metatype (spec §3.1's Type : Type).
func typeValue(t types.Type) tyenv.Value {
	return tyenv.Value{Raw: t, Type: types.Primitive{Name: types.TypeType}}
}

func asType(v tyenv.Value) (types.Type, bool) {
	t, ok := v.Raw.(types.Type)
	return t, ok
}

func asArray(v tyenv.Value) (*tyenv.ArrayValue, bool) {
	a, ok := v.Raw.(*tyenv.ArrayValue)
	return a, ok
}

func asRecord(v tyenv.Value) (*tyenv.RecordValue, bool) {
	r, ok := v.Raw.(*tyenv.RecordValue)
	return r, ok
}

func asString(v tyenv.Value) (string, bool) {
	s, ok := v.Raw.(string)
	return s, ok
}

func asBool(v tyenv.Value) (bool, bool) {
	b, ok := v.Raw.(bool)
	return b, ok
}

// ---- record constructors (spec §6) -------------------------------------

func builtinFieldInfo(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 2 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "FieldInfo(name, type, optional?) requires at least 2 arguments"}
	}
	name, ok := asString(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "FieldInfo's name must be a string"}
	}
	t, ok := asType(args[1])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "FieldInfo's type argument must be a Type"}
	}
	optional := false
	if len(args) > 2 {
		optional, _ = asBool(args[2])
	}
	rv := tyenv.NewRecordValue()
	rv.Set("name", stringValue(name))
	rv.Set("type", typeValue(t))
	rv.Set("optional", boolValue(optional))
	return tyenv.Value{Raw: rv, Type: types.Record{Closed: true}}, nil
}

func recordFieldInfo(v tyenv.Value) (types.FieldInfo, bool) {
	rv, ok := asRecord(v)
	if !ok {
		return types.FieldInfo{}, false
	}
	nameV, ok := rv.Get("name")
	if !ok {
		return types.FieldInfo{}, false
	}
	name, ok := asString(nameV)
	if !ok {
		return types.FieldInfo{}, false
	}
	typeV, ok := rv.Get("type")
	if !ok {
		return types.FieldInfo{}, false
	}
	t, ok := asType(typeV)
	if !ok {
		return types.FieldInfo{}, false
	}
	optional := false
	if optV, ok := rv.Get("optional"); ok {
		optional, _ = asBool(optV)
	}
	return types.FieldInfo{Name: name, Type: t, Optional: optional}, true
}

func builtinParamInfo(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 2 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "ParamInfo(name, type, optional?, rest?) requires at least 2 arguments"}
	}
	name, ok := asString(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "ParamInfo's name must be a string"}
	}
	t, ok := asType(args[1])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "ParamInfo's type argument must be a Type"}
	}
	var optional, rest bool
	if len(args) > 2 {
		optional, _ = asBool(args[2])
	}
	if len(args) > 3 {
		rest, _ = asBool(args[3])
	}
	rv := tyenv.NewRecordValue()
	rv.Set("name", stringValue(name))
	rv.Set("type", typeValue(t))
	rv.Set("optional", boolValue(optional))
	rv.Set("rest", boolValue(rest))
	return tyenv.Value{Raw: rv, Type: types.Record{Closed: true}}, nil
}

func recordParamInfo(v tyenv.Value) (types.ParamInfo, bool) {
	rv, ok := asRecord(v)
	if !ok {
		return types.ParamInfo{}, false
	}
	nameV, _ := rv.Get("name")
	name, _ := asString(nameV)
	typeV, ok := rv.Get("type")
	if !ok {
		return types.ParamInfo{}, false
	}
	t, ok := asType(typeV)
	if !ok {
		return types.ParamInfo{}, false
	}
	var optional, rest bool
	if v, ok := rv.Get("optional"); ok {
		optional, _ = asBool(v)
	}
	if v, ok := rv.Get("rest"); ok {
		rest, _ = asBool(v)
	}
	return types.ParamInfo{Name: name, Type: t, Optional: optional, Rest: rest}, true
}

func builtinArrayElementInfo(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "ArrayElementInfo(type, label?, spread?) requires at least 1 argument"}
	}
	t, ok := asType(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "ArrayElementInfo's type argument must be a Type"}
	}
	var label string
	var spread bool
	if len(args) > 1 {
		label, _ = asString(args[1])
	}
	if len(args) > 2 {
		spread, _ = asBool(args[2])
	}
	rv := tyenv.NewRecordValue()
	rv.Set("type", typeValue(t))
	rv.Set("label", stringValue(label))
	rv.Set("spread", boolValue(spread))
	return tyenv.Value{Raw: rv, Type: types.Record{Closed: true}}, nil
}

func recordArrayElementInfo(v tyenv.Value) (types.ArrayElement, bool) {
	rv, ok := asRecord(v)
	if !ok {
		return types.ArrayElement{}, false
	}
	typeV, ok := rv.Get("type")
	if !ok {
		return types.ArrayElement{}, false
	}
	t, ok := asType(typeV)
	if !ok {
		return types.ArrayElement{}, false
	}
	var label string
	var spread bool
	if v, ok := rv.Get("label"); ok {
		label, _ = asString(v)
	}
	if v, ok := rv.Get("spread"); ok {
		spread, _ = asBool(v)
	}
	return types.ArrayElement{Type: t, Label: label, Spread: spread}, true
}

func builtinTypeMetadata(args []tyenv.Value) (tyenv.Value, error) {
	rv := tyenv.NewRecordValue()
	var displayName string
	if len(args) > 0 {
		displayName, _ = asString(args[0])
	}
	rv.Set("displayName", stringValue(displayName))
	typeArgsV := &tyenv.ArrayValue{}
	if len(args) > 1 {
		if arr, ok := asArray(args[1]); ok {
			typeArgsV.Elements = arr.Elements
		}
	}
	rv.Set("typeArgs", tyenv.Value{Raw: typeArgsV, Type: types.Array{}})
	return tyenv.Value{Raw: rv, Type: types.Record{Closed: true}}, nil
}

func recordMetadata(v tyenv.Value) types.Metadata {
	rv, ok := asRecord(v)
	if !ok {
		return types.Metadata{}
	}
	var meta types.Metadata
	if nameV, ok := rv.Get("displayName"); ok {
		meta.DisplayName, _ = asString(nameV)
	}
	if argsV, ok := rv.Get("typeArgs"); ok {
		if arr, ok := asArray(argsV); ok {
			for _, el := range arr.Elements {
				if t, ok := asType(el); ok {
					meta.TypeArgs = append(meta.TypeArgs, t)
				}
			}
		}
	}
	return meta
}

func builtinError(args []tyenv.Value) (tyenv.Value, error) {
	rv := tyenv.NewRecordValue()
	var message string
	if len(args) > 0 {
		message, _ = asString(args[0])
	}
	rv.Set("message", stringValue(message))
	return tyenv.Value{Raw: rv, Type: types.NormalizeRecord(types.Record{
		Fields: []types.FieldInfo{{Name: "message", Type: types.Primitive{Name: types.String}}},
		Closed: true,
	})}, nil
}

// ---- type constructors (spec §6) ---------------------------------------

func builtinRecordType(args []tyenv.Value) (tyenv.Value, error) {
	var fields []types.FieldInfo
	if len(args) > 0 {
		if arr, ok := asArray(args[0]); ok {
			for _, el := range arr.Elements {
				if f, ok := recordFieldInfo(el); ok {
					fields = append(fields, f)
				}
			}
		}
	}
	var indexType types.Type
	if len(args) > 1 {
		if t, ok := asType(args[1]); ok {
			indexType = t
		}
	}
	closed := true
	if len(args) > 2 {
		if b, ok := asBool(args[2]); ok {
			closed = b
		}
	}
	return typeValue(types.NormalizeRecord(types.Record{Fields: fields, IndexType: indexType, Closed: closed})), nil
}

func builtinUnion(args []tyenv.Value) (tyenv.Value, error) {
	members := make([]types.Type, 0, len(args))
	for _, a := range args {
		t, ok := asType(a)
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "Union's arguments must all be Types"}
		}
		members = append(members, t)
	}
	return typeValue(types.NewUnion(members...)), nil
}

func builtinIntersection(args []tyenv.Value) (tyenv.Value, error) {
	members := make([]types.Type, 0, len(args))
	for _, a := range args {
		t, ok := asType(a)
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "Intersection's arguments must all be Types"}
		}
		members = append(members, t)
	}
	return typeValue(types.NewIntersection(members...)), nil
}

func builtinFunctionType(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 2 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "FunctionType(params, returnType, async?) requires at least 2 arguments"}
	}
	var params []types.ParamInfo
	if arr, ok := asArray(args[0]); ok {
		for _, el := range arr.Elements {
			if p, ok := recordParamInfo(el); ok {
				params = append(params, p)
			}
		}
	}
	ret, ok := asType(args[1])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "FunctionType's returnType argument must be a Type"}
	}
	var async bool
	if len(args) > 2 {
		async, _ = asBool(args[2])
	}
	return typeValue(types.Function{Params: params, ReturnType: ret, Async: async}), nil
}

func builtinArrayType(args []tyenv.Value) (tyenv.Value, error) {
	var elems []types.ArrayElement
	for _, a := range args {
		if e, ok := recordArrayElementInfo(a); ok {
			elems = append(elems, e)
			continue
		}
		if t, ok := asType(a); ok {
			elems = append(elems, types.ArrayElement{Type: t})
			continue
		}
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "Array's arguments must be Types or ArrayElementInfo records"}
	}
	return typeValue(types.Array{Elements: elems}), nil
}

func builtinWithMetadata(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 2 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "WithMetadata(base, metadata) requires 2 arguments"}
	}
	base, ok := asType(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "WithMetadata's base argument must be a Type"}
	}
	return typeValue(types.WithMetadata{Base: base, Meta: recordMetadata(args[1])}), nil
}

func builtinBranded(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 3 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "Branded(base, brand, name) requires 3 arguments"}
	}
	base, ok := asType(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "Branded's base argument must be a Type"}
	}
	brand, _ := asString(args[1])
	name, _ := asString(args[2])
	return typeValue(types.Branded{Base: base, Brand: brand, Name: name}), nil
}

func builtinLiteralType(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "LiteralType(value) requires 1 argument"}
	}
	v := args[0]
	switch raw := v.Raw.(type) {
	case int64:
		return typeValue(types.Literal{Value: raw, Base: types.BaseInt}), nil
	case float64:
		return typeValue(types.Literal{Value: raw, Base: types.BaseFloat}), nil
	case string:
		return typeValue(types.Literal{Value: raw, Base: types.BaseString}), nil
	case bool:
		return typeValue(types.Literal{Value: raw, Base: types.BaseBoolean}), nil
	default:
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "LiteralType's argument must be a scalar"}
	}
}

// tryResultType builds the TryResult<T> discriminated union spec §6/§9
// defines: {ok: true, value: T} | {ok: false, error: Error}.
func tryResultType(t types.Type) types.Type {
	okVariant := types.Record{
		Fields: []types.FieldInfo{
			{Name: "ok", Type: types.Literal{Value: true, Base: types.BaseBoolean}},
			{Name: "value", Type: t},
		},
		Closed: true,
	}
	errVariant := types.Record{
		Fields: []types.FieldInfo{
			{Name: "ok", Type: types.Literal{Value: false, Base: types.BaseBoolean}},
			{Name: "error", Type: types.NormalizeRecord(types.Record{
				Fields: []types.FieldInfo{{Name: "message", Type: types.Primitive{Name: types.String}}},
				Closed: true,
			})},
		},
		Closed: true,
	}
	return types.WithMetadata{
		Base: types.NewUnion(okVariant, errVariant),
		Meta: types.Metadata{DisplayName: "TryResult", TypeArgs: []types.Type{t}},
	}
}

func builtinTryResult(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "TryResult(T) requires 1 argument"}
	}
	t, ok := asType(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "TryResult's argument must be a Type"}
	}
	return typeValue(tryResultType(t)), nil
}

func tryResultValue(t types.Type, v tyenv.Value, errMsg string, ok bool) tyenv.Value {
	rv := tyenv.NewRecordValue()
	if ok {
		rv.Set("ok", boolValue(true))
		rv.Set("value", v)
	} else {
		rv.Set("ok", boolValue(false))
		errRec := tyenv.NewRecordValue()
		errRec.Set("message", stringValue(errMsg))
		rv.Set("error", tyenv.Value{Raw: errRec, Type: types.NormalizeRecord(types.Record{
			Fields: []types.FieldInfo{{Name: "message", Type: types.Primitive{Name: types.String}}},
			Closed: true,
		})})
	}
	return tyenv.Value{Raw: rv, Type: tryResultType(t)}
}

// ---- reflective operators -----------------------------------------------

func builtinTypeOf(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "typeOf(x) requires 1 argument"}
	}
	return typeValue(args[0].Type), nil
}

// builtinAssert implements spec §7/§8: assert(false, "m") halts
// compilation with message "m" exactly (AssertionFailed).
func builtinAssert(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "assert(condition, message?) requires at least 1 argument"}
	}
	cond, ok := asBool(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "assert's condition must be boolean"}
	}
	if cond {
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Void}}, nil
	}
	msg := "assertion failed"
	if len(args) > 1 {
		if m, ok := asString(args[1]); ok {
			msg = m
		}
	}
	return tyenv.Value{}, &BuiltinError{diagnostics.ErrAssertionFailed, msg}
}

// ---- builders -------------------------------------------------------------

func builtinFromEntries(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "fromEntries(entries) requires 1 argument"}
	}
	arr, ok := asArray(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrSpreadMustBeArray, "fromEntries' argument must be an array of [key, value] pairs"}
	}
	rv := tyenv.NewRecordValue()
	var fields []types.FieldInfo
	for _, entry := range arr.Elements {
		pair, ok := asArray(entry)
		if !ok || len(pair.Elements) != 2 {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "fromEntries expects each entry to be a [key, value] pair"}
		}
		key, ok := asString(pair.Elements[0])
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "fromEntries expects string keys"}
		}
		rv.Set(key, pair.Elements[1])
		fields = append(fields, types.FieldInfo{Name: key, Type: pair.Elements[1].Type})
	}
	return tyenv.Value{Raw: rv, Type: types.NormalizeRecord(types.Record{Fields: fields, Closed: true})}, nil
}

func builtinBuildRecord(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "buildRecord(fields) requires 1 argument"}
	}
	arr, ok := asArray(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrSpreadMustBeArray, "buildRecord's argument must be an array of FieldInfo-shaped records"}
	}
	rv := tyenv.NewRecordValue()
	var fields []types.FieldInfo
	for _, entry := range arr.Elements {
		er, ok := asRecord(entry)
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, "buildRecord expects each entry to carry name/value fields"}
		}
		nameV, ok := er.Get("name")
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrPropertyMissing, "buildRecord entry missing \"name\""}
		}
		name, ok := asString(nameV)
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "buildRecord entry's name must be a string"}
		}
		valueV, ok := er.Get("value")
		if !ok {
			return tyenv.Value{}, &BuiltinError{diagnostics.ErrPropertyMissing, "buildRecord entry missing \"value\""}
		}
		rv.Set(name, valueV)
		fields = append(fields, types.FieldInfo{Name: name, Type: valueV.Type})
	}
	return tyenv.Value{Raw: rv, Type: types.NormalizeRecord(types.Record{Fields: fields, Closed: true})}, nil
}

func builtinParseInt(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "parseInt(s) requires 1 argument"}
	}
	s, ok := asString(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "parseInt's argument must be a string"}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}, nil
	}
	return intValue(n), nil
}

func builtinParseFloat(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "parseFloat(s) requires 1 argument"}
	}
	s, ok := asString(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "parseFloat's argument must be a string"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return tyenv.Value{Raw: nil, Type: types.Primitive{Name: types.Undefined}}, nil
	}
	return tyenv.Value{Raw: f, Type: types.Literal{Value: f, Base: types.BaseFloat}}, nil
}

// ---- comptime namespace ---------------------------------------------------

func builtinReadFile(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "comptime.readFile(path) requires 1 argument"}
	}
	path, ok := asString(args[0])
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrTypeMismatch, "comptime.readFile's argument must be a string"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrInvalidTypeExpression, err.Error()}
	}
	return stringValue(string(data)), nil
}

// builtinTry is a method (not a free function) because it needs the
// owning Evaluator to invoke the thunk closure (spec §6/§9): it
// converts a would-be hard failure into a comptime-computed
// TryResult<T> rather than propagating the diagnostic.
func (e *Evaluator) builtinTry(args []tyenv.Value) (tyenv.Value, error) {
	if len(args) < 1 {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrArity, "Try(thunk) requires 1 argument"}
	}
	closure, ok := args[0].Raw.(*tyenv.Closure)
	if !ok {
		return tyenv.Value{}, &BuiltinError{diagnostics.ErrNonCallable, "Try's argument must be a zero-argument closure"}
	}
	v, d := e.CallClosure(closure, nil)
	if d != nil {
		return tryResultValue(v.Type, tyenv.Value{}, d.Message, false), nil
	}
	return tryResultValue(v.Type, v, "", true), nil
}
