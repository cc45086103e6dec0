// Package types implements the Type value — the central variant shared
// by the checker, the compile-time evaluator, and erasure (spec §3.1).
//
// The interface-plus-struct-variant shape is grounded on the teacher's
// internal/typesystem.Type (String/Apply/FreeTypeVariables), trimmed of
// its Kind()/higher-kinded-type machinery: spec §3.1 has no higher-kinded
// types, so TApp-style kind arithmetic (internal/typesystem/kind_checker.go)
// has nothing to attach to here.
package types

import (
	"sort"
	"strconv"
	"strings"
)

// Type is implemented by every variant in spec §3.1. Unlike the teacher's
// Type (which also carries Apply/FreeTypeVariables for unification), this
// Type only needs structural identity and display — C2's subtype/equal
// live in separate files precisely because spec §4.1 requires them
// distinct from any single per-variant method.
type Type interface {
	String() string
	isType()
}

// ---- Primitive ---------------------------------------------------------

type PrimitiveName string

const (
	Int       PrimitiveName = "Int"
	Float     PrimitiveName = "Float"
	Number    PrimitiveName = "Number"
	String    PrimitiveName = "String"
	Boolean   PrimitiveName = "Boolean"
	Null      PrimitiveName = "Null"
	Undefined PrimitiveName = "Undefined"
	Never     PrimitiveName = "Never"
	Unknown   PrimitiveName = "Unknown"
	Void      PrimitiveName = "Void"
	TypeType  PrimitiveName = "Type" // the reified metatype
)

type Primitive struct{ Name PrimitiveName }

func (Primitive) isType()          {}
func (p Primitive) String() string { return string(p.Name) }

func NeverT() Type   { return Primitive{Never} }
func UnknownT() Type { return Primitive{Unknown} }

// ---- Literal ------------------------------------------------------------

type LiteralBase string

const (
	BaseInt     LiteralBase = "Int"
	BaseFloat   LiteralBase = "Float"
	BaseString  LiteralBase = "String"
	BaseBoolean LiteralBase = "Boolean"
)

type Literal struct {
	Value any // int64, float64, string, or bool
	Base  LiteralBase
}

func (Literal) isType() {}
func (l Literal) String() string {
	switch l.Base {
	case BaseString:
		return strconv.Quote(l.Value.(string))
	default:
		return toDisplay(l.Value)
	}
}

func toDisplay(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// ---- Record ---------------------------------------------------------

type FieldInfo struct {
	Name     string
	Type     Type
	Optional bool
}

type Record struct {
	Fields    []FieldInfo // ordered; observable to reflection (spec §3.1)
	IndexType Type        // nil when absent
	Closed    bool
}

func (Record) isType() {}
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range r.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		if f.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(f.Type.String())
	}
	if r.IndexType != nil {
		if len(r.Fields) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[key: string]: " + r.IndexType.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// FieldByName returns the field named n and true, or the zero value and
// false.
func (r Record) FieldByName(n string) (FieldInfo, bool) {
	for _, f := range r.Fields {
		if f.Name == n {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// NormalizeRecord enforces post-construction name-uniqueness: later
// fields (e.g. from a spread) win over earlier ones with the same name,
// per spec §3.1's invariant.
func NormalizeRecord(r Record) Record {
	byName := make(map[string]int, len(r.Fields))
	out := make([]FieldInfo, 0, len(r.Fields))
	for _, f := range r.Fields {
		if idx, ok := byName[f.Name]; ok {
			out[idx] = f
			continue
		}
		byName[f.Name] = len(out)
		out = append(out, f)
	}
	r.Fields = out
	return r
}

// ---- Array --------------------------------------------------------------

type ArrayElement struct {
	Type   Type
	Label  string // optional; empty when absent
	Spread bool
}

type Array struct {
	Elements []ArrayElement
}

func (Array) isType() {}

// IsVariadic reports whether any element has Spread set (spec §3.1).
func (a Array) IsVariadic() bool {
	for _, e := range a.Elements {
		if e.Spread {
			return true
		}
	}
	return false
}

func (a Array) String() string {
	var parts []string
	for _, e := range a.Elements {
		s := e.Type.String()
		if e.Spread {
			s = "..." + s + "[]"
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---- Function -------------------------------------------------------

type ParamInfo struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool

	// IsTypeParam marks a parameter synthesized by the surface's generic
	// desugaring (spec §4.5.3: `<T>(x: T) => body` lowers to a regular
	// `T: Type` parameter alongside `x: T`). It carries no structural
	// weight — Subtype/Equal ignore it — it only tells the checker's call
	// and erasure passes which parameter to skip.
	IsTypeParam bool
}

type Function struct {
	Params     []ParamInfo
	ReturnType Type
	Async      bool
}

func (Function) isType() {}
func (f Function) String() string {
	var parts []string
	for _, p := range f.Params {
		s := p.Name + ": "
		if p.Rest {
			s = "..." + p.Name + ": "
		}
		s += p.Type.String()
		if p.Optional {
			s += "?"
		}
		parts = append(parts, s)
	}
	prefix := ""
	if f.Async {
		prefix = "async "
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") => " + f.ReturnType.String()
}

// RestParam returns the trailing rest parameter and true, if any (spec
// §3.1: at most one, always last).
func (f Function) RestParam() (ParamInfo, bool) {
	if n := len(f.Params); n > 0 && f.Params[n-1].Rest {
		return f.Params[n-1], true
	}
	return ParamInfo{}, false
}

// ---- Union / Intersection ---------------------------------------------

type Union struct{ Types []Type }

func (Union) isType() {}
func (u Union) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

type Intersection struct{ Types []Type }

func (Intersection) isType() {}
func (i Intersection) String() string {
	parts := make([]string, len(i.Types))
	for idx, t := range i.Types {
		parts[idx] = t.String()
	}
	return strings.Join(parts, " & ")
}

// NewUnion flattens nested unions and collapses degenerate arities, per
// spec §3.1's invariant: length 0 => Never, length 1 => the member.
func NewUnion(members ...Type) Type {
	flat := flattenUnion(members)
	flat = dedupeTypes(flat)
	switch len(flat) {
	case 0:
		return NeverT()
	case 1:
		return flat[0]
	default:
		return Union{Types: flat}
	}
}

func flattenUnion(members []Type) []Type {
	var out []Type
	for _, m := range members {
		if u, ok := Unwrap(m).(Union); ok {
			out = append(out, flattenUnion(u.Types)...)
		} else if _, isNever := Unwrap(m).(Primitive); isNever && Unwrap(m).(Primitive).Name == Never {
			// Never contributes nothing to a union.
			continue
		} else {
			out = append(out, m)
		}
	}
	return out
}

func dedupeTypes(ts []Type) []Type {
	var out []Type
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if Equal(t, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// NewIntersection flattens nested intersections; any Never member
// collapses the whole to Never (spec §3.1).
func NewIntersection(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		if it, ok := Unwrap(m).(Intersection); ok {
			flat = append(flat, it.Types...)
			continue
		}
		if p, ok := Unwrap(m).(Primitive); ok && p.Name == Never {
			return NeverT()
		}
		flat = append(flat, m)
	}
	flat = dedupeTypes(flat)
	switch len(flat) {
	case 0:
		return NeverT()
	case 1:
		return flat[0]
	default:
		return Intersection{Types: flat}
	}
}

// ---- Branded ------------------------------------------------------------

type Branded struct {
	Base Type
	Brand string
	Name  string
}

func (Branded) isType() {}
func (b Branded) String() string { return b.Name }

// ---- TypeVar, This -------------------------------------------------------

type TypeVar struct {
	Name  string
	Bound Type // nil when unbounded
}

func (TypeVar) isType() {}
func (v TypeVar) String() string { return v.Name }

type ThisType struct{}

func (ThisType) isType()          {}
func (ThisType) String() string   { return "This" }

// SubstituteThis replaces every occurrence of ThisType inside t with
// receiver, implementing spec §4.5.6's This-substitution at member
// access/call sites.
func SubstituteThis(t, receiver Type) Type {
	switch v := Unwrap(t).(type) {
	case ThisType:
		return receiver
	case Record:
		nr := v
		nr.Fields = make([]FieldInfo, len(v.Fields))
		for i, f := range v.Fields {
			f.Type = SubstituteThis(f.Type, receiver)
			nr.Fields[i] = f
		}
		if v.IndexType != nil {
			nr.IndexType = SubstituteThis(v.IndexType, receiver)
		}
		return nr
	case Array:
		na := v
		na.Elements = make([]ArrayElement, len(v.Elements))
		for i, e := range v.Elements {
			e.Type = SubstituteThis(e.Type, receiver)
			na.Elements[i] = e
		}
		return na
	case Function:
		nf := v
		nf.Params = make([]ParamInfo, len(v.Params))
		for i, p := range v.Params {
			p.Type = SubstituteThis(p.Type, receiver)
			nf.Params[i] = p
		}
		nf.ReturnType = SubstituteThis(v.ReturnType, receiver)
		return nf
	case Union:
		nu := make([]Type, len(v.Types))
		for i, m := range v.Types {
			nu[i] = SubstituteThis(m, receiver)
		}
		return NewUnion(nu...)
	case Intersection:
		ni := make([]Type, len(v.Types))
		for i, m := range v.Types {
			ni[i] = SubstituteThis(m, receiver)
		}
		return NewIntersection(ni...)
	case WithMetadata:
		return WithMetadata{Base: SubstituteThis(v.Base, receiver), Meta: v.Meta}
	default:
		return t
	}
}

// ---- WithMetadata ---------------------------------------------------

type Annotation struct {
	Type  Type // the annotation's declared type (for .annotation(A))
	Value Type // as a Type value, if the annotation argument was itself one;
	           // for ordinary comptime annotations this is the Literal/Type
	           // wrapping whatever the checker evaluated.
}

type Metadata struct {
	DisplayName string
	TypeArgs    []Type
	Annotations []Annotation
}

// WithMetadata wraps baseType with display metadata. It is transparent to
// subtyping (spec §3.1, §8): subtype(withMetadata(T,m), T) and vice versa
// always hold.
type WithMetadata struct {
	Base Type
	Meta Metadata
}

func (WithMetadata) isType() {}
func (w WithMetadata) String() string {
	name := w.Meta.DisplayName
	if name == "" {
		return w.Base.String()
	}
	if len(w.Meta.TypeArgs) == 0 {
		return name
	}
	parts := make([]string, len(w.Meta.TypeArgs))
	for i, a := range w.Meta.TypeArgs {
		parts[i] = a.String()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}

// Unwrap strips any WithMetadata wrapper, per spec §4.1's "WithMetadata is
// unwrapped on both sides before comparison".
func Unwrap(t Type) Type {
	for {
		w, ok := t.(WithMetadata)
		if !ok {
			return t
		}
		t = w.Base
	}
}

// ---- BoundedType --------------------------------------------------------

// BoundedType is the metatype Type<Bound>, the declared type of a generic
// parameter (spec §3.1, §4.5.3).
type BoundedType struct{ Bound Type }

func (BoundedType) isType() {}
func (b BoundedType) String() string {
	if b.Bound == nil {
		return "Type"
	}
	return "Type<" + b.Bound.String() + ">"
}

// ContainsTypeType reports whether t is, or structurally contains, the
// metatype Type — the condition spec §3.1/§4.5.1/§8 uses to mark a
// binding comptimeOnly.
func ContainsTypeType(t Type) bool {
	switch v := Unwrap(t).(type) {
	case Primitive:
		return v.Name == TypeType
	case BoundedType:
		return true
	case Record:
		for _, f := range v.Fields {
			if ContainsTypeType(f.Type) {
				return true
			}
		}
		if v.IndexType != nil && ContainsTypeType(v.IndexType) {
			return true
		}
		return false
	case Array:
		for _, e := range v.Elements {
			if ContainsTypeType(e.Type) {
				return true
			}
		}
		return false
	case Function:
		for _, p := range v.Params {
			// A desugared generic parameter's BoundedType is always elided
			// at erasure (spec §4.5.3(c)) and must not itself make the
			// enclosing function's declaration comptimeOnly.
			if p.IsTypeParam {
				continue
			}
			if ContainsTypeType(p.Type) {
				return true
			}
		}
		return ContainsTypeType(v.ReturnType)
	case Union:
		for _, m := range v.Types {
			if ContainsTypeType(m) {
				return true
			}
		}
		return false
	case Intersection:
		for _, m := range v.Types {
			if ContainsTypeType(m) {
				return true
			}
		}
		return false
	case Branded:
		return ContainsTypeType(v.Base)
	default:
		return false
	}
}

// ---- Keyof / IndexedAccess (deferred operators) ------------------------

// Keyof is only constructed (and left unresolved) when its operand
// mentions a type variable; once the variable is known, the checker
// resolves it via typeprops' keysType (spec §3.1, §4.4).
type Keyof struct{ Operand Type }

func (Keyof) isType() {}
func (k Keyof) String() string { return "keyof " + k.Operand.String() }

type IndexedAccess struct {
	Object Type
	Index  Type
}

func (IndexedAccess) isType() {}
func (i IndexedAccess) String() string {
	return i.Object.String() + "[" + i.Index.String() + "]"
}

// ---- helpers shared by checker/evaluator -------------------------------

// SortedFieldNames returns r's field names in declared order (spec §4.4's
// fieldNames property).
func SortedFieldNames(r Record) []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// KeysUnion builds the union of String literal types naming r's fields
// (spec §4.4's keysType property).
func KeysUnion(r Record) Type {
	if len(r.Fields) == 0 {
		return NeverT()
	}
	names := SortedFieldNames(r)
	sort.Strings(names)
	members := make([]Type, len(names))
	for i, n := range names {
		members[i] = Literal{Value: n, Base: BaseString}
	}
	return NewUnion(members...)
}
