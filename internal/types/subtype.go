package types

// Subtype implements S <: T by structural recursion (spec §4.1), grounded
// on the teacher's internal/typesystem/unify.go switch-on-both-sides
// dispatch style, generalized from bidirectional unification to a
// one-directional relation.
func Subtype(s, t Type) bool {
	s, t = Unwrap(s), Unwrap(t)

	if p, ok := s.(Primitive); ok && p.Name == Never {
		return true
	}
	if p, ok := t.(Primitive); ok && p.Name == Unknown {
		return true
	}

	// A concrete argument against a generic parameter's type variable: this
	// engine has no instantiation step, so acceptance is judged against the
	// variable's declared bound alone (unbounded accepts anything). Two type
	// variables on either side still fall through to the precise case below,
	// which compares identity/bounds instead.
	if tv, ok := t.(TypeVar); ok {
		if _, sIsTypeVar := s.(TypeVar); !sIsTypeVar {
			if tv.Bound == nil {
				return true
			}
			return Subtype(s, tv.Bound)
		}
	}

	// Union on the left: every flattened member must be <: t.
	if u, ok := s.(Union); ok {
		for _, m := range u.Types {
			if !Subtype(m, t) {
				return false
			}
		}
		return true
	}
	// Union on the right: s must be <: some member.
	if u, ok := t.(Union); ok {
		for _, m := range u.Types {
			if Subtype(s, m) {
				return true
			}
		}
		return false
	}
	// Intersection on the right: s must be <: every member.
	if it, ok := t.(Intersection); ok {
		for _, m := range it.Types {
			if !Subtype(s, m) {
				return false
			}
		}
		return true
	}
	// Intersection on the left: some member must be <: t.
	if it, ok := s.(Intersection); ok {
		for _, m := range it.Types {
			if Subtype(m, t) {
				return true
			}
		}
		return false
	}

	switch sv := s.(type) {
	case Literal:
		switch tv := t.(type) {
		case Literal:
			return sv.Base == tv.Base && literalValueEqual(sv.Value, tv.Value)
		case Primitive:
			switch sv.Base {
			case BaseInt:
				return tv.Name == Int || tv.Name == Number
			case BaseFloat:
				return tv.Name == Float || tv.Name == Number
			case BaseString:
				return tv.Name == String
			case BaseBoolean:
				return tv.Name == Boolean
			}
		}
		return false

	case Primitive:
		tv, ok := t.(Primitive)
		if !ok {
			return false
		}
		if sv.Name == tv.Name {
			return true
		}
		if (sv.Name == Int || sv.Name == Float) && tv.Name == Number {
			return true
		}
		return false

	case Record:
		tv, ok := t.(Record)
		if !ok {
			return false
		}
		return recordSubtype(sv, tv)

	case Array:
		tv, ok := t.(Array)
		if !ok {
			return false
		}
		return arraySubtype(sv, tv)

	case Function:
		tv, ok := t.(Function)
		if !ok {
			return false
		}
		return functionSubtype(sv, tv)

	case Branded:
		tv, ok := t.(Branded)
		if !ok {
			return false
		}
		return sv.Name == tv.Name && Equal(sv.Base, tv.Base)

	case TypeVar:
		switch tv := t.(type) {
		case TypeVar:
			if sv.Bound == nil || tv.Bound == nil {
				return sv.Name == tv.Name
			}
			return Subtype(sv.Bound, tv.Bound)
		default:
			return false
		}

	case BoundedType:
		tv, ok := t.(BoundedType)
		if !ok {
			return false
		}
		if sv.Bound == nil {
			return tv.Bound == nil
		}
		if tv.Bound == nil {
			return true
		}
		return Subtype(sv.Bound, tv.Bound)

	case ThisType:
		_, ok := t.(ThisType)
		return ok

	default:
		// concrete C <: Type<B> iff C <: B (spec §4.1)
		if bt, ok := t.(BoundedType); ok {
			if bt.Bound == nil {
				return true
			}
			return Subtype(s, bt.Bound)
		}
		return false
	}
}

func literalValueEqual(a, b any) bool {
	return a == b
}

func recordSubtype(s, t Record) bool {
	for _, tf := range t.Fields {
		sf, ok := s.FieldByName(tf.Name)
		if !ok {
			if tf.Optional {
				continue
			}
			return false
		}
		if !tf.Optional && sf.Optional {
			return false
		}
		if !Subtype(sf.Type, tf.Type) {
			return false
		}
	}
	if t.Closed {
		tNames := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			tNames[f.Name] = true
		}
		for _, sf := range s.Fields {
			if !tNames[sf.Name] {
				return false
			}
		}
	}
	if t.IndexType != nil {
		tNames := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			tNames[f.Name] = true
		}
		for _, sf := range s.Fields {
			if tNames[sf.Name] {
				continue
			}
			if !Subtype(sf.Type, t.IndexType) {
				return false
			}
		}
	}
	return true
}

func arraySubtype(s, t Array) bool {
	sVariadic, tVariadic := s.IsVariadic(), t.IsVariadic()

	switch {
	case !sVariadic && tVariadic:
		// fixed <: variadic: the fixed array's element union must be <:
		// the variadic array's (non-spread prefix +) spread element type.
		prefix, spreadElem := splitVariadic(t)
		if len(s.Elements) < len(prefix) {
			return false
		}
		for i, pe := range prefix {
			if !Subtype(s.Elements[i].Type, pe.Type) {
				return false
			}
		}
		if spreadElem == nil {
			return len(s.Elements) == len(prefix)
		}
		rest := make([]Type, 0, len(s.Elements)-len(prefix))
		for _, e := range s.Elements[len(prefix):] {
			rest = append(rest, e.Type)
		}
		return Subtype(NewUnion(rest...), *spreadElem)

	case sVariadic && !tVariadic:
		// variadic-to-fixed is never a subtype (spec §4.1).
		return false

	case !sVariadic && !tVariadic:
		if len(s.Elements) != len(t.Elements) {
			return false
		}
		for i := range s.Elements {
			if !Subtype(s.Elements[i].Type, t.Elements[i].Type) {
				return false
			}
		}
		return true

	default: // both variadic: spread-suffix arrays agree on fixed prefix + spread elem type
		sPrefix, sSpread := splitVariadic(s)
		tPrefix, tSpread := splitVariadic(t)
		if len(sPrefix) != len(tPrefix) {
			return false
		}
		for i := range sPrefix {
			if !Subtype(sPrefix[i].Type, tPrefix[i].Type) {
				return false
			}
		}
		if sSpread == nil || tSpread == nil {
			return sSpread == nil && tSpread == nil
		}
		return Subtype(*sSpread, *tSpread)
	}
}

// splitVariadic returns the non-spread prefix elements and the spread
// element's type (nil if there is none, which cannot happen when
// IsVariadic() is true but is guarded defensively).
func splitVariadic(a Array) ([]ArrayElement, *Type) {
	var prefix []ArrayElement
	for _, e := range a.Elements {
		if e.Spread {
			t := e.Type
			return prefix, &t
		}
		prefix = append(prefix, e)
	}
	return prefix, nil
}

func functionSubtype(s, t Function) bool {
	if t.Async && !s.Async {
		return false
	}
	sRest, sHasRest := s.RestParam()
	tRest, tHasRest := t.RestParam()
	if tHasRest && !sHasRest {
		return false
	}

	sFixed := s.Params
	if sHasRest {
		sFixed = s.Params[:len(s.Params)-1]
	}
	tFixed := t.Params
	if tHasRest {
		tFixed = t.Params[:len(t.Params)-1]
	}

	// S may have fewer parameters than T; S must not require more than T
	// provides.
	for i, sp := range sFixed {
		if i >= len(tFixed) {
			if !sp.Optional && !tHasRest {
				return false
			}
			if tHasRest && !Subtype(tRest.Type, sp.Type) {
				return false
			}
			continue
		}
		tp := tFixed[i]
		if !tp.Optional && sp.Optional {
			return false
		}
		// contravariant in parameter position
		if !Subtype(tp.Type, sp.Type) {
			return false
		}
	}
	// T may have more parameters than S (excess ignored, per curried/callback
	// ergonomics — spec §4.1); S simply never sees them.
	if sHasRest && tHasRest {
		if !Subtype(tRest.Type, sRest.Type) {
			return false
		}
	}
	// covariant in return
	return Subtype(s.ReturnType, t.ReturnType)
}
