package types

// Equal is structural equality, deliberately not "Subtype(a,b) &&
// Subtype(b,a)": spec §4.1 calls for an explicit symmetric traversal
// because flattening, metadata-stripping, and field ordering need
// dedicated handling that the (asymmetric, contravariant-in-places)
// subtype relation does not naturally provide.
func Equal(a, b Type) bool {
	a, b = Unwrap(a), Unwrap(b)

	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Name == bv.Name

	case Literal:
		bv, ok := b.(Literal)
		return ok && av.Base == bv.Base && av.Value == bv.Value

	case Record:
		bv, ok := b.(Record)
		if !ok || av.Closed != bv.Closed || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for _, af := range av.Fields {
			bf, ok := bv.FieldByName(af.Name)
			if !ok || af.Optional != bf.Optional || !Equal(af.Type, bf.Type) {
				return false
			}
		}
		if (av.IndexType == nil) != (bv.IndexType == nil) {
			return false
		}
		if av.IndexType != nil && !Equal(av.IndexType, bv.IndexType) {
			return false
		}
		return true

	case Array:
		bv, ok := b.(Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if av.Elements[i].Spread != bv.Elements[i].Spread {
				return false
			}
			if !Equal(av.Elements[i].Type, bv.Elements[i].Type) {
				return false
			}
		}
		return true

	case Function:
		bv, ok := b.(Function)
		if !ok || av.Async != bv.Async || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			ap, bp := av.Params[i], bv.Params[i]
			if ap.Optional != bp.Optional || ap.Rest != bp.Rest {
				return false
			}
			if !Equal(ap.Type, bp.Type) {
				return false
			}
		}
		return Equal(av.ReturnType, bv.ReturnType)

	case Union:
		bv, ok := b.(Union)
		if !ok {
			return false
		}
		return sameTypeSet(av.Types, bv.Types)

	case Intersection:
		bv, ok := b.(Intersection)
		if !ok {
			return false
		}
		return sameTypeSet(av.Types, bv.Types)

	case Branded:
		bv, ok := b.(Branded)
		return ok && av.Name == bv.Name && Equal(av.Base, bv.Base)

	case TypeVar:
		bv, ok := b.(TypeVar)
		if !ok || av.Name != bv.Name {
			return false
		}
		if (av.Bound == nil) != (bv.Bound == nil) {
			return false
		}
		return av.Bound == nil || Equal(av.Bound, bv.Bound)

	case ThisType:
		_, ok := b.(ThisType)
		return ok

	case BoundedType:
		bv, ok := b.(BoundedType)
		if !ok {
			return false
		}
		if (av.Bound == nil) != (bv.Bound == nil) {
			return false
		}
		return av.Bound == nil || Equal(av.Bound, bv.Bound)

	case Keyof:
		bv, ok := b.(Keyof)
		return ok && Equal(av.Operand, bv.Operand)

	case IndexedAccess:
		bv, ok := b.(IndexedAccess)
		return ok && Equal(av.Object, bv.Object) && Equal(av.Index, bv.Index)

	default:
		return false
	}
}

// sameTypeSet ignores order, matching flatten's guarantee that unions and
// intersections are sets of members (spec §8: "flatten(union(union(a,b),
// c)) = union(a,b,c)").
func sameTypeSet(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, at := range a {
		found := false
		for i, bt := range b {
			if used[i] {
				continue
			}
			if Equal(at, bt) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
