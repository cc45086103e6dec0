package typeprops

import (
	"testing"

	"github.com/funvibe/tycore/internal/types"
)

func TestGetNameOnPrimitive(t *testing.T) {
	name, err := Get(types.Primitive{Name: types.Int}, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Int" {
		t.Fatalf("expected \"Int\", got %#v", name)
	}
}

func TestGetNamePrefersDisplayName(t *testing.T) {
	wrapped := types.WithMetadata{
		Base: types.Primitive{Name: types.Int},
		Meta: types.Metadata{DisplayName: "MyAlias"},
	}
	name, err := Get(wrapped, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "MyAlias" {
		t.Fatalf("expected \"MyAlias\", got %#v", name)
	}
}

func TestGetFieldsOnNonRecordErrors(t *testing.T) {
	if _, err := Get(types.Primitive{Name: types.Int}, "fields"); err == nil {
		t.Fatal("expected an error requesting .fields on a non-record type")
	}
}

func TestGetLengthOnFixedArray(t *testing.T) {
	arr := types.Array{Elements: []types.ArrayElement{
		{Type: types.Primitive{Name: types.Int}},
		{Type: types.Primitive{Name: types.Int}},
	}}
	lenVal, err := Get(arr, "length")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := lenVal.(*int64)
	if !ok || n == nil || *n != 2 {
		t.Fatalf("expected length 2, got %#v", lenVal)
	}
}

func TestGetLengthOnVariadicArrayIsUndefined(t *testing.T) {
	arr := types.Array{Elements: []types.ArrayElement{
		{Type: types.Primitive{Name: types.Int}, Spread: true},
	}}
	lenVal, err := Get(arr, "length")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lenVal.(*int64) != nil {
		t.Fatalf("expected nil length for a variadic array, got %#v", lenVal)
	}
}

func TestGetUnknownPropertyErrors(t *testing.T) {
	if _, err := Get(types.Primitive{Name: types.Int}, "bogus"); err == nil {
		t.Fatal("expected an error for an unknown property")
	}
}

func TestRuntimeUsableClassification(t *testing.T) {
	if !RuntimeUsable("name") {
		t.Fatal("expected \"name\" to be runtime-usable")
	}
	if RuntimeUsable("fields") {
		t.Fatal("expected \"fields\" to be comptime-only")
	}
	if RuntimeUsable("returnType") {
		t.Fatal("expected \"returnType\" to be comptime-only")
	}
}

func TestExtendsUnboundTypeVarIsFalse(t *testing.T) {
	if Extends(types.TypeVar{Name: "T"}, types.Primitive{Name: types.Number}) {
		t.Fatal("expected .extends on an unbound type variable to answer false")
	}
}

func TestExtendsBoundTypeVarChecksBound(t *testing.T) {
	tv := types.TypeVar{Name: "T", Bound: types.Primitive{Name: types.Int}}
	if !Extends(tv, types.Primitive{Name: types.Number}) {
		t.Fatal("expected Int <: Number to hold through the bound")
	}
}

func TestExtendsConcreteType(t *testing.T) {
	if !Extends(types.Primitive{Name: types.Int}, types.Primitive{Name: types.Number}) {
		t.Fatal("expected Int.extends(Number) to hold")
	}
	if Extends(types.Primitive{Name: types.String}, types.Primitive{Name: types.Number}) {
		t.Fatal("expected String.extends(Number) to fail")
	}
}

func TestAnnotationFindsFirstMatchingAnnotation(t *testing.T) {
	wrapped := types.WithMetadata{
		Base: types.Primitive{Name: types.Int},
		Meta: types.Metadata{Annotations: []types.Annotation{
			{Type: types.Primitive{Name: types.String}},
			{Type: types.Primitive{Name: types.Number}},
		}},
	}
	ann, ok := Annotation(wrapped, types.Primitive{Name: types.Number})
	if !ok {
		t.Fatal("expected to find a matching annotation")
	}
	if ann.Type.String() != "Number" {
		t.Fatalf("expected the Number annotation, got %s", ann.Type.String())
	}
}

func TestAnnotationOnPlainTypeIsAbsent(t *testing.T) {
	if _, ok := Annotation(types.Primitive{Name: types.Int}, types.Primitive{Name: types.Number}); ok {
		t.Fatal("expected no annotation on a type with no metadata")
	}
}
