package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewUnionFlattensAndDedupes(t *testing.T) {
	got := NewUnion(
		Union{Types: []Type{Primitive{Name: Int}, Primitive{Name: String}}},
		Primitive{Name: String},
		NeverT(),
	)
	want := Union{Types: []Type{Primitive{Name: Int}, Primitive{Name: String}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NewUnion mismatch (-want +got):\n%s", diff)
	}
}

func TestNewUnionDegenerateArities(t *testing.T) {
	if got := NewUnion(); !cmp.Equal(Type(NeverT()), got) {
		t.Fatalf("expected Never for an empty union, got %s", got.String())
	}
	if got := NewUnion(Primitive{Name: Boolean}); !cmp.Equal(Type(Primitive{Name: Boolean}), got) {
		t.Fatalf("expected the lone member back, got %s", got.String())
	}
}

func TestNormalizeRecordLaterFieldWins(t *testing.T) {
	r := NormalizeRecord(Record{Fields: []FieldInfo{
		{Name: "x", Type: Primitive{Name: Int}},
		{Name: "y", Type: Primitive{Name: String}},
		{Name: "x", Type: Primitive{Name: Boolean}},
	}})
	want := []FieldInfo{
		{Name: "x", Type: Primitive{Name: Boolean}},
		{Name: "y", Type: Primitive{Name: String}},
	}
	if diff := cmp.Diff(want, r.Fields); diff != "" {
		t.Fatalf("NormalizeRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstituteThisThreadsThroughStructure(t *testing.T) {
	receiver := Record{Fields: []FieldInfo{{Name: "tag", Type: Primitive{Name: String}}}, Closed: true}
	fluent := Record{Fields: []FieldInfo{
		{Name: "next", Type: Function{Params: nil, ReturnType: ThisType{}}},
	}, Closed: true}

	got := SubstituteThis(fluent, receiver)
	rec, ok := got.(Record)
	if !ok {
		t.Fatalf("expected Record, got %T", got)
	}
	nextFn, ok := rec.Fields[0].Type.(Function)
	if !ok {
		t.Fatalf("expected Function field, got %T", rec.Fields[0].Type)
	}
	if diff := cmp.Diff(Type(receiver), nextFn.ReturnType); diff != "" {
		t.Fatalf("This substitution mismatch (-want +got):\n%s", diff)
	}
}
