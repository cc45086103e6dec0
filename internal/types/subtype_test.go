package types

import "testing"

func TestSubtypeUnionOnLeftRequiresEveryMember(t *testing.T) {
	u := Union{Types: []Type{Primitive{Name: Int}, Primitive{Name: String}}}
	if Subtype(u, Primitive{Name: Number}) {
		t.Fatal("expected Int|String not to be <: Number (String isn't)")
	}
	u2 := Union{Types: []Type{Primitive{Name: Int}, Primitive{Name: Float}}}
	if !Subtype(u2, Primitive{Name: Number}) {
		t.Fatal("expected Int|Float to be <: Number (both members are)")
	}
}

func TestSubtypeFunctionIgnoresExcessTargetParams(t *testing.T) {
	s := Function{
		Params:     []ParamInfo{{Name: "a", Type: Primitive{Name: Int}}},
		ReturnType: Primitive{Name: Int},
	}
	target := Function{
		Params: []ParamInfo{
			{Name: "a", Type: Primitive{Name: Int}},
			{Name: "b", Type: Primitive{Name: Int}},
		},
		ReturnType: Primitive{Name: Int},
	}
	if !Subtype(s, target) {
		t.Fatal("expected a 1-arg function to be <: a 2-required-arg function (excess target params ignored)")
	}
}

func TestSubtypeFunctionStillRejectsIncompatibleSharedParam(t *testing.T) {
	s := Function{
		Params:     []ParamInfo{{Name: "a", Type: Primitive{Name: String}}},
		ReturnType: Primitive{Name: Int},
	}
	target := Function{
		Params: []ParamInfo{
			{Name: "a", Type: Primitive{Name: Int}},
			{Name: "b", Type: Primitive{Name: Int}},
		},
		ReturnType: Primitive{Name: Int},
	}
	if Subtype(s, target) {
		t.Fatal("expected mismatched shared parameter type to still fail")
	}
}
