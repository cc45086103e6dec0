package check

import (
	"testing"

	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// TestOverloadUnionArgumentDistributesAcrossSignatures is spec §4.5.4's
// worked example: Parse = ((String)=>Int) & ((Int)=>String) called with
// a String|Int argument matches neither signature as a whole (no single
// parameter accepts the whole union) but must still resolve to Int|String
// by distributing the union member-by-member across the overload set.
func TestOverloadUnionArgumentDistributesAcrossSignatures(t *testing.T) {
	c := New(1000, nil)
	tenv, cenv := c.Eval.Prelude()

	parseType := types.Intersection{Types: []types.Type{
		types.Function{
			Params:     []types.ParamInfo{{Name: "s", Type: types.Primitive{Name: types.String}}},
			ReturnType: types.Primitive{Name: types.Int},
		},
		types.Function{
			Params:     []types.ParamInfo{{Name: "n", Type: types.Primitive{Name: types.Int}}},
			ReturnType: types.Primitive{Name: types.String},
		},
	}}
	tenv.Define("Parse", &tyenv.TypeBinding{Type: parseType, Status: tyenv.Runtime})
	tenv.Define("input", &tyenv.TypeBinding{
		Type:   types.NewUnion(types.Primitive{Name: types.String}, types.Primitive{Name: types.Int}),
		Status: tyenv.Runtime,
	})

	call := &ir.CallExpr{
		Tok:    tok(1),
		Callee: &ir.Identifier{Tok: tok(1), Name: "Parse"},
		Args:   []ir.Arg{{Value: &ir.Identifier{Tok: tok(1), Name: "input"}}},
	}

	info := c.checkCall(call, tenv, cenv, nil)
	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	want := types.NewUnion(types.Primitive{Name: types.Int}, types.Primitive{Name: types.String})
	if !types.Equal(info.Type, want) {
		t.Fatalf("expected Int|String, got %s", info.Type.String())
	}
}

// TestOverloadUnionArgumentNoMatchingSignatureFails confirms that when
// one of the union's members has no matching signature at all, the
// distribution still fails the call (no partial success).
func TestOverloadUnionArgumentNoMatchingSignatureFails(t *testing.T) {
	c := New(1000, nil)
	tenv, cenv := c.Eval.Prelude()

	parseType := types.Intersection{Types: []types.Type{
		types.Function{
			Params:     []types.ParamInfo{{Name: "s", Type: types.Primitive{Name: types.String}}},
			ReturnType: types.Primitive{Name: types.Int},
		},
		types.Function{
			Params:     []types.ParamInfo{{Name: "n", Type: types.Primitive{Name: types.Int}}},
			ReturnType: types.Primitive{Name: types.String},
		},
	}}
	tenv.Define("Parse", &tyenv.TypeBinding{Type: parseType, Status: tyenv.Runtime})
	tenv.Define("input", &tyenv.TypeBinding{
		Type:   types.NewUnion(types.Primitive{Name: types.String}, types.Primitive{Name: types.Boolean}),
		Status: tyenv.Runtime,
	})

	call := &ir.CallExpr{
		Tok:    tok(1),
		Callee: &ir.Identifier{Tok: tok(1), Name: "Parse"},
		Args:   []ir.Arg{{Value: &ir.Identifier{Tok: tok(1), Name: "input"}}},
	}

	c.checkCall(call, tenv, cenv, nil)
	if !c.Diags.HasErrors() {
		t.Fatal("expected a diagnostic when one union member matches no signature")
	}
}
