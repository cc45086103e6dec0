package check

import (
	"testing"

	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// TestDestructureNarrowsUnionByLiteralField is spec §4.5.5's discriminated-
// union idiom: { kind: "ok", value: Int } | { kind: "err", value: String }
// matched with { kind: "ok", value } must eliminate the "err" variant
// because its "kind" field can't hold the literal "ok", binding `value`
// at Int rather than Int|String.
func TestDestructureNarrowsUnionByLiteralField(t *testing.T) {
	c := New(1000, nil)
	tenv, cenv := c.Eval.Prelude()

	okVariant := types.Record{Closed: true, Fields: []types.FieldInfo{
		{Name: "kind", Type: types.Literal{Value: "ok", Base: types.BaseString}},
		{Name: "value", Type: types.Primitive{Name: types.Int}},
	}}
	errVariant := types.Record{Closed: true, Fields: []types.FieldInfo{
		{Name: "kind", Type: types.Literal{Value: "err", Base: types.BaseString}},
		{Name: "value", Type: types.Primitive{Name: types.String}},
	}}
	tenv.Define("s", &tyenv.TypeBinding{
		Type:   types.NewUnion(okVariant, errVariant),
		Status: tyenv.Runtime,
	})

	n := &ir.MatchExpr{
		Tok:       tok(1),
		Scrutinee: &ir.Identifier{Tok: tok(1), Name: "s"},
		Arms: []ir.MatchArm{
			{
				Pattern: &ir.DestructurePattern{Tok: tok(1), Fields: []ir.DestructureField{
					{Name: "kind", Nested: &ir.LiteralPattern{Tok: tok(1), Base: ir.LitString, Raw: "ok"}},
					{Name: "value"},
				}},
				Body: &ir.Identifier{Tok: tok(1), Name: "value"},
			},
		},
	}

	info := c.checkMatch(n, tenv, cenv, nil)
	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	if !types.Equal(info.Type, types.Primitive{Name: types.Int}) {
		t.Fatalf("expected value to narrow to Int, got %s", info.Type.String())
	}
}
