package erase

import (
	"testing"

	"github.com/funvibe/tycore/internal/check"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
)

func tok() token.Token { return token.Token{Line: 1, Column: 1} }

// TestDeadBranchErasure reproduces the scenario from spec §8:
// const T = Int; const x = T.extends(Number) ? 1 : "no";
// — the conditional must lower to the literal 1, with no trace of T or
// Number in the runtime IR.
func TestDeadBranchErasure(t *testing.T) {
	c := check.New(1000, nil)

	declT := &ir.ConstDecl{Tok: tok(), Name: "T", Init: &ir.Identifier{Tok: tok(), Name: "Int"}}
	cond := &ir.CallExpr{
		Tok:    tok(),
		Callee: &ir.PropertyExpr{Tok: tok(), Object: &ir.Identifier{Tok: tok(), Name: "T"}, Property: "extends"},
		Args:   []ir.Arg{{Value: &ir.Identifier{Tok: tok(), Name: "Number"}}},
	}
	declX := &ir.ConstDecl{Tok: tok(), Name: "x", Init: &ir.ConditionalExpr{
		Tok:       tok(),
		Condition: cond,
		Then:      &ir.Literal{Tok: tok(), Base: ir.LitInt, Raw: int64(1)},
		Else:      &ir.Literal{Tok: tok(), Base: ir.LitString, Raw: "no"},
	}}

	prog := &ir.Program{File: "test", Decls: []ir.Decl{declT, declX}}
	c.CheckProgram(prog)
	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}

	out := Program(c, prog)

	// T is comptime-only (its type contains the metatype Type), so its
	// declaration must be dropped entirely.
	for _, d := range out.Decls {
		if cd, ok := d.(*ir.ConstDecl); ok && cd.Name == "T" {
			t.Fatal("expected comptime-only declaration T to be erased")
		}
	}

	if len(out.Decls) != 1 {
		t.Fatalf("expected exactly one surviving declaration, got %d", len(out.Decls))
	}
	xDecl, ok := out.Decls[0].(*ir.ConstDecl)
	if !ok || xDecl.Name != "x" {
		t.Fatalf("expected the surviving declaration to be x, got %#v", out.Decls[0])
	}
	lit, ok := xDecl.Init.(*ir.Literal)
	if !ok {
		t.Fatalf("expected x's conditional to erase to a literal, got %T", xDecl.Init)
	}
	if lit.Base != ir.LitInt || lit.Raw.(int64) != 1 {
		t.Fatalf("expected literal 1, got %#v", lit)
	}
}

// TestGenericParameterErasure exercises spec §4.5.3(c)/§4.6: a desugared
// `<T>(x: T) => x` lambda must erase to a single-parameter lambda with no
// type annotations, and a call site against it must drop the elided
// type-parameter argument.
func TestGenericParameterErasure(t *testing.T) {
	c := check.New(1000, nil)

	typeOfX := &ir.CallExpr{Tok: tok(), Callee: &ir.Identifier{Tok: tok(), Name: "typeOf"},
		Args: []ir.Arg{{Value: &ir.Identifier{Tok: tok(), Name: "x"}}}}
	lam := &ir.Lambda{
		Tok: tok(),
		Params: []ir.LambdaParam{
			{Name: "T", TypeExpr: &ir.TypeRefExpr{Tok: tok(), Name: "Type"}, Default: typeOfX},
			{Name: "x", TypeExpr: &ir.Identifier{Tok: tok(), Name: "T"}},
		},
		Body: &ir.Identifier{Tok: tok(), Name: "x"},
	}
	declID := &ir.ConstDecl{Tok: tok(), Name: "id", Init: lam}
	call := &ir.CallExpr{
		Tok:    tok(),
		Callee: &ir.Identifier{Tok: tok(), Name: "id"},
		Args:   []ir.Arg{{Value: &ir.Literal{Tok: tok(), Base: ir.LitInt, Raw: int64(42)}}},
	}
	declCall := &ir.ExprDecl{Tok: tok(), Expr: call}

	prog := &ir.Program{File: "test", Decls: []ir.Decl{declID, declCall}}
	c.CheckProgram(prog)
	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}

	out := Program(c, prog)
	if len(out.Decls) != 2 {
		t.Fatalf("expected both declarations to survive, got %d", len(out.Decls))
	}
	erasedDecl, ok := out.Decls[0].(*ir.ConstDecl)
	if !ok {
		t.Fatalf("expected a ConstDecl, got %T", out.Decls[0])
	}
	erasedLam, ok := erasedDecl.Init.(*ir.Lambda)
	if !ok {
		t.Fatalf("expected a Lambda, got %T", erasedDecl.Init)
	}
	if len(erasedLam.Params) != 1 || erasedLam.Params[0].Name != "x" {
		t.Fatalf("expected the type parameter to be erased, got params %#v", erasedLam.Params)
	}
	if erasedLam.Params[0].TypeExpr != nil {
		t.Fatalf("expected the parameter annotation to be dropped, got %#v", erasedLam.Params[0].TypeExpr)
	}

	erasedExprDecl, ok := out.Decls[1].(*ir.ExprDecl)
	if !ok {
		t.Fatalf("expected an ExprDecl, got %T", out.Decls[1])
	}
	erasedCall, ok := erasedExprDecl.Expr.(*ir.CallExpr)
	if !ok {
		t.Fatalf("expected a CallExpr, got %T", erasedExprDecl.Expr)
	}
	if len(erasedCall.Args) != 1 {
		t.Fatalf("expected the call's single runtime argument to survive untouched, got %d args", len(erasedCall.Args))
	}
}
