package pipeline

import (
	"testing"

	"github.com/funvibe/tycore/internal/config"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
)

func tok() token.Token { return token.Token{Line: 1, Column: 1} }

func TestStandardPipelineChecksAndErases(t *testing.T) {
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

	ctx := &PipelineContext{Program: prog, Opts: config.Default()}
	out := Standard().Run(ctx)

	if out.Checker.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.Checker.Diags.All())
	}
	if len(out.Program.Decls) != 1 {
		t.Fatalf("expected T to be erased, got %d decls", len(out.Program.Decls))
	}
}

func TestEraseStageSkipsOnCheckErrors(t *testing.T) {
	declBad := &ir.ExprDecl{Tok: tok(), Expr: &ir.Identifier{Tok: tok(), Name: "undefinedName"}}
	prog := &ir.Program{File: "test", Decls: []ir.Decl{declBad}}

	ctx := &PipelineContext{Program: prog, Opts: config.Default()}
	out := Standard().Run(ctx)

	if !out.Checker.Diags.HasErrors() {
		t.Fatal("expected an undefined-binding error")
	}
	if len(out.Program.Decls) != 1 {
		t.Fatalf("expected erasure to be skipped, got %d decls", len(out.Program.Decls))
	}
}
