package check

import (
	"testing"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
	"github.com/funvibe/tycore/internal/types"
)

func tok(line int) token.Token { return token.Token{Line: line, Column: 1} }

func program(decls ...ir.Decl) *ir.Program {
	return &ir.Program{File: "test", Decls: decls}
}

func constDecl(name string, typeExpr, init ir.Expr) *ir.ConstDecl {
	return &ir.ConstDecl{Tok: tok(1), Name: name, TypeExpr: typeExpr, Init: init}
}

func hasErrorCode(diags []*diagnostics.Diagnostic, code diagnostics.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestLiteralInference(t *testing.T) {
	c := New(1000, nil)
	cd := constDecl("n", nil, &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(42)})
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	info, ok := c.DeclType(cd)
	if !ok {
		t.Fatal("expected decl info")
	}
	if info.Type.String() != "42" {
		t.Fatalf("expected literal type 42, got %s", info.Type.String())
	}
}

func TestConstDeclTypeMismatch(t *testing.T) {
	c := New(1000, nil)
	intType := &ir.TypeRefExpr{Tok: tok(1), Name: "Int"}
	cd := constDecl("s", intType, &ir.Literal{Tok: tok(1), Base: ir.LitString, Raw: "hi"})
	c.CheckProgram(program(cd))

	if !hasErrorCode(c.Diags.All(), diagnostics.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", c.Diags.All())
	}
}

func TestUndefinedBinding(t *testing.T) {
	c := New(1000, nil)
	cd := constDecl("x", nil, &ir.Identifier{Tok: tok(1), Name: "doesNotExist"})
	c.CheckProgram(program(cd))

	if !hasErrorCode(c.Diags.All(), diagnostics.ErrUndefinedBinding) {
		t.Fatalf("expected ErrUndefinedBinding, got %v", c.Diags.All())
	}
}

func TestRecursiveLambdaPreRegistration(t *testing.T) {
	c := New(1000, nil)
	// const fact = (n: Int): Int => n == 0 ? 1 : n * fact(n - 1)
	intRef := func() ir.Expr { return &ir.TypeRefExpr{Tok: tok(1), Name: "Int"} }
	body := &ir.ConditionalExpr{
		Tok:       tok(1),
		Condition: &ir.BinaryExpr{Tok: tok(1), Op: ir.OpEq, Left: &ir.Identifier{Tok: tok(1), Name: "n"}, Right: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(0)}},
		Then:      &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)},
		Else: &ir.BinaryExpr{
			Tok: tok(1), Op: ir.OpMul,
			Left: &ir.Identifier{Tok: tok(1), Name: "n"},
			Right: &ir.CallExpr{
				Tok:    tok(1),
				Callee: &ir.Identifier{Tok: tok(1), Name: "fact"},
				Args: []ir.Arg{{Value: &ir.BinaryExpr{
					Tok: tok(1), Op: ir.OpSub,
					Left:  &ir.Identifier{Tok: tok(1), Name: "n"},
					Right: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)},
				}}},
			},
		},
	}
	lam := &ir.Lambda{
		Tok:        tok(1),
		Params:     []ir.LambdaParam{{Name: "n", TypeExpr: intRef()}},
		ReturnType: intRef(),
		Body:       body,
	}
	cd := constDecl("fact", nil, lam)
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
}

func TestPropertyAccessOnRecord(t *testing.T) {
	c := New(1000, nil)
	rec := &ir.RecordExpr{Tok: tok(1), Fields: []ir.RecordField{
		{Name: "x", Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}},
	}}
	access := &ir.PropertyExpr{Tok: tok(1), Object: rec, Property: "x"}
	cd := constDecl("v", nil, access)
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	info, _ := c.DeclType(cd)
	if !types.Subtype(info.Type, types.Primitive{Name: types.Number}) {
		t.Fatalf("expected numeric field type, got %s", info.Type.String())
	}
}

func TestPropertyMissingOnRecord(t *testing.T) {
	c := New(1000, nil)
	rec := &ir.RecordExpr{Tok: tok(1), Fields: []ir.RecordField{
		{Name: "x", Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}},
	}}
	access := &ir.PropertyExpr{Tok: tok(1), Object: rec, Property: "missing"}
	cd := constDecl("v", nil, access)
	c.CheckProgram(program(cd))

	if !hasErrorCode(c.Diags.All(), diagnostics.ErrPropertyMissing) {
		t.Fatalf("expected ErrPropertyMissing, got %v", c.Diags.All())
	}
}

func TestMatchLiteralNarrowing(t *testing.T) {
	c := New(1000, nil)
	scrutinee := &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}
	match := &ir.MatchExpr{
		Tok:       tok(1),
		Scrutinee: scrutinee,
		Arms: []ir.MatchArm{
			{Pattern: &ir.LiteralPattern{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}, Body: &ir.Literal{Tok: tok(1), Base: ir.LitString, Raw: "one"}},
			{Pattern: &ir.WildcardPattern{Tok: tok(1)}, Body: &ir.Literal{Tok: tok(1), Base: ir.LitString, Raw: "other"}},
		},
	}
	cd := constDecl("result", nil, match)
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	info, _ := c.DeclType(cd)
	if !types.Subtype(info.Type, types.Primitive{Name: types.String}) {
		t.Fatalf("expected string-ish union, got %s", info.Type.String())
	}
}

func TestAssertForcesComptimeOnly(t *testing.T) {
	c := New(1000, nil)
	call := &ir.CallExpr{
		Tok:    tok(1),
		Callee: &ir.Identifier{Tok: tok(1), Name: "assert"},
		Args: []ir.Arg{{Value: &ir.Literal{Tok: tok(1), Base: ir.LitBoolean, Raw: true}}},
	}
	cd := &ir.ExprDecl{Tok: tok(1), Expr: call}
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	info, _ := c.DeclType(cd)
	if !info.ComptimeOnly {
		t.Fatal("expected assert(...) call to be comptimeOnly")
	}
}

func TestAssertionFailureDiagnostic(t *testing.T) {
	c := New(1000, nil)
	call := &ir.CallExpr{
		Tok:    tok(1),
		Callee: &ir.Identifier{Tok: tok(1), Name: "assert"},
		Args: []ir.Arg{
			{Value: &ir.Literal{Tok: tok(1), Base: ir.LitBoolean, Raw: false}},
			{Value: &ir.Literal{Tok: tok(1), Base: ir.LitString, Raw: "boom"}},
		},
	}
	cd := &ir.ExprDecl{Tok: tok(1), Expr: call}
	c.CheckProgram(program(cd))

	if !hasErrorCode(c.Diags.All(), diagnostics.ErrAssertionFailed) {
		t.Fatalf("expected ErrAssertionFailed, got %v", c.Diags.All())
	}
	for _, d := range c.Diags.All() {
		if d.Code == diagnostics.ErrAssertionFailed && d.Message != "boom" {
			t.Fatalf("expected message %q, got %q", "boom", d.Message)
		}
	}
}

func TestArrayMapGenericReturn(t *testing.T) {
	c := New(1000, nil)
	arr := &ir.ArrayExpr{Tok: tok(1), Elements: []ir.ArrayElementExpr{
		{Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}},
		{Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(2)}},
	}}
	callback := &ir.Lambda{
		Tok:    tok(1),
		Params: []ir.LambdaParam{{Name: "x"}},
		Body:   &ir.Literal{Tok: tok(1), Base: ir.LitString, Raw: "s"},
	}
	call := &ir.CallExpr{
		Tok:    tok(1),
		Callee: &ir.PropertyExpr{Tok: tok(1), Object: arr, Property: "map"},
		Args:   []ir.Arg{{Value: callback}},
	}
	cd := constDecl("mapped", nil, call)
	c.CheckProgram(program(cd))

	if c.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Diags.All())
	}
	info, _ := c.DeclType(cd)
	arrT, ok := types.Unwrap(info.Type).(types.Array)
	if !ok {
		t.Fatalf("expected array result, got %s", info.Type.String())
	}
	for _, e := range arrT.Elements {
		if !types.Subtype(e.Type, types.Primitive{Name: types.String}) {
			t.Fatalf("expected string element type, got %s", e.Type.String())
		}
	}
}

func TestCallArityMismatch(t *testing.T) {
	c := New(1000, nil)
	lam := &ir.Lambda{
		Tok:        tok(1),
		Params:     []ir.LambdaParam{{Name: "n", TypeExpr: &ir.TypeRefExpr{Tok: tok(1), Name: "Int"}}},
		ReturnType: &ir.TypeRefExpr{Tok: tok(1), Name: "Int"},
		Body:       &ir.Identifier{Tok: tok(1), Name: "n"},
	}
	callTooMany := &ir.CallExpr{
		Tok:    tok(1),
		Callee: lam,
		Args: []ir.Arg{
			{Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(1)}},
			{Value: &ir.Literal{Tok: tok(1), Base: ir.LitInt, Raw: int64(2)}},
		},
	}
	cd := &ir.ExprDecl{Tok: tok(1), Expr: callTooMany}
	c.CheckProgram(program(cd))

	if !hasErrorCode(c.Diags.All(), diagnostics.ErrArity) {
		t.Fatalf("expected ErrArity, got %v", c.Diags.All())
	}
}
