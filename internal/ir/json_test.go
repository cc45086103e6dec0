package ir

import "testing"

func TestDecodeProgramSimpleConst(t *testing.T) {
	data := []byte(`{
		"file": "test",
		"decls": [
			{
				"kind": "const",
				"tok": {"line": 1, "column": 1},
				"name": "x",
				"init": {
					"kind": "literal",
					"tok": {"line": 1, "column": 11},
					"base": "int",
					"raw": 42
				}
			}
		]
	}`)

	prog, err := DecodeProgram(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	cd, ok := prog.Decls[0].(*ConstDecl)
	if !ok || cd.Name != "x" {
		t.Fatalf("expected ConstDecl \"x\", got %#v", prog.Decls[0])
	}
	lit, ok := cd.Init.(*Literal)
	if !ok || lit.Base != LitInt || lit.Raw.(int64) != 42 {
		t.Fatalf("expected literal int 42, got %#v", cd.Init)
	}
}

func TestDecodeProgramCallWithSpreadArg(t *testing.T) {
	data := []byte(`{
		"file": "test",
		"decls": [
			{
				"kind": "exprDecl",
				"tok": {"line": 2, "column": 1},
				"expr": {
					"kind": "call",
					"tok": {"line": 2, "column": 1},
					"callee": {"kind": "identifier", "tok": {"line": 2, "column": 1}, "name": "f"},
					"args": [
						{"value": {"kind": "identifier", "tok": {"line": 2, "column": 3}, "name": "xs"}, "spread": true}
					]
				}
			}
		]
	}`)

	prog, err := DecodeProgram(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed, ok := prog.Decls[0].(*ExprDecl)
	if !ok {
		t.Fatalf("expected ExprDecl, got %#v", prog.Decls[0])
	}
	call, ok := ed.Expr.(*CallExpr)
	if !ok || len(call.Args) != 1 || !call.Args[0].Spread {
		t.Fatalf("expected one spread arg, got %#v", ed.Expr)
	}
}

func TestDecodeProgramRejectsUnknownKind(t *testing.T) {
	data := []byte(`{"file": "test", "decls": [{"kind": "bogus", "tok": {"line":1,"column":1}}]}`)
	if _, err := DecodeProgram(data); err == nil {
		t.Fatal("expected an error for an unknown declaration kind")
	}
}
