package tyenv

import (
	"testing"

	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
	"github.com/funvibe/tycore/internal/types"
)

func TestTypeEnvLookupWalksParentChain(t *testing.T) {
	parent := NewTypeEnv()
	parent.Define("x", &TypeBinding{Type: types.Primitive{Name: types.Int}, Status: Runtime})
	child := parent.Extend()

	b, ok := child.Lookup("x")
	if !ok {
		t.Fatal("expected child scope to see parent's binding")
	}
	if b.Type.String() != "Int" {
		t.Fatalf("expected Int, got %s", b.Type.String())
	}
}

func TestTypeEnvLookupLocalDoesNotWalkParentChain(t *testing.T) {
	parent := NewTypeEnv()
	parent.Define("x", &TypeBinding{Type: types.Primitive{Name: types.Int}, Status: Runtime})
	child := parent.Extend()

	if _, ok := child.LookupLocal("x"); ok {
		t.Fatal("expected LookupLocal not to see the parent's binding")
	}
}

func TestTypeEnvChildShadowsParent(t *testing.T) {
	parent := NewTypeEnv()
	parent.Define("x", &TypeBinding{Type: types.Primitive{Name: types.Int}, Status: Runtime})
	child := parent.Extend()
	child.Define("x", &TypeBinding{Type: types.Primitive{Name: types.String}, Status: Runtime})

	b, _ := child.Lookup("x")
	if b.Type.String() != "String" {
		t.Fatalf("expected child's shadowing binding, got %s", b.Type.String())
	}
	b, _ = parent.Lookup("x")
	if b.Type.String() != "Int" {
		t.Fatalf("expected parent's binding unaffected, got %s", b.Type.String())
	}
}

func TestTypeEnvFramesHaveDistinctIDs(t *testing.T) {
	a := NewTypeEnv()
	b := a.Extend()
	if a.ID() == b.ID() {
		t.Fatal("expected distinct frame IDs")
	}
}

func TestComptimeEnvDefineUnevaluated(t *testing.T) {
	cenv := NewComptimeEnv()
	expr := &ir.Identifier{Tok: token.Token{Line: 1, Column: 1}, Name: "x"}
	cenv.Define("x", expr, NewTypeEnv(), cenv)

	cell, ok := cenv.Cell("x")
	if !ok {
		t.Fatal("expected a cell for x")
	}
	if cell.State != Unevaluated {
		t.Fatalf("expected Unevaluated, got %v", cell.State)
	}
	if cell.Expr != expr {
		t.Fatal("expected the cell to capture the declaring expression")
	}
}

func TestComptimeEnvCellFoundInOwningScope(t *testing.T) {
	parent := NewComptimeEnv()
	parent.DefineEvaluated("x", Value{Raw: int64(1), Type: types.Primitive{Name: types.Int}})
	child := parent.Extend()

	cell, ok := child.Cell("x")
	if !ok {
		t.Fatal("expected to find x via the parent scope")
	}
	if cell.State != Evaluated {
		t.Fatalf("expected Evaluated, got %v", cell.State)
	}
}

func TestComptimeEnvDefineUnavailable(t *testing.T) {
	cenv := NewComptimeEnv()
	cenv.DefineUnavailable("param")

	cell, ok := cenv.Cell("param")
	if !ok {
		t.Fatal("expected a cell for param")
	}
	if cell.State != Unavailable {
		t.Fatalf("expected Unavailable, got %v", cell.State)
	}
}
