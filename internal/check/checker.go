// Package check implements C6, the bidirectional type checker (spec
// §4.5): it walks a desugared core IR program, producing a type (plus
// comptimeOnly / comptimeValue) for every expression and declType /
// comptimeOnly for every declaration, while threading contextual types
// downward and invoking C4 for compile-time evaluation and speculative
// constant folding.
//
// Grounded on the teacher's internal/analyzer package: a single walker
// struct accumulating diagnostics into a dedup set (here,
// diagnostics.Collector), a TypeMap side table keyed by AST node rather
// than a separate typed-AST node set, and per-construct inferX functions
// (internal/analyzer/inference.go, inference_calls.go,
// inference_control.go) generalized from unification-based inference to
// this core's simpler bidirectional pass.
package check

import (
	"github.com/funvibe/tycore/internal/ctime"
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// ExprInfo is the typed-IR annotation spec §6 attaches to every
// expression: its type, whether it is comptime-only, and (if a
// successful speculative or eager evaluation produced one) its
// compile-time value.
type ExprInfo struct {
	Type          types.Type
	ComptimeOnly  bool
	ComptimeValue *tyenv.Value
}

// DeclInfo is the typed-IR annotation attached to every declaration.
type DeclInfo struct {
	Type         types.Type
	ComptimeOnly bool
}

// ModuleResolver is the collaborator contract spec §6 names: for a
// module specifier, return the map of exported names to Types. The
// checker treats every resolved Type as an opaque function/record type.
type ModuleResolver interface {
	Resolve(specifier string) (map[string]types.Type, error)
}

// Checker owns one compilation's diagnostics, side tables, and the
// single C4 evaluator instance spec §5 requires ("the checker creates
// one evaluator per compilation").
type Checker struct {
	Diags    *diagnostics.Collector
	Eval     *ctime.Evaluator
	Resolver ModuleResolver

	exprInfo map[ir.Expr]*ExprInfo
	declInfo map[ir.Decl]*DeclInfo
}

// New builds a Checker whose evaluator starts with the given fuel budget,
// and an empty diagnostics collector.
func New(fuel int, resolver ModuleResolver) *Checker {
	return &Checker{
		Diags:    diagnostics.NewCollector(),
		Eval:     ctime.New(fuel),
		Resolver: resolver,
		exprInfo: make(map[ir.Expr]*ExprInfo),
		declInfo: make(map[ir.Decl]*DeclInfo),
	}
}

// ExprType returns e's checked type, or nil if e was never checked
// (e.g. it sits in a branch that erasure would drop anyway).
func (c *Checker) ExprType(e ir.Expr) (*ExprInfo, bool) {
	info, ok := c.exprInfo[e]
	return info, ok
}

func (c *Checker) DeclType(d ir.Decl) (*DeclInfo, bool) {
	info, ok := c.declInfo[d]
	return info, ok
}

func (c *Checker) setExpr(e ir.Expr, t types.Type, comptimeOnly bool, cv *tyenv.Value) ExprInfo {
	info := ExprInfo{Type: t, ComptimeOnly: comptimeOnly, ComptimeValue: cv}
	c.exprInfo[e] = &info
	return info
}

func (c *Checker) setDecl(d ir.Decl, t types.Type, comptimeOnly bool) {
	c.declInfo[d] = &DeclInfo{Type: t, ComptimeOnly: comptimeOnly}
}

// CheckProgram type-checks every top-level declaration in source order,
// threading one pair of root environments (spec §5: "every new lexical
// scope is created by extend(), restored on every exit path"). It
// returns the program unchanged — callers read results via ExprType /
// DeclType and Diags — mirroring the teacher's Analyzer, which mutates
// TypeMap/errorSet rather than rebuilding the AST.
func (c *Checker) CheckProgram(prog *ir.Program) {
	tenv, cenv := c.Eval.Prelude()
	c.checkDecls(prog.Decls, tenv, cenv)
}

func (c *Checker) checkDecls(decls []ir.Decl, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) {
	// Pre-registration pass (spec §4.5.1 step 2): a const whose initializer
	// is a fully-annotated lambda gets a tentative binding before any body
	// is checked, so mutually/self-recursive references resolve.
	for _, d := range decls {
		if cd, ok := d.(*ir.ConstDecl); ok {
			c.preRegister(cd, tenv, cenv)
		}
	}
	for _, d := range decls {
		c.checkDecl(d, tenv, cenv)
	}
}

func (c *Checker) checkDecl(d ir.Decl, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) {
	switch n := d.(type) {
	case *ir.ConstDecl:
		c.checkConstDecl(n, tenv, cenv)
	case *ir.ImportDecl:
		c.checkImportDecl(n, tenv, cenv)
	case *ir.ExprDecl:
		info := c.checkExpr(n.Expr, tenv, cenv, nil)
		c.setDecl(n, info.Type, info.ComptimeOnly)
	}
}

func (c *Checker) checkImportDecl(n *ir.ImportDecl, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) {
	if c.Resolver == nil {
		c.Diags.Addf(diagnostics.ErrUndefinedBinding, n.Tok, "no module resolver configured to resolve %q", n.Specifier)
		return
	}
	exports, err := c.Resolver.Resolve(n.Specifier)
	if err != nil {
		c.Diags.Addf(diagnostics.ErrUndefinedBinding, n.Tok, "cannot resolve module %q: %s", n.Specifier, err.Error())
		return
	}
	switch n.Clause {
	case ir.ImportNamespace:
		if len(n.Names) != 1 {
			return
		}
		rv := tyenv.NewRecordValue()
		var fields []types.FieldInfo
		for name, t := range exports {
			rv.Set(name, tyenv.Value{Raw: t, Type: t})
			fields = append(fields, types.FieldInfo{Name: name, Type: t})
		}
		nsType := types.NormalizeRecord(types.Record{Fields: fields, Closed: true})
		tenv.Define(n.Names[0], &tyenv.TypeBinding{Type: nsType, Status: tyenv.Runtime})
		cenv.DefineEvaluated(n.Names[0], tyenv.Value{Raw: rv, Type: nsType})
	case ir.ImportDefault:
		if len(n.Names) != 1 {
			return
		}
		t, ok := exports["default"]
		if !ok {
			c.Diags.Addf(diagnostics.ErrPropertyMissing, n.Tok, "module %q has no default export", n.Specifier)
			return
		}
		tenv.Define(n.Names[0], &tyenv.TypeBinding{Type: t, Status: tyenv.Runtime})
		cenv.DefineUnavailable(n.Names[0])
	default: // ImportNamed
		for _, name := range n.Names {
			t, ok := exports[name]
			if !ok {
				c.Diags.Addf(diagnostics.ErrPropertyMissing, n.Tok, "module %q has no export %q", n.Specifier, name)
				continue
			}
			tenv.Define(name, &tyenv.TypeBinding{Type: t, Status: tyenv.Runtime})
			cenv.DefineUnavailable(name)
		}
	}
}
