// Package erase implements C7: lowering the checker's typed IR into a
// runtime IR by dropping everything that exists only for compile-time
// purposes (spec §4.6) — comptime-only declarations, type parameters,
// type annotations, and conditional branches whose condition reduced to
// a known constant.
//
// Grounded on the teacher's internal/analyzer package's own notion of a
// side-table-driven pass over an already-checked tree (no separate typed
// AST node set, just a second read of the same nodes plus the checker's
// ExprInfo/DeclInfo), generalized from "report diagnostics" to "rebuild
// a tree." There is no teacher equivalent of an actual lowering pass —
// the teacher bundles/interprets the checked tree directly — so the
// rebuilding shape here follows this package's own per-construct-
// function idiom established in internal/check and internal/ctime.
package erase

import (
	"github.com/funvibe/tycore/internal/check"
	"github.com/funvibe/tycore/internal/ir"
)

// Program lowers every top-level declaration of prog using c's recorded
// ExprInfo/DeclInfo, dropping comptime-only declarations entirely (spec
// §4.6's "drop if comptimeOnly").
func Program(c *check.Checker, prog *ir.Program) *ir.Program {
	out := &ir.Program{File: prog.File}
	for _, d := range prog.Decls {
		if ed, keep := Decl(c, d); keep {
			out.Decls = append(out.Decls, ed)
		}
	}
	return out
}

// Decl erases one declaration, reporting keep=false when it must be
// dropped from the runtime IR entirely (spec §4.6: a comptime-only const,
// or an expr statement whose expression is comptime-only). Imports are
// always kept.
func Decl(c *check.Checker, d ir.Decl) (ir.Decl, bool) {
	switch n := d.(type) {
	case *ir.ConstDecl:
		info, ok := c.DeclType(n)
		if ok && info.ComptimeOnly {
			return nil, false
		}
		return &ir.ConstDecl{
			Tok:      n.Tok,
			Name:     n.Name,
			Init:     Expr(c, n.Init),
			Exported: n.Exported,
		}, true

	case *ir.ImportDecl:
		// Imports name bindings the runtime module system still needs to
		// wire up; nothing about an import clause is comptime-only on its
		// own (individual imported names may resolve to comptime-only
		// types, but that is enforced at each use site, not at the import).
		return n, true

	case *ir.ExprDecl:
		info, ok := c.DeclType(n)
		if ok && info.ComptimeOnly {
			return nil, false
		}
		return &ir.ExprDecl{Tok: n.Tok, Expr: Expr(c, n.Expr)}, true

	default:
		return d, true
	}
}
