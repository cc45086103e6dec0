// Package ir defines the desugared core intermediate representation that
// the type checker (C6) consumes and the typed/runtime IRs that it and
// erasure (C7) produce (spec §3.4, §6).
//
// The surface parser, desugaring pass, and pretty-printer are external
// collaborators (spec §1); this package only defines the shape they hand
// to, and receive back from, the three passes designed here. Node shapes
// follow the teacher's internal/ast package (Node/Statement/Expression
// interfaces, GetToken() token.Token), narrowed to the fixed algebraic
// grammar spec §6 specifies instead of the teacher's full surface syntax.
package ir

import "github.com/funvibe/tycore/internal/token"

// Node is the base interface implemented by every declaration, expression,
// and pattern in the core IR.
type Node interface {
	GetToken() token.Token
}

// Decl is a top-level or block-local declaration.
type Decl interface {
	Node
	declNode()
}

// Expr is any expression in the fixed algebraic grammar of spec §6.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a match-arm pattern (spec §6): wildcard, literal, type,
// binding, or destructure.
type Pattern interface {
	Node
	patternNode()
}

// ImportClause distinguishes the three import forms spec §6 names.
type ImportClause int

const (
	ImportDefault ImportClause = iota
	ImportNamed
	ImportNamespace
)

// ---- Declarations ----------------------------------------------------

// ConstDecl is `const name: Type? = init`, optionally comptime/exported.
type ConstDecl struct {
	Tok      token.Token
	Name     string
	TypeExpr Expr // nil when no annotation is present
	Init     Expr
	Comptime bool
	Exported bool
}

func (d *ConstDecl) GetToken() token.Token { return d.Tok }
func (*ConstDecl) declNode()               {}

// ImportDecl is `import <clause> from "specifier"`.
type ImportDecl struct {
	Tok        token.Token
	Clause     ImportClause
	Names      []string // named imports, or a single alias for default/namespace
	Specifier  string
}

func (d *ImportDecl) GetToken() token.Token { return d.Tok }
func (*ImportDecl) declNode()               {}

// ExprDecl wraps a bare expression statement (e.g. `assert(...)`).
type ExprDecl struct {
	Tok  token.Token
	Expr Expr
}

func (d *ExprDecl) GetToken() token.Token { return d.Tok }
func (*ExprDecl) declNode()               {}

// Program is the root node: a sequence of declarations, the unit C6
// type-checks and C7 lowers.
type Program struct {
	File  string
	Decls []Decl
}
