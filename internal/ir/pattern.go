package ir

import "github.com/funvibe/tycore/internal/token"

// WildcardPattern is `_`, matching anything and binding nothing.
type WildcardPattern struct {
	Tok token.Token
}

func (p *WildcardPattern) GetToken() token.Token { return p.Tok }
func (*WildcardPattern) patternNode()            {}

// LiteralPattern matches a single scalar value, narrowing the scrutinee
// to that value's singleton Literal type (spec §4.5.5).
type LiteralPattern struct {
	Tok  token.Token
	Base LiteralBase
	Raw  any
}

func (p *LiteralPattern) GetToken() token.Token { return p.Tok }
func (*LiteralPattern) patternNode()            {}

// TypePattern matches when the scrutinee's runtime shape is compatible
// with TypeExpr (a type-level expression), e.g. `case String: ...`.
type TypePattern struct {
	Tok      token.Token
	TypeExpr Expr
}

func (p *TypePattern) GetToken() token.Token { return p.Tok }
func (*TypePattern) patternNode()            {}

// BindingPattern binds the (optionally narrowed, via Nested) scrutinee to
// Name, e.g. `case value: ...` or `case value @ { kind: "ok" }: ...`.
type BindingPattern struct {
	Tok    token.Token
	Name   string
	Nested Pattern // nil when this is a bare binding
}

func (p *BindingPattern) GetToken() token.Token { return p.Tok }
func (*BindingPattern) patternNode()            {}

// DestructureField is one field of a DestructurePattern: `name` binds it
// directly, `name: alias` (Alias set) binds under a different name, and
// Nested further destructures the field's value.
type DestructureField struct {
	Name   string
	Alias  string // empty when no alias is given; defaults to Name
	Nested Pattern // nil when the field is bound directly (or via Alias)
}

// DestructurePattern matches a record shape, e.g.
// `case { kind: "ok", value }: ...`.
type DestructurePattern struct {
	Tok    token.Token
	Fields []DestructureField
}

func (p *DestructurePattern) GetToken() token.Token { return p.Tok }
func (*DestructurePattern) patternNode()            {}
