package ir

import (
	"encoding/json"
	"fmt"

	"github.com/funvibe/tycore/internal/token"
)

// DecodeProgram decodes a Program from the "kind"-tagged JSON envelope
// the external desugaring pass emits: every Decl/Expr/Pattern node is a
// JSON object carrying its own "kind" discriminator alongside its
// fields, the same tagged-node shape the pack's own schema loaders use
// (e.g. sunholo-data-ailang's internal/schema.Plan, whose "kind" field
// picks the Go type to populate).
func DecodeProgram(data []byte) (*Program, error) {
	var raw struct {
		File  string            `json:"file"`
		Decls []json.RawMessage `json:"decls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	prog := &Program{File: raw.File}
	for i, d := range raw.Decls {
		decl, err := decodeDecl(d)
		if err != nil {
			return nil, fmt.Errorf("decoding decls[%d]: %w", i, err)
		}
		prog.Decls = append(prog.Decls, decl)
	}
	return prog, nil
}

type jsonTok struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file"`
	Lexeme string `json:"lexeme"`
}

func decodeTok(t jsonTok) token.Token {
	return token.Token{Line: t.Line, Column: t.Column, File: t.File, Lexeme: t.Lexeme}
}

type envelope struct {
	Kind string  `json:"kind"`
	Tok  jsonTok `json:"tok"`
}

func peekKind(data json.RawMessage) (envelope, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return envelope{}, err
	}
	if e.Kind == "" {
		return envelope{}, fmt.Errorf("missing \"kind\" discriminator")
	}
	return e, nil
}

func decodeDecl(data json.RawMessage) (Decl, error) {
	e, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	tok := decodeTok(e.Tok)
	switch e.Kind {
	case "const":
		var v struct {
			Name     string          `json:"name"`
			TypeExpr json.RawMessage `json:"typeExpr"`
			Init     json.RawMessage `json:"init"`
			Comptime bool            `json:"comptime"`
			Exported bool            `json:"exported"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		typeExpr, err := decodeOptExpr(v.TypeExpr)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(v.Init)
		if err != nil {
			return nil, err
		}
		return &ConstDecl{Tok: tok, Name: v.Name, TypeExpr: typeExpr, Init: init, Comptime: v.Comptime, Exported: v.Exported}, nil

	case "import":
		var v struct {
			Clause    string   `json:"clause"`
			Names     []string `json:"names"`
			Specifier string   `json:"specifier"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		clause, err := decodeImportClause(v.Clause)
		if err != nil {
			return nil, err
		}
		return &ImportDecl{Tok: tok, Clause: clause, Names: v.Names, Specifier: v.Specifier}, nil

	case "exprDecl":
		var v struct {
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprDecl{Tok: tok, Expr: expr}, nil

	default:
		return nil, fmt.Errorf("unknown declaration kind %q", e.Kind)
	}
}

func decodeImportClause(s string) (ImportClause, error) {
	switch s {
	case "default":
		return ImportDefault, nil
	case "named":
		return ImportNamed, nil
	case "namespace":
		return ImportNamespace, nil
	default:
		return 0, fmt.Errorf("unknown import clause %q", s)
	}
}

func decodeOptExpr(data json.RawMessage) (Expr, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return decodeExpr(data)
}

func decodeLitBase(s string) (LiteralBase, error) {
	switch s {
	case "int":
		return LitInt, nil
	case "float":
		return LitFloat, nil
	case "string":
		return LitString, nil
	case "boolean":
		return LitBoolean, nil
	case "null":
		return LitNull, nil
	case "undefined":
		return LitUndefined, nil
	default:
		return 0, fmt.Errorf("unknown literal base %q", s)
	}
}

func decodeExpr(data json.RawMessage) (Expr, error) {
	e, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	tok := decodeTok(e.Tok)
	switch e.Kind {
	case "literal":
		var v struct {
			Base string `json:"base"`
			Raw  any    `json:"raw"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		base, err := decodeLitBase(v.Base)
		if err != nil {
			return nil, err
		}
		return &Literal{Tok: tok, Base: base, Raw: normalizeLiteralRaw(base, v.Raw)}, nil

	case "identifier":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &Identifier{Tok: tok, Name: v.Name}, nil

	case "typeRef":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &TypeRefExpr{Tok: tok, Name: v.Name}, nil

	case "binary":
		var v struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		left, err := decodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Tok: tok, Op: BinaryOp(v.Op), Left: left, Right: right}, nil

	case "unary":
		var v struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Tok: tok, Op: UnaryOp(v.Op), Operand: operand}, nil

	case "call":
		var v struct {
			Callee json.RawMessage `json:"callee"`
			Args   []struct {
				Value  json.RawMessage `json:"value"`
				Spread bool            `json:"spread"`
			} `json:"args"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		callee, err := decodeExpr(v.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Arg, 0, len(v.Args))
		for _, a := range v.Args {
			val, err := decodeExpr(a.Value)
			if err != nil {
				return nil, err
			}
			args = append(args, Arg{Value: val, Spread: a.Spread})
		}
		return &CallExpr{Tok: tok, Callee: callee, Args: args}, nil

	case "property":
		var v struct {
			Object   json.RawMessage `json:"object"`
			Property string          `json:"property"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		object, err := decodeExpr(v.Object)
		if err != nil {
			return nil, err
		}
		return &PropertyExpr{Tok: tok, Object: object, Property: v.Property}, nil

	case "index":
		var v struct {
			Object json.RawMessage `json:"object"`
			Index  json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		object, err := decodeExpr(v.Object)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(v.Index)
		if err != nil {
			return nil, err
		}
		return &IndexExpr{Tok: tok, Object: object, Index: index}, nil

	case "lambda":
		var v struct {
			Params []struct {
				Name     string          `json:"name"`
				TypeExpr json.RawMessage `json:"typeExpr"`
				Optional bool            `json:"optional"`
				Default  json.RawMessage `json:"default"`
				Rest     bool            `json:"rest"`
			} `json:"params"`
			ReturnType json.RawMessage `json:"returnType"`
			Body       json.RawMessage `json:"body"`
			Async      bool            `json:"async"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		params := make([]LambdaParam, 0, len(v.Params))
		for _, p := range v.Params {
			typeExpr, err := decodeOptExpr(p.TypeExpr)
			if err != nil {
				return nil, err
			}
			def, err := decodeOptExpr(p.Default)
			if err != nil {
				return nil, err
			}
			params = append(params, LambdaParam{Name: p.Name, TypeExpr: typeExpr, Optional: p.Optional, Default: def, Rest: p.Rest})
		}
		returnType, err := decodeOptExpr(v.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Tok: tok, Params: params, ReturnType: returnType, Body: body, Async: v.Async}, nil

	case "conditional":
		var v struct {
			Condition json.RawMessage `json:"condition"`
			Then      json.RawMessage `json:"then"`
			Else      json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(v.Condition)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(v.Else)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpr{Tok: tok, Condition: cond, Then: then, Else: els}, nil

	case "record":
		var v struct {
			Fields []struct {
				Name   string          `json:"name"`
				Value  json.RawMessage `json:"value"`
				Spread bool            `json:"spread"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fields := make([]RecordField, 0, len(v.Fields))
		for _, f := range v.Fields {
			val, err := decodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, RecordField{Name: f.Name, Value: val, Spread: f.Spread})
		}
		return &RecordExpr{Tok: tok, Fields: fields}, nil

	case "array":
		var v struct {
			Elements []struct {
				Value  json.RawMessage `json:"value"`
				Spread bool            `json:"spread"`
			} `json:"elements"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		elems := make([]ArrayElementExpr, 0, len(v.Elements))
		for _, el := range v.Elements {
			val, err := decodeExpr(el.Value)
			if err != nil {
				return nil, err
			}
			elems = append(elems, ArrayElementExpr{Value: val, Spread: el.Spread})
		}
		return &ArrayExpr{Tok: tok, Elements: elems}, nil

	case "match":
		var v struct {
			Scrutinee json.RawMessage `json:"scrutinee"`
			Arms      []struct {
				Pattern json.RawMessage `json:"pattern"`
				Guard   json.RawMessage `json:"guard"`
				Body    json.RawMessage `json:"body"`
			} `json:"arms"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(v.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]MatchArm, 0, len(v.Arms))
		for _, a := range v.Arms {
			pat, err := decodePattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			guard, err := decodeOptExpr(a.Guard)
			if err != nil {
				return nil, err
			}
			body, err := decodeExpr(a.Body)
			if err != nil {
				return nil, err
			}
			arms = append(arms, MatchArm{Pattern: pat, Guard: guard, Body: body})
		}
		return &MatchExpr{Tok: tok, Scrutinee: scrutinee, Arms: arms}, nil

	case "throw":
		var v struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ThrowExpr{Tok: tok, Value: val}, nil

	case "await":
		var v struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &AwaitExpr{Tok: tok, Value: val}, nil

	case "template":
		var v struct {
			Parts []struct {
				Literal string          `json:"literal"`
				Expr    json.RawMessage `json:"expr"`
			} `json:"parts"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		parts := make([]TemplatePart, 0, len(v.Parts))
		for _, p := range v.Parts {
			expr, err := decodeOptExpr(p.Expr)
			if err != nil {
				return nil, err
			}
			parts = append(parts, TemplatePart{Literal: p.Literal, Expr: expr})
		}
		return &TemplateExpr{Tok: tok, Parts: parts}, nil

	case "block":
		var v struct {
			Stmts  []json.RawMessage `json:"stmts"`
			Result json.RawMessage   `json:"result"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		stmts := make([]Decl, 0, len(v.Stmts))
		for _, s := range v.Stmts {
			d, err := decodeDecl(s)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, d)
		}
		result, err := decodeOptExpr(v.Result)
		if err != nil {
			return nil, err
		}
		return &BlockExpr{Tok: tok, Stmts: stmts, Result: result}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", e.Kind)
	}
}

// normalizeLiteralRaw converts encoding/json's untyped float64/string/bool
// decode into the exact scalar type Literal.Raw expects per base.
func normalizeLiteralRaw(base LiteralBase, raw any) any {
	switch base {
	case LitInt:
		if f, ok := raw.(float64); ok {
			return int64(f)
		}
	case LitFloat:
		if f, ok := raw.(float64); ok {
			return f
		}
	case LitNull, LitUndefined:
		return nil
	}
	return raw
}

func decodePattern(data json.RawMessage) (Pattern, error) {
	e, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	tok := decodeTok(e.Tok)
	switch e.Kind {
	case "wildcard":
		return &WildcardPattern{Tok: tok}, nil

	case "literal":
		var v struct {
			Base string `json:"base"`
			Raw  any    `json:"raw"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		base, err := decodeLitBase(v.Base)
		if err != nil {
			return nil, err
		}
		return &LiteralPattern{Tok: tok, Base: base, Raw: normalizeLiteralRaw(base, v.Raw)}, nil

	case "type":
		var v struct {
			TypeExpr json.RawMessage `json:"typeExpr"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		typeExpr, err := decodeExpr(v.TypeExpr)
		if err != nil {
			return nil, err
		}
		return &TypePattern{Tok: tok, TypeExpr: typeExpr}, nil

	case "binding":
		var v struct {
			Name   string          `json:"name"`
			Nested json.RawMessage `json:"nested"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		var nested Pattern
		if len(v.Nested) > 0 && string(v.Nested) != "null" {
			nested, err = decodePattern(v.Nested)
			if err != nil {
				return nil, err
			}
		}
		return &BindingPattern{Tok: tok, Name: v.Name, Nested: nested}, nil

	case "destructure":
		var v struct {
			Fields []struct {
				Name   string          `json:"name"`
				Alias  string          `json:"alias"`
				Nested json.RawMessage `json:"nested"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fields := make([]DestructureField, 0, len(v.Fields))
		for _, f := range v.Fields {
			var nested Pattern
			if len(f.Nested) > 0 && string(f.Nested) != "null" {
				var err error
				nested, err = decodePattern(f.Nested)
				if err != nil {
					return nil, err
				}
			}
			fields = append(fields, DestructureField{Name: f.Name, Alias: f.Alias, Nested: nested})
		}
		return &DestructurePattern{Tok: tok, Fields: fields}, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", e.Kind)
	}
}
