package ctime

import (
	"strings"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// evalConditional implements spec §4.3's short-circuit rule: only the
// taken branch is evaluated once the condition reduces to a concrete
// boolean (this is also the semantics C7's dead-branch erasure relies
// on — spec §8 scenario 3).
func (e *Evaluator) evalConditional(n *ir.ConditionalExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	cond, d := e.Eval(n.Condition, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}
	b, ok := cond.Raw.(bool)
	if !ok {
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "conditional's condition is not boolean")
	}
	if b {
		return e.Eval(n.Then, tenv, cenv)
	}
	return e.Eval(n.Else, tenv, cenv)
}

func (e *Evaluator) evalRecord(n *ir.RecordExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	rv := tyenv.NewRecordValue()
	fields := make([]types.FieldInfo, 0, len(n.Fields))
	for _, f := range n.Fields {
		v, d := e.Eval(f.Value, tenv, cenv)
		if d != nil {
			return tyenv.Value{}, d
		}
		if f.Spread {
			src, ok := v.Raw.(*tyenv.RecordValue)
			if !ok {
				return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, f.Value.GetToken(), "spread source is not a record")
			}
			for _, name := range src.Order {
				fv, _ := src.Get(name)
				rv.Set(name, fv)
				fields = append(fields, types.FieldInfo{Name: name, Type: fv.Type})
			}
			continue
		}
		rv.Set(f.Name, v)
		fields = append(fields, types.FieldInfo{Name: f.Name, Type: v.Type})
	}
	return tyenv.Value{Raw: rv, Type: types.NormalizeRecord(types.Record{Fields: fields, Closed: true})}, nil
}

func (e *Evaluator) evalArray(n *ir.ArrayExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	av := &tyenv.ArrayValue{}
	elems := make([]types.ArrayElement, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, d := e.Eval(el.Value, tenv, cenv)
		if d != nil {
			return tyenv.Value{}, d
		}
		if el.Spread {
			src, ok := v.Raw.(*tyenv.ArrayValue)
			if !ok {
				return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrSpreadMustBeArray, el.Value.GetToken(), "spread source is not an array")
			}
			av.Elements = append(av.Elements, src.Elements...)
			for _, se := range src.Elements {
				elems = append(elems, types.ArrayElement{Type: se.Type})
			}
			continue
		}
		av.Elements = append(av.Elements, v)
		elems = append(elems, types.ArrayElement{Type: v.Type})
	}
	return tyenv.Value{Raw: av, Type: types.Array{Elements: elems}}, nil
}

func (e *Evaluator) evalTemplate(n *ir.TemplateExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	var sb strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Literal)
			continue
		}
		v, d := e.Eval(part.Expr, tenv, cenv)
		if d != nil {
			return tyenv.Value{}, d
		}
		sb.WriteString(stringify(v))
	}
	return stringValue(sb.String()), nil
}
