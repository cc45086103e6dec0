package ctime

import (
	"fmt"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

func (e *Evaluator) evalBinary(n *ir.BinaryExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	left, d := e.Eval(n.Left, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	// && / || short-circuit: the right operand is only evaluated when it
	// can change the result, mirroring Conditional's short-circuit rule.
	if n.Op == ir.OpAnd || n.Op == ir.OpOr {
		lb, ok := left.Raw.(bool)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "left operand of "+string(n.Op)+" is not boolean")
		}
		if n.Op == ir.OpAnd && !lb {
			return tyenv.Value{Raw: false, Type: types.Literal{Value: false, Base: types.BaseBoolean}}, nil
		}
		if n.Op == ir.OpOr && lb {
			return tyenv.Value{Raw: true, Type: types.Literal{Value: true, Base: types.BaseBoolean}}, nil
		}
		return e.Eval(n.Right, tenv, cenv)
	}

	right, d := e.Eval(n.Right, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}

	switch n.Op {
	case ir.OpEq:
		return boolValue(deepEqual(left, right)), nil
	case ir.OpNotEq:
		return boolValue(!deepEqual(left, right)), nil
	}

	if n.Op == ir.OpAdd {
		if ls, ok := left.Raw.(string); ok {
			return stringValue(ls + fmt.Sprint(stringify(right))), nil
		}
		if rs, ok := right.Raw.(string); ok {
			return stringValue(fmt.Sprint(stringify(left)) + rs), nil
		}
	}

	switch n.Op {
	case ir.OpBitAnd, ir.OpBitOr, ir.OpBitXor, ir.OpShl, ir.OpShr:
		li, lok := asInt(left)
		ri, rok := asInt(right)
		if !lok || !rok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "bitwise operators require integers")
		}
		return intValue(applyBitwise(n.Op, li, ri)), nil
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "numeric operator requires numbers")
	}

	switch n.Op {
	case ir.OpAdd:
		return numericResult(left, right, lf+rf), nil
	case ir.OpSub:
		return numericResult(left, right, lf-rf), nil
	case ir.OpMul:
		return numericResult(left, right, lf*rf), nil
	case ir.OpDiv:
		return numericResult(left, right, lf/rf), nil
	case ir.OpMod:
		return numericResult(left, right, float64(int64(lf)%int64(rf))), nil
	case ir.OpLt:
		return boolValue(lf < rf), nil
	case ir.OpLtEq:
		return boolValue(lf <= rf), nil
	case ir.OpGt:
		return boolValue(lf > rf), nil
	case ir.OpGtEq:
		return boolValue(lf >= rf), nil
	default:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, n.Tok, "unsupported operator "+string(n.Op))
	}
}

func (e *Evaluator) evalUnary(n *ir.UnaryExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv) (tyenv.Value, *diagnostics.Diagnostic) {
	v, d := e.Eval(n.Operand, tenv, cenv)
	if d != nil {
		return tyenv.Value{}, d
	}
	switch n.Op {
	case ir.OpNot:
		b, ok := v.Raw.(bool)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "! requires a boolean operand")
		}
		return boolValue(!b), nil
	case ir.OpNeg:
		f, ok := asFloat(v)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "- requires a numeric operand")
		}
		return numericResult(v, v, -f), nil
	case ir.OpBitNot:
		i, ok := asInt(v)
		if !ok {
			return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "~ requires an integer operand")
		}
		return intValue(^i), nil
	default:
		return tyenv.Value{}, diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, n.Tok, "unsupported unary operator "+string(n.Op))
	}
}

func applyBitwise(op ir.BinaryOp, l, r int64) int64 {
	switch op {
	case ir.OpBitAnd:
		return l & r
	case ir.OpBitOr:
		return l | r
	case ir.OpBitXor:
		return l ^ r
	case ir.OpShl:
		return l << uint(r)
	case ir.OpShr:
		return l >> uint(r)
	default:
		return 0
	}
}

func asInt(v tyenv.Value) (int64, bool) {
	i, ok := v.Raw.(int64)
	return i, ok
}

func asFloat(v tyenv.Value) (float64, bool) {
	switch x := v.Raw.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func numericResult(left, right tyenv.Value, f float64) tyenv.Value {
	_, lInt := left.Raw.(int64)
	_, rInt := right.Raw.(int64)
	if lInt && rInt {
		return intValue(int64(f))
	}
	return tyenv.Value{Raw: f, Type: types.Literal{Value: f, Base: types.BaseFloat}}
}

func intValue(i int64) tyenv.Value {
	return tyenv.Value{Raw: i, Type: types.Literal{Value: i, Base: types.BaseInt}}
}

func stringValue(s string) tyenv.Value {
	return tyenv.Value{Raw: s, Type: types.Literal{Value: s, Base: types.BaseString}}
}

func boolValue(b bool) tyenv.Value {
	return tyenv.Value{Raw: b, Type: types.Literal{Value: b, Base: types.BaseBoolean}}
}

func stringify(v tyenv.Value) string {
	switch x := v.Raw.(type) {
	case string:
		return x
	case int64:
		return fmt.Sprint(x)
	case float64:
		return fmt.Sprint(x)
	case bool:
		return fmt.Sprint(x)
	case nil:
		return "undefined"
	case *tyenv.ArrayValue:
		out := "["
		for i, el := range x.Elements {
			if i > 0 {
				out += ", "
			}
			out += stringify(el)
		}
		return out + "]"
	case types.Type:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// deepEqual implements spec §4.3's "Equality is structural: deep-equal
// arrays and records; types by serialized structural form."
func deepEqual(a, b tyenv.Value) bool {
	switch av := a.Raw.(type) {
	case *tyenv.ArrayValue:
		bv, ok := b.Raw.(*tyenv.ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !deepEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *tyenv.RecordValue:
		bv, ok := b.Raw.(*tyenv.RecordValue)
		if !ok || len(av.Order) != len(bv.Order) {
			return false
		}
		for _, name := range av.Order {
			af, _ := av.Get(name)
			bf, ok := bv.Get(name)
			if !ok || !deepEqual(af, bf) {
				return false
			}
		}
		return true
	case types.Type:
		bv, ok := b.Raw.(types.Type)
		return ok && av.String() == bv.String()
	default:
		return a.Raw == b.Raw
	}
}
