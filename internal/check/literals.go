package check

import (
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/tyenv"
	"github.com/funvibe/tycore/internal/types"
)

// checkConditional implements spec §4.5.2's contextual typing into both
// branches and produces the union of their types when the condition
// isn't known at compile time; when it is (the condition has a boolean
// comptime value, whether or not it is comptimeOnly), only the taken
// branch's type is required to exist —
// the untaken one is still checked (for diagnostics) but does not widen
// the result, mirroring C7's dead-branch elimination (spec §8 scenario 3).
func (c *Checker) checkConditional(n *ir.ConditionalExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	condInfo := c.checkExpr(n.Condition, tenv, cenv, types.Primitive{Name: types.Boolean})
	if !types.Subtype(condInfo.Type, types.Primitive{Name: types.Boolean}) {
		c.Diags.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Tok, "conditional's condition must be boolean"))
	}

	thenInfo := c.checkExpr(n.Then, tenv, cenv, expected)
	elseInfo := c.checkExpr(n.Else, tenv, cenv, expected)

	comptimeOnly := condInfo.ComptimeOnly || thenInfo.ComptimeOnly || elseInfo.ComptimeOnly
	if condInfo.ComptimeValue != nil {
		if b, ok := (*condInfo.ComptimeValue).Raw.(bool); ok {
			taken := thenInfo
			if !b {
				taken = elseInfo
			}
			info := ExprInfo{Type: taken.Type, ComptimeOnly: comptimeOnly}
			if taken.ComptimeValue != nil {
				info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
			}
			return info
		}
	}

	result := types.NewUnion(thenInfo.Type, elseInfo.Type)
	info := ExprInfo{Type: result, ComptimeOnly: comptimeOnly}
	if thenInfo.ComptimeValue != nil && elseInfo.ComptimeValue != nil {
		if comptimeOnly {
			v, d := c.Eval.Eval(n, tenv, cenv)
			if d != nil {
				c.Diags.Add(d)
			} else {
				info.ComptimeValue = &v
			}
		} else {
			info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		}
	}
	return info
}

// checkRecord implements spec §4.5.2's contextual typing for record
// literals: each field's value is checked against the expected record
// type's corresponding field type, when one is available.
func (c *Checker) checkRecord(n *ir.RecordExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	expectedRecord, hasExpected := types.Unwrap(expected).(types.Record)

	fields := make([]types.FieldInfo, 0, len(n.Fields))
	comptimeOnly := false
	allComptime := true
	for _, f := range n.Fields {
		var fieldExpected types.Type
		if !f.Spread && hasExpected {
			if ef, ok := expectedRecord.FieldByName(f.Name); ok {
				fieldExpected = ef.Type
			}
		}
		info := c.checkExpr(f.Value, tenv, cenv, fieldExpected)
		if info.ComptimeOnly {
			comptimeOnly = true
		}
		if info.ComptimeValue == nil {
			allComptime = false
		}
		if f.Spread {
			if r, ok := types.Unwrap(info.Type).(types.Record); ok {
				fields = append(fields, r.Fields...)
			} else {
				c.Diags.Add(diagnostics.NewError(diagnostics.ErrInvalidTypeExpression, f.Value.GetToken(), "spread source is not a record"))
			}
			continue
		}
		fields = append(fields, types.FieldInfo{Name: f.Name, Type: info.Type})
	}

	recordType := types.NormalizeRecord(types.Record{Fields: fields, Closed: true})
	info := ExprInfo{Type: recordType, ComptimeOnly: comptimeOnly}
	if allComptime {
		if comptimeOnly {
			v, d := c.Eval.Eval(n, tenv, cenv)
			if d != nil {
				c.Diags.Add(d)
			} else {
				info.ComptimeValue = &v
			}
		} else {
			info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		}
	}
	return info
}

// checkArray implements spec §4.5.2's contextual typing for array
// literals: elements are checked against the expected array's element
// type union, when available, and spreads contribute their source
// array's own element types unchanged.
func (c *Checker) checkArray(n *ir.ArrayExpr, tenv *tyenv.TypeEnv, cenv *tyenv.ComptimeEnv, expected types.Type) ExprInfo {
	var elemExpected types.Type
	if expectedArr, ok := types.Unwrap(expected).(types.Array); ok {
		elemExpected = arrayElementUnion(expectedArr)
	}

	elems := make([]types.ArrayElement, 0, len(n.Elements))
	comptimeOnly := false
	allComptime := true
	for _, el := range n.Elements {
		info := c.checkExpr(el.Value, tenv, cenv, elemExpected)
		if info.ComptimeOnly {
			comptimeOnly = true
		}
		if info.ComptimeValue == nil {
			allComptime = false
		}
		if el.Spread {
			if a, ok := types.Unwrap(info.Type).(types.Array); ok {
				elems = append(elems, a.Elements...)
			} else {
				c.Diags.Add(diagnostics.NewError(diagnostics.ErrSpreadMustBeArray, el.Value.GetToken(), "spread source is not an array"))
			}
			continue
		}
		elems = append(elems, types.ArrayElement{Type: info.Type})
	}

	arrType := types.Array{Elements: elems}
	info := ExprInfo{Type: arrType, ComptimeOnly: comptimeOnly}
	if allComptime {
		if comptimeOnly {
			v, d := c.Eval.Eval(n, tenv, cenv)
			if d != nil {
				c.Diags.Add(d)
			} else {
				info.ComptimeValue = &v
			}
		} else {
			info.ComptimeValue, _ = c.speculative(n, tenv, cenv)
		}
	}
	return info
}
