package ctime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/ir"
	"github.com/funvibe/tycore/internal/token"
	"github.com/funvibe/tycore/internal/tyenv"
)

func tok() token.Token { return token.Token{Line: 1, Column: 1} }

func TestCycleInComptimeBinding(t *testing.T) {
	tenv := tyenv.NewTypeEnv()
	cenv := tyenv.NewComptimeEnv()
	self := &ir.Identifier{Tok: tok(), Name: "loop"}
	cenv.Define("loop", self, tenv, cenv)

	e := New(1000)
	_, d := e.Eval(self, tenv, cenv)
	require.NotNil(t, d, "expected a diagnostic forcing a binding that references itself")
	require.Equal(t, diagnostics.ErrCycleInComptime, d.Code)
}

func TestFuelExhaustion(t *testing.T) {
	tenv := tyenv.NewTypeEnv()
	cenv := tyenv.NewComptimeEnv()
	e := New(0)

	lit := &ir.Literal{Tok: tok(), Base: ir.LitInt, Raw: int64(1)}
	_, d := e.Eval(lit, tenv, cenv)
	require.NotNil(t, d)
	require.Equal(t, diagnostics.ErrFuelExhausted, d.Code)
}

func TestUnavailableBindingIsNotComptime(t *testing.T) {
	tenv := tyenv.NewTypeEnv()
	cenv := tyenv.NewComptimeEnv()
	cenv.DefineUnavailable("param")

	e := New(1000)
	_, d := e.Eval(&ir.Identifier{Tok: tok(), Name: "param"}, tenv, cenv)
	require.NotNil(t, d)
	require.Equal(t, diagnostics.ErrNotComptime, d.Code)
}
