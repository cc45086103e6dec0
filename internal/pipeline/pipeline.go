// Package pipeline chains the stages an external caller drives a
// compilation through: type-check (C6) then erase (C7), against one
// shared program and diagnostics collector. Grounded on the teacher's
// own notion (internal/analyzer + internal/evaluator invoked in
// sequence from cmd/funxy/main.go) that parsing, checking, and running
// are separate stages over one artifact, generalized into an explicit
// Processor chain so cmd/tycore can run stages uniformly.
package pipeline

import (
	"log"

	"github.com/funvibe/tycore/internal/check"
	"github.com/funvibe/tycore/internal/config"
	"github.com/funvibe/tycore/internal/diagnostics"
	"github.com/funvibe/tycore/internal/erase"
	"github.com/funvibe/tycore/internal/ir"
)

// PipelineContext threads the in-progress compilation artifact through
// every stage: the program being processed (overwritten by stages that
// rewrite it, such as erasure), the Checker that accumulated its
// diagnostics and side tables, and the resolver collaborator every
// stage shares.
type PipelineContext struct {
	Program  *ir.Program
	Checker  *check.Checker
	Resolver check.ModuleResolver
	Opts     config.Options
}

// Processor is one pipeline stage. It receives the context produced by
// the previous stage and returns the context for the next one.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Every stage runs even after an earlier one reported errors;
		// each stage decides for itself whether to act (EraseStage skips
		// when checking failed, and erasure reports no diagnostics).
	}
	return ctx
}

// CheckStage runs C6 over ctx.Program, replacing ctx.Checker with a
// freshly built one (spec §5: one evaluator per compilation) so re-running
// the pipeline never reuses stale fuel or side tables.
type CheckStage struct{}

func (CheckStage) Process(ctx *PipelineContext) *PipelineContext {
	c := check.New(ctx.Opts.Fuel, ctx.Resolver)
	if config.Debug {
		c.Eval.OnSpeculativeFailure = func(d *diagnostics.Diagnostic) {
			log.Printf("speculative compile-time evaluation failed: %v", d)
		}
	}
	c.CheckProgram(ctx.Program)
	ctx.Checker = c
	return ctx
}

// EraseStage runs C7 over ctx.Program using ctx.Checker's side tables,
// replacing ctx.Program with the runtime IR. It is a no-op when checking
// failed, since erasure depends on every declaration/expression already
// carrying comptimeOnly information.
type EraseStage struct{}

func (EraseStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Checker == nil || ctx.Checker.Diags.HasErrors() {
		return ctx
	}
	ctx.Program = erase.Program(ctx.Checker, ctx.Program)
	return ctx
}

// Standard returns the check-then-erase pipeline cmd/tycore drives.
func Standard() *Pipeline {
	return New(CheckStage{}, EraseStage{})
}
