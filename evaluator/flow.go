package evaluator

import "github.com/the-dr-lazy/typst-core/values"

// FlowKind tags the four ways evaluating an expression can leave a block or
// loop: proceed normally, or unwind as Continue/Break/Return. Modeled as an
// explicit value carried on State rather than via panic/recover, the one
// deliberate departure from the teacher's control-flow idiom: spec.md §9
// calls for flow directives the evaluator can inspect after every statement
// instead of unwinding the Go call stack for ordinary loop control.
type FlowKind int

const (
	FlowNormal FlowKind = iota
	FlowContinue
	FlowBreak
	FlowReturn
)

// Flow is the current unwind state. HasValue distinguishes `return expr`
// from a bare `return`: a CodeBlock must emit the single returned value in
// the former case but join-and-stop in the latter.
type Flow struct {
	Kind     FlowKind
	Value    values.Value
	HasValue bool
}

var flowNormal = Flow{Kind: FlowNormal}
