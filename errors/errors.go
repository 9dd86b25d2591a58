// Package errors defines the evaluator's fatal error taxonomy. Every error
// that can leave evaluateTypst is an issue.Reported: a code-tagged,
// template-rendered message carrying a source position.
package errors

import (
	"fmt"

	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/syntax"
)

// Issue codes. Templates use the %{name} placeholder style the issue
// package expands against an issue.H.
const (
	EvalUnknownVariable     = issue.Code(`EVAL_UNKNOWN_VARIABLE`)
	EvalUnknownFunction     = issue.Code(`EVAL_UNKNOWN_FUNCTION`)
	EvalUnknownModule       = issue.Code(`EVAL_UNKNOWN_MODULE`)
	EvalIllegalLvalue       = issue.Code(`EVAL_ILLEGAL_LVALUE`)
	EvalTypeMismatch        = issue.Code(`EVAL_TYPE_MISMATCH`)
	EvalArgumentsError      = issue.Code(`EVAL_ARGUMENTS_ERROR`)
	EvalIllegalArgumentType = issue.Code(`EVAL_ILLEGAL_ARGUMENT_TYPE`)
	EvalDomainError         = issue.Code(`EVAL_DOMAIN_ERROR`)
	EvalIOError             = issue.Code(`EVAL_IO_ERROR`)
	EvalSandboxViolation    = issue.Code(`EVAL_SANDBOX_VIOLATION`)
	EvalIllegalBreak        = issue.Code(`EVAL_ILLEGAL_BREAK`)
	EvalIllegalContinue     = issue.Code(`EVAL_ILLEGAL_CONTINUE`)
	EvalUnimplemented       = issue.Code(`EVAL_UNIMPLEMENTED`)
)

func init() {
	issue.Hard(EvalUnknownVariable, `%{name} not defined in scope`)
	issue.Hard(EvalUnknownFunction, `unknown function: %{name}`)
	issue.Hard(EvalUnknownModule, `unresolved module: %{path}`)
	issue.Hard(EvalIllegalLvalue, `%{expr} is not assignable`)
	issue.Hard(EvalTypeMismatch, `%{detail}`)
	issue.Hard(EvalArgumentsError, `%{name}: %{message}`)
	issue.Hard(EvalIllegalArgumentType, `%{name} argument %{index}: expected %{expected}, got %{actual}`)
	issue.Hard(EvalDomainError, `%{detail}`)
	issue.Hard(EvalIOError, `%{detail}`)
	issue.Hard(EvalSandboxViolation, `eval: %{detail}`)
	issue.Hard(EvalIllegalBreak, `break used outside of loop`)
	issue.Hard(EvalIllegalContinue, `continue used outside of loop`)
	issue.Hard(EvalUnimplemented, `%{what} is not implemented`)
}

// ArgumentsError is a general argument-shape complaint raised by a method
// body or built-in constructor (arity, unknown named argument, and similar).
// It is caught at the call boundary and re-issued with a position attached.
type ArgumentsError struct {
	Name    string
	Message string
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// NewArgumentsError builds an ArgumentsError for a named callable.
func NewArgumentsError(name, message string) *ArgumentsError {
	return &ArgumentsError{Name: name, Message: message}
}

// IllegalArgumentType is raised when an argument's runtime kind does not
// match what a method or element function requires.
type IllegalArgumentType struct {
	Name     string
	Index    int
	Expected string
	Actual   string
}

func (e *IllegalArgumentType) Error() string {
	return fmt.Sprintf("%s argument %d: expected %s, got %s", e.Name, e.Index+1, e.Expected, e.Actual)
}

func NewIllegalArgumentType(name string, index int, expected, actual string) *IllegalArgumentType {
	return &IllegalArgumentType{Name: name, Index: index, Expected: expected, Actual: actual}
}

// Fail wraps a non-fatal Go error observed at an I/O boundary (loadBytes,
// currentTime) as a fatal evaluation issue.
func Fail(loc issue.Location, detail string) issue.Reported {
	return issue.NewReported(EvalIOError, issue.SEVERITY_ERROR, issue.H{`detail`: detail}, loc)
}

// New creates a position-tagged Reported for the given issue code.
func New(code issue.Code, loc issue.Location, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, loc)
}

// position adapts syntax.Position to issue.Location. A plain method
// promotion would collide with Position's own File/Line fields, so the
// adapter lives here instead of on syntax.Position itself.
type position struct{ p syntax.Position }

// Loc wraps a source position as an issue.Location.
func Loc(p syntax.Position) issue.Location { return position{p} }

func (l position) File() string { return l.p.File }
func (l position) Line() int    { return l.p.Line }
func (l position) Pos() int     { return l.p.Col }
