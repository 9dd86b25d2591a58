package evaluator

import (
	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/threadlocal"
	"github.com/the-dr-lazy/typst-core/values"
)

// sandboxKey marks the current goroutine as running inside an eval
// sandbox, so loadModule several calls removed from here can refuse a
// loadBytes access without threading a flag through every signature in
// between.
const sandboxKey = `eval.sandboxed`

// enterSandbox flags the current goroutine as sandboxed and reports
// whether it already was, so a nested eval call doesn't clear the flag
// threadlocal.Cleanup would otherwise drop for the outer call too.
func enterSandbox() (wasAlready bool) {
	if _, ok := threadlocal.Get(sandboxKey); ok {
		return true
	}
	threadlocal.Init()
	threadlocal.Set(sandboxKey, true)
	return false
}

func exitSandbox(wasAlready bool) {
	if wasAlready {
		return
	}
	threadlocal.Cleanup()
}

func sandboxed() bool {
	_, ok := threadlocal.Get(sandboxKey)
	return ok
}

// evalBuiltin implements spec.md §4.9: wrap the single string argument in
// `#{…}`, parse it, require exactly one Code node, and evaluate it in a
// fresh evaluator state with no loadBytes, so the sandboxed code can have
// no filesystem side effects. Failures surface through
// errors.EvalSandboxViolation, whose template already carries the
// "eval: " prefix.
func (s *State) evalBuiltin(args values.Arguments) values.Value {
	if len(args.Positional) != 1 {
		panic(errors.NewArgumentsError(`eval`, `expects exactly one string argument`))
	}
	src, ok := args.Positional[0].(values.String)
	if !ok {
		panic(errors.NewIllegalArgumentType(`eval`, 0, `string`, args.Positional[0].Kind().String()))
	}

	wasAlready := enterSandbox()
	defer exitSandbox(wasAlready)

	result, err := s.runSandboxed(src.Go())
	if err != nil {
		s.fail(errors.EvalSandboxViolation, issue.H{`detail`: err.Error()})
	}
	return result
}

func (s *State) runSandboxed(src string) (result values.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.toReportedError(r)
		}
	}()

	ms, perr := s.ParseMarkup(`#{` + src + `}`)
	if perr != nil {
		return nil, perr
	}

	code := soleCodeNode(ms)
	if code == nil {
		return nil, errors.Fail(s.here(), `eval argument must be exactly one expression`)
	}

	child := s.newChild(nil, s.SourceName)
	return child.evalExpr(code), nil
}

// soleCodeNode requires ms to contain exactly one MCode node (ignoring
// nothing else — any other sibling content makes the argument ambiguous)
// and returns its embedded expression.
func soleCodeNode(ms []syntax.Markup) *syntax.Expr {
	if len(ms) != 1 || ms[0].Kind != syntax.MCode {
		return nil
	}
	return ms[0].Code
}
