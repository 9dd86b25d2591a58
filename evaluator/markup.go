package evaluator

import (
	"github.com/the-dr-lazy/typst-core/content"
	"github.com/the-dr-lazy/typst-core/style"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// evaluateMarkup walks ms via the content package, supplying this state as
// every callback the walk needs. It is the one seam between the tree-walking
// expression evaluator and the markup-shape-to-element mapping.
func (s *State) evaluateMarkup(ms []syntax.Markup) (values.ContentSeq, error) {
	return content.EvaluateMarkup(ms, s.contentDeps())
}

func (s *State) contentDeps() content.Deps {
	return content.Deps{
		EvalExpr:         s.evalExprDep,
		ValToContent:     s.valToContent,
		MakeElement:      s.makeElement,
		ApplyShowRules:   s.applyShowRules,
		MathMode:         func() bool { return s.Math },
		IsShowAll:        s.isShowAll,
		ApplyShowAllBody: s.applyShowAllBody,
		EvaluateEquation: s.evaluateEquation,
		SnapshotRules:    func() interface{} { return s.Rules.Snapshot() },
		RestoreRules:     func(snap interface{}) { s.Rules.Restore(snap.([]style.Rule)) },
	}
}

// evalExprDep adapts the panicking evalExpr to content.Deps' (Value, error)
// shape. A panic raised by evalExpr simply continues unwinding past this
// frame; the nil error below is only ever observed on the success path.
func (s *State) evalExprDep(e *syntax.Expr) (values.Value, error) {
	return s.evalExpr(e), nil
}

func (s *State) applyShowRules(seq values.ContentSeq) (values.ContentSeq, error) {
	return s.Rules.Apply(seq, s.matcher())
}

func (s *State) matcher() style.Matcher {
	if s.Match != nil {
		return s.Match
	}
	return func(values.Selector, values.Node) bool { return false }
}

// isShowAll recognizes a selector-less `show` directive per spec.md §4.2:
// Code(EShow) with no Selector evaluates its body in place and reports the
// body value so EvaluateMarkup can fold every remaining sibling into it.
func (s *State) isShowAll(code *syntax.Expr) (values.Value, bool, error) {
	if code.Kind != syntax.EShow || code.Selector != nil {
		return nil, false, nil
	}
	return s.evalShowBody(code.Body), true, nil
}

// applyShowAllBody resolves a selector-less show: body as a function is
// called over rest; otherwise body's own value-to-content coercion replaces
// rest outright.
func (s *State) applyShowAllBody(body values.Value, rest values.ContentSeq) (values.ContentSeq, error) {
	if fn, ok := body.(values.Function); ok {
		result := fn.Call(values.NewArguments([]values.Value{values.WrapContent(rest)}, values.EmptyDict))
		return s.valToContent(result), nil
	}
	return s.valToContent(body), nil
}

// evaluateEquation opens a new block scope, implicitly imports the math
// and sym modules' exports into it the way an unqualified `Import` would,
// evaluates the equation's children in math mode, and restores the prior
// scope and math-mode flag on return.
func (s *State) evaluateEquation(children []syntax.Markup, display bool) (values.ContentSeq, error) {
	prev := s.Math
	s.Math = true
	s.Env.Push()
	defer func() {
		s.Env.Pop()
		s.Math = prev
	}()
	for _, name := range [...]string{`math`, `sym`} {
		if v, ok := s.Env.Lookup(name); ok {
			if mod, ok := v.(values.Module); ok {
				mod.Exports.EachPair(func(name string, v values.Value) {
					s.Env.Bind(name, v)
				})
			}
		}
	}
	return s.evaluateMarkup(children)
}
