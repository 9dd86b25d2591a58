package evaluator

import (
	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// updateExpression implements spec.md §4.2's lvalue protocol: the shapes an
// assignment target or a mutating method's writeback can take.
func (s *State) updateExpression(e *syntax.Expr, v values.Value) {
	switch e.Kind {
	case syntax.EIdent:
		if !s.Env.Assign(e.Ident, v) {
			s.fail(errors.EvalUnknownVariable, issue.H{`name`: e.Ident})
		}
	case syntax.EFieldAccess:
		s.updateDictField(e.Target, e.Field, v)
	case syntax.EFuncCall:
		s.updateFuncCallLvalue(e, v)
	default:
		s.fail(errors.EvalIllegalLvalue, issue.H{`expr`: `expression`})
	}
}

// updateDictField handles `target.field = v`: spec.md's
// FieldAccess(Ident(f), target) -> treat as at(target, String f).
func (s *State) updateDictField(targetExpr *syntax.Expr, field string, v values.Value) {
	target := s.evalExpr(targetExpr)
	d, ok := target.(values.Dict)
	if !ok {
		s.typeMismatch(`field assignment target must be a dictionary`)
	}
	next := d.Copy()
	next.Set(field, v)
	s.updateExpression(targetExpr, next)
}

// updateFuncCallLvalue handles the three `<target>.<method>(...)` lvalue
// shapes: at(i|k), first(), last().
func (s *State) updateFuncCallLvalue(e *syntax.Expr, v values.Value) {
	callee := e.Callee
	if callee == nil || callee.Kind != syntax.EFieldAccess {
		s.fail(errors.EvalIllegalLvalue, issue.H{`expr`: `call`})
	}
	targetExpr := callee.Target
	switch callee.Field {
	case `at`:
		s.updateAt(targetExpr, e.Args, v)
	case `first`:
		s.updateArrayIndex(targetExpr, 0, v)
	case `last`:
		s.updateArrayIndex(targetExpr, -1, v)
	default:
		s.fail(errors.EvalIllegalLvalue, issue.H{`expr`: callee.Field})
	}
}

func (s *State) updateAt(targetExpr *syntax.Expr, args []*syntax.Expr, v values.Value) {
	if len(args) != 1 {
		s.fail(errors.EvalIllegalLvalue, issue.H{`expr`: `at`})
	}
	key := s.evalExpr(args[0])
	switch kv := key.(type) {
	case values.Integer:
		s.updateArrayIndex(targetExpr, int(kv.Int()), v)
	case values.String:
		target := s.evalExpr(targetExpr)
		d, ok := target.(values.Dict)
		if !ok {
			s.typeMismatch(`at(string) target must be a dictionary`)
		}
		next := d.Copy()
		next.Set(kv.Go(), v)
		s.updateExpression(targetExpr, next)
	default:
		s.typeMismatch(`at index must be an integer or string`)
	}
}

// updateArrayIndex writes v at idx (negative indexes from the end) into the
// array targetExpr currently evaluates to, then writes the rebuilt array
// back through targetExpr's own lvalue path.
func (s *State) updateArrayIndex(targetExpr *syntax.Expr, idx int, v values.Value) {
	target := s.evalExpr(targetExpr)
	arr, ok := target.(values.Array)
	if !ok {
		s.typeMismatch(`index assignment target must be an array`)
	}
	n := arr.Len()
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		s.domainError(`array index out of bounds`)
	}
	elems := arr.Slice()
	elems[idx] = v
	s.updateExpression(targetExpr, values.WrapArray(elems))
}
