package evaluator

import (
	"strings"

	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/style"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// evalExpr is the tree-walking driver's core: one panic-raising, no-error-
// return switch over every embedded-expression kind. The one recover point
// is State.Evaluate; every helper below is free to panic.
func (s *State) evalExpr(e *syntax.Expr) values.Value {
	s.pos = e.Pos
	switch e.Kind {
	case syntax.ELiteral:
		return s.evalLiteral(e.Literal)
	case syntax.EArray:
		elems := make([]values.Value, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = s.evalExpr(el)
		}
		return values.WrapArray(elems)
	case syntax.EDict:
		d := values.NewDict(len(e.Pairs))
		for _, kv := range e.Pairs {
			d.Set(kv.Key, s.evalExpr(kv.Value))
		}
		return d
	case syntax.ENot:
		b := s.truthy(s.evalExpr(e.Operand), `not`)
		return values.WrapBoolean(!b)
	case syntax.EAnd:
		if !s.truthy(s.evalExpr(e.Lhs), `and`) {
			return values.False
		}
		return values.WrapBoolean(s.truthy(s.evalExpr(e.Rhs), `and`))
	case syntax.EOr:
		if s.truthy(s.evalExpr(e.Lhs), `or`) {
			return values.True
		}
		return values.WrapBoolean(s.truthy(s.evalExpr(e.Rhs), `or`))
	case syntax.EAdd:
		v, ok := values.MaybePlus(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`incompatible operand types for +`)
		}
		return v
	case syntax.ESub:
		v, ok := values.MaybeMinus(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`incompatible operand types for -`)
		}
		return v
	case syntax.EMul:
		v, ok := values.MaybeTimes(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`incompatible operand types for *`)
		}
		return v
	case syntax.EDiv:
		v, ok, divZero := values.MaybeDividedBy(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if divZero {
			s.domainError(`division by zero`)
		}
		if !ok {
			s.typeMismatch(`incompatible operand types for /`)
		}
		return v
	case syntax.EPow:
		v, ok := values.Pow(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`incompatible operand types for **`)
		}
		return v
	case syntax.ENeg:
		v, ok := values.MaybeNegate(s.evalExpr(e.Operand))
		if !ok {
			s.typeMismatch(`incompatible operand type for unary -`)
		}
		return v
	case syntax.EEq:
		return values.WrapBoolean(values.Equal(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs)))
	case syntax.ENeq:
		return values.WrapBoolean(!values.Equal(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs)))
	case syntax.ELt:
		lt, ok := values.LessThan(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`values are not ordered`)
		}
		return values.WrapBoolean(lt)
	case syntax.ELe:
		le, ok := values.LessOrEqual(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`values are not ordered`)
		}
		return values.WrapBoolean(le)
	case syntax.EGt:
		gt, ok := values.GreaterThan(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`values are not ordered`)
		}
		return values.WrapBoolean(gt)
	case syntax.EGe:
		ge, ok := values.GreaterOrEqual(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`values are not ordered`)
		}
		return values.WrapBoolean(ge)
	case syntax.EIn:
		result, ok := values.In(s.evalExpr(e.Lhs), s.evalExpr(e.Rhs))
		if !ok {
			s.typeMismatch(`in: incompatible operand types`)
		}
		return values.WrapBoolean(result)
	case syntax.ELet:
		var v values.Value = values.None
		if e.Value != nil {
			v = s.evalExpr(e.Value)
		}
		s.bindValue(e.Bind, v)
		return values.None
	case syntax.ELetFunc:
		name := e.FuncName
		fn := s.toFunction(&name, e.Params, e.Body)
		s.Env.Bind(name, fn)
		return values.None
	case syntax.EAssign:
		v := s.evalExpr(e.Rhs)
		s.updateExpression(e.Lhs, v)
		return v
	case syntax.EIdent:
		v, ok := s.Env.Lookup(e.Ident)
		if !ok {
			s.fail(errors.EvalUnknownVariable, issue.H{`name`: e.Ident})
		}
		return v
	case syntax.EFieldAccess:
		v := s.evalExpr(e.Target)
		return s.fieldAccess(e.Target, v, e.Field)
	case syntax.EFuncCall:
		callee := s.evalExpr(e.Callee)
		args := s.evalArgList(e.Args, e.Named)
		return s.callExpr(callee, args)
	case syntax.EIf:
		for _, c := range e.Clauses {
			if s.truthy(s.evalExpr(c.Cond), `if`) {
				return s.evalExpr(c.Branch)
			}
		}
		return values.None
	case syntax.EWhile:
		return s.evalWhile(e)
	case syntax.EFor:
		return s.evalFor(e)
	case syntax.EReturn:
		var v values.Value = values.None
		hasValue := e.Value != nil
		if hasValue {
			v = s.evalExpr(e.Value)
		}
		s.Flow = Flow{Kind: FlowReturn, Value: v, HasValue: hasValue}
		return v
	case syntax.EContinue:
		if s.loopDepth == 0 {
			s.fail(errors.EvalIllegalContinue, issue.H{})
		}
		s.Flow = Flow{Kind: FlowContinue}
		return values.None
	case syntax.EBreak:
		if s.loopDepth == 0 {
			s.fail(errors.EvalIllegalBreak, issue.H{})
		}
		s.Flow = Flow{Kind: FlowBreak}
		return values.None
	case syntax.EBlockCode:
		return s.evalBlockCode(e)
	case syntax.EBlockContent:
		seq, err := s.evaluateMarkup(e.ContentBody)
		if err != nil {
			panic(err)
		}
		return values.WrapContent(seq)
	case syntax.ESet:
		s.evalSet(e)
		return values.None
	case syntax.EShow:
		s.evalShow(e)
		return values.None
	case syntax.EImport:
		s.evalImport(e)
		return values.None
	case syntax.EInclude:
		s.evalInclude(e)
		return values.None
	}
	s.fail(errors.EvalUnimplemented, issue.H{`what`: `expression kind`})
	return nil
}

func (s *State) truthy(v values.Value, where string) bool {
	b, ok := values.IsTruthy(v)
	if !ok {
		s.typeMismatch(where + ` requires a boolean operand`)
	}
	return b
}

// evalLiteral maps a parsed Literal to its value-universe representative,
// spec.md §4.2's literal dispatch table.
func (s *State) evalLiteral(lit *syntax.Literal) values.Value {
	switch lit.Kind {
	case syntax.LInteger:
		return values.WrapInteger(lit.Int)
	case syntax.LFloat:
		return values.WrapFloat(lit.Float)
	case syntax.LBoolean:
		return values.WrapBoolean(lit.Bool)
	case syntax.LString:
		return values.WrapString(lit.Str)
	case syntax.LNone:
		return values.None
	case syntax.LAuto:
		return values.Auto
	case syntax.LNumeric:
		switch lit.Unit {
		case syntax.UFr:
			return values.WrapFraction(lit.Num)
		case syntax.UPercent:
			return values.RatioFromFloat(lit.Num / 100)
		case syntax.UDeg:
			return values.NewAngleDegrees(lit.Num)
		case syntax.URad:
			return values.NewAngleRadians(lit.Num)
		case syntax.UPt:
			return values.NewLength(lit.Num, `pt`)
		case syntax.UEm:
			return values.NewLength(lit.Num, `em`)
		case syntax.UMm:
			return values.NewLength(lit.Num, `mm`)
		case syntax.UCm:
			return values.NewLength(lit.Num, `cm`)
		case syntax.UIn:
			return values.NewLength(lit.Num, `in`)
		}
	}
	s.fail(errors.EvalUnimplemented, issue.H{`what`: `literal kind`})
	return nil
}

func (s *State) evalArgList(argExprs []*syntax.Expr, named []syntax.DictKV) values.Arguments {
	pos := make([]values.Value, len(argExprs))
	for i, a := range argExprs {
		pos[i] = s.evalExpr(a)
	}
	d := values.NewDict(len(named))
	for _, kv := range named {
		d.Set(kv.Key, s.evalExpr(kv.Value))
	}
	return values.NewArguments(pos, d)
}

// callExpr dispatches a resolved callee against evaluated arguments: a
// plain Function call, an element constructor merged against its `set`
// defaults, or — in math mode only — a bare symbol applied as an accent or
// rendered back as literal call-shaped text.
func (s *State) callExpr(callee values.Value, args values.Arguments) values.Value {
	if fn, ok := callee.(values.Function); ok {
		if elName, isElt := fn.IsElement(); isElt {
			args = s.Styles.Get(elName).Concat(args)
		}
		return fn.Call(args)
	}
	if s.Math {
		if sym, ok := callee.(values.Symbol); ok && sym.IsAccent {
			if accent, ok := s.Env.Lookup(`accent`); ok {
				if fn, ok := accent.(values.Function); ok {
					return fn.Call(values.NewArguments(append(args.Positional, sym), args.Named))
				}
			}
		}
		return s.mathCallFallback(callee, args)
	}
	s.typeMismatch(`value is not callable`)
	return nil
}

// mathCallFallback renders a non-function math-mode call as literal text,
// the shape `f(x, y)` takes when `f` never resolved to an actual function
// (an unbound math identifier standing for itself).
func (s *State) mathCallFallback(callee values.Value, args values.Arguments) values.Value {
	var b strings.Builder
	callee.ToString(&b)
	b.WriteByte('(')
	for i, a := range args.Positional {
		if i > 0 {
			b.WriteString(`, `)
		}
		a.ToString(&b)
	}
	b.WriteByte(')')
	return values.WrapContent(values.NewContentSeq([]values.Node{values.NewTxt(b.String())}))
}

// evalWhile implements the While loop: per iteration the condition must be
// boolean, the body's flow result is interpreted per spec.md §5's flow
// table, and results accumulate with joinVals the way a code block's
// statements do.
func (s *State) evalWhile(e *syntax.Expr) values.Value {
	s.loopDepth++
	defer func() { s.loopDepth-- }()
	var acc values.Value = values.None
	for s.truthy(s.evalExpr(e.Cond), `while`) {
		s.Flow = flowNormal
		v := s.evalExpr(e.Body)
		switch s.Flow.Kind {
		case FlowReturn:
			if s.Flow.HasValue {
				return s.Flow.Value
			}
			return s.joinVals(acc, v)
		case FlowBreak:
			s.Flow = flowNormal
			return s.joinVals(acc, v)
		case FlowContinue:
			acc = s.joinVals(acc, v)
			s.Flow = flowNormal
		default:
			acc = s.joinVals(acc, v)
		}
	}
	return acc
}

// evalFor implements the For loop over a string's characters, an array's
// elements, or a dict's [key, value] pairs.
func (s *State) evalFor(e *syntax.Expr) values.Value {
	items := s.forSource(s.evalExpr(e.ForSource))
	s.loopDepth++
	defer func() { s.loopDepth-- }()
	var acc values.Value = values.None
	for _, item := range items {
		s.Env.Push()
		s.bindValue(e.ForBind, item)
		s.Flow = flowNormal
		v := s.evalExpr(e.Body)
		s.Env.Pop()
		switch s.Flow.Kind {
		case FlowReturn:
			if s.Flow.HasValue {
				return s.Flow.Value
			}
			return s.joinVals(acc, v)
		case FlowBreak:
			s.Flow = flowNormal
			return s.joinVals(acc, v)
		case FlowContinue:
			acc = s.joinVals(acc, v)
			s.Flow = flowNormal
		default:
			acc = s.joinVals(acc, v)
		}
	}
	return acc
}

func (s *State) forSource(v values.Value) []values.Value {
	switch tv := v.(type) {
	case values.String:
		runes := []rune(tv.Go())
		items := make([]values.Value, len(runes))
		for i, r := range runes {
			items[i] = values.WrapString(string(r))
		}
		return items
	case values.Array:
		return tv.Elements()
	case values.Dict:
		items := make([]values.Value, 0, tv.Len())
		for _, entry := range tv.Entries() {
			items = append(items, values.WrapArray([]values.Value{values.WrapString(entry.Key), entry.Value}))
		}
		return items
	}
	s.typeMismatch(`for loop source must be a string, array, or dictionary`)
	return nil
}

// evalBlockCode implements a code block's statement sequence: a fresh
// block scope and style snapshot bracket the statements (restored via
// defer so a panic unwinds cleanly), flow resets to Normal before each
// statement, and a Return/Break/Continue mid-block stops the block and
// reports upward per spec.md §5's flow table.
func (s *State) evalBlockCode(e *syntax.Expr) values.Value {
	s.Env.Push()
	snap := s.Styles.Snapshot()
	defer func() {
		s.Styles.Restore(snap)
		s.Env.Pop()
	}()
	var acc values.Value = values.None
	for _, stmt := range e.Block {
		s.Flow = flowNormal
		v := s.evalExpr(stmt)
		switch s.Flow.Kind {
		case FlowReturn:
			if s.Flow.HasValue {
				return v
			}
			return s.joinVals(acc, v)
		case FlowContinue, FlowBreak:
			return s.joinVals(acc, v)
		default:
			acc = s.joinVals(acc, v)
		}
	}
	return acc
}

// evalSet implements the Set directive: evaluate the element target and
// register the evaluated arguments as its defaults, overridden per call by
// any explicit args the element constructor itself receives.
func (s *State) evalSet(e *syntax.Expr) {
	target := s.evalExpr(e.Callee)
	fn, ok := target.(values.Function)
	if !ok {
		s.typeMismatch(`set target must be an element function`)
	}
	elName, isElt := fn.IsElement()
	if !isElt {
		s.typeMismatch(`set target must be an element function`)
	}
	args := s.evalArgList(e.SetArgs, e.SetNamed)
	s.Styles.Set(elName, args)
}

// evalShow implements the Show directive: a selector-less show is handled
// earlier, by content.EvaluateMarkup's IsShowAll hook, directly over the
// markup sibling list it appears in — reaching evalExpr for one means it
// occurred somewhere that hook never sees (e.g. nested in a plain code
// block), which this interpreter does not support.
func (s *State) evalShow(e *syntax.Expr) {
	if e.Selector == nil {
		s.fail(errors.EvalUnimplemented, issue.H{`what`: `selector-less show outside markup content`})
	}
	sel := s.toSelector(s.evalExpr(e.Selector))
	body := s.evalShowBody(e.Body)
	s.Rules.Push(style.Rule{Selector: sel, Apply: s.showTransformer(body)})
}

// evalShowBody evaluates a show rule's body in a fresh function scope, per
// spec.md §4.4.
func (s *State) evalShowBody(body *syntax.Expr) values.Value {
	s.Env.PushFunction()
	defer s.Env.Pop()
	return s.evalExpr(body)
}

// showTransformer adapts a show rule's body value into a style.Transformer:
// a function body is called with the matched node wrapped as Content, a
// non-function body's coercion replaces the node outright.
func (s *State) showTransformer(body values.Value) style.Transformer {
	return func(node values.Node) (values.ContentSeq, error) {
		wrapped := values.WrapContent(values.NewContentSeq([]values.Node{node}))
		if fn, ok := body.(values.Function); ok {
			result := fn.Call(values.NewArguments([]values.Value{wrapped}, values.EmptyDict))
			return s.valToContent(result), nil
		}
		return s.valToContent(body), nil
	}
}

// evalImport implements the Import directive's three binding forms: bind
// every export, bind a named subset, or bind the module value itself.
func (s *State) evalImport(e *syntax.Expr) {
	path := s.evalExpr(e.ImportPath)
	ps, ok := path.(values.String)
	if !ok {
		s.typeMismatch(`import path must be a string`)
	}
	mod := s.loadModule(ps.Go())
	switch e.ImportSelector.Kind {
	case syntax.ImportAll:
		mod.Exports.EachPair(func(name string, v values.Value) {
			s.Env.Bind(name, v)
		})
	case syntax.ImportSome:
		for _, name := range e.ImportSelector.Names {
			v, ok := mod.Exports.Get(name)
			if !ok {
				s.fail(errors.EvalUnknownVariable, issue.H{`name`: name})
			}
			s.Env.Bind(name, v)
		}
	case syntax.ImportNone:
		s.Env.Bind(mod.Ident, mod)
	}
}

// evalInclude loads the named module and merges every exported identifier
// into scope, the same binding shape as an Import with a `: *` selector.
func (s *State) evalInclude(e *syntax.Expr) {
	path := s.evalExpr(e.ImportPath)
	ps, ok := path.(values.String)
	if !ok {
		s.typeMismatch(`include path must be a string`)
	}
	mod := s.loadModule(ps.Go())
	mod.Exports.EachPair(func(name string, v values.Value) {
		s.Env.Bind(name, v)
	})
}
