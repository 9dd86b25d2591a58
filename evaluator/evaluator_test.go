package evaluator

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return New(
		func(string) (string, error) { t.Fatal(`unexpected loadBytes call`); return ``, nil },
		func() int64 { return 0 },
		`main.typ`,
		func(string) ([]syntax.Markup, error) { t.Fatal(`unexpected parse call`); return nil, nil },
		func(values.Selector, values.Node) bool { return false },
		values.EmptyDict,
	)
}

func intLit(n int64) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ELiteral, Literal: &syntax.Literal{Kind: syntax.LInteger, Int: n}}
}

func ident(name string) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.EIdent, Ident: name}
}

func add(lhs, rhs *syntax.Expr) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.EAdd, Lhs: lhs, Rhs: rhs}
}

func block(stmts ...*syntax.Expr) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.EBlockCode, Block: stmts}
}

func mustInt(t *testing.T, v values.Value) int64 {
	t.Helper()
	i, ok := v.(values.Integer)
	if !ok {
		t.Fatalf(`expected Integer, got %T (%v)`, v, v)
	}
	return i.Int()
}

// scenario 1: `#let x = 2; #(x + 3)` evaluates the block to Integer 5.
func TestBlockLetThenExpression(t *testing.T) {
	s := newTestState(t)
	e := block(
		&syntax.Expr{Kind: syntax.ELet, Bind: &syntax.Bind{Kind: syntax.BindBasic, Ident: `x`}, Value: intLit(2)},
		add(ident(`x`), intLit(3)),
	)
	got := s.evalExpr(e)
	if n := mustInt(t, got); n != 5 {
		t.Errorf(`got %d, want 5`, n)
	}
}

// scenario 5: sink parameter collects the middle, right params consume
// from the tail: f(x, ..rest, y) = (x, rest, y); f(1, 2, 3, 4) = (1, (2,3), 4).
func TestSinkParameterBinding(t *testing.T) {
	s := newTestState(t)
	params := []syntax.Param{
		{Kind: syntax.ParamNormal, Ident: `x`},
		{Kind: syntax.ParamSink, Ident: `rest`},
		{Kind: syntax.ParamNormal, Ident: `y`},
	}
	body := &syntax.Expr{Kind: syntax.EArray, Elements: []*syntax.Expr{ident(`x`), ident(`rest`), ident(`y`)}}
	fn := s.toFunction(nil, params, body)

	result := fn.Call(values.NewArguments([]values.Value{
		values.WrapInteger(1), values.WrapInteger(2), values.WrapInteger(3), values.WrapInteger(4),
	}, values.EmptyDict))

	arr, ok := result.(values.Array)
	if !ok || arr.Len() != 3 {
		t.Fatalf(`result = %v, want a 3-element array`, result)
	}
	if mustInt(t, arr.At(0)) != 1 {
		t.Errorf(`x = %v, want 1`, arr.At(0))
	}
	mid, ok := arr.At(1).(values.Arguments)
	if !ok || len(mid.Positional) != 2 || mustInt(t, mid.Positional[0]) != 2 || mustInt(t, mid.Positional[1]) != 3 {
		t.Errorf(`rest = %v, want an Arguments(2, 3)`, arr.At(1))
	}
	if mustInt(t, arr.At(2)) != 4 {
		t.Errorf(`y = %v, want 4`, arr.At(2))
	}
}

// Closure capture: a function sees exactly the bindings visible at its
// definition point — neither a later same-frame rebind nor a binding
// introduced in a frame pushed afterward is visible.
func TestClosureCaptureIgnoresLaterBindings(t *testing.T) {
	s := newTestState(t)
	s.Env.Bind(`captured`, values.WrapInteger(1))
	fn := s.toFunction(nil, nil, ident(`captured`))
	s.Env.Bind(`captured`, values.WrapInteger(999)) // later rebind in the same frame...
	s.Env.Push()
	s.Env.Bind(`unrelated`, values.WrapInteger(2))

	got := fn.Call(values.EmptyArguments)
	if n := mustInt(t, got); n != 1 {
		t.Errorf(`got %d, want 1 (a later same-frame rebind must not leak into the closure)`, n)
	}
	if _, ok := fn.Lookup(`unrelated`); ok {
		t.Error(`closure should not see a binding introduced in a frame pushed after the snapshot`)
	}
}

// updateExpression round-trip: after p := v, evaluating p yields v.
func TestLvalueRoundTrip(t *testing.T) {
	s := newTestState(t)
	d := values.NewDict(1)
	d.Set(`a`, values.WrapInteger(1))
	s.Env.Bind(`d`, d)

	target := &syntax.Expr{Kind: syntax.EFieldAccess, Target: ident(`d`), Field: `a`}
	s.updateExpression(target, values.WrapInteger(42))

	got := s.evalExpr(target)
	if n := mustInt(t, got); n != 42 {
		t.Errorf(`got %d, want 42`, n)
	}
}

// Flow: in a CodeBlock, once a non-Normal flow fires, no further
// expressions evaluate.
func TestBlockStopsAtReturn(t *testing.T) {
	s := newTestState(t)
	panicker := ident(`doesNotExist`) // a statement that would fail if ever reached
	e := block(
		&syntax.Expr{Kind: syntax.EReturn, Value: intLit(1)},
		panicker,
	)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf(`statement after Return was evaluated: %v`, r)
		}
	}()
	got := s.evalExpr(e)
	if n := mustInt(t, got); n != 1 {
		t.Errorf(`got %d, want 1`, n)
	}
}

// `eval` sandbox: no path inside eval can observe loadBytes.
func TestEvalSandboxRejectsModuleLoad(t *testing.T) {
	s := newTestState(t)
	s.ParseMarkup = func(src string) ([]syntax.Markup, error) {
		return []syntax.Markup{{
			Kind: syntax.MCode,
			Code: &syntax.Expr{
				Kind:       syntax.EImport,
				ImportPath: &syntax.Expr{Kind: syntax.ELiteral, Literal: &syntax.Literal{Kind: syntax.LString, Str: `other.typ`}},
			},
		}}, nil
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal(`expected evalBuiltin to fail, loadModule should refuse to run inside eval`)
		}
	}()
	s.evalBuiltin(values.NewArguments([]values.Value{values.WrapString(`import "other.typ": *`)}, values.EmptyDict))
}

func TestEvalSandboxArithmetic(t *testing.T) {
	s := newTestState(t)
	s.ParseMarkup = func(src string) ([]syntax.Markup, error) {
		return []syntax.Markup{{Kind: syntax.MCode, Code: add(intLit(2), intLit(3))}}, nil
	}
	result := s.evalBuiltin(values.NewArguments([]values.Value{values.WrapString(`2 + 3`)}, values.EmptyDict))
	if n := mustInt(t, result); n != 5 {
		t.Errorf(`got %d, want 5`, n)
	}
}

// `show` registers a content rewriter applied through style.Rules.Apply.
func TestShowRuleRewritesMatchedNode(t *testing.T) {
	s := newTestState(t)
	s.Match = func(sel values.Selector, n values.Node) bool {
		return sel.SelKind == values.SelString && n.NKind == values.NodeTxt && n.Text == `cat`
	}
	sel := &syntax.Expr{Kind: syntax.ELiteral, Literal: &syntax.Literal{Kind: syntax.LString, Str: `cat`}}
	body := &syntax.Expr{Kind: syntax.ELiteral, Literal: &syntax.Literal{Kind: syntax.LString, Str: `dog`}}
	s.evalShow(&syntax.Expr{Kind: syntax.EShow, Selector: sel, Body: body})

	seq := values.NewContentSeq([]values.Node{values.NewTxt(`cat`)})
	out, err := s.Rules.Apply(seq, s.matcher())
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Nodes) != 1 || out.Nodes[0].Text != `dog` {
		t.Errorf(`got %+v, want a single "dog" text node`, out.Nodes)
	}
}
