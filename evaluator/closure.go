package evaluator

import (
	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/env"
	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// toFunction implements spec.md §4.6: snapshot the defining scope, and
// produce a Function whose Call swaps the live environment for a fresh copy
// of that snapshot (plus a function frame) for the duration of each call,
// restoring the caller's environment when the call returns.
func (s *State) toFunction(name *string, params []syntax.Param, body *syntax.Expr) values.Function {
	snap := s.Env.Snapshot()
	label := ``
	if name != nil {
		label = *name
	}
	var fn values.Function
	call := func(args values.Arguments) values.Value {
		caller := s.Env
		s.Env = snap.Snapshot()
		s.Env.PushFunction()
		if name != nil && *name != `` {
			s.Env.Bind(*name, fn)
		}
		s.bindParams(label, params, args, snap)
		prevFlow := s.Flow
		s.Flow = flowNormal
		result := s.evalExpr(body)
		s.Flow = prevFlow
		s.Env = caller
		return result
	}
	fn = values.NewFunction(nil, snap.AsLookup(), call, label)
	return fn
}

// bindParams implements the three-pass parameter binding of spec.md §4.6
// step 4: left params front-to-front, right params (after a sink) back-to-
// back in reverse source order, with the sink collecting whatever remains.
func (s *State) bindParams(fnLabel string, params []syntax.Param, args values.Arguments, snap *env.Stack) {
	sinkIdx := -1
	for i, p := range params {
		if p.Kind == syntax.ParamSink {
			sinkIdx = i
			break
		}
	}
	pos := append([]values.Value{}, args.Positional...)
	named := args.Named.Copy()
	if sinkIdx < 0 {
		for _, p := range params {
			s.bindParam(fnLabel, p, &pos, named, snap, popFront)
		}
		return
	}
	left := params[:sinkIdx]
	right := params[sinkIdx+1:]
	for _, p := range left {
		s.bindParam(fnLabel, p, &pos, named, snap, popFront)
	}
	for i := len(right) - 1; i >= 0; i-- {
		s.bindParam(fnLabel, right[i], &pos, named, snap, popBack)
	}
	sink := params[sinkIdx]
	if sink.Ident != `` {
		s.Env.Bind(sink.Ident, values.NewArguments(pos, named))
	}
}

func (s *State) bindParam(
	fnLabel string,
	p syntax.Param,
	pos *[]values.Value,
	named values.Dict,
	snap *env.Stack,
	pop func(*[]values.Value) (values.Value, bool),
) {
	switch p.Kind {
	case syntax.ParamNormal:
		v, ok := pop(pos)
		if !ok {
			panic(errors.NewArgumentsError(fnLabel, `missing argument: `+p.Ident))
		}
		s.Env.Bind(p.Ident, v)
	case syntax.ParamDefault:
		if v, ok := named.Remove(p.Ident); ok {
			s.Env.Bind(p.Ident, v)
			return
		}
		caller := s.Env
		s.Env = snap.Snapshot()
		v := s.evalExpr(p.Def)
		s.Env = caller
		s.Env.Bind(p.Ident, v)
	case syntax.ParamDestructuring:
		v, ok := pop(pos)
		if !ok {
			panic(errors.NewArgumentsError(fnLabel, `missing argument for destructuring parameter`))
		}
		s.destructureBind(p.Parts, v)
	case syntax.ParamSkip:
	}
}

func popFront(pos *[]values.Value) (values.Value, bool) {
	if len(*pos) == 0 {
		return nil, false
	}
	v := (*pos)[0]
	*pos = (*pos)[1:]
	return v, true
}

func popBack(pos *[]values.Value) (values.Value, bool) {
	n := len(*pos)
	if n == 0 {
		return nil, false
	}
	v := (*pos)[n-1]
	*pos = (*pos)[:n-1]
	return v, true
}

// bindValue binds a Let's left-hand side: a single identifier, or a
// destructuring pattern.
func (s *State) bindValue(b *syntax.Bind, v values.Value) {
	switch b.Kind {
	case syntax.BindBasic:
		if b.Ident != `` {
			s.Env.Bind(b.Ident, v)
		}
	case syntax.BindDestructuring:
		s.destructureBind(b.Parts, v)
	}
}

// destructureBind implements the destructuring helper shared by Let and
// DestructuringParam: an optional sink (`..rest`) splits the pattern into a
// left run bound from the front and a right run bound from the back, with
// the sink absorbing whatever remains as an Array.
func (s *State) destructureBind(parts []syntax.DestructPart, v values.Value) {
	arr, ok := v.(values.Array)
	if !ok {
		s.typeMismatch(`destructuring requires an array`)
	}
	elems := arr.Elements()
	sinkIdx := -1
	for i, p := range parts {
		if p.Kind == syntax.DestructSink {
			sinkIdx = i
			break
		}
	}
	if sinkIdx < 0 {
		if len(parts) != len(elems) {
			s.fail(errors.EvalArgumentsError, issue.H{`name`: `destructure`, `message`: `element count does not match pattern`})
		}
		for i, p := range parts {
			s.bindDestructPart(p, elems[i])
		}
		return
	}
	left := parts[:sinkIdx]
	right := parts[sinkIdx+1:]
	if len(left)+len(right) > len(elems) {
		s.fail(errors.EvalArgumentsError, issue.H{`name`: `destructure`, `message`: `not enough elements to destructure`})
	}
	for i, p := range left {
		s.bindDestructPart(p, elems[i])
	}
	for i, p := range right {
		s.bindDestructPart(p, elems[len(elems)-len(right)+i])
	}
	if parts[sinkIdx].Name != `` {
		mid := elems[len(left) : len(elems)-len(right)]
		s.Env.Bind(parts[sinkIdx].Name, values.WrapArray(mid))
	}
}

func (s *State) bindDestructPart(p syntax.DestructPart, v values.Value) {
	if p.Kind == syntax.DestructIdent {
		s.Env.Bind(p.Name, v)
	}
}
