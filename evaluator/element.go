package evaluator

import (
	"strings"

	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/method"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// makeElement resolves name against the environment and calls it as an
// element constructor, merging any `set` defaults registered for it, and
// unwraps the single resulting content node. Used both by structural markup
// mapping (content.Deps.MakeElement) and directly wherever evalExpr needs
// the same "call the element, take the one node" behavior.
func (s *State) makeElement(name string, fields values.Dict) (values.Node, error) {
	v, ok := s.Env.Lookup(name)
	if !ok {
		return values.Node{}, errors.New(errors.EvalUnknownFunction, s.here(), issue.H{`name`: name})
	}
	fn, ok := v.(values.Function)
	if !ok {
		return values.Node{}, errors.New(errors.EvalTypeMismatch, s.here(), issue.H{`detail`: name + ` is not a function`})
	}
	args := values.NewArguments(nil, fields)
	if elName, isElt := fn.IsElement(); isElt {
		args = s.Styles.Get(elName).Concat(args)
	}
	return s.singleNode(fn.Call(args)), nil
}

// singleNode unwraps a Value produced by an element constructor into one
// content Node, wrapping multi-node results under the synthetic "_seq"
// element the content package itself uses for the same purpose.
func (s *State) singleNode(v values.Value) values.Node {
	seq := s.valToContent(v)
	if len(seq.Nodes) == 1 {
		return seq.Nodes[0]
	}
	return values.NewElt(`_seq`, nil, oneField(`nodes`, values.WrapContent(seq)))
}

func oneField(key string, v values.Value) values.Dict {
	d := values.NewDict(1)
	d.Set(key, v)
	return d
}

// valToContent implements spec.md §4.5's total value-to-content coercion.
func (s *State) valToContent(v values.Value) values.ContentSeq {
	switch tv := v.(type) {
	case values.Content:
		return tv.Seq
	case values.String:
		return values.NewContentSeq([]values.Node{values.NewTxt(tv.Go())})
	case values.NoneValue, values.AutoValue:
		return values.EmptyContent
	case values.Array:
		seq := values.EmptyContent
		for _, el := range tv.Elements() {
			seq = seq.Concat(s.valToContent(el))
		}
		return seq
	case values.Arguments:
		seq := values.EmptyContent
		for _, el := range tv.Positional {
			seq = seq.Concat(s.valToContent(el))
		}
		tv.Named.EachPair(func(_ string, nv values.Value) {
			seq = seq.Concat(s.valToContent(nv))
		})
		return seq
	default:
		var b strings.Builder
		v.ToString(&b)
		return values.NewContentSeq([]values.Node{values.NewTxt(b.String())})
	}
}

// joinVals implements spec.md §4.2/§9's block-statement accumulation rule.
func (s *State) joinVals(a, b values.Value) values.Value {
	if _, ok := a.(values.NoneValue); ok {
		return b
	}
	if _, ok := b.(values.NoneValue); ok {
		return a
	}
	_, aContent := a.(values.Content)
	_, bContent := b.(values.Content)
	if aContent || bContent {
		return values.WrapContent(s.valToContent(a).Concat(s.valToContent(b)))
	}
	v, ok := values.MaybePlus(a, b)
	if !ok {
		s.typeMismatch(`cannot join these two values`)
	}
	return v
}

// toSelector converts a value used as a show-rule selector into the
// style/values selector grammar.
func (s *State) toSelector(v values.Value) values.Selector {
	switch sv := v.(type) {
	case values.Selector:
		return sv
	case values.Function:
		name, ok := sv.IsElement()
		if !ok {
			s.typeMismatch(`selector: function is not an element`)
		}
		return values.NewElementSelector(name, values.EmptyDict)
	case values.String:
		return values.NewStringSelector(sv.Go())
	case values.Regex:
		return values.NewRegexSelector(sv)
	case values.Label:
		return values.NewLabelSelector(string(sv))
	case values.Symbol:
		return values.NewStringSelector(sv.Text)
	}
	s.typeMismatch(`cannot convert value to a selector`)
	return values.Selector{}
}

// counterGet/counterSet back method.Deps' Counter accessors: a Counter
// value is a handle into this map, not a container for its own state.
func (s *State) counterGet(key string) values.Value {
	if v, ok := s.Counters[key]; ok {
		return v
	}
	return values.WrapInteger(0)
}

func (s *State) counterSet(key string, v values.Value) {
	s.Counters[key] = v
}

// fieldAccess resolves `target.field`: a method first (the receiver's
// mutating methods need targetExpr to write back through the lvalue
// protocol), then the per-kind fallback fields spec.md §4.2 names.
func (s *State) fieldAccess(targetExpr *syntax.Expr, v values.Value, field string) values.Value {
	deps := method.Deps{
		UpdateVal:    func(nv values.Value) { s.updateExpression(targetExpr, nv) },
		CounterGet:   s.counterGet,
		CounterSet:   s.counterSet,
		CallFunction: s.callFunctionValue,
	}
	if fn, ok := method.Get(deps, v, field); ok {
		return fn
	}
	switch tv := v.(type) {
	case values.Symbol:
		variant, ok := tv.SelectVariant(field)
		if !ok {
			s.fail(errors.EvalUnknownFunction, issue.H{`name`: field})
		}
		return values.NewSymbol(variant.Text, tv.IsAccent, tv.Variants)
	case values.Module:
		val, ok := tv.Exports.Get(field)
		if !ok {
			s.fail(errors.EvalUnknownVariable, issue.H{`name`: field})
		}
		return val
	case values.Function:
		if tv.Lookup != nil {
			if val, ok := tv.Lookup(field); ok {
				return val
			}
		}
		s.fail(errors.EvalUnknownVariable, issue.H{`name`: field})
	case values.Dict:
		val, ok := tv.Get(field)
		if !ok {
			s.fail(errors.EvalUnknownVariable, issue.H{`name`: field})
		}
		return val
	}
	s.typeMismatch(field + ` is not a field of this value`)
	return nil
}

// callFunctionValue invokes fn, used both as method.Deps.CallFunction and
// as the function-call expression's dispatch target.
func (s *State) callFunctionValue(fn values.Function, args values.Arguments) values.Value {
	return fn.Call(args)
}
