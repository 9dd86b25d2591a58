package style

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/values"
)

func TestStylesSetMergesLeftBiased(t *testing.T) {
	s := NewStyles()
	first := values.NewArguments(nil, values.NewDict(1))
	first.Named.Set(`size`, values.WrapInteger(1))
	s.Set(`text`, first)

	second := values.NewArguments(nil, values.NewDict(1))
	second.Named.Set(`weight`, values.WrapInteger(2))
	s.Set(`text`, second)

	got := s.Get(`text`)
	if v, ok := got.Named.Get(`size`); !ok || v.(values.Integer).Int() != 1 {
		t.Errorf(`size = %v, %v, want 1, true (earlier set survives)`, v, ok)
	}
	if v, ok := got.Named.Get(`weight`); !ok || v.(values.Integer).Int() != 2 {
		t.Errorf(`weight = %v, %v, want 2, true (later set adds)`, v, ok)
	}
}

func TestStylesSetNewValueWins(t *testing.T) {
	s := NewStyles()
	d1 := values.NewDict(1)
	d1.Set(`size`, values.WrapInteger(1))
	s.Set(`text`, values.NewArguments(nil, d1))

	d2 := values.NewDict(1)
	d2.Set(`size`, values.WrapInteger(9))
	s.Set(`text`, values.NewArguments(nil, d2))

	got := s.Get(`text`)
	if v, _ := got.Named.Get(`size`); v.(values.Integer).Int() != 9 {
		t.Errorf(`size = %v, want 9 (later set overrides on conflicting keys)`, v)
	}
}

func TestStylesGetUnknownNameIsEmpty(t *testing.T) {
	s := NewStyles()
	got := s.Get(`never-set`)
	if len(got.Positional) != 0 || got.Named.Len() != 0 {
		t.Errorf(`Get on unknown name = %v, want empty Arguments`, got)
	}
}

func TestStylesSnapshotRestore(t *testing.T) {
	s := NewStyles()
	d := values.NewDict(1)
	d.Set(`size`, values.WrapInteger(1))
	s.Set(`text`, values.NewArguments(nil, d))

	snap := s.Snapshot()

	d2 := values.NewDict(1)
	d2.Set(`size`, values.WrapInteger(2))
	s.Set(`text`, values.NewArguments(nil, d2))

	s.Restore(snap)
	got := s.Get(`text`)
	if v, _ := got.Named.Get(`size`); v.(values.Integer).Int() != 1 {
		t.Errorf(`size after Restore = %v, want 1`, v)
	}
}

func stringSelectorMatcher(text string) Matcher {
	return func(sel values.Selector, n values.Node) bool {
		return sel.SelKind == values.SelString && n.NKind == values.NodeTxt && n.Text == text
	}
}

func upperTransform(n values.Node) (values.ContentSeq, error) {
	return values.NewContentSeq([]values.Node{values.NewTxt(`DOG`)}), nil
}

func TestRulesApplyRewritesMatchedNodes(t *testing.T) {
	r := NewRules()
	r.Push(Rule{Selector: values.NewStringSelector(`cat`), Apply: upperTransform})

	seq := values.NewContentSeq([]values.Node{values.NewTxt(`cat`), values.NewTxt(`bird`)})
	out, err := r.Apply(seq, stringSelectorMatcher(`cat`))
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Nodes) != 2 || out.Nodes[0].Text != `DOG` || out.Nodes[1].Text != `bird` {
		t.Errorf(`got %+v, want [DOG, bird]`, out.Nodes)
	}
}

func TestRulesApplyNewestFirst(t *testing.T) {
	r := NewRules()
	r.Push(Rule{Selector: values.NewStringSelector(`cat`), Apply: func(values.Node) (values.ContentSeq, error) {
		return values.NewContentSeq([]values.Node{values.NewTxt(`dog`)}), nil
	}})
	r.Push(Rule{Selector: values.NewStringSelector(`cat`), Apply: upperTransform})

	seq := values.NewContentSeq([]values.Node{values.NewTxt(`cat`)})
	match := func(sel values.Selector, n values.Node) bool {
		return sel.SelKind == values.SelString && n.NKind == values.NodeTxt && n.Text == `cat`
	}
	out, err := r.Apply(seq, match)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Nodes) != 1 || out.Nodes[0].Text != `DOG` {
		t.Errorf(`got %+v, want the most-recently pushed rule to win first`, out.Nodes)
	}
}

func TestRulesSnapshotRestore(t *testing.T) {
	r := NewRules()
	r.Push(Rule{Selector: values.NewStringSelector(`a`), Apply: upperTransform})
	snap := r.Snapshot()
	r.Push(Rule{Selector: values.NewStringSelector(`b`), Apply: upperTransform})
	r.Restore(snap)
	if len(r.list) != 1 {
		t.Errorf(`len(list) after Restore = %d, want 1`, len(r.list))
	}
}

func TestResolveSetBodyDefaultIsPassthrough(t *testing.T) {
	content := values.NewContentSeq([]values.Node{values.NewTxt(`x`)})
	got := ResolveSetBody(values.WrapString(`ignored`), content, nil)
	if len(got.Nodes) != 1 || got.Nodes[0].Text != `x` {
		t.Errorf(`got %+v, want the content unchanged`, got.Nodes)
	}
}

func TestResolveSetBodyHookOverrides(t *testing.T) {
	content := values.NewContentSeq([]values.Node{values.NewTxt(`x`)})
	hook := func(body values.Value, c values.ContentSeq) values.ContentSeq {
		return values.NewContentSeq([]values.Node{values.NewTxt(`overridden`)})
	}
	got := ResolveSetBody(values.WrapString(`ignored`), content, hook)
	if len(got.Nodes) != 1 || got.Nodes[0].Text != `overridden` {
		t.Errorf(`got %+v, want the hook's replacement`, got.Nodes)
	}
}
