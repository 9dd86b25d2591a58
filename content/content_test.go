package content

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

func stubDeps() Deps {
	return Deps{
		EvalExpr: func(e *syntax.Expr) (values.Value, error) {
			return values.None, nil
		},
		ValToContent: func(v values.Value) values.ContentSeq {
			if s, ok := v.(values.String); ok {
				return values.NewContentSeq([]values.Node{values.NewTxt(s.Go())})
			}
			return values.EmptyContent
		},
		MakeElement: func(name string, fields values.Dict) (values.Node, error) {
			return values.NewElt(name, nil, fields), nil
		},
		ApplyShowRules: func(seq values.ContentSeq) (values.ContentSeq, error) {
			return seq, nil
		},
		MathMode: func() bool { return false },
		IsShowAll: func(code *syntax.Expr) (values.Value, bool, error) {
			return nil, false, nil
		},
		ApplyShowAllBody: func(body values.Value, rest values.ContentSeq) (values.ContentSeq, error) {
			return rest, nil
		},
		EvaluateEquation: func(children []syntax.Markup, display bool) (values.ContentSeq, error) {
			return EvaluateMarkup(children, stubDeps())
		},
	}
}

func textMarkup(s string) syntax.Markup {
	return syntax.Markup{Kind: syntax.MText, Text: s}
}

func quoteMarkup(c rune) syntax.Markup { return syntax.Markup{Kind: syntax.MQuote, Char: c} }

// An emph markup node yields a single Elt("emph") whose body is the
// collapsed text element for "hello".
func TestEmphWrapsBody(t *testing.T) {
	ms := []syntax.Markup{{Kind: syntax.MEmph, Children: []syntax.Markup{textMarkup(`hello`)}}}
	seq, err := EvaluateMarkup(ms, stubDeps())
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Nodes) != 1 || seq.Nodes[0].Name != `emph` {
		t.Fatalf(`got %+v, want a single emph node`, seq.Nodes)
	}
	body, ok := seq.Nodes[0].Fields.Get(`body`)
	if !ok {
		t.Fatal(`emph node missing body field`)
	}
	content := body.(values.Content)
	if len(content.Seq.Nodes) != 1 || content.Seq.Nodes[0].Name != `text` {
		t.Errorf(`body = %+v, want a single text element wrapping "hello"`, content.Seq.Nodes)
	}
}

// Plain text runs collapse through the "text" element constructor.
func TestPlainTextCollapsesThroughTextElement(t *testing.T) {
	ms := []syntax.Markup{textMarkup(`hi`)}
	seq, err := EvaluateMarkup(ms, stubDeps())
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Nodes) != 1 || seq.Nodes[0].Name != `text` {
		t.Fatalf(`got %+v, want a single text element`, seq.Nodes)
	}
	body, _ := seq.Nodes[0].Fields.Get(`body`)
	if body.(values.String).Go() != `hi` {
		t.Errorf(`body = %v, want "hi"`, body)
	}
}

// A contraction apostrophe (text on both sides, no surrounding space)
// smart-quotes to a right single quotation mark.
func TestSmartQuotesRewriteContraction(t *testing.T) {
	ms := []syntax.Markup{
		textMarkup(`it`),
		quoteMarkup('\''),
		textMarkup(`s`),
	}
	seq, err := EvaluateMarkup(ms, stubDeps())
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Nodes) != 1 {
		t.Fatalf(`got %+v, want a single collapsed text element`, seq.Nodes)
	}
	body, _ := seq.Nodes[0].Fields.Get(`body`)
	got := body.(values.String).Go()
	want := "it’s"
	if got != want {
		t.Errorf(`got %q, want %q`, got, want)
	}
}

// Bullet list items absorb across a break atom into a single list node.
func TestBulletListAbsorbsAcrossBreak(t *testing.T) {
	ms := []syntax.Markup{
		{Kind: syntax.MBulletListItem, Children: []syntax.Markup{textMarkup(`a`)}},
		{Kind: syntax.MHardBreak},
		{Kind: syntax.MBulletListItem, Children: []syntax.Markup{textMarkup(`b`)}},
	}
	seq, err := EvaluateMarkup(ms, stubDeps())
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Nodes) != 1 || seq.Nodes[0].Name != `list` {
		t.Fatalf(`got %+v, want a single list node`, seq.Nodes)
	}
	items, _ := seq.Nodes[0].Fields.Get(`items`)
	arr := items.(values.Array)
	if arr.Len() != 2 {
		t.Errorf(`items len = %d, want 2`, arr.Len())
	}
}

// A selector-less show directive folds every remaining sibling through
// its ApplyShowAllBody callback.
func TestSelectorLessShowConsumesRemainingSiblings(t *testing.T) {
	d := stubDeps()
	var sawRest values.ContentSeq
	d.IsShowAll = func(code *syntax.Expr) (values.Value, bool, error) {
		return values.WrapString(`marker`), true, nil
	}
	d.ApplyShowAllBody = func(body values.Value, rest values.ContentSeq) (values.ContentSeq, error) {
		sawRest = rest
		return rest, nil
	}
	ms := []syntax.Markup{
		{Kind: syntax.MCode, Code: &syntax.Expr{}},
		textMarkup(`after`),
	}
	_, err := EvaluateMarkup(ms, d)
	if err != nil {
		t.Fatal(err)
	}
	if len(sawRest.Nodes) != 1 || sawRest.Nodes[0].Name != `text` {
		t.Fatalf(`rest passed to ApplyShowAllBody = %+v, want the trailing text collapsed into a single text element`, sawRest.Nodes)
	}
	if body, _ := sawRest.Nodes[0].Fields.Get(`body`); body.(values.String).Go() != `after` {
		t.Errorf(`rest body = %v, want "after"`, body)
	}
}
