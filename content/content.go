// Package content implements the markup-to-content walk: pContent/pTxt/pElt
// over the Markup stream, smart-quote rewriting, and adjacent-text
// collapsing. It does not evaluate expressions or apply show rules itself —
// those are supplied as callbacks so this package stays a leaf depending
// only on syntax and values, avoiding an import cycle back onto the
// evaluator that drives it.
package content

import (
	"strings"

	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// Deps are the callbacks the evaluator supplies so this package can run
// without importing it back.
type Deps struct {
	// EvalExpr evaluates an embedded expression to a value.
	EvalExpr func(*syntax.Expr) (values.Value, error)
	// ValToContent coerces any Value into a ContentSeq (the value-to-content
	// coercion).
	ValToContent func(values.Value) values.ContentSeq
	// MakeElement constructs an element content node and the value it
	// participates as when called as a function — used so Code nodes whose
	// value is itself wrapped through the "text" element on collapse share
	// the same path as literal text.
	MakeElement func(name string, fields values.Dict) (values.Node, error)
	// ApplyShowRules rewrites a freshly produced node sequence against the
	// evaluator's currently active rules.
	ApplyShowRules func(values.ContentSeq) (values.ContentSeq, error)
	// MathMode reports whether the evaluator is currently in math mode.
	MathMode func() bool
	// IsShowAll recognizes a selector-less `show` directive (spec.md §4.2's
	// "If no selector" branch of Show): when code is such a directive, it
	// evaluates the body itself and reports ok=true so EvaluateMarkup can
	// consume every remaining sibling node as its content; any other
	// expression reports ok=false and is left for EvalExpr to handle
	// through the normal Code-node path.
	IsShowAll func(code *syntax.Expr) (body values.Value, ok bool, err error)
	// ApplyShowAllBody resolves a selector-less show: applies body as a
	// function over rest, or substitutes body's own value-to-content
	// coercion in place of rest when body is not a function.
	ApplyShowAllBody func(body values.Value, rest values.ContentSeq) (values.ContentSeq, error)
	// EvaluateEquation evaluates an Equation's children in math mode,
	// scoped so math/sym exports are visible and the mode flag is restored
	// on return.
	EvaluateEquation func(children []syntax.Markup, display bool) (values.ContentSeq, error)
	// SnapshotRules and RestoreRules bracket every EvaluateMarkup entry
	// (spec.md §3.5's "showRules are saved at pInnerContents entry and
	// restored on exit"), so a show rule registered inside one nested body
	// (an emph child, a list item, an equation, ...) never leaks into
	// sibling content evaluated after that body returns.
	SnapshotRules func() interface{}
	RestoreRules  func(interface{})
}

// EvaluateMarkup walks ms and returns the resulting content sequence. A
// selector-less `show` Code node is special-cased here rather than in pElt:
// it is the only construct that needs the remaining sibling list, which only
// this top-level walk has in hand.
func EvaluateMarkup(ms []syntax.Markup, d Deps) (values.ContentSeq, error) {
	if d.SnapshotRules != nil {
		snap := d.SnapshotRules()
		defer d.RestoreRules(snap)
	}
	var nodes []values.Node
	i := 0
	for i < len(ms) {
		if ms[i].Kind == syntax.MCode && d.IsShowAll != nil {
			body, ok, err := d.IsShowAll(ms[i].Code)
			if err != nil {
				return values.ContentSeq{}, err
			}
			if ok {
				rest, err := EvaluateMarkup(ms[i+1:], d)
				if err != nil {
					return values.ContentSeq{}, err
				}
				replaced, err := d.ApplyShowAllBody(body, rest)
				if err != nil {
					return values.ContentSeq{}, err
				}
				nodes = append(nodes, replaced.Nodes...)
				i = len(ms)
				break
			}
		}
		seq, consumed, err := pContent(ms, i, d)
		if err != nil {
			return values.ContentSeq{}, err
		}
		nodes = append(nodes, seq.Nodes...)
		i += consumed
	}
	return collapseAdjacentText(values.NewContentSeq(nodes), d)
}

func isTextLike(k syntax.MarkupKind) bool {
	switch k {
	case syntax.MText, syntax.MSpace, syntax.MSoftBreak, syntax.MNbsp, syntax.MShy,
		syntax.MEmDash, syntax.MEnDash, syntax.MEllipsis, syntax.MQuote:
		return true
	}
	return false
}

// pContent consumes one content-producing unit starting at i, returning the
// (possibly multi-node, show-rule-rewritten) result and how many Markup
// entries were consumed.
func pContent(ms []syntax.Markup, i int, d Deps) (values.ContentSeq, int, error) {
	if isTextLike(ms[i].Kind) {
		seq, n := pTxt(ms, i, d)
		rewritten, err := d.ApplyShowRules(seq)
		return rewritten, n, err
	}
	node, consumed, err := pElt(ms, i, d)
	if err != nil {
		return values.ContentSeq{}, 0, err
	}
	rewritten, err := d.ApplyShowRules(values.NewContentSeq([]values.Node{node}))
	return rewritten, consumed, err
}

// pTxt consumes a maximal run of text-like atoms (one, in math mode),
// applies smart-quote rewriting, and renders the literal text.
func pTxt(ms []syntax.Markup, i int, d Deps) (values.ContentSeq, int) {
	start := i
	if d.MathMode() {
		i++
	} else {
		for i < len(ms) && isTextLike(ms[i].Kind) {
			i++
		}
	}
	run := ms[start:i]
	text := renderTextRun(smartQuotes(run))
	return values.NewContentSeq([]values.Node{values.NewTxt(text)}), i - start
}

// quoteAtom is the intermediate representation smart-quote rewriting
// consumes and produces: either a pass-through Markup atom or a resolved
// literal string.
type quoteAtom struct {
	markup  *syntax.Markup
	literal string
	resolved bool
}

var noBreakAfterQuote = map[rune]bool{')': true, '.': true, ',': true, ';': true, ':': true, '?': true, '!': true, ']': true}

// smartQuotes applies the left-to-right single-pass smart-quote rewrite
// rules to a run of text-like atoms.
func smartQuotes(run []syntax.Markup) []quoteAtom {
	out := make([]quoteAtom, len(run))
	for i := range run {
		m := run[i]
		if m.Kind != syntax.MQuote {
			out[i] = quoteAtom{markup: &run[i]}
			continue
		}
		prevSpaceLike := i > 0 && isSpaceLike(run[i-1].Kind)
		nextSpaceLike := i+1 < len(run) && isSpaceLike(run[i+1].Kind)
		prevText := i > 0 && run[i-1].Kind == syntax.MText
		nextText := i+1 < len(run) && run[i+1].Kind == syntax.MText

		var resolved string
		switch {
		case m.Char == '"' && (prevSpaceLike || nextSpaceLike):
			resolved = "”"
		case m.Char == '\'' && (prevSpaceLike || nextSpaceLike):
			resolved = "’"
		case m.Char == '\'' && prevText && nextText:
			resolved = "’"
		case m.Char == '"' && nextText && !startsWithClosingPunct(run[i+1].Text):
			resolved = "“"
		case m.Char == '\'' && nextText && !startsWithClosingPunct(run[i+1].Text):
			resolved = "‘"
		case m.Char == '"':
			resolved = "”"
		default:
			resolved = "’"
		}
		out[i] = quoteAtom{literal: resolved, resolved: true}
	}
	return out
}

func startsWithClosingPunct(t string) bool {
	if t == `` {
		return false
	}
	r := []rune(t)[0]
	return noBreakAfterQuote[r]
}

func isSpaceLike(k syntax.MarkupKind) bool {
	return k == syntax.MSpace || k == syntax.MSoftBreak
}

func renderTextRun(atoms []quoteAtom) string {
	var b strings.Builder
	for _, a := range atoms {
		if a.resolved {
			b.WriteString(a.literal)
			continue
		}
		switch a.markup.Kind {
		case syntax.MText:
			b.WriteString(a.markup.Text)
		case syntax.MSpace:
			b.WriteString(` `)
		case syntax.MSoftBreak:
			b.WriteString("\n")
		case syntax.MNbsp:
			b.WriteString(" ")
		case syntax.MShy:
			b.WriteString("­")
		case syntax.MEmDash:
			b.WriteString("—")
		case syntax.MEnDash:
			b.WriteString("–")
		case syntax.MEllipsis:
			b.WriteString("…")
		}
	}
	return b.String()
}

// pElt consumes one non-text markup node starting at i and produces its
// content mapping, reporting how many Markup entries were consumed. List
// items (Bullet/Enum/Desc) greedily absorb their siblings, skipping breaks
// between consecutive items of the same kind; every other kind consumes
// exactly one entry.
func pElt(ms []syntax.Markup, i int, d Deps) (values.Node, int, error) {
	switch ms[i].Kind {
	case syntax.MBulletListItem:
		return pBulletList(ms, i, d)
	case syntax.MEnumListItem:
		return pEnumList(ms, i, d)
	case syntax.MDescListItem:
		return pDescList(ms, i, d)
	}
	node, err := pEltSingle(ms[i], d)
	return node, 1, err
}

func isBreakKind(k syntax.MarkupKind) bool {
	return k == syntax.MParBreak || k == syntax.MHardBreak
}

// pBulletList absorbs a run of MBulletListItem nodes, skipping break atoms
// between consecutive items, per spec.md §4.1's "consume breaks, then
// greedily consume further BulletListItems".
func pBulletList(ms []syntax.Markup, i int, d Deps) (values.Node, int, error) {
	var items []values.Value
	consumed := 0
	j := i
	for j < len(ms) && ms[j].Kind == syntax.MBulletListItem {
		body, err := EvaluateMarkup(ms[j].Children, d)
		if err != nil {
			return values.Node{}, 0, err
		}
		items = append(items, values.WrapContent(body))
		j++
		consumed = j - i
		k := j
		for k < len(ms) && isBreakKind(ms[k].Kind) {
			k++
		}
		if k < len(ms) && ms[k].Kind == syntax.MBulletListItem {
			j = k
		} else {
			break
		}
	}
	node, err := elt(d, `list`, fieldsOf(`items`, values.WrapArray(items)))
	return node, consumed, err
}

// pEnumList absorbs a run of MEnumListItem nodes the same way pBulletList
// does, additionally carrying the first item's explicit start number, if
// any, as a named `start` field.
func pEnumList(ms []syntax.Markup, i int, d Deps) (values.Node, int, error) {
	var items []values.Value
	var start *int64
	consumed := 0
	j := i
	first := true
	for j < len(ms) && ms[j].Kind == syntax.MEnumListItem {
		if first && ms[j].StartNum != nil {
			start = ms[j].StartNum
		}
		first = false
		body, err := EvaluateMarkup(ms[j].Children, d)
		if err != nil {
			return values.Node{}, 0, err
		}
		items = append(items, values.WrapContent(body))
		j++
		consumed = j - i
		k := j
		for k < len(ms) && isBreakKind(ms[k].Kind) {
			k++
		}
		if k < len(ms) && ms[k].Kind == syntax.MEnumListItem {
			j = k
		} else {
			break
		}
	}
	fields := fieldsOf(`items`, values.WrapArray(items))
	if start != nil {
		fields.Set(`start`, values.WrapInteger(*start))
	}
	node, err := elt(d, `enum`, fields)
	return node, consumed, err
}

// pDescList absorbs a run of MDescListItem nodes, pairing each item's term
// and description as a TermItem.
func pDescList(ms []syntax.Markup, i int, d Deps) (values.Node, int, error) {
	var items []values.Value
	consumed := 0
	j := i
	for j < len(ms) && ms[j].Kind == syntax.MDescListItem {
		term, err := EvaluateMarkup(oneMarkup(ms[j].Term), d)
		if err != nil {
			return values.Node{}, 0, err
		}
		descr, err := EvaluateMarkup(oneMarkup(ms[j].Descr), d)
		if err != nil {
			return values.Node{}, 0, err
		}
		items = append(items, values.NewTermItem(values.WrapContent(term), values.WrapContent(descr)))
		j++
		consumed = j - i
		k := j
		for k < len(ms) && isBreakKind(ms[k].Kind) {
			k++
		}
		if k < len(ms) && ms[k].Kind == syntax.MDescListItem {
			j = k
		} else {
			break
		}
	}
	node, err := elt(d, `terms`, fieldsOf(`items`, values.WrapArray(items)))
	return node, consumed, err
}

// pEltSingle produces the content mapping for every markup kind that
// consumes exactly one entry.
func pEltSingle(m syntax.Markup, d Deps) (values.Node, error) {
	switch m.Kind {
	case syntax.MParBreak:
		return elt(d, `parbreak`, values.EmptyDict)
	case syntax.MHardBreak:
		return elt(d, `linebreak`, values.EmptyDict)
	case syntax.MComment:
		return values.NewTxt(``), nil
	case syntax.MCode:
		v, err := d.EvalExpr(m.Code)
		if err != nil {
			return values.Node{}, err
		}
		seq := d.ValToContent(v)
		if len(seq.Nodes) == 1 {
			return seq.Nodes[0], nil
		}
		return values.NewElt(`_seq`, nil, fieldsOf(`nodes`, values.WrapContent(seq))), nil
	case syntax.MEmph:
		body, err := EvaluateMarkup(m.Children, d)
		if err != nil {
			return values.Node{}, err
		}
		return elt(d, `emph`, fieldsOf(`body`, values.WrapContent(body)))
	case syntax.MStrong:
		body, err := EvaluateMarkup(m.Children, d)
		if err != nil {
			return values.Node{}, err
		}
		return elt(d, `strong`, fieldsOf(`body`, values.WrapContent(body)))
	case syntax.MRawBlock:
		lang := values.Value(values.Auto)
		if m.Lang != `` {
			lang = values.WrapString(m.Lang)
		}
		return elt(d, `raw`, fieldsOf(`text`, values.WrapString(m.Text), `block`, values.True, `lang`, lang))
	case syntax.MRawInline:
		return elt(d, `raw`, fieldsOf(`text`, values.WrapString(m.Text), `block`, values.False, `lang`, values.Auto))
	case syntax.MHeading:
		body, err := EvaluateMarkup(m.Children, d)
		if err != nil {
			return values.Node{}, err
		}
		return elt(d, `heading`, fieldsOf(`body`, values.WrapContent(body), `level`, values.WrapInteger(int64(m.Level))))
	case syntax.MFrac:
		num, err := EvaluateMarkup(oneMarkup(m.Num), d)
		if err != nil {
			return values.Node{}, err
		}
		den, err := EvaluateMarkup(oneMarkup(m.Den), d)
		if err != nil {
			return values.Node{}, err
		}
		return elt(d, `frac`, fieldsOf(`num`, values.WrapContent(num), `den`, values.WrapContent(den)))
	case syntax.MAttach:
		base, err := EvaluateMarkup(oneMarkup(m.Base), d)
		if err != nil {
			return values.Node{}, err
		}
		b := values.Value(values.None)
		if m.Bottom != nil {
			seq, err := EvaluateMarkup(oneMarkup(m.Bottom), d)
			if err != nil {
				return values.Node{}, err
			}
			b = values.WrapContent(seq)
		}
		top := values.Value(values.None)
		if m.Top != nil {
			seq, err := EvaluateMarkup(oneMarkup(m.Top), d)
			if err != nil {
				return values.Node{}, err
			}
			top = values.WrapContent(seq)
		}
		return elt(d, `attach`, fieldsOf(`base`, values.WrapContent(base), `b`, b, `t`, top))
	case syntax.MGroup:
		body, err := EvaluateMarkup(m.Children, d)
		if err != nil {
			return values.Node{}, err
		}
		if m.Open != nil && m.Close != nil {
			wrapped := values.NewContentSeq([]values.Node{
				values.NewTxt(string(*m.Open)),
			})
			wrapped = wrapped.Concat(body)
			wrapped = wrapped.Concat(values.NewContentSeq([]values.Node{values.NewTxt(string(*m.Close))}))
			return values.NewElt(`math.lr`, nil, fieldsOf(`body`, values.WrapContent(wrapped))), nil
		}
		prefix := ``
		if m.Open != nil {
			prefix = string(*m.Open)
		}
		suffix := ``
		if m.Close != nil {
			suffix = string(*m.Close)
		}
		wrapped := values.NewContentSeq([]values.Node{values.NewTxt(prefix)})
		wrapped = wrapped.Concat(body)
		wrapped = wrapped.Concat(values.NewContentSeq([]values.Node{values.NewTxt(suffix)}))
		return values.NewElt(`_seq`, nil, fieldsOf(`nodes`, values.WrapContent(wrapped))), nil
	case syntax.MAlignPoint:
		return elt(d, `alignpoint`, values.EmptyDict)
	case syntax.MRef:
		supp := values.Value(values.None)
		if m.Supplement != nil {
			v, err := d.EvalExpr(m.Supplement)
			if err != nil {
				return values.Node{}, err
			}
			supp = v
		}
		label := m.Ident
		return elt(d, `ref`, fieldsOf(`label`, values.WrapLabel(label), `supplement`, supp))
	case syntax.MUrl:
		return elt(d, `link`, fieldsOf(`target`, values.WrapString(m.Text), `body`, values.WrapContent(values.NewContentSeq([]values.Node{values.NewTxt(m.Text)}))))
	case syntax.MEquation:
		body, err := d.EvaluateEquation(m.Children, m.Display)
		if err != nil {
			return values.Node{}, err
		}
		return elt(d, `equation`, fieldsOf(
			`body`, values.WrapContent(body),
			`block`, values.WrapBoolean(m.Display),
			`numbering`, values.None,
		))
	}
	return values.NewTxt(``), nil
}

func oneMarkup(m *syntax.Markup) []syntax.Markup {
	if m == nil {
		return nil
	}
	return []syntax.Markup{*m}
}

func fieldsOf(kv ...interface{}) values.Dict {
	d := values.NewDict(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		d.Set(kv[i].(string), kv[i+1].(values.Value))
	}
	return d
}

func elt(d Deps, name string, fields values.Dict) (values.Node, error) {
	return d.MakeElement(name, fields)
}

// collapseAdjacentText folds a produced sequence: contiguous non-empty Txt
// nodes are each passed through the "text" element constructor in order
// (so their own show rules apply); other nodes pass through unchanged.
// Empty Txt("") nodes are elided.
func collapseAdjacentText(seq values.ContentSeq, d Deps) (values.ContentSeq, error) {
	var out []values.Node
	for _, n := range seq.Nodes {
		if n.IsEmptyTxt() {
			continue
		}
		if n.NKind == values.NodeTxt {
			textNode, err := d.MakeElement(`text`, fieldsOf(`body`, values.WrapString(n.Text)))
			if err != nil {
				return values.ContentSeq{}, err
			}
			out = append(out, textNode)
			continue
		}
		out = append(out, n)
	}
	return values.NewContentSeq(out), nil
}
