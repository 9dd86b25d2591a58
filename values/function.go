package values

import (
	"io"
)

// Callable is the Go shape every Function value ultimately reduces to. The
// evaluator builds one by closing over a captured environment snapshot and
// a function body; Callable itself carries no dependency on the evaluator
// or env packages, keeping values free of cycles back onto its own callers.
type Callable func(args Arguments) Value

// Function pairs an optional element name with a captured-scope lookup and
// a Callable. Lookup resolves a field access against the function's
// captured scope without values needing to import the environment-stack
// package: the evaluator supplies the closure.
type Function struct {
	ElementName *string
	Lookup      func(name string) (Value, bool)
	Call        Callable
	Name        string // diagnostic name only, not used for dispatch
}

func NewFunction(elementName *string, lookup func(name string) (Value, bool), call Callable, name string) Function {
	return Function{ElementName: elementName, Lookup: lookup, Call: call, Name: name}
}

func (Function) Kind() Kind { return KFunction }
func (f Function) ToString(w io.Writer) {
	io.WriteString(w, `function`)
	if f.Name != `` {
		io.WriteString(w, ` `+f.Name)
	}
}
func (f Function) String() string { return toString(f) }

// IsElement reports whether this function is an element constructor and,
// if so, returns the element name it participates in style merging under.
func (f Function) IsElement() (string, bool) {
	if f.ElementName == nil {
		return ``, false
	}
	return *f.ElementName, true
}

// WithDefaults returns a new Function that merges extra into every call's
// Arguments before invoking the original Call — used by `with(...)`
// partial application. This is a different mechanism from element-style
// merging, which happens at call-site resolution rather than via a
// wrapped Function.
func (f Function) WithDefaults(extra Arguments) Function {
	orig := f.Call
	wrapped := func(args Arguments) Value {
		return orig(extra.Concat(args))
	}
	nf := f
	nf.Call = wrapped
	return nf
}

// Module pairs an identifier with its exported Dict.
type Module struct {
	Ident   string
	Exports Dict
}

func NewModule(ident string, exports Dict) Module {
	return Module{Ident: ident, Exports: exports}
}

func (Module) Kind() Kind { return KModule }
func (m Module) ToString(w io.Writer) {
	io.WriteString(w, `module `)
	io.WriteString(w, m.Ident)
}
func (m Module) String() string { return toString(m) }

// SymbolVariant is one (tagSet, text) pair of a Symbol.
type SymbolVariant struct {
	Tags []string
	Text string
}

// Symbol carries a base text rendering plus a set of tagged variants.
// Variants is kept sorted ascending by tag-set cardinality: the smallest
// matching variant wins, with a stable tie-break on source order.
type Symbol struct {
	Text     string
	IsAccent bool
	Variants []SymbolVariant
}

func NewSymbol(text string, isAccent bool, variants []SymbolVariant) Symbol {
	sorted := make([]SymbolVariant, len(variants))
	copy(sorted, variants)
	// Stable sort by ascending tag-set cardinality; Go's sort.SliceStable
	// would pull in "sort" for a handful of elements, so an insertion sort
	// keeps this file import-light and the ordering is just as stable.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && len(sorted[j].Tags) < len(sorted[j-1].Tags); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return Symbol{Text: text, IsAccent: isAccent, Variants: sorted}
}

func (Symbol) Kind() Kind { return KSymbol }
func (s Symbol) ToString(w io.Writer) { io.WriteString(w, s.Text) }
func (s Symbol) String() string        { return toString(s) }

// SelectVariant picks the smallest-cardinality variant whose tag set
// contains tag.
func (s Symbol) SelectVariant(tag string) (SymbolVariant, bool) {
	for _, v := range s.Variants {
		for _, t := range v.Tags {
			if t == tag {
				return v, true
			}
		}
	}
	return SymbolVariant{}, false
}

// Counter is a handle into the evaluator's counters map, not a container
// for the count itself.
type Counter struct {
	Key string
}

func NewCounter(key string) Counter { return Counter{Key: key} }

func (Counter) Kind() Kind { return KCounter }
func (c Counter) ToString(w io.Writer) {
	io.WriteString(w, `counter(`)
	io.WriteString(w, c.Key)
	io.WriteString(w, `)`)
}
func (c Counter) String() string { return toString(c) }

// TermItem pairs a term with its description, produced by description
// list parsing.
type TermItem struct {
	Term  Value
	Descr Value
}

func NewTermItem(term, descr Value) TermItem { return TermItem{Term: term, Descr: descr} }

func (TermItem) Kind() Kind { return KTermItem }
func (t TermItem) ToString(w io.Writer) {
	t.Term.ToString(w)
	io.WriteString(w, `: `)
	t.Descr.ToString(w)
}
func (t TermItem) String() string { return toString(t) }
