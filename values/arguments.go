package values

import "io"

// Arguments pairs a positional slice with a named Dict. Concatenation is
// left-biased on the positional side and right-wins on the named side;
// see Concat.
type Arguments struct {
	Positional []Value
	Named      Dict
}

func NewArguments(positional []Value, named Dict) Arguments {
	return Arguments{Positional: positional, Named: named}
}

var EmptyArguments = NewArguments(nil, EmptyDict)

func (Arguments) Kind() Kind { return KArguments }
func (a Arguments) ToString(w io.Writer) {
	io.WriteString(w, `(`)
	for i, p := range a.Positional {
		if i > 0 {
			io.WriteString(w, `, `)
		}
		p.ToString(w)
	}
	first := len(a.Positional) == 0
	a.Named.EachPair(func(k string, v Value) {
		if !first {
			io.WriteString(w, `, `)
		}
		first = false
		io.WriteString(w, k)
		io.WriteString(w, `: `)
		v.ToString(w)
	})
	io.WriteString(w, `)`)
}
func (a Arguments) String() string { return toString(a) }

// Concat appends other's positional values after a's and merges other's
// named values over a's, with other winning on duplicate names. Used both
// by `set`/`show` default merging and by Function.WithDefaults.
func (a Arguments) Concat(other Arguments) Arguments {
	pos := make([]Value, 0, len(a.Positional)+len(other.Positional))
	pos = append(pos, a.Positional...)
	pos = append(pos, other.Positional...)
	return Arguments{Positional: pos, Named: a.Named.Merge(other.Named)}
}

// ToValueArray flattens positional and named (as values only, names
// dropped) into one Array.
func (a Arguments) ToValueArray() Array {
	vs := make([]Value, 0, len(a.Positional)+a.Named.Len())
	vs = append(vs, a.Positional...)
	a.Named.EachPair(func(_ string, v Value) { vs = append(vs, v) })
	return WrapArray(vs)
}

// SelectorKind tags which variant of the selector grammar a Selector
// value holds.
type SelectorKind int

const (
	SelElement SelectorKind = iota
	SelString
	SelRegex
	SelLabel
	SelOr
	SelAnd
	SelBefore
	SelAfter
)

// Selector describes what a show rule matches against. The matcher
// itself lives with the show-rule engine; this package only builds and
// composes Selector values.
type Selector struct {
	SelKind       SelectorKind
	ElementName   string
	ElementFields Dict
	Text          string
	Re            Regex
	Lhs, Rhs      *Selector
}

func NewElementSelector(name string, fields Dict) Selector {
	return Selector{SelKind: SelElement, ElementName: name, ElementFields: fields}
}

func NewStringSelector(text string) Selector { return Selector{SelKind: SelString, Text: text} }
func NewLabelSelector(text string) Selector  { return Selector{SelKind: SelLabel, Text: text} }
func NewRegexSelector(re Regex) Selector     { return Selector{SelKind: SelRegex, Re: re} }

func (s Selector) Or(other Selector) Selector     { return binarySelector(SelOr, s, other) }
func (s Selector) And(other Selector) Selector    { return binarySelector(SelAnd, s, other) }
func (s Selector) Before(other Selector) Selector { return binarySelector(SelBefore, s, other) }
func (s Selector) After(other Selector) Selector  { return binarySelector(SelAfter, s, other) }

func binarySelector(k SelectorKind, a, b Selector) Selector {
	return Selector{SelKind: k, Lhs: &a, Rhs: &b}
}

func (Selector) Kind() Kind { return KSelector }
func (s Selector) ToString(w io.Writer) {
	switch s.SelKind {
	case SelElement:
		io.WriteString(w, s.ElementName)
	case SelString:
		io.WriteString(w, `"`+s.Text+`"`)
	case SelLabel:
		io.WriteString(w, `<`+s.Text+`>`)
	case SelRegex:
		s.Re.ToString(w)
	case SelOr:
		s.Lhs.ToString(w)
		io.WriteString(w, `.or(`)
		s.Rhs.ToString(w)
		io.WriteString(w, `)`)
	case SelAnd:
		s.Lhs.ToString(w)
		io.WriteString(w, `.and(`)
		s.Rhs.ToString(w)
		io.WriteString(w, `)`)
	case SelBefore:
		s.Lhs.ToString(w)
		io.WriteString(w, `.before(`)
		s.Rhs.ToString(w)
		io.WriteString(w, `)`)
	case SelAfter:
		s.Lhs.ToString(w)
		io.WriteString(w, `.after(`)
		s.Rhs.ToString(w)
		io.WriteString(w, `)`)
	}
}
func (s Selector) String() string { return toString(s) }
