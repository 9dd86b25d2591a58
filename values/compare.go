package values

// Cmp is the three-valued result of Compare: ordered values produce
// CmpLT/CmpEQ/CmpGT, unorderable pairs produce CmpUndefined.
type Cmp int

const (
	CmpLT Cmp = iota
	CmpEQ
	CmpGT
	CmpUndefined
)

// Compare implements the three-valued compare(a, b) that drives `==`, `<`,
// `<=`, `>`, `>=`. Equality (`==`) falls back to structural Equal for pairs
// Compare itself leaves Undefined, since equality is defined over strictly
// more pairs than ordering is.
func Compare(a, b Value) Cmp {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return CmpLT
			case af > bf:
				return CmpGT
			default:
				return CmpEQ
			}
		}
		return CmpUndefined
	}
	if as, aok := a.(String); aok {
		if bs, bok := b.(String); bok {
			switch {
			case string(as) < string(bs):
				return CmpLT
			case string(as) > string(bs):
				return CmpGT
			default:
				return CmpEQ
			}
		}
		return CmpUndefined
	}
	if al, aok := a.(Length); aok {
		if bl, bok := b.(Length); bok && al.Unit == bl.Unit {
			switch {
			case al.Points < bl.Points:
				return CmpLT
			case al.Points > bl.Points:
				return CmpGT
			default:
				return CmpEQ
			}
		}
		return CmpUndefined
	}
	if structuralEqual(a, b) {
		return CmpEQ
	}
	return CmpUndefined
}

// structuralEqual covers every kind Compare's numeric/string/length fast
// paths above don't: value-for-value equality with no ordering. Kept
// separate from the package-level Equal (which is just Compare == CmpEQ)
// so the two don't call each other recursively.
func structuralEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NoneValue, AutoValue:
		return true
	case Boolean:
		bv := b.(Boolean)
		return av == bv
	case Regex:
		bv := b.(Regex)
		return av.Pattern == bv.Pattern
	case Label:
		bv := b.(Label)
		return av == bv
	case Array:
		bv := b.(Array)
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !Equal(av.At(i), bv.At(i)) {
				return false
			}
		}
		return true
	case Dict:
		bv := b.(Dict)
		if av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.Entries() {
			ov, ok := bv.Get(e.Key)
			if !ok || !Equal(e.Value, ov) {
				return false
			}
		}
		return true
	case Content:
		bv := b.(Content)
		return contentEqual(av.Seq, bv.Seq)
	case Selector:
		bv := b.(Selector)
		return selectorEqual(av, bv)
	case Color:
		bv := b.(Color)
		return av.Space == bv.Space && av.Components == bv.Components
	case Alignment:
		bv := b.(Alignment)
		return strPtrEqual(av.Horiz, bv.Horiz) && strPtrEqual(av.Vert, bv.Vert)
	case Angle:
		bv := b.(Angle)
		return av.Radians == bv.Radians
	case Fraction:
		bv := b.(Fraction)
		return av == bv
	case Counter:
		bv := b.(Counter)
		return av.Key == bv.Key
	case Module:
		bv := b.(Module)
		return av.Ident == bv.Ident
	case Arguments:
		bv := b.(Arguments)
		if len(av.Positional) != len(bv.Positional) {
			return false
		}
		for i := range av.Positional {
			if !Equal(av.Positional[i], bv.Positional[i]) {
				return false
			}
		}
		return structuralEqual(av.Named, bv.Named)
	case Symbol:
		bv := b.(Symbol)
		return av.Text == bv.Text
	case TermItem:
		bv := b.(TermItem)
		return Equal(av.Term, bv.Term) && Equal(av.Descr, bv.Descr)
	}
	return false
}

func contentEqual(a, b ContentSeq) bool {
	if len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i := range a.Nodes {
		if !nodeEqual(a.Nodes[i], b.Nodes[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	if a.NKind != b.NKind {
		return false
	}
	if a.NKind == NodeTxt {
		return a.Text == b.Text
	}
	if a.Name != b.Name {
		return false
	}
	if !strPtrEqual(a.Label, b.Label) {
		return false
	}
	return structuralEqual(a.Fields, b.Fields)
}

func selectorEqual(a, b Selector) bool {
	if a.SelKind != b.SelKind {
		return false
	}
	switch a.SelKind {
	case SelElement:
		return a.ElementName == b.ElementName
	case SelString:
		return a.Text == b.Text
	case SelLabel:
		return a.Text == b.Text
	case SelRegex:
		return a.Re.Pattern == b.Re.Pattern
	default:
		return selectorEqual(*a.Lhs, *b.Lhs) && selectorEqual(*a.Rhs, *b.Rhs)
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LessThan, LessOrEqual, GreaterThan, GreaterOrEqual implement the ordering
// operators in terms of Compare, treating CmpUndefined as neither.
func LessThan(a, b Value) (bool, bool) {
	c := Compare(a, b)
	if c == CmpUndefined {
		return false, false
	}
	return c == CmpLT, true
}

func LessOrEqual(a, b Value) (bool, bool) {
	c := Compare(a, b)
	if c == CmpUndefined {
		return false, false
	}
	return c == CmpLT || c == CmpEQ, true
}

func GreaterThan(a, b Value) (bool, bool) {
	c := Compare(a, b)
	if c == CmpUndefined {
		return false, false
	}
	return c == CmpGT, true
}

func GreaterOrEqual(a, b Value) (bool, bool) {
	c := Compare(a, b)
	if c == CmpUndefined {
		return false, false
	}
	return c == CmpGT || c == CmpEQ, true
}

// In implements the `in` operator: string-in-string substring test,
// value-in-array membership, and key-in-dict membership.
func In(needle, haystack Value) (bool, bool) {
	switch hv := haystack.(type) {
	case String:
		switch nv := needle.(type) {
		case String:
			return containsSubstring(string(hv), string(nv)), true
		case Regex:
			return nv.Re.MatchString(string(hv)), true
		}
	case Array:
		for _, el := range hv.Elements() {
			if Equal(needle, el) {
				return true, true
			}
		}
		return false, true
	case Dict:
		if ns, ok := needle.(String); ok {
			_, found := hv.Get(string(ns))
			return found, true
		}
	}
	return false, false
}

func containsSubstring(haystack, needle string) bool {
	if needle == `` {
		return true
	}
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i:i+n] == needle {
			return true
		}
	}
	return false
}
