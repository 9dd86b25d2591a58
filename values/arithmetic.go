package values

import "math"

// MaybePlus implements `maybePlus`: numeric widening
// integer⊂ratio⊂float, string++, array++, dict-merge, content++, plus the
// Alignment+Alignment componentwise merge, which is handled here rather
// than by the `+` operator itself. Returns (nil, false) when the pair is
// type-incompatible, which the caller surfaces as a type-mismatch error.
func MaybePlus(a, b Value) (Value, bool) {
	switch av := a.(type) {
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return WrapInteger(av.Int() + bv.Int()), true
		case Ratio:
			return RatioFromFloat(float64(av) + bv.Float()), true
		case Float:
			return WrapFloat(float64(av) + float64(bv)), true
		}
	case Ratio:
		switch bv := b.(type) {
		case Integer:
			return RatioFromFloat(av.Float() + float64(bv)), true
		case Ratio:
			return RatioFromFloat(av.Float() + bv.Float()), true
		case Float:
			return WrapFloat(av.Float() + float64(bv)), true
		}
	case Float:
		switch bv := b.(type) {
		case Integer:
			return WrapFloat(float64(av) + float64(bv)), true
		case Ratio:
			return WrapFloat(float64(av) + bv.Float()), true
		case Float:
			return WrapFloat(float64(av) + float64(bv)), true
		}
	case String:
		if bv, ok := b.(String); ok {
			return WrapString(string(av) + string(bv)), true
		}
	case Array:
		if bv, ok := b.(Array); ok {
			return av.Concat(bv), true
		}
	case Dict:
		if bv, ok := b.(Dict); ok {
			return av.Merge(bv), true
		}
	case Content:
		if bv, ok := b.(Content); ok {
			return WrapContent(av.Seq.Concat(bv.Seq)), true
		}
	case Alignment:
		if bv, ok := b.(Alignment); ok {
			return av.Add(bv), true
		}
	case Length:
		if bv, ok := b.(Length); ok && av.Unit == bv.Unit {
			return Length{Points: av.Points + bv.Points, Unit: av.Unit}, true
		}
	}
	return nil, false
}

// MaybeMinus is the subtraction counterpart of MaybePlus.
func MaybeMinus(a, b Value) (Value, bool) {
	switch av := a.(type) {
	case Integer:
		if bv, ok := b.(Integer); ok {
			return WrapInteger(av.Int() - bv.Int()), true
		}
	case Length:
		if bv, ok := b.(Length); ok && av.Unit == bv.Unit {
			return Length{Points: av.Points - bv.Points, Unit: av.Unit}, true
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return WrapFloat(af - bf), true
	}
	return nil, false
}

// MaybeTimes is the multiplication counterpart of MaybePlus.
func MaybeTimes(a, b Value) (Value, bool) {
	if av, ok := a.(Integer); ok {
		if bv, ok := b.(Integer); ok {
			return WrapInteger(av.Int() * bv.Int()), true
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return WrapFloat(af * bf), true
	}
	return nil, false
}

// MaybeDividedBy divides a by b. Returns (nil, false) for type mismatch;
// division by zero is signaled separately (divByZero) so the caller can
// produce a dedicated domain error rather than a type-mismatch one.
func MaybeDividedBy(a, b Value) (result Value, ok bool, divByZero bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !(aok && bok) {
		return nil, false, false
	}
	if bf == 0 {
		return nil, false, true
	}
	if ai, aIsInt := a.(Integer); aIsInt {
		if bi, bIsInt := b.(Integer); bIsInt && ai.Int()%bi.Int() == 0 {
			return WrapInteger(ai.Int() / bi.Int()), true, false
		}
	}
	return WrapFloat(af / bf), true, false
}

// MaybeNegate implements unary `-x` for numeric values.
func MaybeNegate(a Value) (Value, bool) {
	switch av := a.(type) {
	case Integer:
		return WrapInteger(-av.Int()), true
	case Float:
		return WrapFloat(-float64(av)), true
	case Ratio:
		return RatioFromFloat(-av.Float()), true
	case Length:
		return Length{Points: -av.Points, Unit: av.Unit}, true
	case Angle:
		return Angle{Radians: -av.Radians}, true
	case Fraction:
		return Fraction(-float64(av)), true
	}
	return nil, false
}

// Pow implements `**`: integer^integer returns integer via
// floor of double power; any mixed case returns float; ratio/float
// combinations convert ratio to float first.
func Pow(a, b Value) (Value, bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !(aok && bok) {
		return nil, false
	}
	_, aIsInt := a.(Integer)
	_, bIsInt := b.(Integer)
	if aIsInt && bIsInt {
		return WrapInteger(int64(math.Floor(math.Pow(af, bf)))), true
	}
	return WrapFloat(math.Pow(af, bf)), true
}

func toFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Integer:
		return float64(v), true
	case Float:
		return float64(v), true
	case Ratio:
		return v.Float(), true
	}
	return 0, false
}
