package values

import "testing"

func TestMaybePlusIntegers(t *testing.T) {
	r, ok := MaybePlus(WrapInteger(2), WrapInteger(3))
	if !ok {
		t.Fatal(`MaybePlus(2, 3) reported not ok`)
	}
	if i, isInt := r.(Integer); !isInt || i.Int() != 5 {
		t.Errorf(`MaybePlus(2, 3) = %v, want 5`, r)
	}
}

func TestMaybePlusIntegerAndFloatWidens(t *testing.T) {
	r, ok := MaybePlus(WrapInteger(2), WrapFloat(0.5))
	if !ok {
		t.Fatal(`MaybePlus(2, 0.5) reported not ok`)
	}
	if f, isFloat := r.(Float); !isFloat || float64(f) != 2.5 {
		t.Errorf(`MaybePlus(2, 0.5) = %v, want 2.5`, r)
	}
}

func TestMaybePlusStrings(t *testing.T) {
	r, ok := MaybePlus(WrapString(`foo`), WrapString(`bar`))
	if !ok || r.String() != `foobar` {
		t.Errorf(`MaybePlus("foo", "bar") = %v, want "foobar"`, r)
	}
}

func TestMaybePlusArrays(t *testing.T) {
	a := WrapArray([]Value{WrapInteger(1)})
	b := WrapArray([]Value{WrapInteger(2)})
	r, ok := MaybePlus(a, b)
	arr, isArr := r.(Array)
	if !ok || !isArr || arr.Len() != 2 {
		t.Errorf(`MaybePlus(array, array) = %v, want a 2-element array`, r)
	}
}

func TestMaybePlusTypeMismatch(t *testing.T) {
	if _, ok := MaybePlus(WrapInteger(1), WrapString(`x`)); ok {
		t.Error(`MaybePlus(1, "x") should not be ok`)
	}
}

func TestMaybeDividedByZero(t *testing.T) {
	_, ok, divZero := MaybeDividedBy(WrapInteger(4), WrapInteger(0))
	if ok || !divZero {
		t.Error(`MaybeDividedBy(4, 0) should report divByZero`)
	}
}

func TestMaybeDividedByExactIntegers(t *testing.T) {
	r, ok, divZero := MaybeDividedBy(WrapInteger(6), WrapInteger(3))
	if !ok || divZero {
		t.Fatal(`MaybeDividedBy(6, 3) should succeed`)
	}
	if i, isInt := r.(Integer); !isInt || i.Int() != 2 {
		t.Errorf(`MaybeDividedBy(6, 3) = %v, want integer 2`, r)
	}
}

func TestMaybeNegate(t *testing.T) {
	r, ok := MaybeNegate(WrapInteger(5))
	if !ok {
		t.Fatal(`MaybeNegate(5) reported not ok`)
	}
	if i, isInt := r.(Integer); !isInt || i.Int() != -5 {
		t.Errorf(`MaybeNegate(5) = %v, want -5`, r)
	}
}
