package values

import "testing"

func TestCompareIntegers(t *testing.T) {
	if c := Compare(WrapInteger(1), WrapInteger(2)); c != CmpLT {
		t.Errorf(`Compare(1, 2) = %v, want CmpLT`, c)
	}
	if c := Compare(WrapInteger(2), WrapInteger(2)); c != CmpEQ {
		t.Errorf(`Compare(2, 2) = %v, want CmpEQ`, c)
	}
	if c := Compare(WrapInteger(3), WrapInteger(2)); c != CmpGT {
		t.Errorf(`Compare(3, 2) = %v, want CmpGT`, c)
	}
}

func TestCompareUndefinedAcrossKinds(t *testing.T) {
	if c := Compare(WrapInteger(1), WrapString(`x`)); c != CmpUndefined {
		t.Errorf(`Compare(1, "x") = %v, want CmpUndefined`, c)
	}
}

func TestLessOrEqual(t *testing.T) {
	ok, defined := LessOrEqual(WrapInteger(2), WrapInteger(2))
	if !defined || !ok {
		t.Error(`LessOrEqual(2, 2) should be true`)
	}
}

func TestInArray(t *testing.T) {
	arr := WrapArray([]Value{WrapInteger(1), WrapInteger(2)})
	found, defined := In(WrapInteger(2), arr)
	if !defined || !found {
		t.Error(`In(2, [1, 2]) should be true`)
	}
}

func TestInStringSubstring(t *testing.T) {
	found, defined := In(WrapString(`cd`), WrapString(`abcde`))
	if !defined || !found {
		t.Error(`In("cd", "abcde") should be true`)
	}
}

func TestInDictKey(t *testing.T) {
	d := NewDict(1)
	d.Set(`a`, WrapInteger(1))
	found, defined := In(WrapString(`a`), d)
	if !defined || !found {
		t.Error(`In("a", dict{a: 1}) should be true`)
	}
}
