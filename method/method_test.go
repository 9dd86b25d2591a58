package method

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/values"
)

func noopDeps() Deps {
	return Deps{
		UpdateVal:    func(values.Value) {},
		CounterGet:   func(string) values.Value { return values.None },
		CounterSet:   func(string, values.Value) {},
		CallFunction: func(values.Function, values.Arguments) values.Value { return values.None },
	}
}

func TestStringLen(t *testing.T) {
	fn, ok := Get(noopDeps(), values.WrapString(`hello`), `len`)
	if !ok {
		t.Fatal(`expected len method`)
	}
	got := fn.Call(values.EmptyArguments)
	if got.(values.Integer).Int() != 5 {
		t.Errorf(`len("hello") = %v, want 5`, got)
	}
}

func TestStringSliceNegative(t *testing.T) {
	fn, _ := Get(noopDeps(), values.WrapString(`hello`), `slice`)
	got := fn.Call(values.NewArguments([]values.Value{values.WrapInteger(-3)}, values.EmptyDict))
	if got.(values.String).Go() != `llo` {
		t.Errorf(`slice(-3) = %v, want "llo"`, got)
	}
}

func TestArrayPushUpdatesBack(t *testing.T) {
	var updated values.Value
	d := noopDeps()
	d.UpdateVal = func(v values.Value) { updated = v }
	a := values.WrapArray([]values.Value{values.WrapInteger(1)})
	fn, _ := Get(d, a, `push`)
	fn.Call(values.NewArguments([]values.Value{values.WrapInteger(2)}, values.EmptyDict))
	arr, ok := updated.(values.Array)
	if !ok || arr.Len() != 2 || arr.At(1).(values.Integer).Int() != 2 {
		t.Errorf(`push(2) wrote back %v`, updated)
	}
}

func TestArrayFilter(t *testing.T) {
	d := noopDeps()
	d.CallFunction = func(fn values.Function, args values.Arguments) values.Value {
		v := args.Positional[0].(values.Integer)
		return values.WrapBoolean(v.Int() > 1)
	}
	a := values.WrapArray([]values.Value{values.WrapInteger(1), values.WrapInteger(2), values.WrapInteger(3)})
	fn, _ := Get(d, a, `filter`)
	pred := values.NewFunction(nil, nil, func(values.Arguments) values.Value { return values.None }, `pred`)
	got := fn.Call(values.NewArguments([]values.Value{pred}, values.EmptyDict))
	arr := got.(values.Array)
	if arr.Len() != 2 {
		t.Errorf(`filter(>1) length = %d, want 2`, arr.Len())
	}
}

func TestDictInsertCopyOnWrite(t *testing.T) {
	var updated values.Value
	d := noopDeps()
	d.UpdateVal = func(v values.Value) { updated = v }
	orig := values.NewDict(1)
	orig.Set(`a`, values.WrapInteger(1))
	fn, _ := Get(d, orig, `insert`)
	fn.Call(values.NewArguments([]values.Value{values.WrapString(`b`), values.WrapInteger(2)}, values.EmptyDict))
	if orig.Len() != 1 {
		t.Errorf(`original dict mutated, len = %d, want 1`, orig.Len())
	}
	next := updated.(values.Dict)
	if next.Len() != 2 {
		t.Errorf(`updated dict len = %d, want 2`, next.Len())
	}
}

func TestDictMethodFallsThroughForNonMethodKey(t *testing.T) {
	d := values.NewDict(1)
	d.Set(`width`, values.WrapInteger(10))
	_, ok := Get(noopDeps(), d, `width`)
	if ok {
		t.Error(`"width" should not be treated as a method, should fall through to field access`)
	}
}

func TestCounterStepAndDisplay(t *testing.T) {
	store := map[string]values.Value{}
	d := Deps{
		CounterGet: func(k string) values.Value {
			if v, ok := store[k]; ok {
				return v
			}
			return values.WrapInteger(0)
		},
		CounterSet: func(k string, v values.Value) { store[k] = v },
	}
	c := values.NewCounter(`page`)
	step, _ := Get(d, c, `step`)
	step.Call(values.EmptyArguments)
	step.Call(values.EmptyArguments)
	display, _ := Get(d, c, `display`)
	got := display.Call(values.EmptyArguments)
	if got.(values.Integer).Int() != 2 {
		t.Errorf(`display after two steps = %v, want 2`, got)
	}
}

func TestColorDarken(t *testing.T) {
	c := values.NewRGB(1, 1, 1, 1)
	fn, _ := Get(noopDeps(), c, `darken`)
	got := fn.Call(values.NewArguments([]values.Value{values.WrapFloat(0.5)}, values.EmptyDict))
	dark := got.(values.Color)
	if dark.Components[0] > 0.51 {
		t.Errorf(`darken(0.5) red component = %v, want <= 0.5`, dark.Components[0])
	}
}
