package env

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/values"
)

func TestBindAndLookup(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	v, ok := s.Lookup(`x`)
	if !ok || v.(values.Integer).Int() != 1 {
		t.Errorf(`Lookup("x") = %v, %v, want 1, true`, v, ok)
	}
}

func TestInnerShadowsOuter(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	s.Push()
	s.Bind(`x`, values.WrapInteger(2))
	if v, _ := s.Lookup(`x`); v.(values.Integer).Int() != 2 {
		t.Errorf(`inner Lookup("x") = %v, want 2`, v)
	}
	s.Pop()
	if v, _ := s.Lookup(`x`); v.(values.Integer).Int() != 1 {
		t.Errorf(`outer Lookup("x") after Pop = %v, want 1`, v)
	}
}

func TestAssignWalksToEnclosingFrame(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	s.Push()
	if !s.Assign(`x`, values.WrapInteger(9)) {
		t.Fatal(`Assign("x", 9) should find the outer binding`)
	}
	s.Pop()
	if v, _ := s.Lookup(`x`); v.(values.Integer).Int() != 9 {
		t.Errorf(`Lookup("x") after Assign = %v, want 9`, v)
	}
}

func TestAssignUnboundFails(t *testing.T) {
	s := New()
	if s.Assign(`missing`, values.WrapInteger(1)) {
		t.Error(`Assign to an unbound name should report false`)
	}
}

func TestSnapshotDoesNotSeeLaterMutation(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	snap := s.Snapshot()
	s.Assign(`x`, values.WrapInteger(2))
	if v, _ := snap.Lookup(`x`); v.(values.Integer).Int() != 1 {
		t.Errorf(`snapshot Lookup("x") = %v, want 1 (snapshot is unaffected by later mutation)`, v)
	}
}

func TestAssignStopsAtFunctionBoundary(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	s.PushFunction()
	if s.Assign(`x`, values.WrapInteger(9)) {
		t.Error(`Assign should not reach past a Function frame into the defining scope`)
	}
	s.Pop()
	if v, _ := s.Lookup(`x`); v.(values.Integer).Int() != 1 {
		t.Errorf(`Lookup("x") after failed cross-boundary Assign = %v, want unchanged 1`, v)
	}
}

func TestLookupCrossesFunctionBoundary(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	s.PushFunction()
	if v, ok := s.Lookup(`x`); !ok || v.(values.Integer).Int() != 1 {
		t.Errorf(`Lookup should read captured variables across a Function frame, got %v, %v`, v, ok)
	}
}

func TestSnapshotDoesNotSeeLaterSameFrameRebind(t *testing.T) {
	s := New()
	s.Bind(`x`, values.WrapInteger(1))
	snap := s.Snapshot()
	s.Bind(`x`, values.WrapInteger(2)) // rebinds in the same, un-pushed frame
	if v, _ := snap.Lookup(`x`); v.(values.Integer).Int() != 1 {
		t.Errorf(`snapshot Lookup("x") = %v, want 1 (later same-frame rebind must not leak into the snapshot)`, v)
	}
}

func TestSnapshotBindDoesNotLeakBack(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	snap.Push()
	snap.Bind(`y`, values.WrapInteger(3))
	if _, ok := s.Lookup(`y`); ok {
		t.Error(`binding in a snapshot's pushed frame should not appear in the original stack`)
	}
}
