package weft

import (
	"testing"

	"github.com/weft-dev/weft/pkg/ident"
)

func TestEmptySignal(t *testing.T) {
	s := Empty[int]()
	if s.HasValue() {
		t.Error("empty signal must not have a value")
	}
	if !ident.Match(s.ValueID(), ident.Null) {
		t.Error("empty signal identity must be null")
	}
	if s.ReadyToWrite() {
		t.Error("empty signal must not be ready to write")
	}
}

func TestValueSignal(t *testing.T) {
	s := Value(7)
	if !s.HasValue() || s.Read() != 7 {
		t.Error("value signal should carry its constant")
	}
	if !ident.Match(s.ValueID(), Value(7).ValueID()) {
		t.Error("equal constants should share identity")
	}
	if ident.Match(s.ValueID(), Value(8).ValueID()) {
		t.Error("different constants should have different identities")
	}
}

func TestDirectSignal(t *testing.T) {
	x := 1
	s := Direct(&x)

	if !s.HasValue() || s.Read() != 1 {
		t.Error("direct signal should expose the cell")
	}
	id1 := s.ValueID().Clone()

	if err := s.Write(2); err != nil {
		t.Fatal(err)
	}
	if x != 2 {
		t.Error("write should store through the pointer")
	}
	if ident.Match(id1, s.ValueID()) {
		t.Error("identity should change with the value")
	}
}

func TestFallback(t *testing.T) {
	// AddFallback over an empty primary has the fallback's value.
	m := AddFallback(Empty[int](), Value(7))
	if !m.HasValue() || m.Read() != 7 {
		t.Error("fallback should supply the value")
	}

	x := 3
	p := AddFallback(Direct(&x), Value(7))
	if p.Read() != 3 {
		t.Error("primary should win when it has a value")
	}
	if err := p.Write(5); err != nil {
		t.Fatal(err)
	}
	if x != 5 {
		t.Error("writes must go to the primary")
	}
}

func TestFallbackIdentityTracksSource(t *testing.T) {
	x := 7
	s := AddFallback(Mask(Direct(&x), Value(false)), Value(7))
	viaFallback := s.ValueID().Clone()

	s2 := AddFallback(Mask(Direct(&x), Value(true)), Value(7))
	viaPrimary := s2.ValueID().Clone()

	// The value is 7 either way, but which side supplied it changed.
	if ident.Match(viaFallback, viaPrimary) {
		t.Error("switching sources must change identity even for equal values")
	}
}

func TestMask(t *testing.T) {
	// A masked-off signal has no value and a null identity.
	m := MaskRead(Value(5), Value(false))
	if m.HasValue() {
		t.Error("masked signal must have no value")
	}
	if !ident.Match(m.ValueID(), ident.Null) {
		t.Error("masked signal identity must be null")
	}

	open := MaskRead(Value(5), Value(true))
	if !open.HasValue() || open.Read() != 5 {
		t.Error("unmasked signal should behave like its primary")
	}

	x := 1
	w := Mask(Direct(&x), Value(false))
	if w.ReadyToWrite() {
		t.Error("masked signal must not be ready to write")
	}
}

func TestObservationSignals(t *testing.T) {
	if !HasValueSignal(Empty[int]()).HasValue() {
		t.Error("observation signals always have a value")
	}
	if HasValueSignal(Empty[int]()).Read() {
		t.Error("empty has no value")
	}
	if !HasValueSignal(Value(1)).Read() {
		t.Error("constant has a value")
	}

	x := 0
	if !ReadyToWriteSignal[int](Direct(&x)).Read() {
		t.Error("direct signal is ready to write")
	}
	if ReadyToWriteSignal[int](Empty[int]()).Read() {
		t.Error("empty signal is not ready to write")
	}
}

func TestDirectionFakers(t *testing.T) {
	// Direction safety: a faked direction never actually activates.
	r := FakeWritability(Value(3))
	if r.ReadyToWrite() {
		t.Error("faked writability must never be ready")
	}
	if r.Read() != 3 {
		t.Error("read side must pass through")
	}

	x := 0
	w := FakeReadability[int](Direct(&x))
	if w.HasValue() {
		t.Error("faked readability must never have a value")
	}
	if !w.ReadyToWrite() {
		t.Error("write side must pass through")
	}
	if err := w.Write(9); err != nil || x != 9 {
		t.Error("write must reach the wrapped signal")
	}
}

func TestCast(t *testing.T) {
	s := Cast[float64](Value(3))
	if !s.HasValue() || s.Read() != 3.0 {
		t.Error("cast should convert the value")
	}
	if !ident.Match(s.ValueID(), Value(3).ValueID()) {
		t.Error("cast preserves the wrapped identity")
	}
}

func TestSimplifyID(t *testing.T) {
	x := 5
	composite := Field(Direct(&x), "self", func(p *int) *int { return p })
	s := SimplifyID(composite)
	if !ident.Match(s.ValueID(), ident.Of(5)) {
		t.Error("simplified identity should be the value itself")
	}
}

func TestConditional(t *testing.T) {
	a, b := 1, 2
	cond := true
	s := Conditional(Direct(&cond), Direct(&a), Direct(&b))

	if s.Read() != 1 {
		t.Error("true condition selects the first branch")
	}
	cond = false
	if s.Read() != 2 {
		t.Error("false condition selects the second branch")
	}
	if err := s.Write(9); err != nil {
		t.Fatal(err)
	}
	if b != 9 || a != 1 {
		t.Error("writes must go to the selected branch only")
	}

	nc := ConditionalRead(Empty[bool](), Value(1), Value(2))
	if nc.HasValue() {
		t.Error("no condition value means no result value")
	}
	if !ident.Match(nc.ValueID(), ident.Null) {
		t.Error("no condition value means null identity")
	}
}

func TestShortCircuitLogic(t *testing.T) {
	// The result is available whenever it is determinable.
	cases := []struct {
		name     string
		s        Readable[bool]
		hasValue bool
		value    bool
	}{
		{"or: one true decides", Or(Value(true), Empty[bool]()), true, true},
		{"or: decided by right", Or(Empty[bool](), Value(true)), true, true},
		{"or: one false alone is undecided", Or(Value(false), Empty[bool]()), false, false},
		{"or: both known", Or(Value(false), Value(false)), true, false},
		{"and: one false decides", And(Empty[bool](), Value(false)), true, false},
		{"and: decided by left", And(Value(false), Empty[bool]()), true, false},
		{"and: one true alone is undecided", And(Value(true), Empty[bool]()), false, false},
		{"and: both known", And(Value(true), Value(true)), true, true},
	}
	for _, tc := range cases {
		if tc.s.HasValue() != tc.hasValue {
			t.Errorf("%s: HasValue = %v, want %v", tc.name, tc.s.HasValue(), tc.hasValue)
		}
		if tc.hasValue && tc.s.Read() != tc.value {
			t.Errorf("%s: Read = %v, want %v", tc.name, tc.s.Read(), tc.value)
		}
	}
}

func TestOperators(t *testing.T) {
	if got := Add(Value(2), Value(3)).Read(); got != 5 {
		t.Errorf("Add = %d", got)
	}
	if got := Mul(Value(4), Value(5)).Read(); got != 20 {
		t.Errorf("Mul = %d", got)
	}
	if !Lt(Value(1), Value(2)).Read() {
		t.Error("Lt should hold")
	}
	if Eq(Value(1), Value(2)).Read() {
		t.Error("Eq should not hold")
	}
	if Add(Value(1), Empty[int]()).HasValue() {
		t.Error("arithmetic needs both operands")
	}
	if got := BitXor(Value(6), Value(3)).Read(); got != 5 {
		t.Errorf("BitXor = %d", got)
	}
}

func TestLazyApplyComputesOnce(t *testing.T) {
	calls := 0
	s := LazyApply(func(v int) int { calls++; return v * 2 }, Value(21))
	if s.Read() != 42 || s.Read() != 42 {
		t.Error("lazy apply should produce the result")
	}
	if calls != 1 {
		t.Errorf("function should run once per signal lifetime, ran %d times", calls)
	}
}

func TestFieldWriteBack(t *testing.T) {
	type point struct{ X, Y int }
	p := point{X: 1, Y: 2}

	holder := NewStateHolder(p)
	ps := MakeStateSignal(&holder)

	x := Field(ps, "X", func(v *point) *int { return &v.X })
	if x.Read() != 1 {
		t.Error("field read")
	}
	if err := x.Write(10); err != nil {
		t.Fatal(err)
	}
	if holder.Get() != (point{X: 10, Y: 2}) {
		t.Errorf("field write-back got %+v", holder.Get())
	}

	y := Field(ps, "Y", func(v *point) *int { return &v.Y })
	if ident.Match(x.ValueID(), y.ValueID()) {
		t.Error("different fields of one structure must have different identities")
	}
}

func TestSubscript(t *testing.T) {
	holder := NewStateHolder([]int{10, 20, 30})
	s := MakeStateSignal(&holder)

	e := At[int](s, Value(1))
	if !e.HasValue() || e.Read() != 20 {
		t.Error("subscript read")
	}
	if err := e.Write(21); err != nil {
		t.Fatal(err)
	}
	got := holder.Get()
	if got[1] != 21 {
		t.Error("subscript write-back")
	}

	oob := At[int](s, Value(9))
	if oob.HasValue() {
		t.Error("out-of-range subscript has no value")
	}
}

func TestNumericAdaptors(t *testing.T) {
	x := 10.0
	scaled := Scale(Direct(&x), Value(2.0))
	if scaled.Read() != 20.0 {
		t.Error("scale read")
	}
	if err := scaled.Write(30.0); err != nil || x != 15.0 {
		t.Error("scale write divides by the factor")
	}

	off := Offset(Direct(&x), Value(5.0))
	if off.Read() != 20.0 {
		t.Error("offset read")
	}

	n := 0
	rounded := RoundWrites(Direct(&n), Value(10))
	if err := rounded.Write(26); err != nil || n != 30 {
		t.Errorf("rounding write: got %d, want 30", n)
	}
	if err := rounded.Write(24); err != nil || n != 20 {
		t.Errorf("rounding write: got %d, want 20", n)
	}
}

func TestStateHolderVersioning(t *testing.T) {
	var h StateHolder[int]
	s := MakeStateSignal(&h)
	if s.HasValue() {
		t.Error("uninitialized state has no value")
	}
	if err := s.Write(1); err != nil {
		t.Fatal(err)
	}
	id1 := s.ValueID().Clone()
	if !s.HasValue() || s.Read() != 1 {
		t.Error("state should hold the written value")
	}
	if err := s.Write(2); err != nil {
		t.Fatal(err)
	}
	if ident.Match(id1, s.ValueID()) {
		t.Error("every mutation must change the identity")
	}
}
