package weft

import (
	"cmp"

	"github.com/weft-dev/weft/pkg/ident"
)

// The operator family lifts elementwise computation into LazyApply2. Go has
// no operator overloading, so the forms are named; wrap a raw operand with
// Value to mix signals and constants.

// Add yields a + b.
func Add[T Number](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x + y }, a, b)
}

// Sub yields a - b.
func Sub[T Number](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x - y }, a, b)
}

// Mul yields a * b.
func Mul[T Number](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x * y }, a, b)
}

// Div yields a / b.
func Div[T Number](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x / y }, a, b)
}

// Mod yields a % b.
func Mod[T Integer](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x % y }, a, b)
}

// Neg yields -a.
func Neg[T Number](a Readable[T]) Readable[T] {
	return LazyApply(func(x T) T { return -x }, a)
}

// Eq yields a == b.
func Eq[T comparable](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x == y }, a, b)
}

// Ne yields a != b.
func Ne[T comparable](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x != y }, a, b)
}

// Lt yields a < b.
func Lt[T cmp.Ordered](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x < y }, a, b)
}

// Le yields a <= b.
func Le[T cmp.Ordered](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x <= y }, a, b)
}

// Gt yields a > b.
func Gt[T cmp.Ordered](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x > y }, a, b)
}

// Ge yields a >= b.
func Ge[T cmp.Ordered](a, b Readable[T]) Readable[bool] {
	return LazyApply2(func(x, y T) bool { return x >= y }, a, b)
}

// Shl yields a << n.
func Shl[T Integer](a, n Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x << y }, a, n)
}

// Shr yields a >> n.
func Shr[T Integer](a, n Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x >> y }, a, n)
}

// BitAnd yields a & b.
func BitAnd[T Integer](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x & y }, a, b)
}

// BitOr yields a | b.
func BitOr[T Integer](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x | y }, a, b)
}

// BitXor yields a ^ b.
func BitXor[T Integer](a, b Readable[T]) Readable[T] {
	return LazyApply2(func(x, y T) T { return x ^ y }, a, b)
}

// Not yields !a.
func Not(a Readable[bool]) Readable[bool] {
	return LazyApply(func(x bool) bool { return !x }, a)
}

// logicalOrSignal short-circuits on value availability: the result is known
// as soon as either side is known true.
type logicalOrSignal struct {
	a, b Readable[bool]
}

// Or yields a || b. It has a value if both operands do, or if either
// operand's value alone decides the result (true).
func Or(a, b Readable[bool]) Readable[bool] {
	return logicalOrSignal{a: a, b: b}
}

func (s logicalOrSignal) HasValue() bool {
	return (s.a.HasValue() && s.b.HasValue()) ||
		(s.a.HasValue() && s.a.Read()) ||
		(s.b.HasValue() && s.b.Read())
}

func (s logicalOrSignal) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.a.ValueID()), ident.Ref(s.b.ValueID()))
}

func (s logicalOrSignal) Read() bool {
	return (s.a.HasValue() && s.a.Read()) || (s.b.HasValue() && s.b.Read())
}

// logicalAndSignal short-circuits on value availability: the result is
// known as soon as either side is known false.
type logicalAndSignal struct {
	a, b Readable[bool]
}

// And yields a && b. It has a value if both operands do, or if either
// operand's value alone decides the result (false).
func And(a, b Readable[bool]) Readable[bool] {
	return logicalAndSignal{a: a, b: b}
}

func (s logicalAndSignal) HasValue() bool {
	return (s.a.HasValue() && s.b.HasValue()) ||
		(s.a.HasValue() && !s.a.Read()) ||
		(s.b.HasValue() && !s.b.Read())
}

func (s logicalAndSignal) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.a.ValueID()), ident.Ref(s.b.ValueID()))
}

func (s logicalAndSignal) Read() bool {
	return !((s.a.HasValue() && !s.a.Read()) || (s.b.HasValue() && !s.b.Read()))
}
