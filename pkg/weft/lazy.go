package weft

import "github.com/weft-dev/weft/pkg/ident"

// lazyApply1Signal applies a function to one argument signal on demand.
type lazyApply1Signal[A, R any] struct {
	f    func(A) R
	arg  Readable[A]
	read *lazyReader[R]
}

// LazyApply returns a read-only signal carrying f applied to arg's value.
// The application is lazy: f runs only when the result is read, at most
// once per signal lifetime. The result's identity is the argument's
// identity, so f must be pure and fixed for the call site.
func LazyApply[A, R any](f func(A) R, arg Readable[A]) Readable[R] {
	return lazyApply1Signal[A, R]{f: f, arg: arg, read: &lazyReader[R]{}}
}

func (s lazyApply1Signal[A, R]) HasValue() bool    { return s.arg.HasValue() }
func (s lazyApply1Signal[A, R]) ValueID() ident.ID { return s.arg.ValueID() }
func (s lazyApply1Signal[A, R]) Read() R {
	return s.read.read(func() R { return s.f(s.arg.Read()) })
}

// lazyApply2Signal is the two-argument form.
type lazyApply2Signal[A, B, R any] struct {
	f    func(A, B) R
	a    Readable[A]
	b    Readable[B]
	read *lazyReader[R]
}

// LazyApply2 is LazyApply over two argument signals. The result's identity
// is the structural combination of the argument identities.
func LazyApply2[A, B, R any](f func(A, B) R, a Readable[A], b Readable[B]) Readable[R] {
	return lazyApply2Signal[A, B, R]{f: f, a: a, b: b, read: &lazyReader[R]{}}
}

func (s lazyApply2Signal[A, B, R]) HasValue() bool {
	return allHaveValues(s.a, s.b)
}

func (s lazyApply2Signal[A, B, R]) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.a.ValueID()), ident.Ref(s.b.ValueID()))
}

func (s lazyApply2Signal[A, B, R]) Read() R {
	return s.read.read(func() R { return s.f(s.a.Read(), s.b.Read()) })
}

// LazyLift turns a plain function into a combinator over signals.
func LazyLift[A, R any](f func(A) R) func(Readable[A]) Readable[R] {
	return func(arg Readable[A]) Readable[R] { return LazyApply(f, arg) }
}

// LazyLift2 is LazyLift for two-argument functions.
func LazyLift2[A, B, R any](f func(A, B) R) func(Readable[A], Readable[B]) Readable[R] {
	return func(a Readable[A], b Readable[B]) Readable[R] { return LazyApply2(f, a, b) }
}
