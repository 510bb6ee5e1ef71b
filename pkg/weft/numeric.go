package weft

import "github.com/weft-dev/weft/pkg/ident"

// scaledSignal presents a scaled view of a numeric signal.
type scaledSignal[T Number] struct {
	n      Duplex[T]
	factor Readable[T]
}

// Scale presents n multiplied by factor. Writes divide by the factor before
// storing through to n.
func Scale[T Number](n Duplex[T], factor Readable[T]) Duplex[T] {
	return scaledSignal[T]{n: n, factor: factor}
}

func (s scaledSignal[T]) HasValue() bool {
	return s.n.HasValue() && s.factor.HasValue()
}

func (s scaledSignal[T]) Read() T { return s.n.Read() * s.factor.Read() }

func (s scaledSignal[T]) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.n.ValueID()), ident.Ref(s.factor.ValueID()))
}

func (s scaledSignal[T]) ReadyToWrite() bool {
	return s.n.ReadyToWrite() && s.factor.HasValue()
}

func (s scaledSignal[T]) Write(v T) error { return s.n.Write(v / s.factor.Read()) }

// offsetSignal presents an offset view of a numeric signal.
type offsetSignal[T Number] struct {
	n      Duplex[T]
	offset Readable[T]
}

// Offset presents n plus offset. Writes subtract the offset before storing
// through to n.
func Offset[T Number](n Duplex[T], offset Readable[T]) Duplex[T] {
	return offsetSignal[T]{n: n, offset: offset}
}

func (s offsetSignal[T]) HasValue() bool {
	return s.n.HasValue() && s.offset.HasValue()
}

func (s offsetSignal[T]) Read() T { return s.n.Read() + s.offset.Read() }

func (s offsetSignal[T]) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.n.ValueID()), ident.Ref(s.offset.ValueID()))
}

func (s offsetSignal[T]) ReadyToWrite() bool {
	return s.n.ReadyToWrite() && s.offset.HasValue()
}

func (s offsetSignal[T]) Write(v T) error { return s.n.Write(v - s.offset.Read()) }

// roundingSignal rounds written values to a multiple of a step.
type roundingSignal[T Number] struct {
	n    Duplex[T]
	step Readable[T]
}

// RoundWrites yields a wrapper that rounds any write to n so that stored
// values are always a multiple of step. Reads pass through unchanged.
func RoundWrites[T Number](n Duplex[T], step Readable[T]) Duplex[T] {
	return roundingSignal[T]{n: n, step: step}
}

func (s roundingSignal[T]) HasValue() bool     { return s.n.HasValue() }
func (s roundingSignal[T]) Read() T            { return s.n.Read() }
func (s roundingSignal[T]) ValueID() ident.ID  { return s.n.ValueID() }
func (s roundingSignal[T]) ReadyToWrite() bool { return s.n.ReadyToWrite() && s.step.HasValue() }

func (s roundingSignal[T]) Write(v T) error {
	step := s.step.Read()
	// Truncate the quotient so that float types round as integers do.
	units := T(int64(v / step))
	rounded := units * step
	// Round half away from zero.
	if rem := v - rounded; rem+rem >= step {
		rounded += step
	} else if rem+rem <= -step {
		rounded -= step
	}
	return s.n.Write(rounded)
}
