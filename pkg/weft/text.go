package weft

import (
	"strconv"

	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// All conversion of values to and from text goes through FromString and
// ToString. Scalar types used with the text-valued signals must be covered
// here; integral parsers reject out-of-range input with a ValidationError.

// FromString parses s and stores the result in *dst. It returns a
// *ValidationError when s does not parse as dst's type.
func FromString[T any](dst *T, s string) error {
	switch p := any(dst).(type) {
	case *string:
		*p = s
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return validationf(err, "not a boolean: %q", s)
		}
		*p = v
	case *int:
		v, err := strconv.ParseInt(s, 10, strconv.IntSize)
		if err != nil {
			return validationf(err, "not an integer: %q", s)
		}
		*p = int(v)
	case *int8:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return validationf(err, "not an 8-bit integer: %q", s)
		}
		*p = int8(v)
	case *int16:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return validationf(err, "not a 16-bit integer: %q", s)
		}
		*p = int16(v)
	case *int32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return validationf(err, "not a 32-bit integer: %q", s)
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return validationf(err, "not a 64-bit integer: %q", s)
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(s, 10, strconv.IntSize)
		if err != nil {
			return validationf(err, "not an unsigned integer: %q", s)
		}
		*p = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return validationf(err, "not an 8-bit unsigned integer: %q", s)
		}
		*p = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return validationf(err, "not a 16-bit unsigned integer: %q", s)
		}
		*p = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return validationf(err, "not a 32-bit unsigned integer: %q", s)
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return validationf(err, "not a 64-bit unsigned integer: %q", s)
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return validationf(err, "not a number: %q", s)
		}
		*p = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return validationf(err, "not a number: %q", s)
		}
		*p = v
	default:
		return validationf(nil, "no string conversion for %T", *dst)
	}
	return nil
}

// ToString formats v as text.
func ToString[T any](v T) string {
	switch x := any(v).(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return ""
	}
}

// AsText creates a text view of x. The conversion is memoized in the graph,
// keyed by x's identity, so it reruns only when the value changes.
func AsText[T any](ctx Context, x Readable[T]) Readable[string] {
	kd, recompute := graph.GetKeyed[string](ctx.Data(), x.ValueID())
	if recompute && x.HasValue() {
		kd.Set(ToString(x.Read()))
	}
	return KeyedSignal[string]{d: kd}
}

// duplexTextData caches the textual form of a bidirectional text view.
type duplexTextData struct {
	input ident.Captured
	text  string
	valid bool
}

// duplexTextSignal presents a scalar signal as editable text. Writes parse
// the text and store through to the wrapped signal; text that fails to
// parse is rejected with a ValidationError and the wrapped value is left
// alone.
type duplexTextSignal[T any] struct {
	wrapped Duplex[T]
	d       *duplexTextData
}

// AsDuplexText is AsText for bidirectional signals: the result reflects x
// as text and writes parse back into x.
func AsDuplexText[T any](ctx Context, x Duplex[T]) Duplex[string] {
	d, _ := graph.GetCached[duplexTextData](ctx.Data())
	if IsRefresh(ctx) && !d.input.Matches(x.ValueID()) {
		if x.HasValue() {
			d.text = ToString(x.Read())
			d.valid = true
		} else {
			d.text = ""
			d.valid = false
		}
		d.input.Capture(x.ValueID())
	}
	return duplexTextSignal[T]{wrapped: x, d: d}
}

func (s duplexTextSignal[T]) HasValue() bool { return s.d.valid }
func (s duplexTextSignal[T]) Read() string   { return s.d.text }

func (s duplexTextSignal[T]) ValueID() ident.ID {
	if !s.d.valid {
		return ident.Null
	}
	return ident.Of(s.d.text)
}

func (s duplexTextSignal[T]) ReadyToWrite() bool { return s.wrapped.ReadyToWrite() }

func (s duplexTextSignal[T]) Write(text string) error {
	var v T
	if err := FromString(&v, text); err != nil {
		return err
	}
	s.d.text = text
	s.d.valid = true
	return s.wrapped.Write(v)
}
