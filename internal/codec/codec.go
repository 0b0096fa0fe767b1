// Package codec converts keys and values to and from the text form stored in
// data files.
package codec

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrParse is wrapped by every decode failure.
var ErrParse = errors.New("codec: parse error")

// Codec round-trips a value of type T through text.
type Codec[T any] interface {
	Encode(v T) string
	Decode(s string) (T, error)
}

type funcCodec[T any] struct {
	encode func(T) string
	decode func(string) (T, error)
}

// Func builds a Codec from a pair of functions. Decode errors are wrapped
// with ErrParse.
func Func[T any](encode func(T) string, decode func(string) (T, error)) Codec[T] {
	return funcCodec[T]{encode: encode, decode: decode}
}

func (c funcCodec[T]) Encode(v T) string { return c.encode(v) }

func (c funcCodec[T]) Decode(s string) (T, error) {
	v, err := c.decode(s)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}
	return v, nil
}

// String is the identity codec.
func String() Codec[string] {
	return Func(
		func(s string) string { return s },
		func(s string) (string, error) { return s, nil },
	)
}

// Int encodes ints in base 10.
func Int() Codec[int] {
	return Func(strconv.Itoa, strconv.Atoi)
}

// Int64 encodes int64 values in base 10.
func Int64() Codec[int64] {
	return Func(
		func(v int64) string { return strconv.FormatInt(v, 10) },
		func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
	)
}

// Uint64 encodes uint64 values in base 10.
func Uint64() Codec[uint64] {
	return Func(
		func(v uint64) string { return strconv.FormatUint(v, 10) },
		func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) },
	)
}

// Float64 uses the shortest representation that round-trips exactly.
func Float64() Codec[float64] {
	return Func(
		func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	)
}

// Bool encodes booleans as "true" or "false".
func Bool() Codec[bool] {
	return Func(strconv.FormatBool, strconv.ParseBool)
}
