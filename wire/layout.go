// Package wire implements the FIDL wire format.
//
// A message is a single byte buffer plus a list of handles. Every value has an inline part of fixed size,
// written at an offset chosen by its parent, and may own out-of-line objects appended to the end of the buffer
// in depth-first order, each 8-byte aligned. Handles are moved out of values into the handle list as they are encoded,
// and moved back out of the list, in the same order, when decoding.
//
// Types take part by implementing Encodable and Decodable on their pointer type.
// The package provides the primitive types, strings, vectors, handles, nullability, envelopes,
// and helpers for structs, tuples, arrays, tables and unions.
package wire

import (
	"unsafe"

	"github.com/stewi1014/fidl/encio"
)

// Layout describes the inline part of an encoded value.
// Both methods depend only on the type and context, never on the value; they may be called on a zero value.
type Layout interface {
	// InlineAlignment returns the required alignment of the inline part. It is a nonzero power of two.
	InlineAlignment(ctx Context) int

	// InlineSize returns the size of the inline part, including padding to its alignment.
	InlineSize(ctx Context) int
}

// Encodable is a value that can be written to a message.
type Encodable interface {
	Layout

	// Encode writes exactly InlineSize bytes at offset, zeroing any padding in them,
	// and appends any out-of-line objects with e.WriteOutOfLine.
	// depth is the out-of-line depth of the inline part being written.
	Encode(e *Encoder, offset, depth int) error
}

// Decodable is a value that can be read from a message.
type Decodable interface {
	Layout

	// Decode reads exactly InlineSize bytes from the decoder's current offset,
	// descending into out-of-line objects with d.ReadOutOfLine.
	Decode(d *Decoder) error
}

// Payload can be both encoded and decoded.
type Payload interface {
	Encodable
	Decodable
}

// PayloadPtr constrains a type parameter to be a pointer to T implementing Payload.
type PayloadPtr[T any] interface {
	*T
	Payload
}

// sizeOf returns the inline size of T.
func sizeOf[T any, P PayloadPtr[T]](ctx Context) int {
	var zero T
	return P(&zero).InlineSize(ctx)
}

// alignOf returns the inline alignment of T.
func alignOf[T any, P PayloadPtr[T]](ctx Context) int {
	var zero T
	return P(&zero).InlineAlignment(ctx)
}

// VectorLayout is embedded by types encoded with a vector header: vectors, strings and tables.
type VectorLayout struct{}

// InlineAlignment implements Layout.
func (VectorLayout) InlineAlignment(Context) int { return 8 }

// InlineSize implements Layout.
func (VectorLayout) InlineSize(Context) int { return 16 }

// TableLayout is embedded by table types.
type TableLayout = VectorLayout

// UnionLayout is embedded by tagged union and result types.
type UnionLayout struct{}

// InlineAlignment implements Layout.
func (UnionLayout) InlineAlignment(Context) int { return 8 }

// InlineSize implements Layout.
func (UnionLayout) InlineSize(Context) int { return 24 }

// StructLayout is the fixed layout of a struct. Struct types usually return it from their Layout methods.
type StructLayout struct {
	Size      int
	Alignment int
}

// InlineAlignment implements Layout.
func (s StructLayout) InlineAlignment(Context) int { return s.Alignment }

// InlineSize implements Layout.
func (s StructLayout) InlineSize(Context) int { return s.Size }

// ArrayLayout returns the layout of a fixed array of n elements of type T.
func ArrayLayout[T any, P PayloadPtr[T]](ctx Context, n int) StructLayout {
	return StructLayout{
		Size:      n * sizeOf[T, P](ctx),
		Alignment: alignOf[T, P](ctx),
	}
}

// littleEndian is true when the host's integer layout matches the wire's.
var littleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// rawBytes returns the memory backing s if its elements are fixed-width integers
// laid out on this host exactly as on the wire.
func rawBytes[T any](s []T) ([]byte, bool) {
	if !littleEndian {
		return nil, false
	}
	var zero T
	switch any(zero).(type) {
	case Uint8, Int8, Uint16, Int16, Uint32, Int32, Uint64, Int64:
	default:
		return nil, false
	}
	if len(s) == 0 {
		return []byte{}, true
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero))), true
}

func round8(n int) int {
	return encio.Round8(n)
}
