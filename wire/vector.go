package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// EncodeAbsentVector writes the header of an absent vector or string.
func EncodeAbsentVector(e *Encoder, offset int) {
	e.PutUint64(offset, 0)
	e.PutUint64(offset+8, encio.AllocAbsent64)
}

// encodeVectorHeader writes the header of a present vector of n elements.
func encodeVectorHeader(e *Encoder, offset, n int) {
	e.PutUint64(offset, uint64(n))
	e.PutUint64(offset+8, encio.AllocPresent64)
}

// encodeBytesVector writes a present vector of bytes, appending them directly.
func encodeBytesVector(e *Encoder, offset, depth int, b []byte) error {
	encodeVectorHeader(e, offset, len(b))
	if err := CheckRecursionDepth(depth + 1); err != nil {
		return err
	}
	e.AppendBytes(b)
	return nil
}

// decodeVectorHeader reads a vector header, returning the element count and presence.
func decodeVectorHeader(d *Decoder) (n int, present bool, err error) {
	count, err := d.Uint64()
	if err != nil {
		return 0, false, err
	}
	presence, err := d.Uint64()
	if err != nil {
		return 0, false, err
	}

	switch presence {
	case encio.AllocAbsent64:
		if count != 0 {
			return 0, false, encio.Errorf(encio.ErrUnexpectedNullRef, "absent vector with %v elements", count)
		}
		return 0, false, nil
	case encio.AllocPresent64:
	default:
		return 0, false, encio.Errorf(encio.ErrInvalid, "vector presence %#x", presence)
	}

	// no element is smaller than a byte, bar unit
	if count > uint64(len(d.buf)) {
		return 0, false, encio.Errorf(encio.ErrOutOfRange, "vector of %v elements in %v byte message", count, len(d.buf))
	}
	return int(count), true, nil
}

// decodeBytesVector reads the body of a present vector of n bytes.
func decodeBytesVector(d *Decoder, n int) (b []byte, err error) {
	err = d.ReadOutOfLine(n, func(d *Decoder) error {
		src, err := d.Next(n)
		b = make([]byte, n)
		copy(b, src)
		return err
	})
	return
}

// EncodeArray writes the elements of a fixed array at offset.
// Arrays of fixed-width integers are copied in bulk.
func EncodeArray[T any, P PayloadPtr[T]](e *Encoder, offset, depth int, elems []T) error {
	if raw, ok := rawBytes(elems); ok {
		copy(e.buf[offset:], raw)
		return nil
	}

	stride := sizeOf[T, P](e.ctx)
	for i := range elems {
		if err := P(&elems[i]).Encode(e, offset+i*stride, depth); err != nil {
			return err
		}
	}
	return nil
}

// DecodeArray reads len(elems) elements into elems.
func DecodeArray[T any, P PayloadPtr[T]](d *Decoder, elems []T) error {
	if raw, ok := rawBytes(elems); ok {
		src, err := d.Next(len(raw))
		copy(raw, src)
		return err
	}

	for i := range elems {
		if err := P(&elems[i]).Decode(d); err != nil {
			return err
		}
	}
	return nil
}

func encodeVector[T any, P PayloadPtr[T]](e *Encoder, offset, depth int, elems []T) error {
	encodeVectorHeader(e, offset, len(elems))
	if len(elems) == 0 {
		return nil
	}
	return e.WriteOutOfLine(len(elems)*sizeOf[T, P](e.ctx), depth, func(e *Encoder, offset, depth int) error {
		return EncodeArray[T, P](e, offset, depth, elems)
	})
}

func decodeVector[T any, P PayloadPtr[T]](d *Decoder) (elems []T, present bool, err error) {
	n, present, err := decodeVectorHeader(d)
	if err != nil || !present {
		return nil, present, err
	}

	// allocated once the block is known to fit
	err = d.ReadOutOfLine(n*sizeOf[T, P](d.ctx), func(d *Decoder) error {
		elems = make([]T, n)
		return DecodeArray[T, P](d, elems)
	})
	return elems, true, err
}

// Vector is a variable length sequence of T. It is never absent; nil encodes as empty.
type Vector[T any, P PayloadPtr[T]] []T

func (*Vector[T, P]) InlineAlignment(Context) int { return 8 }
func (*Vector[T, P]) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (v *Vector[T, P]) Encode(e *Encoder, offset, depth int) error {
	return encodeVector[T, P](e, offset, depth, *v)
}

// Decode implements Decodable.
func (v *Vector[T, P]) Decode(d *Decoder) error {
	elems, present, err := decodeVector[T, P](d)
	if err != nil {
		return err
	}
	if !present {
		return encio.Errorf(encio.ErrNotNullable, "absent vector")
	}
	*v = elems
	return nil
}

// NullableVector is a vector that may be absent. nil is absent; an empty non-nil slice is present and empty.
type NullableVector[T any, P PayloadPtr[T]] []T

func (*NullableVector[T, P]) InlineAlignment(Context) int { return 8 }
func (*NullableVector[T, P]) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (v *NullableVector[T, P]) Encode(e *Encoder, offset, depth int) error {
	if *v == nil {
		EncodeAbsentVector(e, offset)
		return nil
	}
	return encodeVector[T, P](e, offset, depth, *v)
}

// Decode implements Decodable.
func (v *NullableVector[T, P]) Decode(d *Decoder) error {
	elems, _, err := decodeVector[T, P](d)
	*v = elems
	return err
}

// Bytes is a vector of bytes. It is never absent; nil encodes as empty.
type Bytes []byte

func (*Bytes) InlineAlignment(Context) int { return 8 }
func (*Bytes) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (b *Bytes) Encode(e *Encoder, offset, depth int) error {
	return encodeBytesVector(e, offset, depth, *b)
}

// Decode implements Decodable.
func (b *Bytes) Decode(d *Decoder) error {
	n, present, err := decodeVectorHeader(d)
	if err != nil {
		return err
	}
	if !present {
		return encio.Errorf(encio.ErrNotNullable, "absent vector")
	}
	*b, err = decodeBytesVector(d, n)
	return err
}

// NullableBytes is a vector of bytes that may be absent. nil is absent.
type NullableBytes []byte

func (*NullableBytes) InlineAlignment(Context) int { return 8 }
func (*NullableBytes) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (b *NullableBytes) Encode(e *Encoder, offset, depth int) error {
	if *b == nil {
		EncodeAbsentVector(e, offset)
		return nil
	}
	return encodeBytesVector(e, offset, depth, *b)
}

// Decode implements Decodable.
func (b *NullableBytes) Decode(d *Decoder) error {
	n, present, err := decodeVectorHeader(d)
	if err != nil || !present {
		*b = nil
		return err
	}
	v, err := decodeBytesVector(d, n)
	*b = v
	return err
}
