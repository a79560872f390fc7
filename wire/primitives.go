package wire

import (
	"math"

	"github.com/stewi1014/fidl/encio"
)

// Scalar types. Each is encoded little-endian with size and alignment equal to its width.
type (
	Uint8   uint8
	Int8    int8
	Uint16  uint16
	Int16   int16
	Uint32  uint32
	Int32   int32
	Uint64  uint64
	Int64   int64
	Float32 float32
	Float64 float64
	Bool    bool
)

func (*Uint8) InlineAlignment(Context) int   { return 1 }
func (*Uint8) InlineSize(Context) int        { return 1 }
func (*Int8) InlineAlignment(Context) int    { return 1 }
func (*Int8) InlineSize(Context) int         { return 1 }
func (*Uint16) InlineAlignment(Context) int  { return 2 }
func (*Uint16) InlineSize(Context) int       { return 2 }
func (*Int16) InlineAlignment(Context) int   { return 2 }
func (*Int16) InlineSize(Context) int        { return 2 }
func (*Uint32) InlineAlignment(Context) int  { return 4 }
func (*Uint32) InlineSize(Context) int       { return 4 }
func (*Int32) InlineAlignment(Context) int   { return 4 }
func (*Int32) InlineSize(Context) int        { return 4 }
func (*Uint64) InlineAlignment(Context) int  { return 8 }
func (*Uint64) InlineSize(Context) int       { return 8 }
func (*Int64) InlineAlignment(Context) int   { return 8 }
func (*Int64) InlineSize(Context) int        { return 8 }
func (*Float32) InlineAlignment(Context) int { return 4 }
func (*Float32) InlineSize(Context) int      { return 4 }
func (*Float64) InlineAlignment(Context) int { return 8 }
func (*Float64) InlineSize(Context) int      { return 8 }
func (*Bool) InlineAlignment(Context) int    { return 1 }
func (*Bool) InlineSize(Context) int         { return 1 }

// Encode implements Encodable.
func (n *Uint8) Encode(e *Encoder, offset, _ int) error {
	e.PutUint8(offset, uint8(*n))
	return nil
}

// Decode implements Decodable.
func (n *Uint8) Decode(d *Decoder) error {
	v, err := d.Uint8()
	*n = Uint8(v)
	return err
}

// Encode implements Encodable.
func (n *Int8) Encode(e *Encoder, offset, _ int) error {
	e.PutUint8(offset, uint8(*n))
	return nil
}

// Decode implements Decodable.
func (n *Int8) Decode(d *Decoder) error {
	v, err := d.Uint8()
	*n = Int8(v)
	return err
}

// Encode implements Encodable.
func (n *Uint16) Encode(e *Encoder, offset, _ int) error {
	e.PutUint16(offset, uint16(*n))
	return nil
}

// Decode implements Decodable.
func (n *Uint16) Decode(d *Decoder) error {
	v, err := d.Uint16()
	*n = Uint16(v)
	return err
}

// Encode implements Encodable.
func (n *Int16) Encode(e *Encoder, offset, _ int) error {
	e.PutUint16(offset, uint16(*n))
	return nil
}

// Decode implements Decodable.
func (n *Int16) Decode(d *Decoder) error {
	v, err := d.Uint16()
	*n = Int16(v)
	return err
}

// Encode implements Encodable.
func (n *Uint32) Encode(e *Encoder, offset, _ int) error {
	e.PutUint32(offset, uint32(*n))
	return nil
}

// Decode implements Decodable.
func (n *Uint32) Decode(d *Decoder) error {
	v, err := d.Uint32()
	*n = Uint32(v)
	return err
}

// Encode implements Encodable.
func (n *Int32) Encode(e *Encoder, offset, _ int) error {
	e.PutUint32(offset, uint32(*n))
	return nil
}

// Decode implements Decodable.
func (n *Int32) Decode(d *Decoder) error {
	v, err := d.Uint32()
	*n = Int32(v)
	return err
}

// Encode implements Encodable.
func (n *Uint64) Encode(e *Encoder, offset, _ int) error {
	e.PutUint64(offset, uint64(*n))
	return nil
}

// Decode implements Decodable.
func (n *Uint64) Decode(d *Decoder) error {
	v, err := d.Uint64()
	*n = Uint64(v)
	return err
}

// Encode implements Encodable.
func (n *Int64) Encode(e *Encoder, offset, _ int) error {
	e.PutUint64(offset, uint64(*n))
	return nil
}

// Decode implements Decodable.
func (n *Int64) Decode(d *Decoder) error {
	v, err := d.Uint64()
	*n = Int64(v)
	return err
}

// Encode implements Encodable.
func (f *Float32) Encode(e *Encoder, offset, _ int) error {
	e.PutUint32(offset, math.Float32bits(float32(*f)))
	return nil
}

// Decode implements Decodable.
func (f *Float32) Decode(d *Decoder) error {
	v, err := d.Uint32()
	*f = Float32(math.Float32frombits(v))
	return err
}

// Encode implements Encodable.
func (f *Float64) Encode(e *Encoder, offset, _ int) error {
	e.PutUint64(offset, math.Float64bits(float64(*f)))
	return nil
}

// Decode implements Decodable.
func (f *Float64) Decode(d *Decoder) error {
	v, err := d.Uint64()
	*f = Float64(math.Float64frombits(v))
	return err
}

// Encode implements Encodable.
func (b *Bool) Encode(e *Encoder, offset, _ int) error {
	if *b {
		e.PutUint8(offset, 1)
	} else {
		e.PutUint8(offset, 0)
	}
	return nil
}

// Decode implements Decodable.
// Bytes other than 0 and 1 are invalid.
func (b *Bool) Decode(d *Decoder) error {
	v, err := d.Uint8()
	if err != nil {
		return err
	}
	switch v {
	case 0:
		*b = false
	case 1:
		*b = true
	default:
		return encio.Errorf(encio.ErrInvalid, "bool byte %v", v)
	}
	return nil
}

// Unit is the empty payload, such as the response of a method returning nothing.
// It has size 0 and writes nothing.
type Unit struct{}

func (*Unit) InlineAlignment(Context) int { return 1 }
func (*Unit) InlineSize(Context) int      { return 0 }

// Encode implements Encodable.
func (*Unit) Encode(*Encoder, int, int) error { return nil }

// Decode implements Decodable.
func (*Unit) Decode(*Decoder) error { return nil }

// EmptyStruct is a struct with no members. It occupies a single zero byte.
type EmptyStruct struct{}

func (*EmptyStruct) InlineAlignment(Context) int { return 1 }
func (*EmptyStruct) InlineSize(Context) int      { return 1 }

// Encode implements Encodable.
func (*EmptyStruct) Encode(e *Encoder, offset, _ int) error {
	e.PutUint8(offset, 0)
	return nil
}

// Decode implements Decodable.
func (*EmptyStruct) Decode(d *Decoder) error {
	v, err := d.Uint8()
	if err != nil {
		return err
	}
	if v != 0 {
		return encio.Errorf(encio.ErrInvalid, "empty struct byte %v", v)
	}
	return nil
}

// NaturallyNullable implements Autonull.
func (*EmptyStruct) NaturallyNullable(Context) bool { return false }

// Status is a 32 bit status code, as carried by epitaphs.
type Status int32

// StatusOK is the status of success.
const StatusOK Status = 0

func (*Status) InlineAlignment(Context) int { return 4 }
func (*Status) InlineSize(Context) int      { return 4 }

// Encode implements Encodable.
func (s *Status) Encode(e *Encoder, offset, _ int) error {
	e.PutUint32(offset, uint32(*s))
	return nil
}

// Decode implements Decodable.
func (s *Status) Decode(d *Decoder) error {
	v, err := d.Uint32()
	*s = Status(int32(v))
	return err
}
