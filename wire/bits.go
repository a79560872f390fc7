package wire

import (
	"slices"
	"unsafe"

	"github.com/stewi1014/fidl/encio"
)

// Integer is the set of types that can underlie bits and enums.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of types that can underlie bits.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IntegerLayout returns the layout of the integer type I.
func IntegerLayout[I Integer]() StructLayout {
	var zero I
	size := int(unsafe.Sizeof(zero))
	return StructLayout{Size: size, Alignment: size}
}

// EncodeInteger writes v at offset with the width of I.
func EncodeInteger[I Integer](e *Encoder, offset int, v I) {
	switch unsafe.Sizeof(v) {
	case 1:
		e.PutUint8(offset, uint8(v))
	case 2:
		e.PutUint16(offset, uint16(v))
	case 4:
		e.PutUint32(offset, uint32(v))
	default:
		e.PutUint64(offset, uint64(v))
	}
}

// DecodeInteger reads a value with the width of I.
func DecodeInteger[I Integer](d *Decoder) (I, error) {
	var v I
	switch unsafe.Sizeof(v) {
	case 1:
		n, err := d.Uint8()
		return I(n), err
	case 2:
		n, err := d.Uint16()
		return I(n), err
	case 4:
		n, err := d.Uint32()
		return I(n), err
	default:
		n, err := d.Uint64()
		return I(n), err
	}
}

// DecodeBits reads a bits value, rejecting any bit not in mask.
func DecodeBits[U Unsigned](d *Decoder, mask U) (U, error) {
	v, err := DecodeInteger[U](d)
	if err != nil {
		return 0, err
	}
	if v&^mask != 0 {
		return 0, encio.Errorf(encio.ErrInvalid, "unknown bits %#x", uint64(v&^mask))
	}
	return v, nil
}

// DecodeEnum reads an enum value, rejecting any value not in known.
func DecodeEnum[I Integer](d *Decoder, known ...I) (I, error) {
	v, err := DecodeInteger[I](d)
	if err != nil {
		return 0, err
	}
	if !slices.Contains(known, v) {
		return 0, encio.Errorf(encio.ErrInvalid, "unknown enum value %v", int64(v))
	}
	return v, nil
}
