package wiretest

import (
	"fmt"

	"github.com/stewi1014/fidl/wire"
)

// Ordinals of SampleXUnion's variants.
const (
	UOrdinal  = 0x29df47a5
	StOrdinal = 0x6f317664
)

// SampleXUnion is a flexible union of a uint32 and a SimpleTable.
type SampleXUnion struct {
	wire.UnionLayout

	Ordinal uint64
	U       wire.Uint32
	St      SimpleTable
	Unknown wire.UnknownVariant
}

// NewU returns a SampleXUnion holding u.
func NewU(u uint32) SampleXUnion {
	return SampleXUnion{Ordinal: UOrdinal, U: wire.Uint32(u)}
}

func (u *SampleXUnion) variant(ordinal uint64) wire.Decodable {
	switch ordinal {
	case UOrdinal:
		return &u.U
	case StOrdinal:
		return &u.St
	}
	return nil
}

// Encode implements wire.Encodable.
func (u *SampleXUnion) Encode(e *wire.Encoder, offset, depth int) error {
	switch u.Ordinal {
	case UOrdinal:
		return wire.EncodeUnion(e, offset, depth, UOrdinal, &u.U)
	case StOrdinal:
		return wire.EncodeUnion(e, offset, depth, StOrdinal, &u.St)
	default:
		return u.Unknown.Encode(e, offset, depth)
	}
}

// Decode implements wire.Decodable.
func (u *SampleXUnion) Decode(d *wire.Decoder) (err error) {
	u.Ordinal, err = wire.DecodeUnion(d, u.variant, &u.Unknown)
	return
}

// NaturallyNullable implements wire.Autonull.
func (*SampleXUnion) NaturallyNullable(wire.Context) bool { return true }

// StrictSampleXUnion is SampleXUnion, but rejecting unknown variants.
type StrictSampleXUnion struct {
	SampleXUnion
}

// Decode implements wire.Decodable.
func (u *StrictSampleXUnion) Decode(d *wire.Decoder) (err error) {
	u.Ordinal, err = wire.DecodeUnion(d, u.variant, nil)
	return
}

// ExpandedXUnion is a flexible union whose only variant SampleXUnion doesn't know.
type ExpandedXUnion struct {
	wire.UnionLayout

	Ordinal       uint64
	SomethingElse wire.Handle
	Unknown       wire.UnknownVariant
}

// SomethingElseOrdinal is the ordinal of ExpandedXUnion.SomethingElse.
const SomethingElseOrdinal = 55

// Encode implements wire.Encodable.
func (u *ExpandedXUnion) Encode(e *wire.Encoder, offset, depth int) error {
	if u.Ordinal == SomethingElseOrdinal {
		return wire.EncodeUnion(e, offset, depth, SomethingElseOrdinal, &u.SomethingElse)
	}
	return u.Unknown.Encode(e, offset, depth)
}

// Decode implements wire.Decodable.
func (u *ExpandedXUnion) Decode(d *wire.Decoder) (err error) {
	u.Ordinal, err = wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		if ordinal == SomethingElseOrdinal {
			return &u.SomethingElse
		}
		return nil
	}, &u.Unknown)
	return
}

// BytesXUnion is a flexible union with a single vector variant at ordinal 1.
type BytesXUnion struct {
	wire.UnionLayout

	Variant wire.Bytes
}

// Encode implements wire.Encodable.
func (u *BytesXUnion) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeUnion(e, offset, depth, 1, &u.Variant)
}

// Decode implements wire.Decodable.
func (u *BytesXUnion) Decode(d *wire.Decoder) error {
	var unknown wire.UnknownVariant
	ordinal, err := wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		if ordinal == 1 {
			return &u.Variant
		}
		return nil
	}, &unknown)
	if err == nil && ordinal != 1 {
		return fmt.Errorf("BytesXUnion received unknown ordinal %v", ordinal)
	}
	return err
}

// NaturallyNullable implements wire.Autonull.
func (*BytesXUnion) NaturallyNullable(wire.Context) bool { return true }

// StrictBoolXUnion is a strict union with a single bool variant at ordinal 12345.
type StrictBoolXUnion struct {
	wire.UnionLayout

	B wire.Bool
}

// Encode implements wire.Encodable.
func (u *StrictBoolXUnion) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeUnion(e, offset, depth, 12345, &u.B)
}

// Decode implements wire.Decodable.
func (u *StrictBoolXUnion) Decode(d *wire.Decoder) error {
	_, err := wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		if ordinal == 12345 {
			return &u.B
		}
		return nil
	}, nil)
	return err
}

// OkayOrError is a strict union with the same shape as a Result of uint64 and uint32.
type OkayOrError struct {
	wire.UnionLayout

	IsError bool
	Okay    wire.Uint64
	Error   wire.Uint32
}

// Encode implements wire.Encodable.
func (u *OkayOrError) Encode(e *wire.Encoder, offset, depth int) error {
	if u.IsError {
		return wire.EncodeUnion(e, offset, depth, 2, &u.Error)
	}
	return wire.EncodeUnion(e, offset, depth, 1, &u.Okay)
}

// Decode implements wire.Decodable.
func (u *OkayOrError) Decode(d *wire.Decoder) error {
	ordinal, err := wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		switch ordinal {
		case 1:
			return &u.Okay
		case 2:
			return &u.Error
		}
		return nil
	}, nil)
	u.IsError = ordinal == 2
	return err
}

// EmptyOrError is a strict union with the same shape as a Result of unit and int32.
type EmptyOrError struct {
	wire.UnionLayout

	IsError bool
	Okay    wire.EmptyStruct
	Error   wire.Int32
}

// Encode implements wire.Encodable.
func (u *EmptyOrError) Encode(e *wire.Encoder, offset, depth int) error {
	if u.IsError {
		return wire.EncodeUnion(e, offset, depth, 2, &u.Error)
	}
	return wire.EncodeUnion(e, offset, depth, 1, &u.Okay)
}

// Decode implements wire.Decodable.
func (u *EmptyOrError) Decode(d *wire.Decoder) error {
	ordinal, err := wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		switch ordinal {
		case 1:
			return &u.Okay
		case 2:
			return &u.Error
		}
		return nil
	}, nil)
	u.IsError = ordinal == 2
	return err
}

// BigOrdinal is a union with a variant at ordinal 0xffffffff.
type BigOrdinal struct {
	wire.UnionLayout

	X wire.Uint64
}

// BigOrdinalX is the ordinal of BigOrdinal.X.
const BigOrdinalX = 0xffffffff

// Encode implements wire.Encodable.
func (u *BigOrdinal) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeUnion(e, offset, depth, BigOrdinalX, &u.X)
}

// Decode implements wire.Decodable.
func (u *BigOrdinal) Decode(d *wire.Decoder) error {
	_, err := wire.DecodeUnion(d, func(ordinal uint64) wire.Decodable {
		if ordinal == BigOrdinalX {
			return &u.X
		}
		return nil
	}, nil)
	return err
}
