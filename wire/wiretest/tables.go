package wiretest

import (
	"github.com/stewi1014/fidl/wire"
)

// SimpleTable has fields at ordinals 1 and 5.
type SimpleTable struct {
	wire.TableLayout

	X *wire.Int64
	Y *wire.Int64
}

func (t *SimpleTable) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(1, &t.X),
		wire.TableField(5, &t.Y),
	}
}

// Encode implements wire.Encodable.
func (t *SimpleTable) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *SimpleTable) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

// TableWithStringAndVector has out-of-line fields.
type TableWithStringAndVector struct {
	wire.TableLayout

	Foo *wire.String
	Bar *wire.Int32
	Baz *wire.Bytes
}

func (t *TableWithStringAndVector) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(1, &t.Foo),
		wire.TableField(2, &t.Bar),
		wire.TableField(3, &t.Baz),
	}
}

// Encode implements wire.Encodable.
func (t *TableWithStringAndVector) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *TableWithStringAndVector) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

// TableWithGaps declares ordinals 2 and 4 only.
type TableWithGaps struct {
	wire.TableLayout

	Second *wire.Int32
	Fourth *wire.Int32
}

func (t *TableWithGaps) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(2, &t.Second),
		wire.TableField(4, &t.Fourth),
	}
}

// Encode implements wire.Encodable.
func (t *TableWithGaps) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *TableWithGaps) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

// TableWithoutGaps declares ordinals 1 and 2.
type TableWithoutGaps struct {
	wire.TableLayout

	First  *wire.Int32
	Second *wire.Int32
}

func (t *TableWithoutGaps) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(1, &t.First),
		wire.TableField(2, &t.Second),
	}
}

// Encode implements wire.Encodable.
func (t *TableWithoutGaps) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *TableWithoutGaps) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

// MyTable has a handle field and an always absent field.
type MyTable struct {
	wire.TableLayout

	Num     *wire.Int32
	NumNone *wire.Int32
	Str     *wire.String
	Handle  *wire.Handle
}

func (t *MyTable) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(1, &t.Num),
		wire.TableField(2, &t.NumNone),
		wire.TableField(3, &t.Str),
		wire.TableField(4, &t.Handle),
	}
}

// Encode implements wire.Encodable.
func (t *MyTable) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *MyTable) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

// TablePrefix is an older revision of MyTable declaring only its first two fields.
type TablePrefix struct {
	wire.TableLayout

	Num     *wire.Int32
	NumNone *wire.Int32
}

func (t *TablePrefix) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(1, &t.Num),
		wire.TableField(2, &t.NumNone),
	}
}

// Encode implements wire.Encodable.
func (t *TablePrefix) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

// Decode implements wire.Decodable.
func (t *TablePrefix) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}
