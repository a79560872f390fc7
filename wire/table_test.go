package wire_test

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/fidl/conformance"
	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
	"github.com/stewi1014/fidl/wire/wiretest"
)

func TestTableGolden(t *testing.T) {
	testCases := []struct {
		desc   string
		vector string
		table  wiretest.SimpleTable
	}{
		{desc: "x and y", vector: "simple_table_xy", table: wiretest.SimpleTable{X: ptr(wire.Int64(42)), Y: ptr(wire.Int64(67))}},
		{desc: "y only", vector: "simple_table_y", table: wiretest.SimpleTable{Y: ptr(wire.Int64(67))}},
		{desc: "empty", vector: "simple_table_empty", table: wiretest.SimpleTable{}},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			encodeAssertBytes(t, tC.table, conformance.MustBytes(tC.vector))
			identity(t, tC.table)
		})
	}
}

func TestTableStringAndVectorGolden(t *testing.T) {
	table := wiretest.TableWithStringAndVector{
		Foo: ptr(wire.String("hello")),
		Bar: ptr(wire.Int32(27)),
	}
	encodeAssertBytes(t, table, conformance.MustBytes("table_string_and_vector_hello_27"))

	table.Baz = &wire.Bytes{1, 2, 3}
	identity(t, table)
}

func TestTableEncodePrefixDecodeFull(t *testing.T) {
	in := wiretest.TablePrefix{Num: ptr(wire.Int32(5))}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	var out wiretest.MyTable
	td.CmpNoError(t, wire.Unmarshal(b, handles, &out))
	td.Cmp(t, out, wiretest.MyTable{Num: ptr(wire.Int32(5))})
}

func TestTableOmitsAbsentTail(t *testing.T) {
	in := wiretest.MyTable{Num: ptr(wire.Int32(5))}
	b, _, err := wire.Marshal(&in)
	td.CmpNoError(t, err)
	td.Cmp(t, b[:16], words(1, present), "only the first envelope is written")

	var out wiretest.TablePrefix
	td.CmpNoError(t, wire.Unmarshal(b, nil, &out))
	td.Cmp(t, out, wiretest.TablePrefix{Num: ptr(wire.Int32(5))})
}

func TestTableIgnoresUnknownTail(t *testing.T) {
	handle := wire.Handle(77)
	in := wiretest.MyTable{
		Num:    ptr(wire.Int32(5)),
		Str:    ptr(wire.String("foo")),
		Handle: &handle,
	}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)
	td.Cmp(t, handles, []wire.Handle{77})

	var out wiretest.TablePrefix
	td.CmpNoError(t, wire.Unmarshal(b, handles, &out))
	td.Cmp(t, out, wiretest.TablePrefix{Num: ptr(wire.Int32(5))})
	td.Cmp(t, handles, []wire.Handle{wire.HandleInvalid}, "unknown handles are consumed")
}

func TestTableHandle(t *testing.T) {
	handle := wire.Handle(3)
	in := wiretest.MyTable{Handle: &handle}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)
	td.Cmp(t, handle, wire.HandleInvalid)
	td.Cmp(t, handles, []wire.Handle{3})
	// envelope 4 holds 8 bytes and 1 handle
	td.Cmp(t, b[16+3*16:16+4*16], words(1<<32|8, present))

	var out wiretest.MyTable
	td.CmpNoError(t, wire.Unmarshal(b, handles, &out))
	td.Cmp(t, out, wiretest.MyTable{Handle: ptr(wire.Handle(3))})
}

func TestTableGaps(t *testing.T) {
	// decoding a table that skips over unknown ordinals
	in := wiretest.TableWithoutGaps{First: ptr(wire.Int32(1)), Second: ptr(wire.Int32(2))}
	b, _, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	var gaps wiretest.TableWithGaps
	td.CmpNoError(t, wire.Unmarshal(b, nil, &gaps))
	td.Cmp(t, gaps, wiretest.TableWithGaps{Second: ptr(wire.Int32(2))})

	// and one whose gaps the receiver doesn't declare
	gaps = wiretest.TableWithGaps{Second: ptr(wire.Int32(2)), Fourth: ptr(wire.Int32(4))}
	b, _, err = wire.Marshal(&gaps)
	td.CmpNoError(t, err)
	td.Cmp(t, b[:16], words(4, present))
	td.Cmp(t, b[16:32], words(0, absent), "reserved ordinal 1")
	td.Cmp(t, b[48:64], words(0, absent), "reserved ordinal 3")
	identity(t, gaps)

	var noGaps wiretest.TableWithoutGaps
	td.CmpNoError(t, wire.Unmarshal(b, nil, &noGaps))
	td.Cmp(t, noGaps, wiretest.TableWithoutGaps{Second: ptr(wire.Int32(2))})
}

func TestTableDecodeClearsStale(t *testing.T) {
	out := wiretest.SimpleTable{X: ptr(wire.Int64(1)), Y: ptr(wire.Int64(2))}
	td.CmpNoError(t, wire.Unmarshal(conformance.MustBytes("simple_table_y"), nil, &out))
	td.Cmp(t, out, wiretest.SimpleTable{Y: ptr(wire.Int64(67))})

	td.CmpNoError(t, wire.Unmarshal(conformance.MustBytes("simple_table_empty"), nil, &out))
	td.Cmp(t, out, wiretest.SimpleTable{})
}

func TestTableMalformed(t *testing.T) {
	testCases := []struct {
		desc string
		b    []byte
		want error
	}{
		{
			desc: "absent",
			b:    words(0, absent),
			want: encio.ErrInvalid,
		},
		{
			desc: "bad envelope presence",
			b:    words(1, present, 8, 1, 42),
			want: encio.ErrInvalid,
		},
		{
			desc: "absent envelope with bytes",
			b:    words(1, present, 8, absent),
			want: encio.ErrUnexpectedNullRef,
		},
		{
			desc: "envelope byte count too big",
			b:    words(2, present, 0, absent, 16, present, 42),
			want: encio.ErrInvalid,
		},
		{
			desc: "envelope handle count wrong",
			b:    words(2, present, 0, absent, 1<<32|8, present, 42),
			want: encio.ErrInvalid,
		},
		{
			desc: "field bad presence",
			b:    words(2, present, 0, absent, 8, 7, 42),
			want: encio.ErrInvalid,
		},
		{
			desc: "count past end",
			b:    words(100, present),
			want: encio.ErrOutOfRange,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			decodeErr[wiretest.TableWithGaps](t, tC.b, nil, tC.want)
		})
	}
}

func TestTableFieldOrdinalZero(t *testing.T) {
	var x *wire.Int64
	td.CmpPanic(t, func() { wire.TableField(0, &x) }, "table ordinals start at 1")
}

// misorderedTable declares its members out of order.
type misorderedTable struct {
	wire.TableLayout

	ordinals [2]uint64
	A, B     *wire.Int32
}

func (t *misorderedTable) members() []wire.TableMember {
	return []wire.TableMember{
		wire.TableField(t.ordinals[0], &t.A),
		wire.TableField(t.ordinals[1], &t.B),
	}
}

func (t *misorderedTable) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeTable(e, offset, depth, t.members()...)
}

func (t *misorderedTable) Decode(d *wire.Decoder) error {
	return wire.DecodeTable(d, t.members()...)
}

func TestTableMemberOrder(t *testing.T) {
	testCases := []struct {
		desc     string
		ordinals [2]uint64
		want     string
	}{
		{desc: "descending", ordinals: [2]uint64{2, 1}, want: "1 follows 2"},
		{desc: "repeated", ordinals: [2]uint64{3, 3}, want: "3 follows 3"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			a, b := wire.Int32(1), wire.Int32(2)
			table := misorderedTable{ordinals: tC.ordinals, A: &a, B: &b}
			want := td.All(td.Contains("ascending ordinal order"), td.Contains(tC.want))

			td.CmpPanic(t, func() { _, _, _ = wire.Marshal(&table) }, want)

			var out misorderedTable
			out.ordinals = tC.ordinals
			td.CmpPanic(t, func() { _ = wire.Unmarshal(words(0, present), nil, &out) }, want)
		})
	}
}

func TestTableUnknownEnvelopeHandles(t *testing.T) {
	handle := wire.Handle(8)
	in := wiretest.MyTable{Handle: &handle}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	// the unknown envelope claims a handle the message doesn't have
	var out wiretest.TablePrefix
	err = wire.Unmarshal(b, nil, &out)
	td.CmpTrue(t, errors.Is(err, encio.ErrOutOfRange))

	td.CmpNoError(t, wire.Unmarshal(b, handles, &out))
}
