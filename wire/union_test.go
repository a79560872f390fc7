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

type nullableSampleXUnion = wire.Nullable[wiretest.SampleXUnion, *wiretest.SampleXUnion]

func TestUnionGolden(t *testing.T) {
	want := conformance.MustBytes("xunion_u")
	u := wiretest.NewU(0xdeadbeef)

	encodeAssertBytes(t, u, want)
	encodeAssertBytes(t, wiretest.StrictSampleXUnion{SampleXUnion: u}, want)
	encodeAssertBytes(t, nullableSampleXUnion{Value: &u}, want)
}

func TestUnionNull(t *testing.T) {
	encodeAssertBytes(t, nullableSampleXUnion{}, conformance.MustBytes("xunion_null"))

	var out nullableSampleXUnion
	td.CmpNoError(t, wire.Unmarshal(make([]byte, 24), nil, &out))
	td.CmpNil(t, out.Value)
}

func TestUnionIdentities(t *testing.T) {
	identity(t, wiretest.NewU(7))
	identity(t, wiretest.SampleXUnion{
		Ordinal: wiretest.StOrdinal,
		St:      wiretest.SimpleTable{X: ptr(wire.Int64(1))},
	})
	identity(t, wiretest.StrictBoolXUnion{B: true})
	identity(t, wiretest.BytesXUnion{Variant: wire.Bytes{1, 2, 3}})
	identity(t, wiretest.BytesXUnion{})
	identity(t, wiretest.BigOrdinal{X: 7})
}

func TestUnionBigOrdinal(t *testing.T) {
	encodeAssertBytes(t, wiretest.BigOrdinal{X: 7}, conformance.MustBytes("big_ordinal"))
}

func TestUnionUnknownPassthrough(t *testing.T) {
	in := wiretest.ExpandedXUnion{Ordinal: wiretest.SomethingElseOrdinal, SomethingElse: 7}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)
	td.Cmp(t, handles, []wire.Handle{7})

	var flexible wiretest.SampleXUnion
	td.CmpNoError(t, wire.Unmarshal(b, handles, &flexible))
	td.Cmp(t, flexible.Ordinal, uint64(wiretest.SomethingElseOrdinal))
	td.Cmp(t, flexible.Unknown, wire.UnknownVariant{
		Ordinal: wiretest.SomethingElseOrdinal,
		Bytes:   []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0},
		Handles: []wire.Handle{7},
	})
	td.Cmp(t, handles, []wire.Handle{wire.HandleInvalid}, "handles are moved out of the message")

	again, againHandles, err := wire.Marshal(&flexible)
	td.CmpNoError(t, err)
	td.Cmp(t, again, b)
	td.Cmp(t, againHandles, []wire.Handle{7})
	td.Cmp(t, flexible.Unknown.Handles, []wire.Handle{wire.HandleInvalid})

	var out wiretest.ExpandedXUnion
	td.CmpNoError(t, wire.Unmarshal(again, againHandles, &out))
	td.Cmp(t, out.Ordinal, uint64(wiretest.SomethingElseOrdinal))
	td.Cmp(t, out.SomethingElse, wire.Handle(7))
}

func TestUnionUnknownOutOfLine(t *testing.T) {
	// an unknown variant's bytes include everything it owns out of line
	in := wiretest.SampleXUnion{
		Ordinal: wiretest.StOrdinal,
		St:      wiretest.SimpleTable{Y: ptr(wire.Int64(67))},
	}
	b, _, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	var out wiretest.ExpandedXUnion
	td.CmpNoError(t, wire.Unmarshal(b, nil, &out))
	td.Cmp(t, out.Unknown.Ordinal, uint64(wiretest.StOrdinal))
	td.CmpLen(t, out.Unknown.Bytes, 16+5*16+8)

	again, _, err := wire.Marshal(&out)
	td.CmpNoError(t, err)
	td.Cmp(t, again, b)
}

func TestUnionStrictUnknown(t *testing.T) {
	in := wiretest.ExpandedXUnion{Ordinal: wiretest.SomethingElseOrdinal, SomethingElse: 7}
	b, handles, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	var strict wiretest.StrictSampleXUnion
	err = wire.Unmarshal(b, handles, &strict)
	td.CmpTrue(t, errors.Is(err, encio.ErrUnknownUnionTag))
	td.Cmp(t, err.Error(), td.Contains("0x37"))

	decodeErr[wiretest.StrictBoolXUnion](t, conformance.MustBytes("xunion_strict_unknown"), nil, encio.ErrUnknownUnionTag)
}

func TestUnionMalformed(t *testing.T) {
	testCases := []struct {
		desc string
		b    []byte
		want error
	}{
		{desc: "absent envelope", b: words(wiretest.UOrdinal, 0, absent), want: encio.ErrInvalid},
		{desc: "bad presence", b: words(wiretest.UOrdinal, 8, 1, 0), want: encio.ErrInvalid},
		{desc: "unknown handles missing", b: words(99, 1<<32|8, present, 0), want: encio.ErrOutOfRange},
		{desc: "unknown bytes past end", b: words(99, 64, present, 0), want: encio.ErrOutOfRange},
		{desc: "known variant padding", b: words(wiretest.UOrdinal, 8, present, 1<<32), want: encio.ErrNonZeroPadding},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			decodeErr[wiretest.SampleXUnion](t, tC.b, nil, tC.want)
		})
	}
}

func TestBytesXUnionUnknown(t *testing.T) {
	in := wiretest.StrictBoolXUnion{B: true}
	b, _, err := wire.Marshal(&in)
	td.CmpNoError(t, err)

	var out wiretest.BytesXUnion
	td.CmpError(t, wire.Unmarshal(b, nil, &out))
}
