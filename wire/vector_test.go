package wire_test

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/fidl/conformance"
	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
	"github.com/stewi1014/fidl/wire/wiretest"
)

type (
	uint32Vector         = wire.Vector[wire.Uint32, *wire.Uint32]
	nullableUint32Vector = wire.NullableVector[wire.Uint32, *wire.Uint32]
	stringVector         = wire.Vector[wire.String, *wire.String]
	buttonsVector        = wire.Vector[wiretest.Buttons, *wiretest.Buttons]
	fooVector            = wire.Vector[wiretest.Foo, *wiretest.Foo]
	boolVector           = wire.Vector[wire.Bool, *wire.Bool]
)

func TestVectorEncoding(t *testing.T) {
	testCases := []struct {
		desc string
		v    wire.Payload
		want []byte
	}{
		{
			desc: "uint32s",
			v:    &uint32Vector{1, 2, 3},
			want: append(words(3, present), 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0),
		},
		{
			desc: "empty",
			v:    &uint32Vector{},
			want: words(0, present),
		},
		{
			desc: "nil is empty",
			v:    new(uint32Vector),
			want: words(0, present),
		},
		{
			desc: "nullable nil is absent",
			v:    new(nullableUint32Vector),
			want: words(0, absent),
		},
		{
			desc: "nullable empty is present",
			v:    &nullableUint32Vector{},
			want: words(0, present),
		},
		{
			desc: "bytes",
			v:    &wire.Bytes{1, 2, 3},
			want: append(words(3, present), 1, 2, 3, 0, 0, 0, 0, 0),
		},
		{
			desc: "nullable bytes",
			v:    new(wire.NullableBytes),
			want: words(0, absent),
		},
		{
			desc: "strings",
			v:    &stringVector{"a", "bc"},
			want: append(words(2, present, 1, present, 2, present), 'a', 0, 0, 0, 0, 0, 0, 0, 'b', 'c', 0, 0, 0, 0, 0, 0),
		},
		{
			desc: "bools",
			v:    &boolVector{true, false, true},
			want: append(words(3, present), 1, 0, 1, 0, 0, 0, 0, 0),
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			b, handles, err := wire.Marshal(tC.v)
			td.CmpNoError(t, err)
			td.CmpEmpty(t, handles)
			td.Cmp(t, b, tC.want)
		})
	}
}

func TestVectorIdentities(t *testing.T) {
	identity(t, uint32Vector{1, 2, 3, 1 << 31})
	identity(t, stringVector{"", "a", wire.String(strings.Repeat("long ", 100))})
	identity(t, fooVector{{Byte: 1}, {Bignum: 2, Str: "x"}})
	identity(t, boolVector{true, false})
	identity(t, wire.Bytes(strings.Repeat("x", 1000)))
	identity(t, wire.Vector[wire.Float32, *wire.Float32]{1.5, -0.25})
	identity(t, wire.Vector[uint32Vector, *uint32Vector]{{1}, {}, {2, 3}})
}

func TestNullableVector(t *testing.T) {
	var out nullableUint32Vector
	td.CmpNoError(t, wire.Unmarshal(words(0, absent), nil, &out))
	td.CmpNil(t, out)

	td.CmpNoError(t, wire.Unmarshal(words(0, present), nil, &out))
	td.CmpNotNil(t, out)
	td.CmpLen(t, out, 0)

	var bytesOut wire.NullableBytes
	td.CmpNoError(t, wire.Unmarshal(words(0, absent), nil, &bytesOut))
	td.CmpNil(t, bytesOut)
	td.CmpNoError(t, wire.Unmarshal(append(words(1, present), 9, 0, 0, 0, 0, 0, 0, 0), nil, &bytesOut))
	td.Cmp(t, bytesOut, wire.NullableBytes{9})
}

func TestVectorFastPath(t *testing.T) {
	// Buttons goes through each element's Encode, Uint32 is copied in bulk.
	ints := uint32Vector{1, 2, 4, 1, 2}
	buttons := buttonsVector{wiretest.ButtonsPlay, wiretest.ButtonsPause, wiretest.ButtonsStop, wiretest.ButtonsPlay, wiretest.ButtonsPause}

	intBytes, _, err := wire.Marshal(&ints)
	td.CmpNoError(t, err)
	buttonBytes, _, err := wire.Marshal(&buttons)
	td.CmpNoError(t, err)
	td.Cmp(t, buttonBytes, intBytes)

	var out buttonsVector
	td.CmpNoError(t, wire.Unmarshal(intBytes, nil, &out))
	td.Cmp(t, out, buttons)

	// an invalid element is rejected when decoded one by one
	ints[2] = 8
	intBytes, _, err = wire.Marshal(&ints)
	td.CmpNoError(t, err)
	decodeErr[buttonsVector](t, intBytes, nil, encio.ErrInvalid)
}

func TestVectorMalformed(t *testing.T) {
	testCases := []struct {
		desc string
		b    []byte
		want error
	}{
		{desc: "absent", b: words(0, absent), want: encio.ErrNotNullable},
		{desc: "absent with count", b: words(2, absent), want: encio.ErrUnexpectedNullRef},
		{desc: "bad presence", b: words(0, 7), want: encio.ErrInvalid},
		{desc: "count past end", b: words(1<<40, present), want: encio.ErrOutOfRange},
		{desc: "elements past end", b: words(3, present, 0), want: encio.ErrOutOfRange},
		{desc: "nonzero padding", b: words(1, present, 1<<32|5), want: encio.ErrNonZeroPadding},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			decodeErr[uint32Vector](t, tC.b, nil, tC.want)
		})
	}
}

func TestVectorCountPastBlock(t *testing.T) {
	// the count fits the message, but its elements don't
	const n = 1 << 16
	b := append(words(n, present), make([]byte, n)...)

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	before := stats.TotalAlloc

	decodeErr[wire.Vector[wire.Bytes, *wire.Bytes]](t, b, nil, encio.ErrOutOfRange)

	runtime.ReadMemStats(&stats)
	td.Cmp(t, stats.TotalAlloc-before, td.Lt(uint64(n*8)), "bytes allocated before rejecting")
}

func TestStringGolden(t *testing.T) {
	encodeAssertBytes(t, wire.String(""), conformance.MustBytes("string_empty"))
	encodeAssertBytes(t, wire.NewNullableString(""), conformance.MustBytes("string_empty"))
	encodeAssertBytes(t, wire.NullableString{}, conformance.MustBytes("nullable_string_absent"))
}

func TestStringIdentities(t *testing.T) {
	identity(t, wire.String("hello"))
	identity(t, wire.String("日本語"))
	identity(t, wire.NewNullableString("hello"))
	identity(t, wire.NullableString{})
}

func TestStringMalformed(t *testing.T) {
	testCases := []struct {
		desc   string
		vector string
		want   error
	}{
		{desc: "bad utf-8", vector: "string_bad_utf8", want: encio.ErrUTF8},
		{desc: "bad presence", vector: "string_bad_presence", want: encio.ErrInvalid},
		{desc: "absent with length", vector: "string_absent_with_length", want: encio.ErrUnexpectedNullRef},
		{desc: "absent", vector: "string_absent", want: encio.ErrNotNullable},
		{desc: "length past end", vector: "string_length_past_end", want: encio.ErrOutOfRange},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			decodeErr[wire.String](t, conformance.MustBytes(tC.vector), nil, tC.want)
		})
	}

	var out wire.NullableString
	err := wire.Unmarshal(conformance.MustBytes("string_bad_utf8"), nil, &out)
	td.CmpTrue(t, errors.Is(err, encio.ErrUTF8))
}

func TestStringEncodeInvalidUTF8(t *testing.T) {
	testCases := []struct {
		desc string
		v    wire.Encodable
	}{
		{desc: "string", v: ptr(wire.String("\xff\xfe"))},
		{desc: "nullable string", v: ptr(wire.NewNullableString("ok\xc0"))},
		{desc: "in vector", v: &stringVector{"fine", "\xed\xa0\x80"}},
		{desc: "in struct", v: &wiretest.Foo{Str: "\x80"}},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, _, err := wire.Marshal(tC.v)
			td.CmpTrue(t, errors.Is(err, encio.ErrUTF8), err)
		})
	}
}
