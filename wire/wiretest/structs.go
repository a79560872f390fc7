// Package wiretest provides sample types built on wire, for testing the codec and code that uses it.
package wiretest

import (
	"github.com/stewi1014/fidl/wire"
)

// Foo is a struct with padding after its first member and an out-of-line member.
//
//	0  Byte   uint8
//	8  Bignum uint64
//	16 Str    string
type Foo struct {
	Byte   wire.Uint8
	Bignum wire.Uint64
	Str    wire.String
}

var fooLayout = wire.StructLayout{Size: 32, Alignment: 8}

func (f *Foo) InlineAlignment(ctx wire.Context) int { return fooLayout.InlineAlignment(ctx) }
func (f *Foo) InlineSize(ctx wire.Context) int      { return fooLayout.InlineSize(ctx) }

func (f *Foo) members() []wire.Member {
	return []wire.Member{
		{Offset: 0, Value: &f.Byte},
		{Offset: 8, Value: &f.Bignum},
		{Offset: 16, Value: &f.Str},
	}
}

// Encode implements wire.Encodable.
func (f *Foo) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeStruct(e, offset, depth, fooLayout.Size, f.members()...)
}

// Decode implements wire.Decodable.
func (f *Foo) Decode(d *wire.Decoder) error {
	return wire.DecodeStruct(d, fooLayout.Size, f.members()...)
}

// NaturallyNullable implements wire.Autonull.
func (*Foo) NaturallyNullable(wire.Context) bool { return false }

// Int64Struct is a struct holding a single uint64.
type Int64Struct struct {
	X wire.Uint64
}

func (*Int64Struct) InlineAlignment(wire.Context) int { return 8 }
func (*Int64Struct) InlineSize(wire.Context) int      { return 8 }

// Encode implements wire.Encodable.
func (s *Int64Struct) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeStruct(e, offset, depth, 8, wire.Member{Offset: 0, Value: &s.X})
}

// Decode implements wire.Decodable.
func (s *Int64Struct) Decode(d *wire.Decoder) error {
	return wire.DecodeStruct(d, 8, wire.Member{Offset: 0, Value: &s.X})
}

// NaturallyNullable implements wire.Autonull.
func (*Int64Struct) NaturallyNullable(wire.Context) bool { return false }

// Node is a linked list node, for building arbitrarily deep messages.
type Node struct {
	Next wire.Nullable[Node, *Node]
}

func (*Node) InlineAlignment(wire.Context) int { return 8 }
func (*Node) InlineSize(wire.Context) int      { return 8 }

// Encode implements wire.Encodable.
func (n *Node) Encode(e *wire.Encoder, offset, depth int) error {
	return n.Next.Encode(e, offset, depth)
}

// Decode implements wire.Decodable.
func (n *Node) Decode(d *wire.Decoder) error {
	return n.Next.Decode(d)
}

// NaturallyNullable implements wire.Autonull.
func (*Node) NaturallyNullable(wire.Context) bool { return false }

// Chain returns a list of n+1 nodes; the last node is n out-of-line levels deep.
func Chain(n int) *Node {
	root := new(Node)
	cur := root
	for i := 0; i < n; i++ {
		cur.Next.Value = new(Node)
		cur = cur.Next.Value
	}
	return root
}

// Depth returns the number of nodes following n.
func (n *Node) Depth() int {
	depth := 0
	for cur := n.Next.Value; cur != nil; cur = cur.Next.Value {
		depth++
	}
	return depth
}

// Row is an array of five uint32s.
type Row [5]wire.Uint32

func (*Row) InlineAlignment(ctx wire.Context) int {
	return wire.ArrayLayout[wire.Uint32](ctx, 5).Alignment
}

func (*Row) InlineSize(ctx wire.Context) int {
	return wire.ArrayLayout[wire.Uint32](ctx, 5).Size
}

// Encode implements wire.Encodable.
func (r *Row) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeArray(e, offset, depth, r[:])
}

// Decode implements wire.Decodable.
func (r *Row) Decode(d *wire.Decoder) error {
	return wire.DecodeArray(d, r[:])
}

// Grid is an array of two Rows.
type Grid [2]Row

func (*Grid) InlineAlignment(ctx wire.Context) int {
	return wire.ArrayLayout[Row](ctx, 2).Alignment
}

func (*Grid) InlineSize(ctx wire.Context) int {
	return wire.ArrayLayout[Row](ctx, 2).Size
}

// Encode implements wire.Encodable.
func (g *Grid) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeArray(e, offset, depth, g[:])
}

// Decode implements wire.Decodable.
func (g *Grid) Decode(d *wire.Decoder) error {
	return wire.DecodeArray(d, g[:])
}
