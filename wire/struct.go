package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// Member is a struct member at a fixed offset from the start of its struct.
type Member struct {
	Offset int
	Value  Payload
}

// EncodeStruct writes the members of a struct of the given size at offset, zeroing the gaps between and after them.
// Members must be in offset order.
func EncodeStruct(e *Encoder, offset, depth, size int, members ...Member) error {
	paddingStart := 0
	for _, m := range members {
		e.Padding(offset+paddingStart, m.Offset-paddingStart)
		if err := m.Value.Encode(e, offset+m.Offset, depth); err != nil {
			return err
		}
		paddingStart = m.Offset + m.Value.InlineSize(e.ctx)
	}
	e.Padding(offset+paddingStart, size-paddingStart)
	return nil
}

// DecodeStruct reads the members of a struct of the given size, checking the gaps between and after them are zero.
// Members must be in offset order.
func DecodeStruct(d *Decoder, size int, members ...Member) error {
	cur := 0
	for _, m := range members {
		if err := d.SkipPadding(m.Offset - cur); err != nil {
			return err
		}
		cur = m.Offset
		if err := m.Value.Decode(d); err != nil {
			return err
		}
		cur += m.Value.InlineSize(d.ctx)
	}
	return d.SkipPadding(size - cur)
}

// Tuple is an anonymous sequence of values, laid out like a struct with each member aligned in turn.
// The members are encoded from and decoded into the values pointed to.
type Tuple []Payload

// InlineAlignment implements Layout. It is the largest member alignment.
func (t *Tuple) InlineAlignment(ctx Context) int {
	align := 1
	for _, m := range *t {
		if a := m.InlineAlignment(ctx); a > align {
			align = a
		}
	}
	return align
}

// InlineSize implements Layout.
func (t *Tuple) InlineSize(ctx Context) int {
	size := 0
	for i, m := range *t {
		if i > 0 {
			size = encio.RoundUpToAlign(size, m.InlineAlignment(ctx))
		}
		size += m.InlineSize(ctx)
	}
	return size
}

// members returns the tuple laid out as struct members.
func (t *Tuple) members(ctx Context) []Member {
	members := make([]Member, len(*t))
	offset := 0
	for i, m := range *t {
		offset = encio.RoundUpToAlign(offset, m.InlineAlignment(ctx))
		members[i] = Member{Offset: offset, Value: m}
		offset += m.InlineSize(ctx)
	}
	return members
}

// Encode implements Encodable.
func (t *Tuple) Encode(e *Encoder, offset, depth int) error {
	return EncodeStruct(e, offset, depth, t.InlineSize(e.ctx), t.members(e.ctx)...)
}

// Decode implements Decodable.
func (t *Tuple) Decode(d *Decoder) error {
	return DecodeStruct(d, t.InlineSize(d.ctx), t.members(d.ctx)...)
}
