package wire

import (
	"fmt"

	"github.com/stewi1014/fidl/encio"
)

// TableMember is one declared field of a table, bound to the Go field holding it.
// Create them with TableField.
type TableMember interface {
	ordinal() uint64
	value() Encodable
	inlineSize(ctx Context) int
	decode(d *Decoder) error
	clear()
}

// TableField binds the table field with the given ordinal to field. A nil *field is an absent field.
func TableField[T any, P PayloadPtr[T]](ordinal uint64, field **T) TableMember {
	if ordinal == 0 {
		panic("table ordinals start at 1")
	}
	return tableField[T, P]{ord: ordinal, field: field}
}

type tableField[T any, P PayloadPtr[T]] struct {
	ord   uint64
	field **T
}

func (f tableField[T, P]) ordinal() uint64 { return f.ord }

func (f tableField[T, P]) value() Encodable {
	if *f.field == nil {
		return nil
	}
	return P(*f.field)
}

func (f tableField[T, P]) inlineSize(ctx Context) int { return sizeOf[T, P](ctx) }

func (f tableField[T, P]) decode(d *Decoder) error {
	if *f.field == nil {
		*f.field = new(T)
	}
	return P(*f.field).Decode(d)
}

func (f tableField[T, P]) clear() { *f.field = nil }

// EncodeTable writes a table with the given members, which must be in ascending ordinal order.
// Absent fields after the last present one are not written; absent fields and unused ordinals
// before it are written as absent envelopes.
func EncodeTable(e *Encoder, offset, depth int, members ...TableMember) error {
	checkTableOrder(members)

	last := -1
	for i, m := range members {
		if m.value() != nil {
			last = i
		}
	}
	members = members[:last+1]

	var maxOrdinal uint64
	if len(members) > 0 {
		maxOrdinal = members[len(members)-1].ordinal()
	}
	encodeVectorHeader(e, offset, int(maxOrdinal))

	return e.WriteOutOfLine(int(maxOrdinal)*EnvelopeSize, depth, func(e *Encoder, offset, depth int) error {
		prevEnd := 0
		for _, m := range members {
			cur := int(m.ordinal()-1) * EnvelopeSize
			e.Padding(offset+prevEnd, cur-prevEnd)
			if err := EncodeInEnvelope(e, m.value(), offset+cur, depth); err != nil {
				return err
			}
			prevEnd = cur + EnvelopeSize
		}
		return nil
	})
}

func checkTableOrder(members []TableMember) {
	for i := 1; i < len(members); i++ {
		if members[i].ordinal() <= members[i-1].ordinal() {
			panic(fmt.Sprintf("table members must be in ascending ordinal order; %v follows %v", members[i].ordinal(), members[i-1].ordinal()))
		}
	}
}

// DecodeTable reads a table into members, which must be in ascending ordinal order.
// Fields missing from the message are set absent. Envelopes for ordinals not in members are skipped,
// so messages from peers with newer declarations decode.
func DecodeTable(d *Decoder, members ...TableMember) error {
	checkTableOrder(members)

	count, err := d.Uint64()
	if err != nil {
		return err
	}
	presence, err := d.Uint64()
	if err != nil {
		return err
	}
	if presence != encio.AllocPresent64 {
		return encio.Errorf(encio.ErrInvalid, "table presence %#x", presence)
	}
	if count > uint64(len(d.buf)/EnvelopeSize) {
		return encio.Errorf(encio.ErrOutOfRange, "table of %v envelopes in %v byte message", count, len(d.buf))
	}

	return d.ReadOutOfLine(int(count)*EnvelopeSize, func(d *Decoder) error {
		var next uint64
		for _, m := range members {
			next++
			for next < m.ordinal() && !d.IsEmpty() {
				if err := DecodeUnknownEnvelope(d); err != nil {
					return err
				}
				next++
			}
			if d.IsEmpty() {
				m.clear()
				next = m.ordinal()
				continue
			}
			if err := decodeTableEnvelope(d, m); err != nil {
				return err
			}
		}

		for !d.IsEmpty() {
			if err := DecodeUnknownEnvelope(d); err != nil {
				return err
			}
		}
		return nil
	})
}

// decodeTableEnvelope reads the envelope of a declared field, checking its counts match what was consumed.
func decodeTableEnvelope(d *Decoder, m TableMember) error {
	h, err := decodeEnvelopeHeader(d)
	if err != nil {
		return err
	}
	nextOutOfLine, handlesBefore := d.nextOutOfLine, len(d.handles)

	switch h.presence {
	case encio.AllocPresent64:
		if err := d.ReadOutOfLine(m.inlineSize(d.ctx), m.decode); err != nil {
			return err
		}
	case encio.AllocAbsent64:
		if h.numBytes != 0 {
			return encio.Errorf(encio.ErrUnexpectedNullRef, "absent field %v with %v bytes", m.ordinal(), h.numBytes)
		}
		m.clear()
	default:
		return encio.Errorf(encio.ErrInvalid, "field %v presence %#x", m.ordinal(), h.presence)
	}

	if d.nextOutOfLine != nextOutOfLine+int(h.numBytes) {
		return encio.Errorf(encio.ErrInvalid, "field %v declared %v bytes but used %v", m.ordinal(), h.numBytes, d.nextOutOfLine-nextOutOfLine)
	}
	if handlesBefore != len(d.handles)+int(h.numHandles) {
		return encio.Errorf(encio.ErrInvalid, "field %v declared %v handles but used %v", m.ordinal(), h.numHandles, handlesBefore-len(d.handles))
	}
	return nil
}
