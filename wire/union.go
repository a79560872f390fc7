package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// A union is 24 bytes inline; a uint64 ordinal naming the variant, then an envelope holding it.

// EncodeUnion writes the variant with the given ordinal at offset.
func EncodeUnion(e *Encoder, offset, depth int, ordinal uint64, value Encodable) error {
	e.PutUint64(offset, ordinal)
	return EncodeInEnvelope(e, value, offset+8, depth)
}

// UnknownVariant holds a variant of a flexible union that the receiver doesn't know,
// exactly as it was received, so it can be sent on unchanged.
type UnknownVariant struct {
	Ordinal uint64
	Bytes   []byte
	Handles []Handle
}

// Encode writes the variant's raw payload back out under its ordinal.
// The handles are moved into the message.
func (u *UnknownVariant) Encode(e *Encoder, offset, depth int) error {
	e.PutUint64(offset, u.Ordinal)
	e.PutUint32(offset+8, uint32(len(u.Bytes)))
	e.PutUint32(offset+12, uint32(len(u.Handles)))
	e.PutUint64(offset+16, encio.AllocPresent64)
	if err := CheckRecursionDepth(depth + 1); err != nil {
		return err
	}
	e.AppendBytes(u.Bytes)
	e.AppendHandles(u.Handles)
	return nil
}

// decodeUnionHeader reads the inline part of a union, returning the ordinal and envelope header.
// The envelope must be present.
func decodeUnionHeader(d *Decoder) (uint64, envelopeHeader, error) {
	ordinal, err := d.Uint64()
	if err != nil {
		return 0, envelopeHeader{}, err
	}
	h, err := decodeEnvelopeHeader(d)
	if err != nil {
		return 0, h, err
	}
	if h.presence != encio.AllocPresent64 {
		return 0, h, encio.Errorf(encio.ErrInvalid, "union presence %#x", h.presence)
	}
	return ordinal, h, nil
}

// DecodeUnion reads a union.
// variant is called with the received ordinal and returns where to decode it, or nil if the ordinal is unknown.
// Unknown variants are stored in unknown; if unknown is nil the union is strict and they are an error.
// It returns the received ordinal.
func DecodeUnion(d *Decoder, variant func(ordinal uint64) Decodable, unknown *UnknownVariant) (uint64, error) {
	ordinal, h, err := decodeUnionHeader(d)
	if err != nil {
		return 0, err
	}

	if v := variant(ordinal); v != nil {
		return ordinal, d.ReadOutOfLine(v.InlineSize(d.ctx), v.Decode)
	}
	if unknown == nil {
		return ordinal, encio.Errorf(encio.ErrUnknownUnionTag, "ordinal %#x", ordinal)
	}

	n := int(h.numBytes)
	return ordinal, d.ReadOutOfLine(n, func(d *Decoder) error {
		b, err := d.Next(n)
		if err != nil {
			return err
		}
		if int(h.numHandles) > len(d.handles) {
			return encio.Errorf(encio.ErrOutOfRange, "variant has %v handles but %v remain", h.numHandles, len(d.handles))
		}
		handles := make([]Handle, h.numHandles)
		for i := range handles {
			if handles[i], err = d.TakeHandle(); err != nil {
				return err
			}
		}
		*unknown = UnknownVariant{
			Ordinal: ordinal,
			Bytes:   append([]byte{}, b...),
			Handles: handles,
		}
		return nil
	})
}
