package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// An envelope is 16 bytes inline; the byte count and handle count of its contents as uint32s,
// then a presence marker. A present envelope's contents follow out of line.

// EnvelopeSize is the inline size of an envelope.
const EnvelopeSize = 16

// EncodeInEnvelope writes value in an envelope at offset. A nil value writes an absent envelope.
// The counts are filled in once the contents, including everything they own out of line, have been written.
func EncodeInEnvelope(e *Encoder, value Encodable, offset, depth int) error {
	if value == nil {
		e.PutUint32(offset, 0)
		e.PutUint32(offset+4, 0)
		e.PutUint64(offset+8, encio.AllocAbsent64)
		return nil
	}

	e.PutUint64(offset+8, encio.AllocPresent64)
	bytesBefore, handlesBefore := len(e.buf), len(e.handles)
	err := e.WriteOutOfLine(value.InlineSize(e.ctx), depth, value.Encode)
	if err != nil {
		return err
	}
	e.PutUint32(offset, uint32(len(e.buf)-bytesBefore))
	e.PutUint32(offset+4, uint32(len(e.handles)-handlesBefore))
	return nil
}

// envelopeHeader is the inline part of an envelope.
type envelopeHeader struct {
	numBytes   uint32
	numHandles uint32
	presence   uint64
}

func decodeEnvelopeHeader(d *Decoder) (h envelopeHeader, err error) {
	if h.numBytes, err = d.Uint32(); err != nil {
		return
	}
	if h.numHandles, err = d.Uint32(); err != nil {
		return
	}
	h.presence, err = d.Uint64()
	return
}

// DecodeUnknownEnvelope skips an envelope whose contents are of an unknown type,
// consuming its bytes and handles. The handles are discarded.
func DecodeUnknownEnvelope(d *Decoder) error {
	h, err := decodeEnvelopeHeader(d)
	if err != nil {
		return err
	}

	switch h.presence {
	case encio.AllocPresent64:
		return d.ReadOutOfLine(int(h.numBytes), func(d *Decoder) error {
			if _, err := d.NextOffset(int(h.numBytes)); err != nil {
				return err
			}
			for i := uint32(0); i < h.numHandles; i++ {
				if _, err := d.TakeHandle(); err != nil {
					return err
				}
			}
			return nil
		})
	case encio.AllocAbsent64:
		if h.numBytes != 0 {
			return encio.Errorf(encio.ErrUnexpectedNullRef, "absent envelope with %v bytes", h.numBytes)
		}
		return nil
	default:
		return encio.Errorf(encio.ErrInvalid, "envelope presence %#x", h.presence)
	}
}
