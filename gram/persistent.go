package gram

import (
	"fmt"

	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
)

// PersistentHeader starts a message stored outside of a channel.
// Bytes 0 to 3 and 8 to 15 are reserved and zero.
//
//	4  Flags       [3]uint8
//	7  MagicNumber uint8
type PersistentHeader struct {
	// Flags are not validated when decoding.
	Flags [3]byte
	// MagicNumber identifies the wire format.
	MagicNumber uint8
}

// NewPersistentHeader returns a header with the default context's flags and magic number.
func NewPersistentHeader() PersistentHeader {
	return NewPersistentHeaderFull(wire.DefaultContext(), encio.MagicNumberInitial)
}

// NewPersistentHeaderFull returns a header with flags taken from ctx and the given magic number.
func NewPersistentHeaderFull(ctx wire.Context, magic uint8) PersistentHeader {
	return PersistentHeader{
		Flags:       ctx.HeaderFlags().Bytes(),
		MagicNumber: magic,
	}
}

// IsCompatible returns true if the message is in a wire format this codec understands.
func (h PersistentHeader) IsCompatible() bool {
	return h.MagicNumber == encio.MagicNumberInitial
}

// HeaderFlags returns the known flags in the header.
func (h PersistentHeader) HeaderFlags() wire.HeaderFlags {
	return wire.HeaderFlagsFromBytes(h.Flags)
}

// DecodingContext returns the context to decode the message's body with.
func (h PersistentHeader) DecodingContext() wire.Context {
	return wire.DefaultContext()
}

// String implements fmt.Stringer.
func (h PersistentHeader) String() string {
	return fmt.Sprintf("PersistentHeader{flags: %v, magic: %v}", h.HeaderFlags(), h.MagicNumber)
}

func (*PersistentHeader) InlineAlignment(wire.Context) int { return 8 }
func (*PersistentHeader) InlineSize(wire.Context) int      { return HeaderSize }

// Encode implements wire.Encodable.
func (h *PersistentHeader) Encode(e *wire.Encoder, offset, _ int) error {
	e.Padding(offset, 4)
	for i, f := range h.Flags {
		e.PutUint8(offset+4+i, f)
	}
	e.PutUint8(offset+7, h.MagicNumber)
	e.Padding(offset+8, 8)
	return nil
}

// Decode implements wire.Decodable.
func (h *PersistentHeader) Decode(d *wire.Decoder) (err error) {
	if err := d.SkipPadding(4); err != nil {
		return err
	}
	flags, err := d.Next(3)
	if err != nil {
		return err
	}
	copy(h.Flags[:], flags)
	if h.MagicNumber, err = d.Uint8(); err != nil {
		return err
	}
	return d.SkipPadding(8)
}

func noHandles(handles []wire.Handle) error {
	if len(handles) != 0 {
		return encio.Errorf(encio.ErrBadConfig, "persistent message holds %v handles", len(handles))
	}
	return nil
}

// EncodePersistent encodes body behind a new PersistentHeader.
// Persistent messages can't carry handles; any handles in body are moved out of it and dropped,
// and an error is returned. Handles are likewise dropped if encoding fails.
func EncodePersistent(body wire.Encodable) ([]byte, error) {
	header := NewPersistentHeader()
	bytes, handles, err := wire.Encode(nil, nil, &message{header: &header, body: body})
	if err != nil {
		return nil, err
	}
	return bytes, noHandles(handles)
}

// EncodePersistentHeader encodes header on its own, for storing apart from the body.
func EncodePersistentHeader(header PersistentHeader) ([]byte, error) {
	bytes, _, err := wire.Encode(nil, nil, &header)
	return bytes, err
}

// EncodePersistentBody encodes body on its own with the header's context.
// Handles are treated as in EncodePersistent.
func EncodePersistentBody(body wire.Encodable, header PersistentHeader) ([]byte, error) {
	bytes, handles, err := wire.EncodeWithContext(header.DecodingContext(), nil, nil, body)
	if err != nil {
		return nil, err
	}
	return bytes, noHandles(handles)
}

// DecodePersistent decodes a message written by EncodePersistent into v.
func DecodePersistent(bytes []byte, v wire.Decodable) error {
	header, body, err := SplitPersistent(bytes)
	if err != nil {
		return err
	}
	return DecodePersistentBody(body, header, v)
}

// SplitPersistent decodes the header at the start of a message written by EncodePersistent,
// returning it and the body that follows.
func SplitPersistent(bytes []byte) (PersistentHeader, []byte, error) {
	headerBytes, body, err := splitHeader(bytes)
	if err != nil {
		return PersistentHeader{}, nil, err
	}
	header, err := DecodePersistentHeader(headerBytes)
	if err != nil {
		return header, nil, err
	}
	return header, body, nil
}

// DecodePersistentHeader decodes a header written by EncodePersistentHeader.
// bytes must hold the header and nothing else; use SplitPersistent for a whole message.
func DecodePersistentHeader(bytes []byte) (PersistentHeader, error) {
	var header PersistentHeader
	err := wire.DecodeWithContext(header.DecodingContext(), bytes, nil, &header)
	return header, err
}

// DecodePersistentBody decodes a body written by EncodePersistentBody into v, with the header's context.
func DecodePersistentBody(bytes []byte, header PersistentHeader, v wire.Decodable) error {
	if !header.IsCompatible() {
		encio.Warnings.Warn("decoding persistent body with incompatible header", "magic", header.MagicNumber)
	}
	return wire.DecodeWithContext(header.DecodingContext(), bytes, nil, v)
}
