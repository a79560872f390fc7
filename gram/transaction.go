package gram

import (
	"fmt"

	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
)

// TransactionHeader starts every message sent over a channel.
//
//	0  TxID        uint32
//	4  Flags       [3]uint8
//	7  MagicNumber uint8
//	8  Ordinal     uint64
type TransactionHeader struct {
	// TxID matches a response to its request. Zero for messages that expect no response.
	TxID uint32
	// Flags are not validated when decoding.
	Flags [3]byte
	// MagicNumber identifies the wire format. Peers with different magic numbers can't talk.
	MagicNumber uint8
	// Ordinal identifies the method.
	Ordinal uint64
}

// NewTransactionHeader returns a header for the method with the given ordinal,
// using the default context and magic number.
func NewTransactionHeader(txID uint32, ordinal uint64) TransactionHeader {
	return NewTransactionHeaderFull(txID, ordinal, wire.DefaultContext(), encio.MagicNumberInitial)
}

// NewTransactionHeaderFull returns a header with flags taken from ctx and the given magic number.
func NewTransactionHeaderFull(txID uint32, ordinal uint64, ctx wire.Context, magic uint8) TransactionHeader {
	return TransactionHeader{
		TxID:        txID,
		Flags:       ctx.HeaderFlags().Bytes(),
		MagicNumber: magic,
		Ordinal:     ordinal,
	}
}

// IsCompatible returns true if the message is in a wire format this codec understands.
func (h TransactionHeader) IsCompatible() bool {
	return h.MagicNumber == encio.MagicNumberInitial
}

// IsEpitaph returns true if the message is an epitaph.
func (h TransactionHeader) IsEpitaph() bool {
	return h.Ordinal == encio.EpitaphOrdinal
}

// HeaderFlags returns the known flags in the header.
func (h TransactionHeader) HeaderFlags() wire.HeaderFlags {
	return wire.HeaderFlagsFromBytes(h.Flags)
}

// DecodingContext returns the context to decode the message's body with.
func (h TransactionHeader) DecodingContext() wire.Context {
	return wire.DefaultContext()
}

// String implements fmt.Stringer.
func (h TransactionHeader) String() string {
	return fmt.Sprintf("TransactionHeader{tx: %v, ordinal: %#x, flags: %v, magic: %v}", h.TxID, h.Ordinal, h.HeaderFlags(), h.MagicNumber)
}

func (*TransactionHeader) InlineAlignment(wire.Context) int { return 8 }
func (*TransactionHeader) InlineSize(wire.Context) int      { return HeaderSize }

// Encode implements wire.Encodable.
func (h *TransactionHeader) Encode(e *wire.Encoder, offset, _ int) error {
	e.PutUint32(offset, h.TxID)
	for i, f := range h.Flags {
		e.PutUint8(offset+4+i, f)
	}
	e.PutUint8(offset+7, h.MagicNumber)
	e.PutUint64(offset+8, h.Ordinal)
	return nil
}

// Decode implements wire.Decodable.
func (h *TransactionHeader) Decode(d *wire.Decoder) (err error) {
	if h.TxID, err = d.Uint32(); err != nil {
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
	h.Ordinal, err = d.Uint64()
	return err
}

// TransactionMessage is a header and the body that follows it.
// It can be encoded, but not decoded as a whole since the body's type depends on the header;
// use DecodeTransactionHeader and DecodeInto.
type TransactionMessage struct {
	Header TransactionHeader
	Body   wire.Encodable
}

func (m *TransactionMessage) message() *message {
	return &message{header: &m.Header, body: m.Body}
}

// InlineAlignment implements wire.Layout.
func (m *TransactionMessage) InlineAlignment(ctx wire.Context) int {
	return m.message().InlineAlignment(ctx)
}

// InlineSize implements wire.Layout.
func (m *TransactionMessage) InlineSize(ctx wire.Context) int {
	return m.message().InlineSize(ctx)
}

// Encode implements wire.Encodable.
func (m *TransactionMessage) Encode(e *wire.Encoder, offset, depth int) error {
	return m.message().Encode(e, offset, depth)
}

// EncodeTransaction encodes a message with the given header and body, reusing the capacity of buf and handles.
func EncodeTransaction(buf []byte, handles []wire.Handle, header TransactionHeader, body wire.Encodable) ([]byte, []wire.Handle, error) {
	return wire.Encode(buf, handles, &TransactionMessage{Header: header, Body: body})
}

// DecodeTransactionHeader decodes the header at the start of bytes, returning it and the body that follows.
func DecodeTransactionHeader(bytes []byte) (TransactionHeader, []byte, error) {
	var header TransactionHeader
	headerBytes, body, err := splitHeader(bytes)
	if err != nil {
		return header, nil, err
	}
	if err := wire.Decode(headerBytes, nil, &header); err != nil {
		return header, nil, err
	}
	return header, body, nil
}

// DecodeInto decodes a message body into v with the header's context.
// Handles are moved out of handles as they are consumed.
func DecodeInto(header TransactionHeader, body []byte, handles []wire.Handle, v wire.Decodable) error {
	if !header.IsCompatible() {
		encio.Warnings.Warn("decoding body of incompatible message", "magic", header.MagicNumber, "ordinal", header.Ordinal)
	}
	return wire.DecodeWithContext(header.DecodingContext(), body, handles, v)
}

// EpitaphBody is the body of an epitaph; the status a channel was closed with.
type EpitaphBody struct {
	Error wire.Status
}

func (*EpitaphBody) InlineAlignment(wire.Context) int { return 4 }
func (*EpitaphBody) InlineSize(wire.Context) int      { return 4 }

// Encode implements wire.Encodable.
func (b *EpitaphBody) Encode(e *wire.Encoder, offset, depth int) error {
	return wire.EncodeStruct(e, offset, depth, 4, wire.Member{Offset: 0, Value: &b.Error})
}

// Decode implements wire.Decodable.
func (b *EpitaphBody) Decode(d *wire.Decoder) error {
	return wire.DecodeStruct(d, 4, wire.Member{Offset: 0, Value: &b.Error})
}

// EncodeEpitaph returns an epitaph message with the given status.
func EncodeEpitaph(status wire.Status) ([]byte, error) {
	bytes, _, err := EncodeTransaction(nil, nil, NewTransactionHeader(0, encio.EpitaphOrdinal), &EpitaphBody{Error: status})
	return bytes, err
}
