// Package gram frames wire format bodies as whole messages.
//
// A transaction message is a 16 byte TransactionHeader followed by its body, sent over a channel with handles.
// A persistent message is a 16 byte PersistentHeader followed by a body, for storage; it never carries handles.
// The header says which wire format the body uses, so bodies are always decoded with the header's context.
package gram

import (
	"errors"
	"fmt"
	"io"

	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
)

const (
	// TooBig is a byte count used for simple sanity checking of messages read from streams.
	TooBig = 64 << 20

	// HeaderSize is the size of both message header kinds.
	HeaderSize = 16
)

// ReadMessage drains r, returning the message bytes it held.
func ReadMessage(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, TooBig+1))
	if err != nil {
		return nil, encio.NewIOError(err, "reading message")
	}
	if len(b) > TooBig {
		return nil, encio.NewIOError(errors.New("message too big"), fmt.Sprintf("reading message over %v bytes", TooBig))
	}
	return b, nil
}

// splitHeader splits a message into its header and body.
func splitHeader(bytes []byte) (header, body []byte, err error) {
	if len(bytes) < HeaderSize {
		return nil, nil, encio.Errorf(encio.ErrOutOfRange, "message of %v bytes has no header", len(bytes))
	}
	return bytes[:HeaderSize], bytes[HeaderSize:], nil
}

// message is a header and body encoded one after the other.
type message struct {
	header wire.Payload
	body   wire.Encodable
}

func (m *message) InlineAlignment(ctx wire.Context) int {
	return max(m.header.InlineAlignment(ctx), m.body.InlineAlignment(ctx))
}

func (m *message) InlineSize(ctx wire.Context) int {
	return m.header.InlineSize(ctx) + m.body.InlineSize(ctx)
}

func (m *message) Encode(e *wire.Encoder, offset, depth int) error {
	if err := m.header.Encode(e, offset, depth); err != nil {
		return err
	}
	return m.body.Encode(e, offset+m.header.InlineSize(e.Context()), depth)
}
