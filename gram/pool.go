package gram

import (
	"sync"

	"github.com/stewi1014/fidl/wire"
)

// MinBufferSize is the starting capacity of a pooled byte buffer.
const MinBufferSize = 512

// codingBuffers is a byte buffer and handle buffer used together for one encode or decode.
type codingBuffers struct {
	bytes   []byte
	handles []wire.Handle
}

// reset clears the buffers so nothing from one use is visible to the next.
func (b *codingBuffers) reset() {
	clear(b.bytes)
	b.bytes = b.bytes[:0]
	clear(b.handles)
	b.handles = b.handles[:0]
}

// Pool holds reusable coding buffers. The zero value is ready to use, and it is safe for concurrent use;
// each call has the buffers it is given to itself until it returns.
type Pool struct {
	buffers sync.Pool
}

func (p *Pool) get() *codingBuffers {
	if b, ok := p.buffers.Get().(*codingBuffers); ok {
		return b
	}
	return &codingBuffers{bytes: make([]byte, 0, MinBufferSize)}
}

func (p *Pool) put(b *codingBuffers) {
	b.reset()
	p.buffers.Put(b)
}

// WithCodingBuffers calls f with empty byte and handle buffers.
// f may grow them; the grown buffers are kept for later calls.
// The buffers must not be used after f returns.
func (p *Pool) WithCodingBuffers(f func(bytes *[]byte, handles *[]wire.Handle)) {
	b := p.get()
	defer p.put(b)
	b.reset()
	f(&b.bytes, &b.handles)
}

// WithEncoded encodes v into pooled buffers and calls f with the result.
// The bytes and handles must not be used after f returns.
// Handles are moved out of v even if encoding fails; f is not called then, and they are dropped.
func (p *Pool) WithEncoded(v wire.Encodable, f func(bytes []byte, handles []wire.Handle) error) error {
	var err error
	p.WithCodingBuffers(func(bytes *[]byte, handles *[]wire.Handle) {
		*bytes, *handles, err = wire.Encode(*bytes, *handles, v)
		if err != nil {
			return
		}
		err = f(*bytes, *handles)
	})
	return err
}

// DefaultPool is used by the package level WithCodingBuffers and WithEncoded.
var DefaultPool Pool

// WithCodingBuffers calls DefaultPool.WithCodingBuffers.
func WithCodingBuffers(f func(bytes *[]byte, handles *[]wire.Handle)) {
	DefaultPool.WithCodingBuffers(f)
}

// WithEncoded calls DefaultPool.WithEncoded.
func WithEncoded(v wire.Encodable, f func(bytes []byte, handles []wire.Handle) error) error {
	return DefaultPool.WithEncoded(v, f)
}
