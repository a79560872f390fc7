package wire

import (
	"slices"

	"github.com/stewi1014/fidl/encio"
)

// Encoder holds the state of an encoding in progress.
// It is only valid inside the Encode call that was given it.
type Encoder struct {
	buf     []byte
	handles []Handle
	ctx     Context
}

// Marshal encodes v into new buffers with the default context.
func Marshal(v Encodable) ([]byte, []Handle, error) {
	return EncodeWithContext(DefaultContext(), nil, nil, v)
}

// Encode encodes v with the default context, reusing the capacity of buf and handles.
// It returns the encoded bytes and handles.
func Encode(buf []byte, handles []Handle, v Encodable) ([]byte, []Handle, error) {
	return EncodeWithContext(DefaultContext(), buf, handles, v)
}

// EncodeWithContext encodes v with ctx, reusing the capacity of buf and handles.
// Any contents of buf and handles are discarded.
//
// Handles in v are moved into the returned handle list, leaving HandleInvalid behind in v.
// If encoding fails, the handles moved so far are still returned.
func EncodeWithContext(ctx Context, buf []byte, handles []Handle, v Encodable) ([]byte, []Handle, error) {
	e := &Encoder{
		buf:     buf[:0],
		handles: handles[:0],
		ctx:     ctx,
	}
	e.grow(round8(v.InlineSize(ctx)))

	err := v.Encode(e, 0, 0)
	return e.buf, e.handles, err
}

// grow extends the buffer by n zeroed bytes, returning the offset of the first new byte.
func (e *Encoder) grow(n int) int {
	l := len(e.buf)
	e.buf = slices.Grow(e.buf, n)[:l+n]
	clear(e.buf[l:])
	return l
}

// Context returns the encoder's context.
func (e *Encoder) Context() Context {
	return e.ctx
}

// Bytes returns the bytes written so far. The slice is only valid until the next write.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// HandleCount returns the number of handles written so far.
func (e *Encoder) HandleCount() int {
	return len(e.handles)
}

// CheckRecursionDepth returns an error if depth is deeper than a message may nest.
func CheckRecursionDepth(depth int) error {
	if depth > encio.MaxRecursion {
		return encio.Errorf(encio.ErrMaxRecursionDepth, "depth %v", depth)
	}
	return nil
}

// WriteOutOfLine appends a new zeroed out-of-line block of n bytes, padded to 8,
// and calls f to fill it with the block's offset and depth.
// depth is the depth of the object that owns the block.
func (e *Encoder) WriteOutOfLine(n, depth int, f func(e *Encoder, offset, depth int) error) error {
	depth++
	if err := CheckRecursionDepth(depth); err != nil {
		return err
	}
	offset := e.grow(round8(n))
	return f(e, offset, depth)
}

// AppendBytes appends b to the end of the buffer, padded with zeros to 8 bytes.
func (e *Encoder) AppendBytes(b []byte) {
	e.buf = append(e.buf, b...)
	e.grow(round8(len(e.buf)) - len(e.buf))
}

// AppendHandles moves handles to the end of the handle list, leaving HandleInvalid in their place.
func (e *Encoder) AppendHandles(handles []Handle) {
	e.handles = slices.Grow(e.handles, len(handles))
	for i := range handles {
		e.handles = append(e.handles, handles[i].take())
	}
}

// Padding zeroes n bytes at offset. The range must already be part of the buffer.
func (e *Encoder) Padding(offset, n int) {
	if n == 0 {
		return
	}
	if offset+n > len(e.buf) {
		panic("padding outside of buffer")
	}
	clear(e.buf[offset : offset+n])
}

// PutUint8 writes v at offset.
func (e *Encoder) PutUint8(offset int, v uint8) {
	e.buf[offset] = v
}

// PutUint16 writes v at offset.
func (e *Encoder) PutUint16(offset int, v uint16) {
	encio.EncodeUint16(e.buf[offset:], v)
}

// PutUint32 writes v at offset.
func (e *Encoder) PutUint32(offset int, v uint32) {
	encio.EncodeUint32(e.buf[offset:], v)
}

// PutUint64 writes v at offset.
func (e *Encoder) PutUint64(offset int, v uint64) {
	encio.EncodeUint64(e.buf[offset:], v)
}
