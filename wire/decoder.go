package wire

import (
	"fmt"

	"github.com/stewi1014/fidl/encio"
)

// Decoder holds the state of a decoding in progress.
// Reads happen sequentially from the current offset inside the current block.
type Decoder struct {
	depth         int
	offset        int
	endBlock      int
	nextOutOfLine int

	buf     []byte
	handles []Handle
	ctx     Context
}

// Unmarshal decodes bytes and handles into v with the default context.
func Unmarshal(bytes []byte, handles []Handle, v Decodable) error {
	return DecodeWithContext(DefaultContext(), bytes, handles, v)
}

// Decode decodes bytes and handles into v with the default context.
func Decode(bytes []byte, handles []Handle, v Decodable) error {
	return DecodeWithContext(DefaultContext(), bytes, handles, v)
}

// DecodeWithContext decodes bytes and handles into v with ctx.
//
// Handles are moved out of the handles slice as they are consumed, leaving HandleInvalid behind.
// The message must be consumed exactly; unread bytes or handles are an error.
func DecodeWithContext(ctx Context, bytes []byte, handles []Handle, v Decodable) error {
	inlineSize := v.InlineSize(ctx)
	nextOutOfLine := round8(inlineSize)
	if nextOutOfLine > len(bytes) {
		return encio.Errorf(encio.ErrOutOfRange, "inline size %v but message is %v bytes", inlineSize, len(bytes))
	}

	d := &Decoder{
		endBlock:      nextOutOfLine,
		nextOutOfLine: nextOutOfLine,
		buf:           bytes,
		handles:       handles,
		ctx:           ctx,
	}
	if err := v.Decode(d); err != nil {
		return err
	}
	if d.offset != inlineSize {
		panic(fmt.Errorf("inline part not consumed; read to %v but inline size is %v", d.offset, inlineSize))
	}

	if d.nextOutOfLine < len(d.buf) {
		return encio.Errorf(encio.ErrExtraBytes, "%v unread bytes", len(d.buf)-d.nextOutOfLine)
	}
	if len(d.handles) != 0 {
		return encio.Errorf(encio.ErrExtraHandles, "%v unread handles", len(d.handles))
	}
	return d.checkPadding(d.offset, nextOutOfLine)
}

// checkPadding returns an error if any byte in [start, end) is nonzero.
func (d *Decoder) checkPadding(start, end int) error {
	if i := encio.FirstNonZero(d.buf[start:end]); i >= 0 {
		return encio.NewError(encio.NonZeroPaddingError{PaddingStart: start, NonZeroPos: start + i}, "", "")
	}
	return nil
}

// Context returns the decoder's context.
func (d *Decoder) Context() Context {
	return d.ctx
}

// Buffer returns the whole message being decoded.
func (d *Decoder) Buffer() []byte {
	return d.buf
}

// Offset returns the offset of the next read.
func (d *Decoder) Offset() int {
	return d.offset
}

// NextOutOfLine returns where the next out-of-line block starts; the end of all blocks read so far.
func (d *Decoder) NextOutOfLine() int {
	return d.nextOutOfLine
}

// RemainingHandles returns how many handles have not been consumed.
func (d *Decoder) RemainingHandles() int {
	return len(d.handles)
}

// IsEmpty returns true if the current block has been read to its end.
func (d *Decoder) IsEmpty() bool {
	return d.offset >= d.endBlock
}

// NextOffset returns the current offset and advances it by n.
// It returns an error if that would pass the end of the buffer.
func (d *Decoder) NextOffset(n int) (int, error) {
	if n < 0 || n > len(d.buf)-d.offset {
		return 0, encio.Errorf(encio.ErrOutOfRange, "reading %v bytes at %v of %v", n, d.offset, len(d.buf))
	}
	off := d.offset
	d.offset += n
	return off, nil
}

// Next returns the next n bytes and advances past them.
func (d *Decoder) Next(n int) ([]byte, error) {
	off, err := d.NextOffset(n)
	if err != nil {
		return nil, err
	}
	return d.buf[off : off+n], nil
}

// SkipPadding advances past n bytes that must be zero.
func (d *Decoder) SkipPadding(n int) error {
	if n == 0 {
		return nil
	}
	if n > len(d.buf)-d.offset {
		return encio.Errorf(encio.ErrOutOfRange, "padding of %v bytes at %v of %v", n, d.offset, len(d.buf))
	}
	if err := d.checkPadding(d.offset, d.offset+n); err != nil {
		return err
	}
	d.offset += n
	return nil
}

// TakeHandle moves the next handle out of the handle list.
func (d *Decoder) TakeHandle() (Handle, error) {
	if len(d.handles) == 0 {
		return HandleInvalid, encio.Errorf(encio.ErrOutOfRange, "no handles left")
	}
	h := d.handles[0].take()
	d.handles = d.handles[1:]
	return h, nil
}

// ReadOutOfLine reads the next out-of-line block of n bytes with f.
// f must read exactly n bytes; the block's padding is validated afterwards.
func (d *Decoder) ReadOutOfLine(n int, f func(d *Decoder) error) error {
	if n < 0 || n > len(d.buf)-d.nextOutOfLine {
		return encio.Errorf(encio.ErrOutOfRange, "out-of-line block of %v bytes at %v of %v", n, d.nextOutOfLine, len(d.buf))
	}

	oldOffset, oldEndBlock := d.offset, d.endBlock
	start := d.nextOutOfLine

	d.offset = start
	d.nextOutOfLine = start + round8(n)
	d.endBlock = d.nextOutOfLine
	if d.nextOutOfLine > len(d.buf) {
		return encio.Errorf(encio.ErrOutOfRange, "out-of-line block padding at %v of %v", start+n, len(d.buf))
	}

	d.depth++
	if d.depth > encio.MaxRecursion {
		return encio.Errorf(encio.ErrMaxRecursionDepth, "depth %v", d.depth)
	}
	if err := f(d); err != nil {
		return err
	}
	d.depth--

	if d.offset != start+n {
		panic(fmt.Errorf("out-of-line block not consumed; read to %v but block ends at %v", d.offset, start+n))
	}
	if err := d.checkPadding(d.offset, d.endBlock); err != nil {
		return err
	}

	d.offset, d.endBlock = oldOffset, oldEndBlock
	return nil
}

// Uint8 reads a uint8.
func (d *Decoder) Uint8() (uint8, error) {
	off, err := d.NextOffset(1)
	if err != nil {
		return 0, err
	}
	return d.buf[off], nil
}

// Uint16 reads a little-endian uint16.
func (d *Decoder) Uint16() (uint16, error) {
	off, err := d.NextOffset(2)
	if err != nil {
		return 0, err
	}
	return encio.DecodeUint16(d.buf[off:]), nil
}

// Uint32 reads a little-endian uint32.
func (d *Decoder) Uint32() (uint32, error) {
	off, err := d.NextOffset(4)
	if err != nil {
		return 0, err
	}
	return encio.DecodeUint32(d.buf[off:]), nil
}

// Uint64 reads a little-endian uint64.
func (d *Decoder) Uint64() (uint64, error) {
	off, err := d.NextOffset(8)
	if err != nil {
		return 0, err
	}
	return encio.DecodeUint64(d.buf[off:]), nil
}

// peek returns the next n bytes without advancing.
func (d *Decoder) peek(n int) ([]byte, error) {
	if n > len(d.buf)-d.offset {
		return nil, encio.Errorf(encio.ErrOutOfRange, "reading %v bytes at %v of %v", n, d.offset, len(d.buf))
	}
	return d.buf[d.offset : d.offset+n], nil
}
