package wire

import (
	"github.com/stewi1014/fidl/encio"
)

const (
	resultOkOrdinal  = 1
	resultErrOrdinal = 2
)

// Result is the outcome of a method that can fail; either a response or an error.
// It is encoded as a union with the response at ordinal 1 and the error at ordinal 2.
type Result[O any, OP PayloadPtr[O], E any, EP PayloadPtr[E]] struct {
	UnionLayout

	Response O
	Err      E
	// IsErr selects Err instead of Response.
	IsErr bool
}

// Encode implements Encodable.
// A response with no inline size is sent as a single zero byte.
func (r *Result[O, OP, E, EP]) Encode(e *Encoder, offset, depth int) error {
	if r.IsErr {
		return EncodeUnion(e, offset, depth, resultErrOrdinal, EP(&r.Err))
	}

	var response Encodable = OP(&r.Response)
	if response.InlineSize(e.ctx) == 0 {
		response = new(Uint8)
	}
	return EncodeUnion(e, offset, depth, resultOkOrdinal, response)
}

// Decode implements Decodable.
func (r *Result[O, OP, E, EP]) Decode(d *Decoder) error {
	ordinal, _, err := decodeUnionHeader(d)
	if err != nil {
		return err
	}

	switch ordinal {
	case resultOkOrdinal:
		r.IsErr = false
		response := OP(&r.Response)
		size := response.InlineSize(d.ctx)
		if size == 0 {
			return d.ReadOutOfLine(1, func(d *Decoder) error {
				return d.SkipPadding(1)
			})
		}
		return d.ReadOutOfLine(size, response.Decode)
	case resultErrOrdinal:
		r.IsErr = true
		errValue := EP(&r.Err)
		return d.ReadOutOfLine(errValue.InlineSize(d.ctx), errValue.Decode)
	default:
		return encio.Errorf(encio.ErrUnknownUnionTag, "result ordinal %#x", ordinal)
	}
}
