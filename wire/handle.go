package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// Handle is an opaque kernel object reference carried alongside a message's bytes.
// The codec never interprets its value; it only moves it.
type Handle uint32

// HandleInvalid is the value left behind when a handle is moved.
const HandleInvalid Handle = 0

// IsValid returns true if h is not HandleInvalid.
func (h Handle) IsValid() bool {
	return h != HandleInvalid
}

// take returns h, leaving HandleInvalid in its place.
func (h *Handle) take() Handle {
	v := *h
	*h = HandleInvalid
	return v
}

func (*Handle) InlineAlignment(Context) int { return 4 }
func (*Handle) InlineSize(Context) int      { return 4 }

// Encode implements Encodable.
// It moves h into the message's handle list.
func (h *Handle) Encode(e *Encoder, offset, _ int) error {
	e.PutUint32(offset, encio.AllocPresent32)
	e.handles = append(e.handles, h.take())
	return nil
}

// Decode implements Decodable.
func (h *Handle) Decode(d *Decoder) error {
	present, err := d.Uint32()
	if err != nil {
		return err
	}
	switch present {
	case encio.AllocPresent32:
	case encio.AllocAbsent32:
		return encio.Errorf(encio.ErrNotNullable, "absent handle")
	default:
		return encio.Errorf(encio.ErrInvalid, "handle presence %#x", present)
	}
	*h, err = d.TakeHandle()
	return err
}

// NullableHandle is a handle that may be absent. HandleInvalid is absent.
type NullableHandle Handle

func (*NullableHandle) InlineAlignment(Context) int { return 4 }
func (*NullableHandle) InlineSize(Context) int      { return 4 }

// Encode implements Encodable.
func (h *NullableHandle) Encode(e *Encoder, offset, depth int) error {
	if Handle(*h) == HandleInvalid {
		e.PutUint32(offset, encio.AllocAbsent32)
		return nil
	}
	return (*Handle)(h).Encode(e, offset, depth)
}

// Decode implements Decodable.
func (h *NullableHandle) Decode(d *Decoder) error {
	present, err := d.Uint32()
	if err != nil {
		return err
	}
	switch present {
	case encio.AllocAbsent32:
		*h = NullableHandle(HandleInvalid)
		return nil
	case encio.AllocPresent32:
		v, err := d.TakeHandle()
		*h = NullableHandle(v)
		return err
	default:
		return encio.Errorf(encio.ErrInvalid, "handle presence %#x", present)
	}
}
