package wire

import (
	"github.com/stewi1014/fidl/encio"
)

// Autonull is implemented by types that can be made nullable.
type Autonull interface {
	Payload

	// NaturallyNullable returns true if the type's own encoding has a spare all-zero representation
	// that can stand for absent, as unions do. Other types are made nullable by moving them out of line
	// behind a presence marker.
	NaturallyNullable(ctx Context) bool
}

// AutonullPtr constrains a type parameter to be a pointer to T implementing Autonull.
type AutonullPtr[T any] interface {
	*T
	Autonull
}

// Nullable is an optional T. A nil Value is absent.
type Nullable[T any, P AutonullPtr[T]] struct {
	Value *T
}

func naturallyNullable[T any, P AutonullPtr[T]](ctx Context) bool {
	var zero T
	return P(&zero).NaturallyNullable(ctx)
}

// InlineAlignment implements Layout.
func (n *Nullable[T, P]) InlineAlignment(ctx Context) int {
	if naturallyNullable[T, P](ctx) {
		return alignOf[T, P](ctx)
	}
	return 8
}

// InlineSize implements Layout.
func (n *Nullable[T, P]) InlineSize(ctx Context) int {
	if naturallyNullable[T, P](ctx) {
		return sizeOf[T, P](ctx)
	}
	return 8
}

// Encode implements Encodable.
func (n *Nullable[T, P]) Encode(e *Encoder, offset, depth int) error {
	if naturallyNullable[T, P](e.ctx) {
		if n.Value == nil {
			e.Padding(offset, sizeOf[T, P](e.ctx))
			return nil
		}
		return P(n.Value).Encode(e, offset, depth)
	}

	if n.Value == nil {
		e.PutUint64(offset, encio.AllocAbsent64)
		return nil
	}
	e.PutUint64(offset, encio.AllocPresent64)
	return e.WriteOutOfLine(sizeOf[T, P](e.ctx), depth, P(n.Value).Encode)
}

// Decode implements Decodable.
func (n *Nullable[T, P]) Decode(d *Decoder) error {
	if naturallyNullable[T, P](d.ctx) {
		size := sizeOf[T, P](d.ctx)
		inline, err := d.peek(size)
		if err != nil {
			return err
		}
		if encio.FirstNonZero(inline) < 0 {
			n.Value = nil
			return d.SkipPadding(size)
		}
		if n.Value == nil {
			n.Value = new(T)
		}
		return P(n.Value).Decode(d)
	}

	presence, err := d.Uint64()
	if err != nil {
		return err
	}
	switch presence {
	case encio.AllocPresent64:
		if n.Value == nil {
			n.Value = new(T)
		}
		return d.ReadOutOfLine(sizeOf[T, P](d.ctx), P(n.Value).Decode)
	case encio.AllocAbsent64:
		n.Value = nil
		return nil
	default:
		return encio.Errorf(encio.ErrInvalid, "presence %#x", presence)
	}
}
