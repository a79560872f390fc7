package wiretest

import (
	"github.com/stewi1014/fidl/wire"
)

// Buttons is a bits type.
type Buttons uint32

const (
	ButtonsPlay Buttons = 1 << iota
	ButtonsPause
	ButtonsStop

	ButtonsMask = ButtonsPlay | ButtonsPause | ButtonsStop
)

func (*Buttons) InlineAlignment(wire.Context) int { return wire.IntegerLayout[Buttons]().Alignment }
func (*Buttons) InlineSize(wire.Context) int      { return wire.IntegerLayout[Buttons]().Size }

// Encode implements wire.Encodable.
func (b *Buttons) Encode(e *wire.Encoder, offset, _ int) error {
	wire.EncodeInteger(e, offset, *b)
	return nil
}

// Decode implements wire.Decodable.
func (b *Buttons) Decode(d *wire.Decoder) (err error) {
	*b, err = wire.DecodeBits(d, ButtonsMask)
	return
}

// Animal is an enum type.
type Animal int32

const (
	AnimalDog Animal = iota
	AnimalCat
	AnimalFrog
)

func (*Animal) InlineAlignment(wire.Context) int { return 4 }
func (*Animal) InlineSize(wire.Context) int      { return 4 }

// Encode implements wire.Encodable.
func (a *Animal) Encode(e *wire.Encoder, offset, _ int) error {
	wire.EncodeInteger(e, offset, *a)
	return nil
}

// Decode implements wire.Decodable.
func (a *Animal) Decode(d *wire.Decoder) (err error) {
	*a, err = wire.DecodeEnum(d, AnimalDog, AnimalCat, AnimalFrog)
	return
}
