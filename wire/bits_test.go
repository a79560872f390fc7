package wire_test

import (
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/fidl/conformance"
	"github.com/stewi1014/fidl/encio"
	"github.com/stewi1014/fidl/wire"
	"github.com/stewi1014/fidl/wire/wiretest"
)

func TestBits(t *testing.T) {
	encodeAssertBytes(t, wiretest.ButtonsPlay|wiretest.ButtonsStop, conformance.MustBytes("bits_play_stop"))
	identity(t, wiretest.ButtonsMask)
	identity(t, wiretest.Buttons(0))

	for bit := 3; bit < 32; bit++ {
		b := make([]byte, 8)
		encio.EncodeUint32(b, 1<<bit)
		decodeErr[wiretest.Buttons](t, b, nil, encio.ErrInvalid)
	}
}

func TestEnum(t *testing.T) {
	encodeAssertBytes(t, wiretest.AnimalFrog, conformance.MustBytes("enum_frog"))
	identity(t, wiretest.AnimalDog)
	identity(t, wiretest.AnimalCat)

	decodeErr[wiretest.Animal](t, conformance.MustBytes("enum_unknown"), nil, encio.ErrInvalid)
	decodeErr[wiretest.Animal](t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}, nil, encio.ErrInvalid)
}

func TestIntegerLayout(t *testing.T) {
	td.Cmp(t, wire.IntegerLayout[uint8](), wire.StructLayout{Size: 1, Alignment: 1})
	td.Cmp(t, wire.IntegerLayout[int16](), wire.StructLayout{Size: 2, Alignment: 2})
	td.Cmp(t, wire.IntegerLayout[wiretest.Buttons](), wire.StructLayout{Size: 4, Alignment: 4})
	td.Cmp(t, wire.IntegerLayout[int64](), wire.StructLayout{Size: 8, Alignment: 8})
}
