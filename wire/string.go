package wire

import (
	"unicode/utf8"

	"github.com/stewi1014/fidl/encio"
)

// String is a UTF-8 string. It is never absent.
type String string

func (*String) InlineAlignment(Context) int { return 8 }
func (*String) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (s *String) Encode(e *Encoder, offset, depth int) error {
	return encodeString(e, offset, depth, string(*s))
}

// Decode implements Decodable.
func (s *String) Decode(d *Decoder) error {
	v, present, err := decodeString(d)
	if err != nil {
		return err
	}
	if !present {
		return encio.Errorf(encio.ErrNotNullable, "absent string")
	}
	*s = String(v)
	return nil
}

// NullableString is a UTF-8 string that may be absent.
type NullableString struct {
	Value string
	Valid bool
}

// NewNullableString returns a present NullableString.
func NewNullableString(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

func (*NullableString) InlineAlignment(Context) int { return 8 }
func (*NullableString) InlineSize(Context) int      { return 16 }

// Encode implements Encodable.
func (s *NullableString) Encode(e *Encoder, offset, depth int) error {
	if !s.Valid {
		EncodeAbsentVector(e, offset)
		return nil
	}
	return encodeString(e, offset, depth, s.Value)
}

// Decode implements Decodable.
func (s *NullableString) Decode(d *Decoder) error {
	v, present, err := decodeString(d)
	if err != nil {
		return err
	}
	*s = NullableString{Value: v, Valid: present}
	return nil
}

func encodeString(e *Encoder, offset, depth int, s string) error {
	if !utf8.ValidString(s) {
		return encio.Errorf(encio.ErrUTF8, "string of %v bytes", len(s))
	}
	return encodeBytesVector(e, offset, depth, []byte(s))
}

func decodeString(d *Decoder) (s string, present bool, err error) {
	n, present, err := decodeVectorHeader(d)
	if err != nil || !present {
		return "", present, err
	}

	err = d.ReadOutOfLine(n, func(d *Decoder) error {
		b, err := d.Next(n)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return encio.Errorf(encio.ErrUTF8, "string of %v bytes", n)
		}
		s = string(b)
		return nil
	})
	return s, true, err
}
