package wire

import (
	"fmt"
	"strings"

	"github.com/stewi1014/fidl/encio"
)

// HeaderFlags are the flags carried in a message header.
// Only the low 24 bits are transmitted.
type HeaderFlags uint32

const (
	// UnionsUseXUnionFormat indicates unions in the body are encoded in the extensible format.
	UnionsUseXUnionFormat HeaderFlags = 1 << 0

	knownHeaderFlags = UnionsUseXUnionFormat
)

// HeaderFlagsFromBytes interprets the three transmitted flag bytes, dropping bits this codec doesn't know.
func HeaderFlagsFromBytes(b [3]byte) HeaderFlags {
	f := HeaderFlags(b[0]) | HeaderFlags(b[1])<<8 | HeaderFlags(b[2])<<16
	return f & knownHeaderFlags
}

// Bytes returns the three transmitted flag bytes.
func (f HeaderFlags) Bytes() [3]byte {
	return [3]byte{byte(f), byte(f >> 8), byte(f >> 16)}
}

// String implements fmt.Stringer.
func (f HeaderFlags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	if f&UnionsUseXUnionFormat != 0 {
		names = append(names, "UNIONS_USE_XUNION_FORMAT")
		f &^= UnionsUseXUnionFormat
	}
	if f != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(f)))
	}
	return strings.Join(names, "|")
}

// Context carries the settings that select between wire format variants.
// It is threaded through every layout, encode and decode call, and is never mutated.
//
// Do not construct Context directly; use DefaultContext or a header's DecodingContext.
// Contexts coordinate migrations between wire formats, and a wrong one breaks compatibility.
type Context struct {
	_ struct{}
}

// DefaultContext returns the context used for encoding.
func DefaultContext() Context {
	return Context{}
}

// HeaderFlags returns the flags to set in a header when encoding with c.
func (c Context) HeaderFlags() HeaderFlags {
	return UnionsUseXUnionFormat
}

// String returns a string representation of the context.
func (c Context) String() string {
	return fmt.Sprintf("Context{flags: %v, max recursion: %v}", c.HeaderFlags(), encio.MaxRecursion)
}
