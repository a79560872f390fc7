// Package encio provides the low level pieces shared by the wire codec and message framing;
// little-endian scalar access, presence markers, alignment rounding, and error types.
package encio

const (
	// MaxRecursion is the deepest out-of-line nesting a message may have.
	// The top level object is at depth 0; an object exactly MaxRecursion blocks deep is allowed.
	MaxRecursion = 32

	// Alignment is the alignment of every out-of-line object, and of a message's inline size.
	Alignment = 8
)

const (
	// AllocPresent64 marks a present out-of-line object in an 8 byte presence slot.
	AllocPresent64 = uint64(0xFFFF_FFFF_FFFF_FFFF)
	// AllocAbsent64 marks an absent out-of-line object in an 8 byte presence slot.
	AllocAbsent64 = uint64(0)

	// AllocPresent32 marks a present handle.
	AllocPresent32 = uint32(0xFFFF_FFFF)
	// AllocAbsent32 marks an absent handle.
	AllocAbsent32 = uint32(0)
)

const (
	// EpitaphOrdinal is the ordinal of an epitaph message.
	EpitaphOrdinal = uint64(0xFFFF_FFFF_FFFF_FFFF)

	// MagicNumberInitial is the wire format magic number this codec writes and accepts.
	MagicNumberInitial = uint8(1)
)

// RoundUpToAlign rounds x up to a multiple of align, which must be a power of two.
func RoundUpToAlign(x, align int) int {
	if align == 0 || align&(align-1) != 0 {
		panic("alignment must be a power of two")
	}
	return (x + align - 1) &^ (align - 1)
}

// Round8 rounds x up to a multiple of 8.
func Round8(x int) int {
	return (x + 7) &^ 7
}
