package encio

// EncodeUint16 writes a little-endian uint16 to buff.
func EncodeUint16(buff []byte, n uint16) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
}

// DecodeUint16 reads a little-endian uint16 from buff.
func DecodeUint16(buff []byte) uint16 {
	return uint16(buff[0]) | uint16(buff[1])<<8
}

// EncodeUint32 writes a little-endian uint32 to buff.
func EncodeUint32(buff []byte, n uint32) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
}

// DecodeUint32 reads a little-endian uint32 from buff.
func DecodeUint32(buff []byte) uint32 {
	n := uint32(buff[0])
	n |= uint32(buff[1]) << 8
	n |= uint32(buff[2]) << 16
	n |= uint32(buff[3]) << 24
	return n
}

// EncodeUint64 writes a little-endian uint64 to buff.
func EncodeUint64(buff []byte, n uint64) {
	_ = buff[7]
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
	buff[4] = uint8(n >> 32)
	buff[5] = uint8(n >> 40)
	buff[6] = uint8(n >> 48)
	buff[7] = uint8(n >> 56)
}

// DecodeUint64 reads a little-endian uint64 from buff.
func DecodeUint64(buff []byte) uint64 {
	_ = buff[7]
	n := uint64(buff[0])
	n |= uint64(buff[1]) << 8
	n |= uint64(buff[2]) << 16
	n |= uint64(buff[3]) << 24
	n |= uint64(buff[4]) << 32
	n |= uint64(buff[5]) << 40
	n |= uint64(buff[6]) << 48
	n |= uint64(buff[7]) << 56
	return n
}

// FirstNonZero returns the index of the first nonzero byte in buff, or -1.
func FirstNonZero(buff []byte) int {
	for i, b := range buff {
		if b != 0 {
			return i
		}
	}
	return -1
}
