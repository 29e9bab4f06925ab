package encoding

import (
	"encoding/binary"
	"math"
)

// AppendInt32 appends the big endian form of `in` to `buf`.
// Negative values keep their two's complement bits so the encoding is
// identical on every platform.
func AppendInt32(buf []byte, in int32) []byte {
	return binary.BigEndian.AppendUint32(buf, uint32(in))
}

// AppendFloat64 appends the big endian IEEE 754 bits of `in` to `buf`.
func AppendFloat64(buf []byte, in float64) []byte {
	return binary.BigEndian.AppendUint64(buf, math.Float64bits(in))
}

// AppendString appends a length prefixed string, so that ("ab", "c") and
// ("a", "bc") never encode to the same bytes.
func AppendString(buf []byte, in string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(in)))
	return append(buf, in...)
}

// FromBytes8 turns a []byte into a uint8.
func FromBytes8(data []byte) uint8 {
	if len(data) == 0 {
		return 0
	}
	return data[len(data)-1]
}

// ToBytes8 turns uint8 into []byte of len 1 (eg. 8 bits)
func ToBytes8(in uint8) []byte {
	return []byte{in}
}

// Split32 uint32 to two uint16
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// Split16 uint16 to two uint8
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 two uint8 to uint16
func Merge8(a, b uint8) uint16 {
	return (uint16(a) << 8) + uint16(b)
}
