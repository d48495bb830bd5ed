package encoding

import (
	"encoding/binary"
	"math"
)

// ToBytes64 turns a uint64 into []byte len 8
func ToBytes64(in uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, in)
	return buf
}

// FromBytes64 turns []byte into uint64
func FromBytes64(data []byte) uint64 {
	return binary.BigEndian.Uint64(data)
}

// Float64ToBytes writes the IEEE 754 bits of f.
// Negative zero is folded into zero so "the same" placement always encodes the same.
func Float64ToBytes(f float64) []byte {
	if f == 0 {
		f = 0
	}
	return ToBytes64(math.Float64bits(f))
}

// Float64FromBytes is the inversion of Float64ToBytes
func Float64FromBytes(data []byte) float64 {
	return math.Float64frombits(FromBytes64(data))
}
