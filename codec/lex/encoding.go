package lex

import (
	"encoding/binary"
	"fmt"
)

// EncodeUint32 returns the big endian representation of v, which sorts in numeric order.
func EncodeUint32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// DecodeUint32 returns the uint32 encoded by EncodeUint32.
func DecodeUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// ParseUint32 is like DecodeUint32 but fails on slices of the wrong length.
func ParseUint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("invalid uint32 length %d", len(b))
	}
	return DecodeUint32(b), nil
}
