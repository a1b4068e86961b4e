// Package lex contains helpers for byte slices compared in lexicographical order.
package lex

import "bytes"

// Increment increments the given byte slice in place so that it would be the
// next in lexicographical order among slices of the same length. When every
// byte is 0xff the result is one byte longer than b.
func Increment(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] > 0x00 {
			return b
		}
	}
	return append(bytes.Repeat([]byte{0xff}, len(b)), 0x01)
}
