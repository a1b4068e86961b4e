package lex_test

import (
	"bytes"
	"testing"

	"github.com/ehsanranjbar/flatdoc/codec/lex"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		input    []byte
		expected []byte
	}{
		{[]byte{0x00}, []byte{0x01}},
		{[]byte{0x01}, []byte{0x02}},
		{[]byte{0xff}, []byte{0xff, 0x01}},
		{[]byte{0x00, 0xff}, []byte{0x01, 0x00}},
		{[]byte{0xff, 0xff}, []byte{0xff, 0xff, 0x01}},
	}

	for _, test := range tests {
		result := lex.Increment(test.input)
		require.Equal(t, test.expected, result, "Increment(%v)", test.input)
	}
}

func TestUint32(t *testing.T) {
	values := []uint32{0, 1, 255, 256, 1 << 31, 1<<32 - 1}
	for i, v := range values {
		b := lex.EncodeUint32(v)
		require.Len(t, b, 4)
		require.Equal(t, v, lex.DecodeUint32(b))

		if i > 0 {
			require.Equal(t, -1, bytes.Compare(lex.EncodeUint32(values[i-1]), b))
		}
	}

	_, err := lex.ParseUint32([]byte{1, 2})
	require.Error(t, err)

	v, err := lex.ParseUint32([]byte{0, 0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, uint32(256), v)
}
