package value

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMsgpack implements the msgpack.CustomEncoder interface.
//
// Every value is written as a two element array of its kind and payload.
// Numbers travel as their literal and objects as ordered maps, so decoding
// gives back the exact same value.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(uint8(v.kind)); err != nil {
		return err
	}

	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindNumber, KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.items)); err != nil {
			return err
		}
		for _, item := range v.items {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		if err := enc.EncodeMapLen(v.obj.Len()); err != nil {
			return err
		}
		for key, member := range v.obj.Iter() {
			if err := enc.EncodeString(key); err != nil {
				return err
			}
			if err := member.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown kind %s", v.kind)
}

// DecodeMsgpack implements the msgpack.CustomDecoder interface.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("invalid value header length %d", n)
	}
	k, err := dec.DecodeUint8()
	if err != nil {
		return err
	}

	switch kind := Kind(k); kind {
	case KindNull:
		*v = Null()
		return dec.DecodeNil()
	case KindBool:
		b, err := dec.DecodeBool()
		if err != nil {
			return err
		}
		*v = Bool(b)
	case KindNumber, KindString:
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*v = Value{kind: kind, s: s}
	case KindArray:
		l, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		items := make([]Value, max(l, 0))
		for i := range items {
			if err := items[i].DecodeMsgpack(dec); err != nil {
				return err
			}
		}
		*v = Value{kind: KindArray, items: items}
	case KindObject:
		l, err := dec.DecodeMapLen()
		if err != nil {
			return err
		}
		obj := NewObject()
		for range max(l, 0) {
			key, err := dec.DecodeString()
			if err != nil {
				return err
			}
			var member Value
			if err := member.DecodeMsgpack(dec); err != nil {
				return err
			}
			if err := obj.Add(key, member); err != nil {
				return err
			}
		}
		*v = obj
	default:
		return fmt.Errorf("unknown kind %s", kind)
	}
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (v Value) MarshalBinary() ([]byte, error) {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	var buf bytes.Buffer
	enc.Reset(&buf)

	if err := v.EncodeMsgpack(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (v *Value) UnmarshalBinary(bz []byte) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(bytes.NewReader(bz))

	return v.DecodeMsgpack(dec)
}
