package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Unmarshal parses a single JSON document.
func Unmarshal(data []byte) (Value, error) {
	dec := newJSONDecoder(bytes.NewReader(data))
	v, err := dec.decode()
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// Decoder reads a stream of JSON documents.
type Decoder struct {
	dec jsonDecoder
}

// NewDecoder returns a Decoder reading from r. The decoder buffers r, so
// every document of the stream must be read through the same Decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: newJSONDecoder(r)}
}

// Decode reads the next JSON document. It returns io.EOF once the stream
// is exhausted.
func (d *Decoder) Decode() (Value, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return Value{}, err
	}
	return d.dec.decodeToken(tok)
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v Value) ([]byte, error) {
	enc := newJSONEncoder()
	if err := enc.encode(v); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *Value) UnmarshalJSON(data []byte) error {
	x, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*v = x
	return nil
}

type jsonDecoder struct {
	*json.Decoder
}

func newJSONDecoder(r io.Reader) jsonDecoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return jsonDecoder{dec}
}

func (dec jsonDecoder) decode() (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	return dec.decodeToken(tok)
}

func (dec jsonDecoder) decodeToken(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Value{kind: KindNumber, s: string(t)}, nil
	case json.Delim:
		switch t {
		case '{':
			return dec.decodeObject()
		case '[':
			return dec.decodeArray()
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func (dec jsonDecoder) decodeObject() (Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key %v", tok)
		}

		v, err := dec.decode()
		if err != nil {
			return Value{}, err
		}
		if err := obj.Add(key, v); err != nil {
			return Value{}, err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func (dec jsonDecoder) decodeArray() (Value, error) {
	arr := Value{kind: KindArray, items: []Value{}}
	for dec.More() {
		v, err := dec.decode()
		if err != nil {
			return Value{}, err
		}
		arr.items = append(arr.items, v)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

type jsonEncoder struct {
	buf bytes.Buffer
	str *json.Encoder
}

func newJSONEncoder() *jsonEncoder {
	enc := &jsonEncoder{}
	enc.str = json.NewEncoder(&enc.buf)
	enc.str.SetEscapeHTML(false)
	return enc
}

func (enc *jsonEncoder) encode(v Value) error {
	switch v.kind {
	case KindNull:
		enc.buf.WriteString("null")
	case KindBool:
		if v.b {
			enc.buf.WriteString("true")
		} else {
			enc.buf.WriteString("false")
		}
	case KindNumber:
		enc.buf.WriteString(v.s)
	case KindString:
		return enc.encodeString(v.s)
	case KindArray:
		enc.buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				enc.buf.WriteByte(',')
			}
			if err := enc.encode(item); err != nil {
				return err
			}
		}
		enc.buf.WriteByte(']')
	case KindObject:
		enc.buf.WriteByte('{')
		i := 0
		for key, member := range v.obj.Iter() {
			if i > 0 {
				enc.buf.WriteByte(',')
			}
			i++
			if err := enc.encodeString(key); err != nil {
				return err
			}
			enc.buf.WriteByte(':')
			if err := enc.encode(member); err != nil {
				return err
			}
		}
		enc.buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %s", v.kind)
	}
	return nil
}

// encodeString leans on encoding/json for escaping and drops the newline
// json.Encoder appends.
func (enc *jsonEncoder) encodeString(s string) error {
	if err := enc.str.Encode(s); err != nil {
		return err
	}
	enc.buf.Truncate(enc.buf.Len() - 1)
	return nil
}
