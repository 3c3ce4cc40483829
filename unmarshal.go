// Copyright 2025 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bencode

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Unmarshaler is the interface implemented by the types that can decode
// themselves from the raw bencoded bytes of one whole value.
type Unmarshaler interface {
	UnmarshalBencode([]byte) error
}

// DecodeBytes decodes one value from the bencoded bytes b into v,
// which must be a non-nil pointer. The trailing bytes after the first
// value are ignored.
//
// The bencoded values are mapped to the Go values in reverse of
// EncodeBytes. Beside, for a target of the type interface{}, the strings,
// the integers, the lists and the dictionaries are decoded as string,
// int64, []interface{} and map[string]interface{}. For a struct target,
// the unknown dictionary keys are ignored, and the fields missing from
// the dictionary are left unmodified.
func DecodeBytes(b []byte, v interface{}) (err error) {
	if err = NewDecoder(bytes.NewReader(b)).Decode(v); err == io.EOF {
		err = ErrUnexpectedEOF
	}
	return
}

// DecodeString is the same as DecodeBytes, but decodes from a string.
func DecodeString(s string, v interface{}) (err error) {
	if err = NewDecoder(strings.NewReader(s)).Decode(v); err == io.EOF {
		err = ErrUnexpectedEOF
	}
	return
}

// Decode reads the next value from the input and decodes it into v
// like DecodeBytes.
//
// If the input ends cleanly before the first byte of a value, it returns
// io.EOF, so the values concatenated in one stream may be decoded one by
// one until io.EOF.
func (d *Decoder) Decode(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("bencode: the decode target must be a non-nil pointer")
	}

	if _, err := d.r.Peek(1); err != nil {
		return err
	}
	return d.decodeReflect(rv.Elem(), 0)
}

func (d *Decoder) decodeReflect(rv reflect.Value, depth int) (err error) {
	if depth >= maxNestingDepth {
		return ErrDepthExceeded
	}

	// Follow and allocate the pointers down to the decoding target,
	// stopping at a type that decodes itself.
	for {
		if rv.CanAddr() {
			pv := rv.Addr()
			if u, ok := pv.Interface().(Unmarshaler); ok {
				return d.decodeUnmarshaler(u)
			}
			if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
				return d.decodeTextUnmarshaler(u, rv.Type())
			}
		}

		if rv.Kind() != reflect.Pointer {
			break
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	switch t := rv.Type(); {
	case t == valueType:
		v, err := d.decodeValue(depth)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil

	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		v, err := d.decodeInterface(depth)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	offset := d.n
	b, err := d.peekByte()
	if err != nil {
		return
	}

	switch {
	case b == 'i':
		return d.decodeReflectInteger(rv)
	case b >= '0' && b <= '9':
		return d.decodeReflectString(rv)
	case b == 'l':
		return d.decodeReflectList(rv, depth)
	case b == 'd':
		return d.decodeReflectDictionary(rv, depth)
	}

	d.readByte()
	return &SyntaxError{Offset: offset, Byte: b, Context: "the first byte of a value"}
}

func (d *Decoder) decodeUnmarshaler(u Unmarshaler) (err error) {
	raw, err := d.captureValue()
	if err == nil {
		err = u.UnmarshalBencode(raw)
	}
	return
}

func (d *Decoder) decodeTextUnmarshaler(u encoding.TextUnmarshaler, t reflect.Type) (err error) {
	b, err := d.peekByte()
	if err != nil {
		return
	} else if b < '0' || b > '9' {
		return fmt.Errorf("bencode: cannot decode %s into %s", wireName(b), t)
	}

	if b, err = d.readByte(); err != nil {
		return
	}

	s, err := d.decodeString(b)
	if err == nil {
		err = u.UnmarshalText(s)
	}
	return
}

func (d *Decoder) decodeReflectInteger(rv reflect.Value) (err error) {
	if _, err = d.readByte(); err != nil { // 'i'
		return
	}

	i, err := d.decodeInteger()
	if err != nil {
		return
	}

	n := int64(i)
	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(n != 0)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(n) {
			return fmt.Errorf("bencode: integer %d overflows %s", n, rv.Type())
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("bencode: integer %d overflows %s", n, rv.Type())
		}
		rv.SetUint(uint64(n))

	default:
		return fmt.Errorf("bencode: cannot decode an integer into %s", rv.Type())
	}
	return
}

func (d *Decoder) decodeReflectString(rv reflect.Value) (err error) {
	b, err := d.readByte()
	if err != nil {
		return
	}

	s, err := d.decodeString(b)
	if err != nil {
		return
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(string(s))

	case reflect.Slice:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("bencode: cannot decode a string into %s", rv.Type())
		}
		rv.SetBytes(s)

	case reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("bencode: cannot decode a string into %s", rv.Type())
		} else if len(s) != rv.Len() {
			return fmt.Errorf("bencode: cannot decode a %d-byte string into %s", len(s), rv.Type())
		}
		reflect.Copy(rv, reflect.ValueOf([]byte(s)))

	default:
		return fmt.Errorf("bencode: cannot decode a string into %s", rv.Type())
	}
	return
}

func (d *Decoder) decodeReflectList(rv reflect.Value, depth int) (err error) {
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return fmt.Errorf("bencode: cannot decode a list into %s", rv.Type())
	}

	if _, err = d.readByte(); err != nil { // 'l'
		return
	}

	n := 0
	for {
		b, err := d.peekByte()
		if err != nil {
			return err
		} else if b == 'e' {
			d.readByte()
			break
		}

		if rv.Kind() == reflect.Slice {
			if n >= rv.Len() {
				rv.Set(reflect.Append(rv, reflect.Zero(rv.Type().Elem())))
			}
		} else if n >= rv.Len() {
			// Discard the elements beyond the array length.
			if err = d.skipValue(depth + 1); err != nil {
				return err
			}
			n++
			continue
		}

		if err = d.decodeReflect(rv.Index(n), depth+1); err != nil {
			return err
		}
		n++
	}

	if rv.Kind() == reflect.Slice {
		if n < rv.Len() {
			rv.SetLen(n)
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
		}
	} else {
		for elem := reflect.Zero(rv.Type().Elem()); n < rv.Len(); n++ {
			rv.Index(n).Set(elem)
		}
	}
	return nil
}

func (d *Decoder) decodeReflectDictionary(rv reflect.Value, depth int) (err error) {
	switch rv.Kind() {
	case reflect.Map:
		return d.decodeReflectMap(rv, depth)
	case reflect.Struct:
		return d.decodeReflectStruct(rv, depth)
	}
	return fmt.Errorf("bencode: cannot decode a dictionary into %s", rv.Type())
}

func (d *Decoder) decodeReflectMap(rv reflect.Value, depth int) (err error) {
	t := rv.Type()
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(t))
	}

	if _, err = d.readByte(); err != nil { // 'd'
		return
	}

	for {
		offset := d.n
		b, err := d.peekByte()
		if err != nil {
			return err
		} else if b == 'e' {
			d.readByte()
			return nil
		} else if b < '0' || b > '9' {
			d.readByte()
			return &SyntaxError{Offset: offset, Byte: b, Context: "a dictionary key"}
		}

		d.readByte()
		key, err := d.decodeString(b)
		if err != nil {
			return err
		}

		kv, err := reflectMapKey(key, t.Key())
		if err != nil {
			return err
		}

		ev := reflect.New(t.Elem()).Elem()
		if err = d.decodeReflect(ev, depth+1); err != nil {
			return err
		}
		rv.SetMapIndex(kv, ev)
	}
}

// reflectMapKey converts the dictionary key to a value of the map key
// type t, which must be a string kind, a byte array, such as the 20-byte
// info-hash, or a type implementing encoding.TextUnmarshaler.
func reflectMapKey(key String, t reflect.Type) (rv reflect.Value, err error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(string(key)).Convert(t), nil

	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			if len(key) != t.Len() {
				return rv, fmt.Errorf("bencode: cannot use the %d-byte dictionary key as %s", len(key), t)
			}
			rv = reflect.New(t).Elem()
			reflect.Copy(rv, reflect.ValueOf([]byte(key)))
			return rv, nil
		}
	}

	pv := reflect.New(t)
	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		if err = u.UnmarshalText(key); err == nil {
			rv = pv.Elem()
		}
		return
	}
	return rv, fmt.Errorf("bencode: unsupported map key type %s", t)
}

func (d *Decoder) decodeReflectStruct(rv reflect.Value, depth int) (err error) {
	fields := structFieldsOf(rv.Type())

	if _, err = d.readByte(); err != nil { // 'd'
		return
	}

	for {
		offset := d.n
		b, err := d.peekByte()
		if err != nil {
			return err
		} else if b == 'e' {
			d.readByte()
			return nil
		} else if b < '0' || b > '9' {
			d.readByte()
			return &SyntaxError{Offset: offset, Byte: b, Context: "a dictionary key"}
		}

		d.readByte()
		key, err := d.decodeString(b)
		if err != nil {
			return err
		}

		if i, ok := fields.byName[string(key)]; ok {
			err = d.decodeReflect(rv.Field(i), depth+1)
		} else {
			// Ignore the unknown keys.
			err = d.skipValue(depth + 1)
		}
		if err != nil {
			return err
		}
	}
}

// decodeInterface decodes one value into the dynamic Go types, that's,
// string, int64, []interface{} and map[string]interface{}.
func (d *Decoder) decodeInterface(depth int) (v interface{}, err error) {
	if depth >= maxNestingDepth {
		return nil, ErrDepthExceeded
	}

	offset := d.n
	b, err := d.readByte()
	if err != nil {
		return
	}

	switch {
	case b == 'i':
		var i Integer
		if i, err = d.decodeInteger(); err == nil {
			v = int64(i)
		}
		return

	case b >= '0' && b <= '9':
		var s String
		if s, err = d.decodeString(b); err == nil {
			v = string(s)
		}
		return

	case b == 'l':
		list := make([]interface{}, 0, 4)
		for {
			if b, err = d.peekByte(); err != nil {
				return
			} else if b == 'e' {
				d.readByte()
				return list, nil
			}

			var e interface{}
			if e, err = d.decodeInterface(depth + 1); err != nil {
				return
			}
			list = append(list, e)
		}

	case b == 'd':
		dict := make(map[string]interface{}, 4)
		for {
			offset = d.n
			if b, err = d.peekByte(); err != nil {
				return
			} else if b == 'e' {
				d.readByte()
				return dict, nil
			} else if b < '0' || b > '9' {
				d.readByte()
				return nil, &SyntaxError{Offset: offset, Byte: b, Context: "a dictionary key"}
			}

			d.readByte()
			var key String
			if key, err = d.decodeString(b); err != nil {
				return
			}

			var e interface{}
			if e, err = d.decodeInterface(depth + 1); err != nil {
				return
			}
			dict[string(key)] = e
		}
	}

	return nil, &SyntaxError{Offset: offset, Byte: b, Context: "the first byte of a value"}
}

func wireName(b byte) string {
	switch {
	case b == 'i':
		return "an integer"
	case b == 'l':
		return "a list"
	case b == 'd':
		return "a dictionary"
	case b >= '0' && b <= '9':
		return "a string"
	}
	return fmt.Sprintf("the unexpected character %q", b)
}
