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
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Marshaler is the interface implemented by the types
// that can encode themselves to the bencoded bytes.
type Marshaler interface {
	MarshalBencode() ([]byte, error)
}

var (
	marshalerType     = reflect.TypeOf((*Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	valueType         = reflect.TypeOf((*Value)(nil)).Elem()
)

// EncodeBytes encodes v to the bencoded bytes.
//
// The Go values are mapped to the bencoded values as follows: the booleans
// are encoded as the integers 1 and 0, the integers as the integers, the
// strings, the byte slices and the byte arrays as the strings, the other
// slices and arrays as the lists, and the maps and the structs as the
// dictionaries. The struct fields may rename the dictionary key with the
// tag `bencode:"name"`, be skipped with `bencode:"-"`, or be omitted when
// empty with the option `bencode:"name,omitempty"`.
func EncodeBytes(v interface{}) (b []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, 128))
	if err = NewEncoder(buf).Encode(v); err == nil {
		b = buf.Bytes()
	}
	return
}

// EncodeString is the same as EncodeBytes, but returns string instead.
func EncodeString(v interface{}) (s string, err error) {
	b, err := EncodeBytes(v)
	if err == nil {
		s = string(b)
	}
	return
}

// Encode encodes v to the underlying writer like EncodeBytes.
//
// If v implements Marshaler, its output is written verbatim. The dictionary
// keys are always emitted in the ascending byte order, so the output is the
// canonical form.
func (e *Encoder) Encode(v interface{}) (err error) {
	if err = e.encodeReflect(reflect.ValueOf(v)); err == nil {
		err = e.w.Flush()
	}
	return
}

func (e *Encoder) encodeReflect(rv reflect.Value) (err error) {
	if !rv.IsValid() {
		return errors.New("bencode: cannot encode a nil value")
	}

	t := rv.Type()
	switch {
	case t.Implements(marshalerType):
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			return fmt.Errorf("bencode: cannot encode the nil %s", t)
		}
		return e.encodeMarshaler(rv.Interface().(Marshaler))

	case rv.CanAddr() && reflect.PointerTo(t).Implements(marshalerType):
		return e.encodeMarshaler(rv.Addr().Interface().(Marshaler))

	case t.Implements(textMarshalerType):
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			return fmt.Errorf("bencode: cannot encode the nil %s", t)
		}
		return e.encodeTextMarshaler(rv.Interface().(encoding.TextMarshaler))

	case rv.CanAddr() && reflect.PointerTo(t).Implements(textMarshalerType):
		return e.encodeTextMarshaler(rv.Addr().Interface().(encoding.TextMarshaler))

	case t.Implements(valueType):
		return e.encodeValue(rv.Interface().(Value))
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return e.encodeInteger(1)
		}
		return e.encodeInteger(0)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeInteger(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return e.encodeUinteger(rv.Uint())

	case reflect.String:
		return e.encodeKey(rv.String())

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return e.encodeString(rv.Bytes())
		}
		return e.encodeReflectList(rv)

	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			bs := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(bs), rv)
			return e.encodeString(bs)
		}
		return e.encodeReflectList(rv)

	case reflect.Map:
		return e.encodeReflectMap(rv)

	case reflect.Struct:
		return e.encodeReflectStruct(rv)

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("bencode: cannot encode the nil %s", t)
		}
		return e.encodeReflect(rv.Elem())
	}

	return fmt.Errorf("bencode: unsupported type %s", t)
}

func (e *Encoder) encodeMarshaler(m Marshaler) (err error) {
	data, err := m.MarshalBencode()
	if err == nil {
		if len(data) == 0 {
			err = fmt.Errorf("bencode: %T.MarshalBencode returned no bytes", m)
		} else {
			_, err = e.w.Write(data)
		}
	}
	return
}

func (e *Encoder) encodeTextMarshaler(m encoding.TextMarshaler) (err error) {
	text, err := m.MarshalText()
	if err == nil {
		err = e.encodeString(text)
	}
	return
}

func (e *Encoder) encodeUinteger(u uint64) (err error) {
	if err = e.w.WriteByte('i'); err == nil {
		if _, err = e.w.Write(strconv.AppendUint(e.scratch[:0], u, 10)); err == nil {
			err = e.w.WriteByte('e')
		}
	}
	return
}

func (e *Encoder) encodeReflectList(rv reflect.Value) (err error) {
	if err = e.w.WriteByte('l'); err != nil {
		return
	}
	for i, _len := 0, rv.Len(); i < _len; i++ {
		if err = e.encodeReflect(rv.Index(i)); err != nil {
			return
		}
	}
	return e.w.WriteByte('e')
}

func (e *Encoder) encodeReflectMap(rv reflect.Value) (err error) {
	type mapEntry struct {
		key   string
		value reflect.Value
	}

	entries := make([]mapEntry, 0, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		key, ok := stringifyMapKey(iter.Key())
		if !ok {
			return fmt.Errorf("bencode: unsupported map key type %s", rv.Type().Key())
		}
		entries = append(entries, mapEntry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	if err = e.w.WriteByte('d'); err != nil {
		return
	}
	for _, entry := range entries {
		if err = e.encodeKey(entry.key); err != nil {
			return
		} else if err = e.encodeReflect(entry.value); err != nil {
			return
		}
	}
	return e.w.WriteByte('e')
}

// stringifyMapKey converts a map key to the dictionary key string.
// Beside the string kinds, the byte array keys, such as the 20-byte
// info-hashes, are used as the strings of their raw bytes.
func stringifyMapKey(key reflect.Value) (s string, ok bool) {
	switch key.Kind() {
	case reflect.String:
		return key.String(), true
	case reflect.Array:
		if key.Type().Elem().Kind() == reflect.Uint8 {
			bs := make([]byte, key.Len())
			reflect.Copy(reflect.ValueOf(bs), key)
			return string(bs), true
		}
	}

	if m, _ok := key.Interface().(encoding.TextMarshaler); _ok {
		if text, err := m.MarshalText(); err == nil {
			return string(text), true
		}
	}
	return
}

func (e *Encoder) encodeReflectStruct(rv reflect.Value) (err error) {
	fields := structFieldsOf(rv.Type())
	if err = e.w.WriteByte('d'); err != nil {
		return
	}
	for i := range fields.list {
		field := &fields.list[i]
		fv := rv.Field(field.index)
		if field.omitEmpty && isEmptyValue(fv) {
			continue
		}

		if err = e.encodeKey(field.name); err != nil {
			return
		} else if err = e.encodeReflect(fv); err != nil {
			return
		}
	}
	return e.w.WriteByte('e')
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

type structField struct {
	name      string
	index     int
	omitEmpty bool
}

type structFields struct {
	list   []structField  // sorted by name for the canonical output
	byName map[string]int // dictionary key -> struct field index
}

var fieldsCache sync.Map // reflect.Type -> *structFields

func structFieldsOf(t reflect.Type) *structFields {
	if fields, ok := fieldsCache.Load(t); ok {
		return fields.(*structFields)
	}

	fields := &structFields{byName: make(map[string]int, t.NumField())}
	for i, _len := 0, t.NumField(); i < _len; i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty := parseFieldTag(field.Tag.Get("bencode"))
		if name == "-" {
			continue
		} else if name == "" {
			name = field.Name
		}

		fields.list = append(fields.list, structField{name: name, index: i, omitEmpty: omitEmpty})
		fields.byName[name] = i
	}
	sort.Slice(fields.list, func(i, j int) bool { return fields.list[i].name < fields.list[j].name })

	fieldsCache.Store(t, fields)
	return fields
}

func parseFieldTag(tag string) (name string, omitEmpty bool) {
	name = tag
	if i := strings.IndexByte(tag, ','); i >= 0 {
		name = tag[:i]
		for _, opt := range strings.Split(tag[i+1:], ",") {
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
	}
	return
}
