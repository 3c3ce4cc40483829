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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Encoder writes the bencoded values to an output stream.
type Encoder struct {
	w       *bufio.Writer
	scratch [24]byte
}

// NewEncoder returns a new Encoder to write the bencoded values to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// EncodeValue encodes v in the canonical form and writes it to the
// underlying writer, that's, the dictionary keys are emitted in the
// ascending byte order no matter how the dictionary was built.
func (e *Encoder) EncodeValue(v Value) (err error) {
	if err = e.encodeValue(v); err == nil {
		err = e.w.Flush()
	}
	return
}

func (e *Encoder) encodeValue(v Value) (err error) {
	switch v := v.(type) {
	case String:
		return e.encodeString(v)
	case Integer:
		return e.encodeInteger(int64(v))
	case List:
		return e.encodeList(v)
	case Dictionary:
		return e.encodeDictionary(v)
	case nil:
		return errors.New("bencode: cannot encode a nil value")
	}
	return fmt.Errorf("bencode: unsupported value type %T", v)
}

func (e *Encoder) encodeInteger(i int64) (err error) {
	if err = e.w.WriteByte('i'); err == nil {
		if _, err = e.w.Write(strconv.AppendInt(e.scratch[:0], i, 10)); err == nil {
			err = e.w.WriteByte('e')
		}
	}
	return
}

func (e *Encoder) encodeLength(_len int) (err error) {
	if _, err = e.w.Write(strconv.AppendInt(e.scratch[:0], int64(_len), 10)); err == nil {
		err = e.w.WriteByte(':')
	}
	return
}

func (e *Encoder) encodeString(s String) (err error) {
	if err = e.encodeLength(len(s)); err == nil {
		_, err = e.w.Write(s)
	}
	return
}

func (e *Encoder) encodeKey(key string) (err error) {
	if err = e.encodeLength(len(key)); err == nil {
		_, err = e.w.WriteString(key)
	}
	return
}

func (e *Encoder) encodeList(list List) (err error) {
	if err = e.w.WriteByte('l'); err != nil {
		return
	}
	for _, v := range list {
		if err = e.encodeValue(v); err != nil {
			return
		}
	}
	return e.w.WriteByte('e')
}

func (e *Encoder) encodeDictionary(dict Dictionary) (err error) {
	if err = e.w.WriteByte('d'); err != nil {
		return
	}
	for _, key := range dict.Keys() {
		if err = e.encodeKey(key); err != nil {
			return
		} else if err = e.encodeValue(dict[key]); err != nil {
			return
		}
	}
	return e.w.WriteByte('e')
}
