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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeValue(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		input  Value
		expect string
	}{
		{Integer(1234), "i1234e"},
		{Integer(-1234), "i-1234e"},
		{Integer(0), "i0e"},
		{Integer(-9223372036854775808), "i-9223372036854775808e"},
		{String("abcde"), "5:abcde"},
		{String{}, "0:"},
		{String("\x00\x01\xff"), "3:\x00\x01\xff"},
		{List{}, "le"},
		{List{Integer(1234), Integer(0)}, "li1234ei0ee"},
		{List{String("spam"), List{Integer(1)}}, "l4:spamli1eee"},
		{Dictionary{}, "de"},
		{Dictionary{"cow": String("moo"), "spam": String("eggs")}, "d3:cow3:moo4:spam4:eggse"},
		{
			Dictionary{"b": Integer(2), "a": Integer(1), "c": Integer(3)},
			"d1:ai1e1:bi2e1:ci3ee",
		},
		{
			Dictionary{"info": Dictionary{"name": String("file.txt"), "length": Integer(1024)}},
			"d4:infod6:lengthi1024e4:name8:file.txtee",
		},
	}

	for _, test := range tests {
		buf := new(bytes.Buffer)
		err := NewEncoder(buf).EncodeValue(test.input)
		require.NoError(err, test.expect)
		require.Equal(test.expect, buf.String())
	}
}

// The encoder emits the canonical form, so decoding a value with the keys
// out of order and re-encoding it sorts the keys.
func TestEncodeValueCanonical(t *testing.T) {
	require := require.New(t)

	v, err := NewDecoder(strings.NewReader("d4:spam4:eggs3:cow3:mooe")).DecodeValue()
	require.NoError(err)

	buf := new(bytes.Buffer)
	require.NoError(NewEncoder(buf).EncodeValue(v))
	require.Equal("d3:cow3:moo4:spam4:eggse", buf.String())
}

func TestEncodeValueNil(t *testing.T) {
	require := require.New(t)

	err := NewEncoder(new(bytes.Buffer)).EncodeValue(nil)
	require.Error(err)

	err = NewEncoder(new(bytes.Buffer)).EncodeValue(List{String("a"), nil})
	require.Error(err)
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncodeWriterError(t *testing.T) {
	require := require.New(t)

	errWrite := errors.New("write failed")
	err := NewEncoder(failWriter{err: errWrite}).EncodeValue(Integer(1234))
	require.ErrorIs(err, errWrite)
}
