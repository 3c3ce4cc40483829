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
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type torrentInfo struct {
	Name        string `bencode:"name"`
	PieceLength int64  `bencode:"piece length"`
	Length      int64  `bencode:"length,omitempty"`
	Private     bool   `bencode:"private,omitempty"`
	Internal    string `bencode:"-"`
}

type clientVersion struct{ major, minor int }

func (v clientVersion) MarshalBencode() ([]byte, error) {
	return EncodeBytes(fmt.Sprintf("%d.%d", v.major, v.minor))
}

func (v *clientVersion) UnmarshalBencode(b []byte) (err error) {
	var s string
	if err = DecodeBytes(b, &s); err == nil {
		_, err = fmt.Sscanf(s, "%d.%d", &v.major, &v.minor)
	}
	return
}

type extension uint8

func (e extension) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(e), 16), nil
}

func (e *extension) UnmarshalText(text []byte) (err error) {
	n, err := strconv.ParseUint(string(text), 16, 8)
	if err == nil {
		*e = extension(n)
	}
	return
}

func TestEncodeStruct(t *testing.T) {
	require := require.New(t)

	s, err := EncodeString(torrentInfo{Name: "file.txt", PieceLength: 262144, Internal: "x"})
	require.NoError(err)
	require.Equal("d4:name8:file.txt12:piece lengthi262144ee", s)

	s, err = EncodeString(torrentInfo{Name: "file.txt", PieceLength: 16384, Length: 100, Private: true})
	require.NoError(err)
	require.Equal("d6:lengthi100e4:name8:file.txt12:piece lengthi16384e7:privatei1ee", s)
}

func TestEncodeKinds(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		input  interface{}
		expect string
	}{
		{true, "i1e"},
		{false, "i0e"},
		{1234, "i1234e"},
		{int8(-5), "i-5e"},
		{uint64(18446744073709551615), "i18446744073709551615e"},
		{"spam", "4:spam"},
		{[]byte("spam"), "4:spam"},
		{[4]byte{'s', 'p', 'a', 'm'}, "4:spam"},
		{[]string{"a", "b"}, "l1:a1:be"},
		{[2]int{1, 2}, "li1ei2ee"},
		{map[string]int{"b": 2, "a": 1}, "d1:ai1e1:bi2ee"},
		{map[string][]byte{"k": []byte("v")}, "d1:k1:ve"},
		{new(int), "i0e"},
		{Integer(7), "i7e"},
		{String("ab"), "2:ab"},
		{List{Integer(1), String("x")}, "li1e1:xe"},
		{Dictionary{"b": Integer(2), "a": Integer(1)}, "d1:ai1e1:bi2ee"},
		{RawMessage("d1:bi1e1:ai2ee"), "d1:bi1e1:ai2ee"},
	}

	for _, test := range tests {
		s, err := EncodeString(test.input)
		require.NoError(err, test.expect)
		require.Equal(test.expect, s)
	}
}

func TestEncodeMapKeys(t *testing.T) {
	require := require.New(t)

	type hash [2]byte
	s, err := EncodeString(map[hash]int{{'a', 'b'}: 1, {'a', 'a'}: 2})
	require.NoError(err)
	require.Equal("d2:aai2e2:abi1ee", s)

	s, err = EncodeString(map[extension]int{0xab: 1})
	require.NoError(err)
	require.Equal("d2:abi1ee", s)

	_, err = EncodeString(map[int]string{1: "a"})
	require.Error(err)
}

func TestEncodeMarshaler(t *testing.T) {
	require := require.New(t)

	s, err := EncodeString(clientVersion{1, 2})
	require.NoError(err)
	require.Equal("3:1.2", s)

	s, err = EncodeString(&clientVersion{10, 20})
	require.NoError(err)
	require.Equal("5:10.20", s)

	s, err = EncodeString(struct {
		Version clientVersion `bencode:"v"`
	}{clientVersion{1, 2}})
	require.NoError(err)
	require.Equal("d1:v3:1.2e", s)
}

func TestEncodeTextMarshaler(t *testing.T) {
	require := require.New(t)

	s, err := EncodeString(extension(255))
	require.NoError(err)
	require.Equal("2:ff", s)
}

func TestEncodeUnsupported(t *testing.T) {
	require := require.New(t)

	_, err := EncodeString(nil)
	require.Error(err)

	_, err = EncodeString(3.14)
	require.Error(err)

	var p *int
	_, err = EncodeString(p)
	require.Error(err)

	_, err = EncodeString(struct {
		P *int `bencode:"p"`
	}{})
	require.Error(err)

	s, err := EncodeString(struct {
		P *int `bencode:"p,omitempty"`
	}{})
	require.NoError(err)
	require.Equal("de", s)

	_, err = EncodeString(RawMessage(nil))
	require.Error(err)
}
