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

// RawMessage is a raw bencoded value. When decoding, it captures one whole
// value byte for byte as it appeared in the input, and when encoding, it is
// emitted verbatim, so it may be used to delay the decoding of a value or
// to keep its original non-canonical form.
type RawMessage []byte

var (
	_ Marshaler   = RawMessage(nil)
	_ Unmarshaler = new(RawMessage)
)

// MarshalBencode returns m as is, which must be a valid bencoded value.
func (m RawMessage) MarshalBencode() ([]byte, error) { return m, nil }

// UnmarshalBencode sets *m to a copy of b.
func (m *RawMessage) UnmarshalBencode(b []byte) error {
	*m = append((*m)[:0], b...)
	return nil
}
