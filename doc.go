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

// Package bencode implements encoding and decoding of bencoded objects,
// which has a similar API to the encoding/json package.
//
// Bencode, defined by BEP 3, has four kinds of values, that's, the byte
// string, the integer, the list and the dictionary, which are modeled by
// the types String, Integer, List and Dictionary. The encoder always emits
// the canonical form, where the dictionary keys are sorted in the ascending
// byte order, so encoding the same value always yields the same bytes.
package bencode
