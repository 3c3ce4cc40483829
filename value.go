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

import "sort"

// Kind is the kind of a bencoded value.
type Kind int

// Predefine all the kinds of the bencoded values.
const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindList
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	}
	return "invalid"
}

// Value represents a decoded bencoded object, which is one of the four
// variants String, Integer, List or Dictionary.
//
// A Value tree built by the decoder contains no cycles. For a tree built
// directly by the caller, it is the caller's responsibility not to insert
// a container into itself; such a value is unsupported and unchecked.
type Value interface {
	// Kind returns the kind of the value.
	Kind() Kind

	// bvalue limits the implementations of Value to the types
	// defined in this package.
	bvalue()
}

var (
	_ Value = String(nil)
	_ Value = Integer(0)
	_ Value = List(nil)
	_ Value = Dictionary(nil)
)

// String represents a bencoded byte string, which is not required
// to be the valid UTF-8 text.
type String []byte

// Integer represents a bencoded signed 64-bit integer.
type Integer int64

// List represents a bencoded list of the values, whose order is significant
// and preserved exactly.
type List []Value

// Dictionary represents a bencoded dictionary from the byte-string keys
// to the values. The keys are compared by the raw byte values, and the
// insertion order is irrelevant.
type Dictionary map[string]Value

// Kind implements the interface Value#Kind.
func (s String) Kind() Kind { return KindString }

// Kind implements the interface Value#Kind.
func (i Integer) Kind() Kind { return KindInteger }

// Kind implements the interface Value#Kind.
func (l List) Kind() Kind { return KindList }

// Kind implements the interface Value#Kind.
func (d Dictionary) Kind() Kind { return KindDictionary }

func (s String) bvalue()     {}
func (i Integer) bvalue()    {}
func (l List) bvalue()       {}
func (d Dictionary) bvalue() {}

func (s String) String() string { return string(s) }

// Keys returns all the keys of the dictionary, which are sorted in the
// ascending byte-wise lexicographic order, that's, the canonical order
// they are encoded in.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
