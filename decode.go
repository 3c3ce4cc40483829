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

// maxNestingDepth is the maximum nesting depth of the lists and dictionaries
// accepted by the decoder.
const maxNestingDepth = 2048

// stringChunkSize is the allocation unit for the string payloads, so a
// corrupt length prefix far beyond the real input size fails with
// ErrUnexpectedEOF instead of allocating the whole declared length up front.
const stringChunkSize = 64 * 1024

var (
	// ErrUnexpectedEOF is returned when the input ends where more bytes
	// are expected, that's, in the middle of a value.
	ErrUnexpectedEOF = errors.New("bencode: unexpected end of input")

	// ErrDepthExceeded is returned when the input nests the lists or
	// the dictionaries deeper than the decoder accepts.
	ErrDepthExceeded = errors.New("bencode: exceeded the maximum nesting depth")
)

// SyntaxError represents a byte that violates the bencode grammar.
type SyntaxError struct {
	// Offset is the offset of the offending byte from the beginning
	// of the input, starting with 0.
	Offset int64

	// Byte is the offending byte.
	Byte byte

	// Context describes what was being parsed, such as "an integer"
	// or "a dictionary key".
	Context string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: unexpected character %q at offset %d while parsing %s",
		e.Byte, e.Offset, e.Context)
}

// Decoder reads the bencoded values from an input stream.
//
// The decoder keeps no state between the values, so it may be used to decode
// several values concatenated in the same stream one by one.
type Decoder struct {
	r *bufio.Reader
	n int64

	capturing bool
	captured  []byte
	scratch   []byte
}

// NewDecoder returns a new Decoder to read the bencoded values from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// BytesParsed returns the number of the bytes that have been consumed
// from the input so far, that's, the position immediately after the
// values decoded up to now.
func (d *Decoder) BytesParsed() int64 { return d.n }

// DecodeValue reads exactly one value from the input and returns it,
// leaving the rest of the input untouched.
//
// If the input ends cleanly before the first byte of a value, it returns
// io.EOF. If the input ends in the middle of a value, it returns
// ErrUnexpectedEOF instead.
func (d *Decoder) DecodeValue() (Value, error) {
	if _, err := d.r.Peek(1); err != nil {
		return nil, err
	}
	return d.decodeValue(0)
}

// readByte consumes and returns the next input byte.
func (d *Decoder) readByte() (b byte, err error) {
	if b, err = d.r.ReadByte(); err == nil {
		d.n++
		if d.capturing {
			d.captured = append(d.captured, b)
		}
	} else if err == io.EOF {
		err = ErrUnexpectedEOF
	}
	return
}

// peekByte returns the next input byte without consuming it.
func (d *Decoder) peekByte() (b byte, err error) {
	bs, err := d.r.Peek(1)
	if err == nil {
		b = bs[0]
	} else if err == io.EOF {
		err = ErrUnexpectedEOF
	}
	return
}

// readFull consumes the next len(b) input bytes into b.
func (d *Decoder) readFull(b []byte) (err error) {
	n, err := io.ReadFull(d.r, b)
	d.n += int64(n)
	if d.capturing {
		d.captured = append(d.captured, b[:n]...)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = ErrUnexpectedEOF
	}
	return
}

func (d *Decoder) decodeValue(depth int) (v Value, err error) {
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
		return d.decodeInteger()
	case b == 'l':
		return d.decodeList(depth)
	case b == 'd':
		return d.decodeDictionary(depth)
	case b >= '0' && b <= '9':
		return d.decodeString(b)
	}
	return nil, &SyntaxError{Offset: offset, Byte: b, Context: "the first byte of a value"}
}

// decodeInteger parses the rest of an integer after the leading 'i'.
//
// "i-0e" and the integers with the leading zeros, such as "i03e",
// are rejected, so every integer has exactly one encoded form.
func (d *Decoder) decodeInteger() (v Integer, err error) {
	digits := d.scratch[:0]

	b, err := d.peekByte()
	if err != nil {
		return
	} else if b == '-' {
		if _, err = d.readByte(); err != nil {
			return
		}
		digits = append(digits, '-')
	}

	start := len(digits)
	for {
		offset := d.n
		if b, err = d.readByte(); err != nil {
			return
		} else if b == 'e' {
			break
		} else if b < '0' || b > '9' {
			err = &SyntaxError{Offset: offset, Byte: b, Context: "an integer"}
			return
		}
		digits = append(digits, b)
	}
	d.scratch = digits

	if len(digits) == start {
		// "ie" or "i-e": the terminator arrived where a digit was expected.
		err = &SyntaxError{Offset: d.n - 1, Byte: 'e', Context: "an integer"}
		return
	}

	if digits[start] == '0' && (start > 0 || len(digits)-start > 1) {
		offset := d.n - 1 - int64(len(digits)-start)
		err = &SyntaxError{Offset: offset, Byte: '0', Context: "an integer"}
		return
	}

	i, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		err = fmt.Errorf("bencode: integer %q does not fit into int64: %w", digits, err)
		return
	}
	return Integer(i), nil
}

// decodeString parses a string whose first length digit has been consumed.
func (d *Decoder) decodeString(first byte) (v String, err error) {
	length, err := d.decodeStringLength(first)
	if err != nil {
		return
	}

	if length <= stringChunkSize {
		v = make(String, length)
		err = d.readFull(v)
		return
	}

	// The declared length may exceed the input, so read chunk by chunk.
	v = make(String, 0, stringChunkSize)
	chunk := make([]byte, stringChunkSize)
	for length > 0 {
		n := int64(len(chunk))
		if length < n {
			n = length
		}
		if err = d.readFull(chunk[:n]); err != nil {
			return nil, err
		}
		v = append(v, chunk[:n]...)
		length -= n
	}
	return
}

func (d *Decoder) decodeStringLength(first byte) (length int64, err error) {
	digits := append(d.scratch[:0], first)
	for {
		offset := d.n
		var b byte
		if b, err = d.readByte(); err != nil {
			return
		} else if b == ':' {
			break
		} else if b < '0' || b > '9' {
			err = &SyntaxError{Offset: offset, Byte: b, Context: "a string length"}
			return
		}
		digits = append(digits, b)
	}
	d.scratch = digits

	if length, err = strconv.ParseInt(string(digits), 10, 64); err != nil {
		err = fmt.Errorf("bencode: string length %q does not fit into int64: %w", digits, err)
	}
	return
}

func (d *Decoder) decodeList(depth int) (v List, err error) {
	v = make(List, 0, 4)
	for {
		b, err := d.peekByte()
		if err != nil {
			return nil, err
		} else if b == 'e' {
			d.readByte()
			return v, nil
		}

		e, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		v = append(v, e)
	}
}

func (d *Decoder) decodeDictionary(depth int) (v Dictionary, err error) {
	v = make(Dictionary, 4)
	for {
		offset := d.n
		b, err := d.peekByte()
		if err != nil {
			return nil, err
		} else if b == 'e' {
			d.readByte()
			return v, nil
		} else if b < '0' || b > '9' {
			d.readByte()
			return nil, &SyntaxError{Offset: offset, Byte: b, Context: "a dictionary key"}
		}

		d.readByte()
		key, err := d.decodeString(b)
		if err != nil {
			return nil, err
		}

		e, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}

		// The last occurrence of a duplicate key wins.
		v[string(key)] = e
	}
}

// skipValue consumes exactly one value without building it.
func (d *Decoder) skipValue(depth int) (err error) {
	if depth >= maxNestingDepth {
		return ErrDepthExceeded
	}

	offset := d.n
	b, err := d.readByte()
	if err != nil {
		return
	}

	switch {
	case b == 'i':
		_, err = d.decodeInteger()

	case b == 'l':
		for {
			if b, err = d.peekByte(); err != nil {
				return
			} else if b == 'e' {
				d.readByte()
				return
			} else if err = d.skipValue(depth + 1); err != nil {
				return
			}
		}

	case b == 'd':
		for {
			offset = d.n
			if b, err = d.peekByte(); err != nil {
				return
			} else if b == 'e' {
				d.readByte()
				return
			} else if b < '0' || b > '9' {
				d.readByte()
				return &SyntaxError{Offset: offset, Byte: b, Context: "a dictionary key"}
			}

			d.readByte()
			if _, err = d.decodeString(b); err != nil {
				return
			} else if err = d.skipValue(depth + 1); err != nil {
				return
			}
		}

	case b >= '0' && b <= '9':
		_, err = d.decodeString(b)

	default:
		err = &SyntaxError{Offset: offset, Byte: b, Context: "the first byte of a value"}
	}

	return
}

// captureValue consumes exactly one value and returns its raw encoded form,
// byte for byte as it appeared in the input.
func (d *Decoder) captureValue() (raw []byte, err error) {
	d.capturing = true
	d.captured = d.captured[:0]
	if err = d.skipValue(0); err == nil {
		raw = make([]byte, len(d.captured))
		copy(raw, d.captured)
	}
	d.capturing = false
	return
}
