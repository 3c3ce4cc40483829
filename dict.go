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
	"unicode/utf8"
)

// MissingKeyError is returned by the Pop methods
// when the required dictionary key is missing.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("bencode: the dictionary key %q is missing", e.Key)
}

// TypeError is returned by the Pop methods when the dictionary key
// holds a value of another kind than the expected one.
type TypeError struct {
	Key    string
	Expect Kind
	Actual Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("bencode: the dictionary key %q is %s, not %s",
		e.Key, e.Actual, e.Expect)
}

// UTF8Error is returned by the PopUTF8String methods when the dictionary
// key holds a string that is not valid UTF-8.
type UTF8Error struct {
	Key string
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("bencode: the dictionary key %q is not a valid UTF-8 string", e.Key)
}

// Pop removes the key from the dictionary and returns its value.
// If the key is missing, it returns MissingKeyError.
func (d Dictionary) Pop(key string) (Value, error) {
	if v, ok := d[key]; ok {
		delete(d, key)
		return v, nil
	}
	return nil, &MissingKeyError{Key: key}
}

// PopOptional removes the key from the dictionary and returns its value,
// or returns false if the key is missing.
func (d Dictionary) PopOptional(key string) (Value, bool) {
	v, ok := d[key]
	if ok {
		delete(d, key)
	}
	return v, ok
}

// PopInteger removes the key from the dictionary and returns its value
// as an integer. If the key is missing, it returns MissingKeyError, and
// if the value is not an integer, TypeError.
func (d Dictionary) PopInteger(key string) (Integer, error) {
	v, err := d.Pop(key)
	if err != nil {
		return 0, err
	}

	i, ok := v.(Integer)
	if !ok {
		return 0, &TypeError{Key: key, Expect: KindInteger, Actual: kindOf(v)}
	}
	return i, nil
}

// PopOptionalInteger is the same as PopInteger, but returns false instead
// of MissingKeyError if the key is missing. The bool reports whether the
// key was present, so it is true even when the value has the wrong kind.
func (d Dictionary) PopOptionalInteger(key string) (Integer, bool, error) {
	v, ok := d.PopOptional(key)
	if !ok {
		return 0, false, nil
	}

	i, ok := v.(Integer)
	if !ok {
		return 0, true, &TypeError{Key: key, Expect: KindInteger, Actual: kindOf(v)}
	}
	return i, true, nil
}

// PopString removes the key from the dictionary and returns its value
// as a byte string. If the key is missing, it returns MissingKeyError,
// and if the value is not a string, TypeError.
func (d Dictionary) PopString(key string) (String, error) {
	v, err := d.Pop(key)
	if err != nil {
		return nil, err
	}

	s, ok := v.(String)
	if !ok {
		return nil, &TypeError{Key: key, Expect: KindString, Actual: kindOf(v)}
	}
	return s, nil
}

// PopOptionalString is the same as PopString, but returns false instead
// of MissingKeyError if the key is missing. The bool reports whether the
// key was present, so it is true even when the value has the wrong kind.
func (d Dictionary) PopOptionalString(key string) (String, bool, error) {
	v, ok := d.PopOptional(key)
	if !ok {
		return nil, false, nil
	}

	s, ok := v.(String)
	if !ok {
		return nil, true, &TypeError{Key: key, Expect: KindString, Actual: kindOf(v)}
	}
	return s, true, nil
}

// PopUTF8String removes the key from the dictionary and returns its value
// as a UTF-8 string. If the key is missing, it returns MissingKeyError,
// if the value is not a string, TypeError, and if the string is not valid
// UTF-8, UTF8Error.
func (d Dictionary) PopUTF8String(key string) (string, error) {
	s, err := d.PopString(key)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(s) {
		return "", &UTF8Error{Key: key}
	}
	return string(s), nil
}

// PopOptionalUTF8String is the same as PopUTF8String, but returns false
// instead of MissingKeyError if the key is missing. The bool reports whether
// the key was present, so it is true even when the value has the wrong kind
// or is not valid UTF-8.
func (d Dictionary) PopOptionalUTF8String(key string) (string, bool, error) {
	s, ok, err := d.PopOptionalString(key)
	if err != nil || !ok {
		return "", ok, err
	}

	if !utf8.Valid(s) {
		return "", true, &UTF8Error{Key: key}
	}
	return string(s), true, nil
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}
