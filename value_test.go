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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueKind(t *testing.T) {
	require := require.New(t)

	require.Equal(KindString, String("x").Kind())
	require.Equal(KindInteger, Integer(1).Kind())
	require.Equal(KindList, List{}.Kind())
	require.Equal(KindDictionary, Dictionary{}.Kind())

	require.Equal("string", KindString.String())
	require.Equal("integer", KindInteger.String())
	require.Equal("list", KindList.String())
	require.Equal("dictionary", KindDictionary.String())
	require.Equal("invalid", KindInvalid.String())
}

func TestDictionaryKeys(t *testing.T) {
	require := require.New(t)

	d := Dictionary{
		"spam": String("eggs"),
		"cow":  String("moo"),
		"a":    Integer(1),
	}
	require.Equal([]string{"a", "cow", "spam"}, d.Keys())
	require.Empty(Dictionary{}.Keys())
}

func TestStringString(t *testing.T) {
	require := require.New(t)
	require.Equal("abc", String("abc").String())
}
