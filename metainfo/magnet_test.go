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

package metainfo

import (
	"encoding/base32"
	"reflect"
	"testing"
)

func TestParseMagnetURI(t *testing.T) {
	infoHash := NewHashFromBytes([]byte("some torrent"))

	m := Magnet{
		InfoHash:    infoHash,
		DisplayName: "file.txt",
		Trackers:    []string{"http://tracker1.io/ann", "http://tracker2.io/ann"},
	}

	m2, err := ParseMagnetURI(m.String())
	if err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(m, m2) {
		t.Errorf("expect the magnet %+v, but got %+v\n", m, m2)
	}

	uri := "magnet:?xt=urn:btih:" + base32.StdEncoding.EncodeToString(infoHash.Bytes())
	if m2, err = ParseMagnetURI(uri); err != nil {
		t.Fatal(err)
	} else if m2.InfoHash != infoHash {
		t.Errorf("expect the info hash '%s', but got '%s'\n", infoHash, m2.InfoHash)
	}

	for _, uri := range []string{
		"http://example.com/file.torrent",
		"magnet:?xt=urn:btih:123",
		"magnet:?xt=123",
		"magnet:?dn=file.txt",
	} {
		if _, err = ParseMagnetURI(uri); err == nil {
			t.Errorf("expect an error for '%s', but got nil", uri)
		}
	}
}
