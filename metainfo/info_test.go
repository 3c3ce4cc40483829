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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xgfone/go-bencode"
)

func TestGeneratePieces(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}

	pieces, err := GeneratePieces(bytes.NewReader(data), 400)
	if err != nil {
		t.Fatal(err)
	}

	expects := Hashes{
		NewHashFromBytes(data[0:400]),
		NewHashFromBytes(data[400:800]),
		NewHashFromBytes(data[800:1000]),
	}
	if !reflect.DeepEqual(pieces, expects) {
		t.Errorf("expect the pieces %v, but got %v\n", expects, pieces)
	}

	if pieces, err = GeneratePieces(bytes.NewReader(nil), 400); err != nil {
		t.Error(err)
	} else if len(pieces) != 0 {
		t.Errorf("expect no pieces, but got %v\n", pieces)
	}

	if _, err = GeneratePiecesFromFiles(nil, 0, nil); err == nil {
		t.Error("expect an error, but got nil")
	}
}

func TestNewInfoFromFilePath(t *testing.T) {
	adata := make([]byte, 100)
	bdata := make([]byte, 600)
	for i := range adata {
		adata[i] = byte(i)
	}
	for i := range bdata {
		bdata[i] = byte(i * 3)
	}

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "a"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a", "a.txt"), adata, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), bdata, 0o600); err != nil {
		t.Fatal(err)
	}

	info, err := NewInfoFromFilePath(dir, 512)
	if err != nil {
		t.Fatal(err)
	}

	if info.Name != filepath.Base(dir) {
		t.Errorf("expect the name '%s', but got '%s'\n", filepath.Base(dir), info.Name)
	}
	if !info.IsDir() {
		t.Error("expect a directory torrent, but got a single-file one")
	}
	if total := info.TotalLength(); total != 700 {
		t.Errorf("expect the total length 700, but got '%d'\n", total)
	}
	if n := info.CountPieces(); n != 2 {
		t.Errorf("expect 2 pieces, but got '%d'\n", n)
	}

	// The files are sorted by the path, so "a/a.txt" comes first
	// and the pieces cover the concatenation of both the files.
	expectFiles := []File{
		{Length: 100, Paths: []string{"a", "a.txt"}},
		{Length: 600, Paths: []string{"b.txt"}},
	}
	if !reflect.DeepEqual(info.Files, expectFiles) {
		t.Errorf("expect the files %v, but got %v\n", expectFiles, info.Files)
	}

	all := append(append([]byte{}, adata...), bdata...)
	expectPieces := Hashes{NewHashFromBytes(all[:512]), NewHashFromBytes(all[512:])}
	if !reflect.DeepEqual(info.Pieces, expectPieces) {
		t.Errorf("expect the pieces %v, but got %v\n", expectPieces, info.Pieces)
	}

	file := filepath.Join(dir, "b.txt")
	if info, err = NewInfoFromFilePath(file, 512); err != nil {
		t.Fatal(err)
	} else if info.Name != "b.txt" || info.IsDir() || info.Length != 600 {
		t.Errorf("invalid info %+v\n", info)
	} else if n := info.CountPieces(); n != 2 {
		t.Errorf("expect 2 pieces, but got '%d'\n", n)
	} else if path := info.AllFiles()[0].Path(info); path != "b.txt" {
		t.Errorf("expect the path 'b.txt', but got '%s'\n", path)
	}
}

func TestInfoBencode(t *testing.T) {
	h1 := NewHashFromBytes([]byte("piece1"))
	h2 := NewHashFromBytes([]byte("piece2"))

	info := Info{Name: "f", PieceLength: 16, Length: 32, Pieces: Hashes{h1, h2}}
	b, err := bencode.EncodeBytes(info)
	if err != nil {
		t.Fatal(err)
	}

	expect := "d6:lengthi32e4:name1:f12:piece lengthi16e6:pieces40:" +
		h1.BytesString() + h2.BytesString() + "e"
	if s := string(b); s != expect {
		t.Errorf("expect '%s', but got '%s'\n", expect, s)
	}

	var info2 Info
	if err = bencode.DecodeBytes(b, &info2); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(info, info2) {
		t.Errorf("expect the info %+v, but got %+v\n", info, info2)
	}
}
