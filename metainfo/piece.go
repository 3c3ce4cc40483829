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
	"crypto/sha1"
	"errors"
	"fmt"
	"io"

	"github.com/xgfone/go-bencode/internal/helper"
)

// Predefine some common piece sizes.
const (
	PieceSize256KB = 256 * 1024
	PieceSize512KB = 512 * 1024
	PieceSize1MB   = 1024 * 1024
	PieceSize2MB   = 2 * 1024 * 1024
	PieceSize4MB   = 4 * 1024 * 1024
)

// GeneratePieces generates the pieces from the reader.
func GeneratePieces(r io.Reader, pieceLength int64) (hs Hashes, err error) {
	buf := make([]byte, pieceLength)
	for {
		h := sha1.New()
		written, err := helper.CopyNBuffer(h, r, pieceLength, buf)
		if written > 0 {
			hs = append(hs, NewHash(h.Sum(nil)))
		}

		if err == io.EOF {
			return hs, nil
		}

		if err != nil {
			return nil, err
		}
	}
}

func writeFiles(w io.Writer, files []File, open func(File) (io.ReadCloser, error)) error {
	buf := make([]byte, 8192)
	for _, file := range files {
		r, err := open(file)
		if err != nil {
			return fmt.Errorf("error opening %s: %s", file, err)
		}

		n, err := helper.CopyNBuffer(w, r, file.Length, buf)
		r.Close()

		if n != file.Length {
			return fmt.Errorf("error copying %s: %s", file, err)
		}
	}
	return nil
}

// GeneratePiecesFromFiles generates the pieces from the files.
func GeneratePiecesFromFiles(files []File, pieceLength int64,
	open func(File) (io.ReadCloser, error)) (Hashes, error) {
	if pieceLength <= 0 {
		return nil, errors.New("piece length must be a positive integer")
	}

	pr, pw := io.Pipe()
	defer pr.Close()

	go func() { pw.CloseWithError(writeFiles(pw, files, open)) }()
	return GeneratePieces(pr, pieceLength)
}
