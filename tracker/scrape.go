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

package tracker

import (
	"io"

	"github.com/xgfone/go-bencode"
	"github.com/xgfone/go-bencode/metainfo"
)

// ScrapeResult is the result of a scraped torrent.
type ScrapeResult struct {
	// Complete is the number of active peers that have completed
	// downloading.
	Complete uint32 `bencode:"complete"` // BEP 48

	// Incomplete is the number of active peers that have not completed
	// downloading.
	Incomplete uint32 `bencode:"incomplete"` // BEP 48

	// Downloaded is the number of peers that have ever completed
	// downloading.
	Downloaded uint32 `bencode:"downloaded"` // BEP 48
}

// ScrapeResponse represents a scrape response.
//
// BEP 48
type ScrapeResponse struct {
	FailureReason string `bencode:"failure_reason,omitempty"`

	// Files maps the info hash of a torrent to its scrape result.
	Files map[metainfo.Hash]ScrapeResult `bencode:"files,omitempty"`
}

// DecodeFrom reads the bencoded data from r and decodes it to sr.
//
// r may be the body of the response from the http tracker.
func (sr *ScrapeResponse) DecodeFrom(r io.Reader) (err error) {
	return bencode.NewDecoder(r).Decode(sr)
}

// EncodeTo encodes the response by bencode and writes the result into w.
//
// w may be http.ResponseWriter.
func (sr ScrapeResponse) EncodeTo(w io.Writer) (err error) {
	return bencode.NewEncoder(w).Encode(sr)
}
