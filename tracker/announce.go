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

// Package tracker provides the wire models of the BitTorrent tracker
// protocol, that's, the announce and scrape requests and responses.
package tracker

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/xgfone/go-bencode"
	"github.com/xgfone/go-bencode/metainfo"
)

var errInvalidResponse = errors.New("the tracker response is not a dictionary")

// AnnounceRequest is the tracker announce request.
//
// BEP 3
type AnnounceRequest struct {
	// InfoHash is the sha1 hash of the bencoded form of the info value
	// from the metainfo file.
	InfoHash metainfo.Hash `bencode:"info_hash"` // BEP 3

	// PeerID is the id of the downloader.
	//
	// Each downloader generates its own id at random
	// at the start of a new download.
	PeerID metainfo.Hash `bencode:"peer_id"` // BEP 3

	// Uploaded is the total amount uploaded so far, encoded in base ten ascii.
	Uploaded int64 `bencode:"uploaded"` // BEP 3

	// Downloaded is the total amount downloaded so far,
	// encoded in base ten ascii.
	Downloaded int64 `bencode:"downloaded"` // BEP 3

	// Left is the number of bytes this peer still has to download,
	// encoded in base ten ascii.
	//
	// Note that this can't be computed from downloaded and the file length
	// since it might be a resume, and there's a chance that some of the
	// downloaded data failed an integrity check and had to be re-downloaded.
	Left int64 `bencode:"left"` // BEP 3

	// Port is the port that this peer is listening on.
	//
	// Common behavior is for a downloader to try to listen on port 6881,
	// and if that port is taken try 6882, then 6883, etc. and give up
	// after 6889.
	Port uint16 `bencode:"port"` // BEP 3

	// IP is the ip or DNS name which this peer is at, which generally used
	// for the origin if it's on the same machine as the tracker.
	//
	// Optional.
	IP string `bencode:"ip,omitempty"` // BEP 3

	// If not present, this is one of the announcements done at regular
	// intervals. An announcement using started is sent when a download
	// first begins, and one using completed is sent when the download is
	// complete. No completed is sent if the file was complete when started.
	// Downloaders send an announcement using stopped when they cease
	// downloading.
	//
	// Optional.
	Event uint32 `bencode:"event,omitempty"` // BEP 3

	// Compact indicates whether it hopes the tracker to return
	// the compact peer lists.
	//
	// Optional.
	Compact bool `bencode:"compact,omitempty"` // BEP 23

	// NumWant is the number of peers that the client would like to receive
	// from the tracker. This value is permitted to be zero. If omitted,
	// typically defaults to 50 peers.
	//
	// See https://wiki.theory.org/index.php/BitTorrentSpecification
	//
	// Optional.
	NumWant int32 `bencode:"numwant,omitempty"`

	Key int32 `bencode:"key,omitempty"`
}

// ToQuery converts the Request to URL Query.
func (r AnnounceRequest) ToQuery() (vs url.Values) {
	vs = make(url.Values, 9)
	vs.Set("info_hash", r.InfoHash.BytesString())
	vs.Set("peer_id", r.PeerID.BytesString())
	vs.Set("uploaded", strconv.FormatInt(r.Uploaded, 10))
	vs.Set("downloaded", strconv.FormatInt(r.Downloaded, 10))
	vs.Set("left", strconv.FormatInt(r.Left, 10))

	if r.IP != "" {
		vs.Set("ip", r.IP)
	}
	if r.Event > 0 {
		vs.Set("event", strconv.FormatInt(int64(r.Event), 10))
	}
	if r.Port > 0 {
		vs.Set("port", strconv.FormatUint(uint64(r.Port), 10))
	}
	if r.NumWant != 0 {
		vs.Set("numwant", strconv.FormatInt(int64(r.NumWant), 10))
	}
	if r.Key != 0 {
		vs.Set("key", strconv.FormatInt(int64(r.Key), 10))
	}

	// BEP 23
	if r.Compact {
		vs.Set("compact", "1")
	} else {
		vs.Set("compact", "0")
	}

	return
}

// FromQuery converts URL Query to itself.
func (r *AnnounceRequest) FromQuery(vs url.Values) (err error) {
	if err = r.InfoHash.FromString(vs.Get("info_hash")); err != nil {
		return
	}

	if err = r.PeerID.FromString(vs.Get("peer_id")); err != nil {
		return
	}

	v, err := strconv.ParseInt(vs.Get("uploaded"), 10, 64)
	if err != nil {
		return
	}
	r.Uploaded = v

	v, err = strconv.ParseInt(vs.Get("downloaded"), 10, 64)
	if err != nil {
		return
	}
	r.Downloaded = v

	v, err = strconv.ParseInt(vs.Get("left"), 10, 64)
	if err != nil {
		return
	}
	r.Left = v

	if s := vs.Get("event"); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		r.Event = uint32(v)
	}

	if s := vs.Get("port"); s != "" {
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return err
		}
		r.Port = uint16(v)
	}

	if s := vs.Get("numwant"); s != "" {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return err
		}
		r.NumWant = int32(v)
	}

	if s := vs.Get("key"); s != "" {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return err
		}
		r.Key = int32(v)
	}

	r.IP = vs.Get("ip")
	switch vs.Get("compact") {
	case "1":
		r.Compact = true
	case "0":
		r.Compact = false
	}

	return
}

// AnnounceResponse is the tracker announce response.
//
// BEP 3
type AnnounceResponse struct {
	// FailureReason is a human readable error message as to why
	// the request failed. If present, the other fields are empty.
	FailureReason string

	// WarningMessage is similar to the failure reason,
	// but the response still gets processed normally.
	WarningMessage string

	// Interval is the seconds the downloader should wait
	// before next rerequest.
	Interval uint32

	// MinInterval is the minimum announce interval. If present,
	// the clients must not reannounce more frequently than this.
	MinInterval uint32

	// TrackerID is that the client should send back on its next
	// announcements. If absent and a previous announce sent a tracker id,
	// do not discard the old value; keep using it.
	TrackerID string

	// Complete is the number of peers with the entire file.
	Complete uint32

	// Incomplete is the number of non-seeder peers.
	Incomplete uint32

	// Peers is the list of the peers.
	Peers Peers // BEP 3, BEP 23

	// Peers6 is only used for ipv6 in the compact case.
	Peers6 Peers6 // BEP 7
}

// UnmarshalBencode implements the interface bencode.Unmarshaler.
func (r *AnnounceResponse) UnmarshalBencode(b []byte) (err error) {
	var v bencode.Value
	if err = bencode.DecodeBytes(b, &v); err != nil {
		return
	}

	d, ok := v.(bencode.Dictionary)
	if !ok {
		return errInvalidResponse
	}

	// BEP 3: if "failure reason" is present, no other keys are.
	if r.FailureReason, _, err = d.PopOptionalUTF8String("failure reason"); err != nil || r.FailureReason != "" {
		return
	}

	if r.WarningMessage, _, err = d.PopOptionalUTF8String("warning message"); err != nil {
		return
	}
	if r.TrackerID, _, err = d.PopOptionalUTF8String("tracker id"); err != nil {
		return
	}

	interval, err := d.PopInteger("interval")
	if err != nil {
		return
	}
	r.Interval = uint32(interval)

	if i, ok, err := d.PopOptionalInteger("min interval"); err != nil {
		return err
	} else if ok {
		r.MinInterval = uint32(i)
	}
	if i, ok, err := d.PopOptionalInteger("complete"); err != nil {
		return err
	} else if ok {
		r.Complete = uint32(i)
	}
	if i, ok, err := d.PopOptionalInteger("incomplete"); err != nil {
		return err
	} else if ok {
		r.Incomplete = uint32(i)
	}

	if v, ok := d.PopOptional("peers"); ok {
		if r.Peers, err = peersFromValue(v); err != nil {
			return
		}
	}
	if v, ok := d.PopOptional("peers6"); ok {
		if r.Peers6, err = peers6FromValue(v); err != nil {
			return
		}
	}

	return
}

// MarshalBencode implements the interface bencode.Marshaler.
func (r AnnounceResponse) MarshalBencode() (b []byte, err error) {
	if r.FailureReason != "" {
		return bencode.EncodeBytes(bencode.Dictionary{
			"failure reason": bencode.String(r.FailureReason),
		})
	}

	d := make(bencode.Dictionary, 8)
	d["interval"] = bencode.Integer(r.Interval)
	if r.WarningMessage != "" {
		d["warning message"] = bencode.String(r.WarningMessage)
	}
	if r.MinInterval > 0 {
		d["min interval"] = bencode.Integer(r.MinInterval)
	}
	if r.TrackerID != "" {
		d["tracker id"] = bencode.String(r.TrackerID)
	}
	if r.Complete > 0 {
		d["complete"] = bencode.Integer(r.Complete)
	}
	if r.Incomplete > 0 {
		d["incomplete"] = bencode.Integer(r.Incomplete)
	}

	if len(r.Peers) > 0 {
		if d["peers"], err = r.Peers.value(); err != nil {
			return
		}
	}
	if len(r.Peers6) > 0 {
		if d["peers6"], err = r.Peers6.value(); err != nil {
			return
		}
	}

	return bencode.EncodeBytes(d)
}
