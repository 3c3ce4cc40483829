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
	"encoding/binary"
	"errors"
	"net"

	"github.com/xgfone/go-bencode"
)

var errInvalidPeer = errors.New("invalid peer information format")

// Peer is a tracker peer.
type Peer struct {
	// ID is the peer's self-selected ID.
	ID string `bencode:"peer id"` // BEP 3

	// IP is the IP address or dns name.
	IP   string `bencode:"ip"`   // BEP 3
	Port uint16 `bencode:"port"` // BEP 3
}

// Peers is a set of the peers.
type Peers []Peer

// UnmarshalBencode implements the interface bencode.Unmarshaler.
//
// The peers may be either a list of the peer dictionaries (BEP 3)
// or a compact string of the 6-byte ipv4 addresses (BEP 23).
func (ps *Peers) UnmarshalBencode(b []byte) (err error) {
	var v bencode.Value
	if err = bencode.DecodeBytes(b, &v); err != nil {
		return
	}

	peers, err := peersFromValue(v)
	if err == nil {
		*ps = peers
	}
	return
}

// MarshalBencode implements the interface bencode.Marshaler.
func (ps Peers) MarshalBencode() (b []byte, err error) {
	v, err := ps.value()
	if err == nil {
		b, err = bencode.EncodeBytes(v)
	}
	return
}

func peersFromValue(v bencode.Value) (peers Peers, err error) {
	switch vs := v.(type) {
	case bencode.String: // BEP 23
		_len := len(vs)
		if _len%6 != 0 {
			return nil, errInvalidPeer
		}

		peers = make(Peers, 0, _len/6)
		for i := 0; i < _len; i += 6 {
			peers = append(peers, Peer{
				IP:   net.IP(vs[i : i+4]).String(),
				Port: binary.BigEndian.Uint16(vs[i+4 : i+6]),
			})
		}

	case bencode.List: // BEP 3
		peers = make(Peers, len(vs))
		for i, p := range vs {
			d, ok := p.(bencode.Dictionary)
			if !ok {
				return nil, errInvalidPeer
			}
			if peers[i], err = peerFromDictionary(d); err != nil {
				return nil, err
			}
		}

	default:
		return nil, errInvalidPeer
	}

	return
}

func peerFromDictionary(d bencode.Dictionary) (p Peer, err error) {
	// "peer id" may be omitted by the trackers supporting BEP 23.
	id, _, err := d.PopOptionalString("peer id")
	if err != nil {
		return
	}
	p.ID = string(id)

	if p.IP, err = d.PopUTF8String("ip"); err != nil {
		return
	}

	port, err := d.PopInteger("port")
	if err == nil {
		p.Port = uint16(port)
	}
	return
}

func (ps Peers) value() (v bencode.Value, err error) {
	for _, p := range ps {
		if p.ID == "" {
			return ps.compactValue() // BEP 23
		}
	}

	// BEP 3
	list := make(bencode.List, len(ps))
	for i, p := range ps {
		list[i] = bencode.Dictionary{
			"peer id": bencode.String(p.ID),
			"ip":      bencode.String(p.IP),
			"port":    bencode.Integer(p.Port),
		}
	}
	return list, nil
}

func (ps Peers) compactValue() (v bencode.Value, err error) {
	buf := make([]byte, 0, 6*len(ps))
	for _, p := range ps {
		ip := net.ParseIP(p.IP).To4()
		if ip == nil {
			return nil, errInvalidPeer
		}
		buf = append(buf, ip...)
		buf = binary.BigEndian.AppendUint16(buf, p.Port)
	}
	return bencode.String(buf), nil
}

// Peers6 is a set of the peers for IPv6 in the compact case.
//
// BEP 7
type Peers6 []Peer

// UnmarshalBencode implements the interface bencode.Unmarshaler.
func (ps *Peers6) UnmarshalBencode(b []byte) (err error) {
	var v bencode.Value
	if err = bencode.DecodeBytes(b, &v); err != nil {
		return
	}

	peers, err := peers6FromValue(v)
	if err == nil {
		*ps = peers
	}
	return
}

// MarshalBencode implements the interface bencode.Marshaler.
func (ps Peers6) MarshalBencode() (b []byte, err error) {
	v, err := ps.value()
	if err == nil {
		b, err = bencode.EncodeBytes(v)
	}
	return
}

func peers6FromValue(v bencode.Value) (peers Peers6, err error) {
	s, ok := v.(bencode.String)
	if !ok {
		return nil, errInvalidPeer
	}

	_len := len(s)
	if _len%18 != 0 {
		return nil, errInvalidPeer
	}

	peers = make(Peers6, 0, _len/18)
	for i := 0; i < _len; i += 18 {
		peers = append(peers, Peer{
			IP:   net.IP(s[i : i+16]).String(),
			Port: binary.BigEndian.Uint16(s[i+16 : i+18]),
		})
	}
	return
}

func (ps Peers6) value() (v bencode.Value, err error) {
	buf := make([]byte, 0, 18*len(ps))
	for _, p := range ps {
		ip := net.ParseIP(p.IP).To16()
		if ip == nil {
			return nil, errInvalidPeer
		}
		buf = append(buf, ip...)
		buf = binary.BigEndian.AppendUint16(buf, p.Port)
	}
	return bencode.String(buf), nil
}
