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
	"errors"
	"reflect"
	"testing"

	"github.com/xgfone/go-bencode"
	"github.com/xgfone/go-bencode/internal/helper"
)

func TestPeers(t *testing.T) {
	peers := Peers{
		{ID: helper.RandomString(20), IP: "1.1.1.1", Port: 80},
		{ID: helper.RandomString(20), IP: "2.2.2.2", Port: 81},
	}

	b, err := peers.MarshalBencode()
	if err != nil {
		t.Fatal(err)
	}

	var ps Peers
	if err = ps.UnmarshalBencode(b); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(ps, peers) {
		t.Errorf("%v != %v", ps, peers)
	}

	/// For BEP 23
	peers = Peers{
		{IP: "1.1.1.1", Port: 80},
		{IP: "2.2.2.2", Port: 81},
	}

	b, err = peers.MarshalBencode()
	if err != nil {
		t.Fatal(err)
	}

	expect := "12:\x01\x01\x01\x01\x00\x50\x02\x02\x02\x02\x00\x51"
	if string(b) != expect {
		t.Errorf("expect %q, but got %q\n", expect, string(b))
	}

	if err = ps.UnmarshalBencode(b); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(ps, peers) {
		t.Errorf("%v != %v", ps, peers)
	}
}

func TestPeersError(t *testing.T) {
	var ps Peers
	for _, wire := range []string{
		"5:abcde", // not a multiple of 6 bytes
		"i123e",   // neither a string nor a list
		"l3:abce", // the element is not a dictionary
	} {
		if err := ps.UnmarshalBencode([]byte(wire)); err == nil {
			t.Errorf("expect an error for '%s', but got nil", wire)
		}
	}

	err := ps.UnmarshalBencode([]byte("ld4:porti80eee"))
	var missing *bencode.MissingKeyError
	if !errors.As(err, &missing) {
		t.Errorf("expect a missing key error, but got %v", err)
	} else if missing.Key != "ip" {
		t.Errorf("expect the key 'ip', but got '%s'\n", missing.Key)
	}

	err = ps.UnmarshalBencode([]byte("ld2:ip7:1.1.1.14:port2:80ee"))
	var typErr *bencode.TypeError
	if !errors.As(err, &typErr) {
		t.Errorf("expect a type error, but got %v", err)
	} else if typErr.Key != "port" || typErr.Expect != bencode.KindInteger {
		t.Errorf("invalid type error %+v\n", typErr)
	}

	// The compact form cannot represent a dns name.
	if _, err = (Peers{{IP: "example.com", Port: 80}}).MarshalBencode(); err == nil {
		t.Error("expect an error, but got nil")
	}
}

func TestPeers6(t *testing.T) {
	peers := Peers6{
		{IP: "fe80::5054:ff:fef0:1ab", Port: 80},
		{IP: "fe80::5054:ff:fe29:205d", Port: 81},
	}

	b, err := peers.MarshalBencode()
	if err != nil {
		t.Fatal(err)
	}

	var ps Peers6
	if err = ps.UnmarshalBencode(b); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(ps, peers) {
		t.Errorf("%v != %v", ps, peers)
	}

	if err = ps.UnmarshalBencode([]byte("7:abcdefg")); err == nil {
		t.Error("expect an error, but got nil")
	}
	if _, err = (Peers6{{IP: "bad", Port: 1}}).MarshalBencode(); err == nil {
		t.Error("expect an error, but got nil")
	}
}
