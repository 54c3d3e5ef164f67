// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"testing"
)

func TestBitString_At(t *testing.T) {
	s := BitString{Bytes: []byte{0b0100_0000, 0b1100_0000}, BitLength: 10}
	want := []int{0, 1, 0, 0, 0, 0, 0, 0, 1, 1}
	for i, w := range want {
		if got := s.At(i); got != w {
			t.Errorf("BitString.At(%d) = %d, want %d", i, got, w)
		}
	}
	defer func() {
		if recover() == nil {
			t.Errorf("BitString.At(10) did not panic")
		}
	}()
	s.At(10)
}

func TestBitString_IsValid(t *testing.T) {
	tests := map[string]struct {
		s    BitString
		want bool
	}{
		"Empty":       {BitString{}, true},
		"FullByte":    {BitString{Bytes: []byte{0xff}, BitLength: 8}, true},
		"Partial":     {BitString{Bytes: []byte{0xff, 0x80}, BitLength: 9}, true},
		"TooFewBytes": {BitString{Bytes: []byte{0xff}, BitLength: 9}, false},
		"TooMany":     {BitString{Bytes: []byte{0xff, 0x00}, BitLength: 8}, false},
		"Negative":    {BitString{BitLength: -1}, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.want {
				t.Errorf("BitString.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBitString_String(t *testing.T) {
	tests := map[string]struct {
		s    BitString
		want string
	}{
		"Empty":     {BitString{}, ""},
		"ThreeBits": {BitString{Bytes: []byte{0b1010_0000}, BitLength: 3}, "101"},
		"TenBits":   {BitString{Bytes: []byte{0b0100_0000, 0b0100_0000}, BitLength: 10}, "01000000 01"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("BitString.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
