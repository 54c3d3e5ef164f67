// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codello.dev/crldp/asn1"
)

func TestElement_Bool(t *testing.T) {
	tests := map[string]struct {
		e       Element
		want    bool
		wantErr bool
	}{
		"True":         {Boolean(true), true, false},
		"False":        {Boolean(false), false, false},
		"NonCanonical": {NewPrimitive(asn1.Universal(asn1.TagBoolean), []byte{0x01}), true, false},
		"Implicit":     {NewPrimitive(asn1.ContextSpecific(1), []byte{0xff}), true, false},
		"Empty":        {NewPrimitive(asn1.Universal(asn1.TagBoolean), nil), false, true},
		"TooLong":      {NewPrimitive(asn1.Universal(asn1.TagBoolean), []byte{0xff, 0xff}), false, true},
		"Constructed":  {NewConstructed(asn1.ContextSpecific(1), Boolean(true)), false, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.e.Bool()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Bool() error = %v, wantErr %v", err, tc.wantErr)
			}
			var syntaxErr *SyntaxError
			if err != nil && !errors.As(err, &syntaxErr) {
				t.Errorf("Bool() error = %T, want *SyntaxError", err)
			}
			if got != tc.want {
				t.Errorf("Bool() = %v, want %v", got, tc.want)
			}
		})
	}
	if b := Boolean(true).Bytes(); !bytes.Equal(b, []byte{0x01, 0x01, 0xff}) {
		t.Errorf("Boolean(true).Bytes() = % X", b)
	}
}

func TestElement_BitString(t *testing.T) {
	bitString := asn1.Universal(asn1.TagBitString)
	tests := map[string]struct {
		e       Element
		want    asn1.BitString
		wantErr bool
	}{
		"Empty":          {NewPrimitive(bitString, []byte{0x00}), asn1.BitString{BitLength: 0}, false},
		"ThreeBits":      {NewPrimitive(bitString, []byte{0x05, 0xa0}), asn1.BitString{Bytes: []byte{0xa0}, BitLength: 3}, false},
		"PaddingZeroed":  {NewPrimitive(bitString, []byte{0x06, 0x40, 0xff}), asn1.BitString{Bytes: []byte{0x40, 0xc0}, BitLength: 10}, false},
		"Implicit":       {NewPrimitive(asn1.ContextSpecific(1), []byte{0x07, 0x80}), asn1.BitString{Bytes: []byte{0x80}, BitLength: 1}, false},
		"NoPaddingOctet": {NewPrimitive(bitString, nil), asn1.BitString{}, true},
		"PaddingTooLong": {NewPrimitive(bitString, []byte{0x08, 0x00}), asn1.BitString{}, true},
		"PaddingNoData":  {NewPrimitive(bitString, []byte{0x01}), asn1.BitString{}, true},
		"Constructed":    {NewConstructed(bitString, NewPrimitive(bitString, []byte{0x00})), asn1.BitString{}, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.e.BitString()
			if (err != nil) != tc.wantErr {
				t.Fatalf("BitString() error = %v, wantErr %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("BitString() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewBitString(t *testing.T) {
	tests := map[string]struct {
		s       asn1.BitString
		want    []byte
		wantErr bool
	}{
		"Empty":      {asn1.BitString{}, []byte{0x03, 0x01, 0x00}, false},
		"TenBits":    {asn1.BitString{Bytes: []byte{0x40, 0x00}, BitLength: 10}, []byte{0x03, 0x03, 0x06, 0x40, 0x00}, false},
		"DirtyBits":  {asn1.BitString{Bytes: []byte{0xff}, BitLength: 3}, []byte{0x03, 0x02, 0x05, 0xe0}, false},
		"FullOctets": {asn1.BitString{Bytes: []byte{0x01, 0x02}, BitLength: 16}, []byte{0x03, 0x03, 0x00, 0x01, 0x02}, false},
		"Invalid":    {asn1.BitString{Bytes: []byte{0x01}, BitLength: 9}, nil, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := NewBitString(tc.s)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewBitString() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if got := e.Bytes(); !bytes.Equal(got, tc.want) {
				t.Errorf("NewBitString().Bytes() = % X, want % X", got, tc.want)
			}
		})
	}
}
