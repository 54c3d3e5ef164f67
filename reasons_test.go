// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"bytes"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

func bitString(content ...byte) der.Element {
	return der.NewPrimitive(asn1.Universal(asn1.TagBitString), content)
}

func TestParseReasonFlags(t *testing.T) {
	tests := map[string]struct {
		e    der.Element
		want ReasonFlags
	}{
		"Empty":         {bitString(0x00), ReasonFlags{}},
		"KeyCompromise": {bitString(0x06, 0x40, 0x00), ReasonFlags{KeyCompromise: true}},
		"ThreeBits":     {bitString(0x05, 0x60), ReasonFlags{KeyCompromise: true, CACompromise: true}},
		"ThreeBitsAll":  {bitString(0x05, 0xe0), ReasonFlags{Unused: true, KeyCompromise: true, CACompromise: true}},
		"NineBits":      {bitString(0x07, 0x00, 0x80), ReasonFlags{AACompromise: true}},
		"Trimmed":       {bitString(0x03, 0x08), ReasonFlags{Superseded: true}},
		"ExtraBits":     {bitString(0x00, 0xff, 0xff), ReasonFlagsOf(ReasonUnused, ReasonKeyCompromise, ReasonCACompromise, ReasonAffiliationChanged, ReasonSuperseded, ReasonCessationOfOperation, ReasonCertificateHold, ReasonPrivilegeWithdrawn, ReasonAACompromise, ReasonWeakAlgorithmOrKeySize)},
		"LastBit":       {bitString(0x06, 0x00, 0x40), ReasonFlags{WeakAlgorithmOrKeySize: true}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseReasonFlags(tc.e)
			if err != nil {
				t.Fatalf("ParseReasonFlags() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseReasonFlags() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseReasonFlags_Errors(t *testing.T) {
	tests := map[string]struct {
		e       der.Element
		wantErr error
	}{
		"ContextTag":     {bitString(0x00).WithTag(cs(1)), ErrTagMismatch},
		"OctetString":    {der.NewPrimitive(asn1.Universal(asn1.TagOctetString), []byte{0x00}), ErrTagMismatch},
		"Constructed":    {der.NewConstructed(asn1.Universal(asn1.TagBitString), bitString(0x00)), ErrTagMismatch},
		"NoContent":      {bitString(), new(der.SyntaxError)},
		"InvalidPadding": {bitString(0x08, 0x00), new(der.SyntaxError)},
		"PaddedNoBits":   {bitString(0x01), new(der.SyntaxError)},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReasonFlags(tc.e)
			if err == nil {
				t.Fatal("ParseReasonFlags() error = nil")
			}
			var structErr *StructuralError
			if !errors.As(err, &structErr) || structErr.Type != "ReasonFlags" {
				t.Errorf("ParseReasonFlags() error = %v, want *StructuralError", err)
			}
			if syntaxErr, ok := tc.wantErr.(*der.SyntaxError); ok {
				if !errors.As(err, &syntaxErr) {
					t.Errorf("ParseReasonFlags() error = %v, want *der.SyntaxError", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseReasonFlags() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestReasonFlags_Element(t *testing.T) {
	tests := map[string]struct {
		f    ReasonFlags
		want []byte
	}{
		"None":          {ReasonFlags{}, []byte{0x03, 0x03, 0x06, 0x00, 0x00}},
		"KeyCompromise": {ReasonFlags{KeyCompromise: true}, []byte{0x03, 0x03, 0x06, 0x40, 0x00}},
		"Unused":        {ReasonFlags{Unused: true}, []byte{0x03, 0x03, 0x06, 0x80, 0x00}},
		"SecondOctet":   {ReasonFlags{AACompromise: true, WeakAlgorithmOrKeySize: true}, []byte{0x03, 0x03, 0x06, 0x00, 0xc0}},
		"Mixed":         {ReasonFlagsOf(ReasonSuperseded, ReasonCertificateHold, ReasonPrivilegeWithdrawn), []byte{0x03, 0x03, 0x06, 0x0b, 0x00}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.f.Element().Bytes(); !bytes.Equal(got, tc.want) {
				t.Errorf("Element().Bytes() = % X, want % X", got, tc.want)
			}
		})
	}
}

func TestReasonFlags_String(t *testing.T) {
	tests := map[string]struct {
		f    ReasonFlags
		want string
	}{
		"None":     {ReasonFlags{}, "none"},
		"Single":   {ReasonFlags{CACompromise: true}, "cACompromise"},
		"Multiple": {ReasonFlagsOf(ReasonWeakAlgorithmOrKeySize, ReasonKeyCompromise), "keyCompromise|weakAlgorithmOrKeySize"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.f.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReasonFlags_Has(t *testing.T) {
	f := ReasonFlagsOf(ReasonCessationOfOperation, Reason(42))
	if !f.Has(ReasonCessationOfOperation) {
		t.Errorf("Has(%s) = false", ReasonCessationOfOperation)
	}
	if f.Has(ReasonSuperseded) {
		t.Errorf("Has(%s) = true", ReasonSuperseded)
	}
	if f.Has(Reason(42)) {
		t.Errorf("Has(Reason(42)) = true")
	}
	if got := f.Reasons(); len(got) != 1 || got[0] != ReasonCessationOfOperation {
		t.Errorf("Reasons() = %v, want [%s]", got, ReasonCessationOfOperation)
	}
}

func reasonFlagsGen() *rapid.Generator[ReasonFlags] {
	return rapid.Custom(func(t *rapid.T) ReasonFlags {
		var f ReasonFlags
		for r := range Reason(numReasons) {
			if rapid.Bool().Draw(t, r.String()) {
				f = f.With(r)
			}
		}
		return f
	})
}

func TestReasonFlags_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := reasonFlagsGen().Draw(t, "flags")
		e, err := der.Unmarshal(f.Element().Bytes())
		if err != nil {
			t.Fatalf("der.Unmarshal() error = %v", err)
		}
		got, err := ParseReasonFlags(e)
		if err != nil {
			t.Fatalf("ParseReasonFlags() error = %v", err)
		}
		if got != f {
			t.Fatalf("ParseReasonFlags(Element()) = %s, want %s", got, f)
		}
	})
}

// Bits beyond the encoded bit length must never be interpreted, even if the
// padding bits in the last octet are set.
func TestParseReasonFlags_BitLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.SliceOfN(rapid.Byte(), 1, 3).Draw(t, "content")
		padding := rapid.ByteRange(0, 7).Draw(t, "padding")
		if len(content) == 1 {
			padding = 0
		}
		bitLength := (len(content)-1)*8 - int(padding)
		got, err := ParseReasonFlags(bitString(append([]byte{padding}, content[1:]...)...))
		if err != nil {
			t.Fatalf("ParseReasonFlags() error = %v", err)
		}
		for r := range Reason(numReasons) {
			if int(r) >= bitLength && got.Has(r) {
				t.Fatalf("flag %s set beyond bit length %d", r, bitLength)
			}
		}
	})
}
