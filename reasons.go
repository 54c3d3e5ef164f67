// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"strings"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

// Reason is the bit position of a named bit in [ReasonFlags].
//
//go:generate stringer -type=Reason -linecomment
type Reason uint8

const (
	ReasonUnused                 Reason = iota // unused
	ReasonKeyCompromise                        // keyCompromise
	ReasonCACompromise                         // cACompromise
	ReasonAffiliationChanged                   // affiliationChanged
	ReasonSuperseded                           // superseded
	ReasonCessationOfOperation                 // cessationOfOperation
	ReasonCertificateHold                      // certificateHold
	ReasonPrivilegeWithdrawn                   // privilegeWithdrawn
	ReasonAACompromise                         // aACompromise
	ReasonWeakAlgorithmOrKeySize               // weakAlgorithmOrKeySize

	numReasons = 10
)

// ReasonFlags is the set of revocation reasons covered by a distribution point
// or CRL. The zero value has no flags set.
type ReasonFlags struct {
	Unused                 bool
	KeyCompromise          bool
	CACompromise           bool
	AffiliationChanged     bool
	Superseded             bool
	CessationOfOperation   bool
	CertificateHold        bool
	PrivilegeWithdrawn     bool
	AACompromise           bool
	WeakAlgorithmOrKeySize bool
}

// ReasonFlagsOf returns the ReasonFlags with exactly the given reasons set.
func ReasonFlagsOf(reasons ...Reason) ReasonFlags {
	var f ReasonFlags
	for _, r := range reasons {
		f = f.With(r)
	}
	return f
}

// flag returns a pointer to the field for r, or nil if r is out of range.
func (f *ReasonFlags) flag(r Reason) *bool {
	switch r {
	case ReasonUnused:
		return &f.Unused
	case ReasonKeyCompromise:
		return &f.KeyCompromise
	case ReasonCACompromise:
		return &f.CACompromise
	case ReasonAffiliationChanged:
		return &f.AffiliationChanged
	case ReasonSuperseded:
		return &f.Superseded
	case ReasonCessationOfOperation:
		return &f.CessationOfOperation
	case ReasonCertificateHold:
		return &f.CertificateHold
	case ReasonPrivilegeWithdrawn:
		return &f.PrivilegeWithdrawn
	case ReasonAACompromise:
		return &f.AACompromise
	case ReasonWeakAlgorithmOrKeySize:
		return &f.WeakAlgorithmOrKeySize
	}
	return nil
}

// Has reports whether r is set in f.
func (f ReasonFlags) Has(r Reason) bool {
	p := f.flag(r)
	return p != nil && *p
}

// With returns a copy of f with r set. Unknown reasons are ignored.
func (f ReasonFlags) With(r Reason) ReasonFlags {
	if p := f.flag(r); p != nil {
		*p = true
	}
	return f
}

// Reasons returns the reasons set in f in ascending bit order.
func (f ReasonFlags) Reasons() []Reason {
	var rs []Reason
	for r := range Reason(numReasons) {
		if f.Has(r) {
			rs = append(rs, r)
		}
	}
	return rs
}

// String returns the names of the set reasons separated by "|".
func (f ReasonFlags) String() string {
	rs := f.Reasons()
	if len(rs) == 0 {
		return "none"
	}
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.String()
	}
	return strings.Join(names, "|")
}

// ParseReasonFlags decodes a ReasonFlags BIT STRING. e must be a primitive
// [UNIVERSAL 3] element. Bits that are missing from the encoding decode as
// false and bits beyond the defined ones are ignored.
func ParseReasonFlags(e der.Element) (ReasonFlags, error) {
	if err := checkTag(e, asn1.ClassUniversal, false, asn1.TagBitString); err != nil {
		return ReasonFlags{}, &StructuralError{Type: "ReasonFlags", Err: err}
	}
	f, err := reasonFlagsFromBits(e)
	if err != nil {
		return ReasonFlags{}, &StructuralError{Type: "ReasonFlags", Err: err}
	}
	return f, nil
}

// reasonFlagsFromBits interprets the content of e as ReasonFlags, irrespective
// of its tag.
func reasonFlagsFromBits(e der.Element) (ReasonFlags, error) {
	bs, err := e.BitString()
	if err != nil {
		return ReasonFlags{}, err
	}
	var f ReasonFlags
	for r := range Reason(min(bs.Len(), numReasons)) {
		if bs.At(int(r)) == 1 {
			f = f.With(r)
		}
	}
	return f, nil
}

// Element encodes f as a [UNIVERSAL 3] BIT STRING. All ten defined bits are
// encoded, including trailing zero bits.
func (f ReasonFlags) Element() der.Element {
	bs := asn1.BitString{Bytes: make([]byte, (numReasons+7)/8), BitLength: numReasons}
	for r := range Reason(numReasons) {
		if f.Has(r) {
			bs.Bytes[r/8] |= 0x80 >> (r % 8)
		}
	}
	// bs is always valid
	e, _ := der.NewBitString(bs)
	return e
}
