// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

// Context-specific tag numbers of the DistributionPoint fields.
const (
	tagDPDistributionPoint uint = 0
	tagDPReasons           uint = 1
	tagDPCRLIssuer         uint = 2
)

var dpFields = map[uint]string{
	tagDPDistributionPoint: "distributionPoint",
	tagDPReasons:           "reasons",
	tagDPCRLIssuer:         "cRLIssuer",
}

// DistributionPoint identifies a location from which a CRL can be obtained.
// All fields are optional. A nil pointer or slice indicates an absent field.
type DistributionPoint struct {
	DistributionPoint *DistributionPointName
	Reasons           *ReasonFlags

	// CRLIssuer holds the GeneralName elements of the cRLIssuer field. A
	// non-nil empty slice encodes an empty GeneralNames value.
	CRLIssuer []der.Element
}

// ParseDistributionPoint decodes a DistributionPoint SEQUENCE. The fields may
// appear in any order. Unknown fields are skipped. The reasons and cRLIssuer
// fields are implicitly tagged.
func ParseDistributionPoint(e der.Element) (DistributionPoint, error) {
	const typ = "DistributionPoint"
	if err := checkTag(e, asn1.ClassUniversal, true, asn1.TagSequence); err != nil {
		return DistributionPoint{}, &StructuralError{Type: typ, Err: err}
	}
	var dp DistributionPoint
	seen := make(map[uint]bool, len(dpFields))
	for _, c := range e.Children() {
		tag := c.Tag()
		if tag.Class != asn1.ClassContextSpecific {
			continue
		}
		name, known := dpFields[tag.Number]
		if !known {
			continue
		}
		if seen[tag.Number] {
			return DistributionPoint{}, &StructuralError{typ, name, tag, ErrDuplicateField}
		}
		seen[tag.Number] = true

		switch tag.Number {
		case tagDPDistributionPoint:
			n, _ := ParseDistributionPointName(c)
			dp.DistributionPoint = &n
		case tagDPReasons:
			if err := checkConstruction(c, false); err != nil {
				return DistributionPoint{}, &StructuralError{typ, name, tag, err}
			}
			f, err := reasonFlagsFromBits(c)
			if err != nil {
				return DistributionPoint{}, &StructuralError{typ, name, tag, err}
			}
			dp.Reasons = &f
		case tagDPCRLIssuer:
			if err := checkConstruction(c, true); err != nil {
				return DistributionPoint{}, &StructuralError{typ, name, tag, err}
			}
			dp.CRLIssuer = c.Children()
			if dp.CRLIssuer == nil {
				dp.CRLIssuer = []der.Element{}
			}
		}
	}
	return dp, nil
}

// Element encodes dp as a DistributionPoint SEQUENCE. Present fields are
// written in tag order.
func (dp DistributionPoint) Element() der.Element {
	var children []der.Element
	if dp.DistributionPoint != nil {
		children = append(children, dp.DistributionPoint.Element())
	}
	if dp.Reasons != nil {
		children = append(children, dp.Reasons.Element().WithTag(asn1.ContextSpecific(tagDPReasons)))
	}
	if dp.CRLIssuer != nil {
		children = append(children, der.NewConstructed(asn1.ContextSpecific(tagDPCRLIssuer), dp.CRLIssuer...))
	}
	return der.Sequence(children...)
}

// MarshalBinary returns the DER encoding of dp.
func (dp DistributionPoint) MarshalBinary() ([]byte, error) {
	return dp.Element().Bytes(), nil
}

// UnmarshalBinary decodes a DER encoded DistributionPoint into dp.
func (dp *DistributionPoint) UnmarshalBinary(data []byte) error {
	e, err := der.Unmarshal(data)
	if err != nil {
		return err
	}
	v, err := ParseDistributionPoint(e)
	if err != nil {
		return err
	}
	*dp = v
	return nil
}
