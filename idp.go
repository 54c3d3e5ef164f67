// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"fmt"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

// Context-specific tag numbers of the IssuingDistributionPoint fields.
const (
	tagIDPDistributionPoint          uint = 0
	tagIDPOnlyContainsUserCerts      uint = 1
	tagIDPOnlyContainsCACerts        uint = 2
	tagIDPOnlySomeReasons            uint = 3
	tagIDPIndirectCRL                uint = 4
	tagIDPOnlyContainsAttributeCerts uint = 5
)

var idpFields = map[uint]string{
	tagIDPDistributionPoint:          "distributionPoint",
	tagIDPOnlyContainsUserCerts:      "onlyContainsUserCerts",
	tagIDPOnlyContainsCACerts:        "onlyContainsCACerts",
	tagIDPOnlySomeReasons:            "onlySomeReasons",
	tagIDPIndirectCRL:                "indirectCRL",
	tagIDPOnlyContainsAttributeCerts: "onlyContainsAttributeCerts",
}

// IssuingDistPointSyntax is the value of the issuing distribution point CRL
// extension. The boolean fields default to false. A nil pointer indicates an
// absent optional field.
type IssuingDistPointSyntax struct {
	DistributionPoint              *DistributionPointName
	OnlyContainsUserPublicKeyCerts bool
	OnlyContainsCACerts            bool
	OnlySomeReasons                *ReasonFlags
	IndirectCRL                    bool
	OnlyContainsAttributeCerts     bool
}

// flags returns pointers to the boolean fields of s indexed by tag number.
func (s *IssuingDistPointSyntax) flags() map[uint]*bool {
	return map[uint]*bool{
		tagIDPOnlyContainsUserCerts:      &s.OnlyContainsUserPublicKeyCerts,
		tagIDPOnlyContainsCACerts:        &s.OnlyContainsCACerts,
		tagIDPIndirectCRL:                &s.IndirectCRL,
		tagIDPOnlyContainsAttributeCerts: &s.OnlyContainsAttributeCerts,
	}
}

// ParseIssuingDistPointSyntax decodes an IssuingDistributionPoint SEQUENCE.
//
// The context-specific tags of all fields, including ones this package does
// not know, must be strictly ascending. Unknown fields are skipped otherwise.
// The boolean fields must be primitive. The onlySomeReasons field must be a
// constructed element wrapping a single BIT STRING.
func ParseIssuingDistPointSyntax(e der.Element) (IssuingDistPointSyntax, error) {
	const typ = "IssuingDistPointSyntax"
	if err := checkTag(e, asn1.ClassUniversal, true, asn1.TagSequence); err != nil {
		return IssuingDistPointSyntax{}, &StructuralError{Type: typ, Err: err}
	}
	children := e.Children()
	tags := contextTags(children)
	if i := checkAscending(tags); i >= 0 {
		return IssuingDistPointSyntax{}, &StructuralError{typ, fieldName(idpFields, tags[i]), asn1.ContextSpecific(tags[i]), ErrOutOfOrder}
	}

	var s IssuingDistPointSyntax
	flags := s.flags()
	for _, c := range children {
		tag := c.Tag()
		if tag.Class != asn1.ClassContextSpecific {
			continue
		}
		name := fieldName(idpFields, tag.Number)
		switch tag.Number {
		case tagIDPDistributionPoint:
			n, _ := ParseDistributionPointName(c)
			s.DistributionPoint = &n
		case tagIDPOnlyContainsUserCerts, tagIDPOnlyContainsCACerts, tagIDPIndirectCRL, tagIDPOnlyContainsAttributeCerts:
			if err := checkConstruction(c, false); err != nil {
				return IssuingDistPointSyntax{}, &StructuralError{typ, name, tag, err}
			}
			v, err := c.Bool()
			if err != nil {
				return IssuingDistPointSyntax{}, &StructuralError{typ, name, tag, err}
			}
			*flags[tag.Number] = v
		case tagIDPOnlySomeReasons:
			f, err := parseExplicitReasons(c)
			if err != nil {
				return IssuingDistPointSyntax{}, &StructuralError{typ, name, tag, err}
			}
			s.OnlySomeReasons = &f
		}
	}
	return s, nil
}

// parseExplicitReasons decodes ReasonFlags wrapped in an explicit tag.
func parseExplicitReasons(e der.Element) (ReasonFlags, error) {
	if err := checkConstruction(e, true); err != nil {
		return ReasonFlags{}, err
	}
	children := e.Children()
	if len(children) != 1 {
		return ReasonFlags{}, fmt.Errorf("%w: explicit tag must wrap exactly one element, found %d", ErrInvalidConstruction, len(children))
	}
	return ParseReasonFlags(children[0])
}

// Element encodes s as an IssuingDistributionPoint SEQUENCE. Boolean fields
// are only written if they are true.
func (s IssuingDistPointSyntax) Element() der.Element {
	var children []der.Element
	if s.DistributionPoint != nil {
		children = append(children, s.DistributionPoint.Element())
	}
	flag := func(v bool, tag uint) {
		if v {
			children = append(children, der.Boolean(true).WithTag(asn1.ContextSpecific(tag)))
		}
	}
	flag(s.OnlyContainsUserPublicKeyCerts, tagIDPOnlyContainsUserCerts)
	flag(s.OnlyContainsCACerts, tagIDPOnlyContainsCACerts)
	if s.OnlySomeReasons != nil {
		children = append(children, der.NewConstructed(asn1.ContextSpecific(tagIDPOnlySomeReasons), s.OnlySomeReasons.Element()))
	}
	flag(s.IndirectCRL, tagIDPIndirectCRL)
	flag(s.OnlyContainsAttributeCerts, tagIDPOnlyContainsAttributeCerts)
	return der.Sequence(children...)
}

// MarshalBinary returns the DER encoding of s.
func (s IssuingDistPointSyntax) MarshalBinary() ([]byte, error) {
	return s.Element().Bytes(), nil
}

// UnmarshalBinary decodes a DER encoded IssuingDistributionPoint into s.
func (s *IssuingDistPointSyntax) UnmarshalBinary(data []byte) error {
	e, err := der.Unmarshal(data)
	if err != nil {
		return err
	}
	v, err := ParseIssuingDistPointSyntax(e)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
