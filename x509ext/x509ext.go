// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x509ext connects the codecs in package crldp to the extensions of
// certificates and CRLs as represented by [crypto/x509].
//
//	CRLDistributionPoints ::= SEQUENCE SIZE (1..MAX) OF DistributionPoint
//
//	FreshestCRL ::= CRLDistributionPoints
//
//	IssuingDistributionPoint ::= SEQUENCE { ... }
//
// The extension values are routed by OID. Each Parse function expects the
// extnValue OCTET STRING contents, i.e. [pkix.Extension.Value].
package x509ext

import (
	encasn1 "encoding/asn1"
	"errors"
	"fmt"

	"codello.dev/crldp"
	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

var (
	OIDCRLDistributionPoints    = encasn1.ObjectIdentifier{2, 5, 29, 31} // id-ce-cRLDistributionPoints
	OIDFreshestCRL              = encasn1.ObjectIdentifier{2, 5, 29, 46} // id-ce-freshestCRL
	OIDIssuingDistributionPoint = encasn1.ObjectIdentifier{2, 5, 29, 28} // id-ce-issuingDistributionPoint
)

// ErrNoDistributionPoints is returned when a CRLDistributionPoints value
// contains no DistributionPoint.
var ErrNoDistributionPoints = errors.New("empty SEQUENCE OF DistributionPoint")

// TagURI is the tag of the uniformResourceIdentifier GeneralName alternative.
const TagURI uint = 6

// ParseCRLDistributionPoints decodes a CRLDistributionPoints value. The same
// syntax is used by the FreshestCRL extension.
func ParseCRLDistributionPoints(value []byte) ([]crldp.DistributionPoint, error) {
	e, err := der.Unmarshal(value)
	if err != nil {
		return nil, err
	}
	if err := checkSequence(e); err != nil {
		return nil, &crldp.StructuralError{Type: "CRLDistributionPoints", Err: err}
	}
	children := e.Children()
	if len(children) == 0 {
		return nil, ErrNoDistributionPoints
	}
	dps := make([]crldp.DistributionPoint, len(children))
	for i, c := range children {
		if dps[i], err = crldp.ParseDistributionPoint(c); err != nil {
			return nil, fmt.Errorf("DistributionPoint %d: %w", i, err)
		}
	}
	return dps, nil
}

// checkSequence returns a [*crldp.TagError] if e is not a constructed
// [UNIVERSAL 16] element.
func checkSequence(e der.Element) error {
	var axis crldp.Axis
	switch {
	case e.Tag().Class != asn1.ClassUniversal:
		axis = crldp.AxisClass
	case !e.Constructed():
		axis = crldp.AxisConstruction
	case e.Tag().Number != asn1.TagSequence:
		axis = crldp.AxisNumber
	default:
		return nil
	}
	return &crldp.TagError{Axis: axis, Header: e.Header()}
}

// MarshalCRLDistributionPoints returns the DER encoding of a
// CRLDistributionPoints value holding dps.
func MarshalCRLDistributionPoints(dps []crldp.DistributionPoint) ([]byte, error) {
	if len(dps) == 0 {
		return nil, ErrNoDistributionPoints
	}
	children := make([]der.Element, len(dps))
	for i, dp := range dps {
		children[i] = dp.Element()
	}
	return der.Sequence(children...).Bytes(), nil
}

// ParseIssuingDistributionPoint decodes an IssuingDistributionPoint value.
//
// The onlySomeReasons field [3] must use the constructed encoding wrapping a
// single BIT STRING. Issuers that tag it implicitly, as the IMPLICIT TAGS
// module of RFC 5280 does, emit a primitive [3], and such values are rejected
// with [crldp.ErrInvalidConstruction].
func ParseIssuingDistributionPoint(value []byte) (crldp.IssuingDistPointSyntax, error) {
	var s crldp.IssuingDistPointSyntax
	if err := s.UnmarshalBinary(value); err != nil {
		return crldp.IssuingDistPointSyntax{}, err
	}
	return s, nil
}

// URI returns a uniformResourceIdentifier GeneralName.
func URI(uri string) der.Element {
	return der.NewPrimitive(asn1.ContextSpecific(TagURI), []byte(uri))
}

// FullNameURIs returns a DistributionPointName whose fullName consists of the
// given URIs.
func FullNameURIs(uris ...string) crldp.DistributionPointName {
	names := make([]der.Element, len(uris))
	for i, u := range uris {
		names[i] = URI(u)
	}
	return crldp.NewFullName(names...)
}

// URIs returns the uniformResourceIdentifier names of n. Other GeneralName
// alternatives are skipped. If n is a nameRelativeToCRLIssuer the result is
// nil.
func URIs(n crldp.DistributionPointName) []string {
	names, ok := n.FullName()
	if !ok {
		return nil
	}
	var uris []string
	for _, gn := range names {
		if gn.Tag() == asn1.ContextSpecific(TagURI) && !gn.Constructed() {
			uris = append(uris, string(gn.Content()))
		}
	}
	return uris
}
