// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crldp implements DER codecs for the X.509 structures that describe
// CRL distribution points as defined in [RFC 5280]:
//
//	DistributionPoint ::= SEQUENCE {
//	     distributionPoint       [0]     DistributionPointName OPTIONAL,
//	     reasons                 [1]     ReasonFlags OPTIONAL,
//	     cRLIssuer               [2]     GeneralNames OPTIONAL }
//
//	DistributionPointName ::= CHOICE {
//	     fullName                [0]     GeneralNames,
//	     nameRelativeToCRLIssuer [1]     RelativeDistinguishedName }
//
//	ReasonFlags ::= BIT STRING {
//	     unused                  (0),
//	     keyCompromise           (1),
//	     cACompromise            (2),
//	     affiliationChanged      (3),
//	     superseded              (4),
//	     cessationOfOperation    (5),
//	     certificateHold         (6),
//	     privilegeWithdrawn      (7),
//	     aACompromise            (8),
//	     weakAlgorithmOrKeySize  (9) }
//
//	IssuingDistributionPoint ::= SEQUENCE {
//	     distributionPoint          [0] DistributionPointName OPTIONAL,
//	     onlyContainsUserCerts      [1] BOOLEAN DEFAULT FALSE,
//	     onlyContainsCACerts        [2] BOOLEAN DEFAULT FALSE,
//	     onlySomeReasons            [3] ReasonFlags OPTIONAL,
//	     indirectCRL                [4] BOOLEAN DEFAULT FALSE,
//	     onlyContainsAttributeCerts [5] BOOLEAN DEFAULT FALSE }
//
// Each structure has a Parse function that decodes a [der.Element] and an
// Element method that encodes the value back into one. Decoding validates the
// tag class, construction and number of every element it interprets and
// reports violations as [*StructuralError] values wrapping one of
// [ErrTagMismatch], [ErrInvalidConstruction], [ErrOutOfOrder] or
// [ErrDuplicateField]. Malformed content octets surface as [*der.SyntaxError].
//
// The DistributionPointName CHOICE is not resolved by the codecs. It is kept
// as the element it was decoded from so that it can be re-encoded unchanged.
// GeneralNames are likewise kept as a slice of undecoded elements.
//
// All functions are pure and safe for concurrent use.
//
// [RFC 5280]: https://www.rfc-editor.org/rfc/rfc5280
package crldp

import (
	"slices"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

// checkTag validates that e has the given class, construction and one of the
// given tag numbers. If numbers is empty, any number is accepted.
func checkTag(e der.Element, class asn1.Class, constructed bool, numbers ...uint) error {
	switch {
	case e.Tag().Class != class:
		return &TagError{Axis: AxisClass, Header: e.Header()}
	case e.Constructed() != constructed:
		return &TagError{Axis: AxisConstruction, Header: e.Header()}
	case len(numbers) > 0 && !slices.Contains(numbers, e.Tag().Number):
		return &TagError{Axis: AxisNumber, Header: e.Header()}
	}
	return nil
}

// checkAscending reports the index of the first tag that is not strictly
// greater than its predecessor, or -1 if tags are strictly ascending.
func checkAscending(tags []uint) int {
	for i := 1; i < len(tags); i++ {
		if tags[i] <= tags[i-1] {
			return i
		}
	}
	return -1
}

// contextTags returns the tag numbers of all context-specific elements in es,
// in order.
func contextTags(es []der.Element) []uint {
	tags := make([]uint, 0, len(es))
	for _, e := range es {
		if e.Tag().Class == asn1.ClassContextSpecific {
			tags = append(tags, e.Tag().Number)
		}
	}
	return tags
}

// checkConstruction returns ErrInvalidConstruction if e does not use the
// expected encoding.
func checkConstruction(e der.Element, constructed bool) error {
	if e.Constructed() != constructed {
		return ErrInvalidConstruction
	}
	return nil
}

// fieldName returns the ASN.1 name of the field with tag number n.
func fieldName(fields map[uint]string, n uint) string {
	if name, ok := fields[n]; ok {
		return name
	}
	return "unknown"
}
