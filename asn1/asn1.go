// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1 defines the small ASN.1 vocabulary shared by the DER engine and
// the CRL distribution point codecs: tags and their classes, the universal tag
// numbers as assigned in [Rec. ITU-T X.680], and the BIT STRING type.
//
// The package intentionally contains no encoding logic. Encoding and decoding
// of tagged elements is implemented by the [codello.dev/crldp/der] package.
//
// [Rec. ITU-T X.680]: https://www.itu.int/rec/T-REC-X.680
package asn1

import (
	"strconv"
	"strings"
)

// Tag constitutes an ASN.1 tag, consisting of its class and number. For
// details, see Section 8 of Rec. ITU-T X.680.
type Tag struct {
	Class  Class
	Number uint
}

// Universal returns the tag with number n in the [ClassUniversal] namespace.
func Universal(n uint) Tag {
	return Tag{Class: ClassUniversal, Number: n}
}

// ContextSpecific returns the tag [n].
func ContextSpecific(n uint) Tag {
	return Tag{Class: ClassContextSpecific, Number: n}
}

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits have no meaning.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// String returns a string representation t in a format similar to the one used
// in ASN.1 notation. The tag number is enclosed by square brackets and prefixed
// with the class used. To avoid ambiguity the UNIVERSAL word is used for
// universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// Universal tag numbers used by X.509 structures. These assignments are defined
// in Rec. ITU-T X.680, Section 8, Table 1.
const (
	TagBoolean     uint = 1
	TagInteger     uint = 2
	TagBitString   uint = 3
	TagOctetString uint = 4
	TagNull        uint = 5
	TagOID         uint = 6
	TagUTF8String  uint = 12
	TagSequence    uint = 16
	TagSet         uint = 17
)
