// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"errors"

	"codello.dev/crldp/asn1"
)

var errConstructedValue = errors.New("constructed encoding of a primitive type")

// syntaxError returns a *SyntaxError for malformed content of e.
func (e Element) syntaxError(err error) error {
	return &SyntaxError{Offset: -1, Header: e.Header(), Err: err}
}

//region [UNIVERSAL 1] BOOLEAN

// Boolean returns a [UNIVERSAL 1] element holding v. True is encoded as 0xFF
// as DER requires.
func Boolean(v bool) Element {
	b := byte(0x00)
	if v {
		b = 0xff
	}
	return NewPrimitive(asn1.Universal(asn1.TagBoolean), []byte{b})
}

// Bool interprets the content octets of e as an ASN.1 BOOLEAN. The tag of e is
// not checked. The value false is encoded as 0x00. Any other single byte value
// corresponds to true.
func (e Element) Bool() (bool, error) {
	if e.constructed {
		return false, e.syntaxError(errConstructedValue)
	}
	if len(e.content) != 1 {
		return false, e.syntaxError(errors.New("invalid boolean"))
	}
	return e.content[0] != 0, nil
}

//endregion

//region [UNIVERSAL 3] BIT STRING

// NewBitString returns a [UNIVERSAL 3] element holding s. Padding bits are
// encoded as zero bits. An error is returned if s is not valid.
func NewBitString(s asn1.BitString) (Element, error) {
	if !s.IsValid() {
		return Element{}, errors.New("der: BitString is not valid")
	}
	padding := byte((8 - s.BitLength%8) % 8)
	content := make([]byte, 1, len(s.Bytes)+1)
	content[0] = padding
	content = append(content, s.Bytes...)
	if len(s.Bytes) > 0 {
		// zero out any padding bits
		content[len(content)-1] &= ^byte(1<<padding - 1)
	}
	return Element{tag: asn1.Universal(asn1.TagBitString), content: content, length: len(content)}, nil
}

// BitString interprets the content octets of e as an ASN.1 BIT STRING. The tag
// of e is not checked. Padding bits are decoded as zero bits.
func (e Element) BitString() (asn1.BitString, error) {
	if e.constructed {
		// DER forbids the constructed form of string types
		return asn1.BitString{}, e.syntaxError(errConstructedValue)
	}
	if len(e.content) == 0 {
		return asn1.BitString{}, e.syntaxError(errors.New("zero length BIT STRING"))
	}
	padding := e.content[0]
	if padding > 7 || len(e.content) == 1 && padding > 0 {
		return asn1.BitString{}, e.syntaxError(errors.New("invalid padding bits in BIT STRING"))
	}
	bs := asn1.BitString{
		Bytes:     append([]byte(nil), e.content[1:]...),
		BitLength: (len(e.content)-1)*8 - int(padding),
	}
	if len(bs.Bytes) > 0 {
		bs.Bytes[len(bs.Bytes)-1] &= ^byte(1<<padding - 1)
	}
	return bs, nil
}

//endregion
