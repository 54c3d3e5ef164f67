// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"errors"
	"io"
	"math"
	"math/bits"
	"strconv"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/internal/vlq"
)

var (
	errIndefinite     = errors.New("indefinite length not allowed in DER")
	errLengthTooLarge = errors.New("length too large")
	errNonMinimalLen  = errors.New("length is not minimally encoded")
	errNonMinimalTag  = errors.New("tag number is not minimally encoded")
	errReservedLength = errors.New("reserved length octet 0xff")
	errInvalidEOC     = errors.New("unexpected end of contents")
	errExceedsParent  = errors.New("data value exceeds parent")
)

// Header represents a TLV header. In DER every length is definite, so Length
// is always the exact number of content octets.
type Header struct {
	Tag         asn1.Tag
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	return s + ":" + strconv.Itoa(h.Length)
}

// encodedLen computes the number of bytes required to encode h. appendHeader
// will write this exact number of bytes.
func (h Header) encodedLen() int {
	l := 1 // class, constructed, tag
	if h.Tag.Number >= 31 {
		l += vlq.Len(h.Tag.Number)
	}
	l++ // length
	if h.Length >= 128 {
		l += (bits.Len(uint(h.Length)) + 7) / 8
	}
	return l
}

// appendHeader appends the DER encoding of h to dst.
func appendHeader(dst []byte, h Header) []byte {
	b := byte(h.Tag.Class) << 6
	if h.Constructed {
		b |= 0x20
	}
	if h.Tag.Number < 31 {
		dst = append(dst, b|byte(h.Tag.Number))
	} else {
		dst = append(dst, b|0x1f)
		dst = vlq.Append(dst, h.Tag.Number)
	}

	if h.Length < 128 {
		return append(dst, byte(h.Length))
	}
	numBytes := (bits.Len(uint(h.Length)) + 7) / 8
	dst = append(dst, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		dst = append(dst, byte(h.Length>>uint((numBytes-1)*8)))
	}
	return dst
}

// decodeHeader reads the identifier and length octets at the start of b. It
// returns the header and the number of bytes it occupied. Encodings that are
// valid BER but not valid DER are rejected.
func decodeHeader(b []byte) (h Header, n int, err error) {
	if len(b) == 0 {
		return Header{}, 0, io.ErrUnexpectedEOF
	}
	h = Header{
		Tag:         asn1.Tag{Class: asn1.Class(b[0] >> 6), Number: uint(b[0] & 0x1f)},
		Constructed: b[0]&0x20 == 0x20,
	}
	n = 1

	// If the bottom five bits are set, then the tag number is actually VLQ-encoded
	if b[0]&0x1f == 0x1f {
		num, size, err := vlq.Decode(b[n:])
		if errors.Is(err, vlq.ErrNotMinimal) {
			return h, n, errNonMinimalTag
		} else if err != nil {
			return h, n, err
		}
		if num < 31 {
			// low tag numbers must use the short form
			return h, n, errNonMinimalTag
		}
		h.Tag.Number = num
		n += size
	}

	if n >= len(b) {
		return h, n, io.ErrUnexpectedEOF
	}
	l := b[n]
	n++
	switch {
	case l&0x80 == 0:
		// The length is encoded in the bottom 7 bits.
		h.Length = int(l)
	case l == 0x80:
		return h, n, errIndefinite
	case l == 0xff:
		return h, n, errReservedLength
	default:
		// Bottom 7 bits give the number of length bytes to follow.
		numBytes := int(l & 0x7f)
		if n+numBytes > len(b) {
			return h, n, io.ErrUnexpectedEOF
		}
		if b[n] == 0 {
			return h, n, errNonMinimalLen
		}
		for ; numBytes > 0; numBytes-- {
			if h.Length > math.MaxInt>>8 {
				// We can't shift h.Length up without overflowing.
				return h, n, errLengthTooLarge
			}
			h.Length = h.Length<<8 | int(b[n])
			n++
		}
		if h.Length < 128 {
			// short form would have sufficed
			return h, n, errNonMinimalLen
		}
	}
	if h.Tag == (asn1.Tag{}) {
		// [UNIVERSAL 0] is reserved for the end-of-contents marker
		return h, n, errInvalidEOC
	}
	return h, n, nil
}
