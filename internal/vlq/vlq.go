// Package vlq implements [Variable-length quantity] encoding as used in BER
// and DER high tag numbers. A VLQ is essentially a base-128 representation of
// an unsigned integer with the eighth bit of every byte except the last one
// marking continuation.
//
// The package operates on byte slices since DER elements are always fully
// buffered.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
package vlq

import (
	"errors"
	"io"
	"math/bits"
)

var (
	ErrNotMinimal = errors.New("vlq is not minimally encoded")
	ErrOverflow   = errors.New("vlq too large for target type")
)

// Decode parses a minimally encoded VLQ from the start of b. It returns the
// value and the number of bytes it occupied. If b ends before the last byte
// of the VLQ, [io.ErrUnexpectedEOF] is returned.
func Decode(b []byte) (n uint, size int, err error) {
	if len(b) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if b[0] == 0x80 {
		return 0, 0, ErrNotMinimal
	}
	numBits := 0
	for size < len(b) {
		c := b[size]
		size++
		if numBits == 0 {
			numBits = bits.Len8(c & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > bits.UintSize {
			return 0, size, ErrOverflow
		}
		n = n<<7 | uint(c&0x7f)
		if c&0x80 == 0 {
			return n, size, nil
		}
	}
	return 0, size, io.ErrUnexpectedEOF
}

// Len returns the number of bytes needed to encode n as a VLQ.
func Len(n uint) int {
	if n == 0 {
		return 1
	}
	return (bits.Len(n) + 6) / 7
}

// Append appends the VLQ encoding of n to dst and returns the extended slice.
func Append(dst []byte, n uint) []byte {
	for j := Len(n) - 1; j >= 0; j-- {
		b := byte(n>>(j*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
