// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"io"
	"strconv"
)

// SyntaxError represents an error in the DER encoding or in the content octets
// of a primitive element. The error value contains the location of the error
// within the input as well as the [Header] of the element that contained the
// malformed data.
type SyntaxError struct {
	Err error // underlying error

	// Offset is the location of the error. The location is usually the start of
	// the TLV header containing the error. It is -1 if the error did not occur
	// while parsing bytes, e.g. when reading a typed payload of an Element.
	Offset int64

	// Header is the TLV header of the element whose value contained the
	// malformed data. It is the zero value for errors at the top level.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("der: syntax error")
	if e.Header != (Header{}) {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	if e.Offset >= 0 {
		//goland:noinspection GoDirectComparisonOfErrors
		if e.Err == io.ErrUnexpectedEOF {
			b = strconv.AppendInt(append(b, " at offset "...), e.Offset, 10)
		} else {
			b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), e.Offset, 10)
		}
	}
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}
