// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"errors"
	"strings"

	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

var (
	// ErrTagMismatch indicates that an element has the wrong tag class,
	// construction or tag number. Errors of this kind are reported as
	// [*TagError].
	ErrTagMismatch = errors.New("tag mismatch")

	// ErrInvalidConstruction indicates that a field has the expected tag number but
	// uses the primitive encoding where the constructed one is required or vice
	// versa.
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrOutOfOrder indicates that the context-specific tags of a SEQUENCE are not
	// in strictly ascending order.
	ErrOutOfOrder = errors.New("fields out of order")

	// ErrDuplicateField indicates that a known field of a SEQUENCE appears more
	// than once.
	ErrDuplicateField = errors.New("duplicate field")
)

// Axis identifies the part of a tag that did not match the expectation.
//
//go:generate stringer -type=Axis -trimprefix=Axis
type Axis uint8

const (
	AxisClass Axis = iota
	AxisConstruction
	AxisNumber
)

// TagError is returned when an element does not carry the expected tag. The
// first mismatching axis is reported, in the order class, construction,
// number.
type TagError struct {
	Axis   Axis
	Header der.Header // header of the offending element
}

func (e *TagError) Unwrap() error { return ErrTagMismatch }
func (e *TagError) Error() string {
	var s strings.Builder
	s.WriteString("tag mismatch: unexpected ")
	switch e.Axis {
	case AxisClass:
		s.WriteString("class ")
		s.WriteString(e.Header.Tag.Class.String())
	case AxisConstruction:
		if e.Header.Constructed {
			s.WriteString("constructed")
		} else {
			s.WriteString("primitive")
		}
		s.WriteString(" encoding")
	default:
		s.WriteString("tag ")
		s.WriteString(e.Header.Tag.String())
	}
	return s.String()
}

// A StructuralError suggests that the DER data is well-formed, but does not
// match the ASN.1 definition of the structure being decoded. Type names the
// structure and Field the offending component (empty for the structure
// itself).
type StructuralError struct {
	Type  string
	Field string
	Tag   asn1.Tag
	Err   error
}

func (e *StructuralError) Error() string {
	var s strings.Builder
	s.WriteString("crldp: structural error decoding ")
	s.WriteString(e.Type)
	if e.Field != "" {
		s.WriteByte('.')
		s.WriteString(e.Field)
		s.WriteByte(' ')
		s.WriteString(e.Tag.String())
	}
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
