// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package der implements a tagged-element view of the ASN.1 Distinguished
// Encoding Rules (DER) as specified in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// An [Element] is a fully decoded tag-length-value (TLV) construct. Primitive
// elements carry their content octets, constructed elements carry their child
// elements. Elements know nothing about the ASN.1 type they represent beyond
// their tag; typed accessors such as [Element.Bool] or [Element.BitString]
// interpret the content octets on request and work irrespective of the tag,
// which makes them usable for IMPLICIT tags.
//
// Parsing is strict: indefinite lengths, non-minimal length or tag encodings
// and end-of-contents markers are rejected. Elements are immutable. Parsing
// copies its input and accessors return copies, so Element values can be
// shared freely.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package der

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"codello.dev/crldp/asn1"
)

// MaxDepth is the maximum nesting depth of constructed elements accepted by
// [Parse]. X.509 structures stay far below this limit.
const MaxDepth = 64

var (
	errTrailingData = errors.New("trailing data after element")
	errTooDeep      = errors.New("elements nested too deeply")
)

// Element is a single DER-encoded data value. The zero Element is not valid;
// use [Parse] or one of the constructor functions.
type Element struct {
	tag         asn1.Tag
	constructed bool
	content     []byte    // primitive only
	children    []Element // constructed only
	length      int       // length of the content octets
}

// NewPrimitive returns a primitive element with the given tag and content
// octets. content is copied.
func NewPrimitive(tag asn1.Tag, content []byte) Element {
	return Element{
		tag:     tag,
		content: bytes.Clone(content),
		length:  len(content),
	}
}

// NewConstructed returns a constructed element with the given tag whose
// content consists of children, in order.
func NewConstructed(tag asn1.Tag, children ...Element) Element {
	e := Element{
		tag:         tag,
		constructed: true,
		children:    slices.Clone(children),
	}
	for _, c := range children {
		e.length += c.EncodedLen()
	}
	return e
}

// Sequence returns a constructed [UNIVERSAL 16] element.
func Sequence(children ...Element) Element {
	return NewConstructed(asn1.Universal(asn1.TagSequence), children...)
}

// Tag returns the tag of e.
func (e Element) Tag() asn1.Tag { return e.tag }

// Constructed reports whether e uses the constructed encoding.
func (e Element) Constructed() bool { return e.constructed }

// Header returns the TLV header of e.
func (e Element) Header() Header {
	return Header{Tag: e.tag, Constructed: e.constructed, Length: e.length}
}

// Content returns a copy of the content octets of e. For constructed elements
// this is the concatenated encoding of its children.
func (e Element) Content() []byte {
	if !e.constructed {
		return bytes.Clone(e.content)
	}
	b := make([]byte, 0, e.length)
	for _, c := range e.children {
		b = c.AppendBytes(b)
	}
	return b
}

// Children returns the child elements of a constructed element. For primitive
// elements and empty constructed elements the result is nil.
func (e Element) Children() []Element {
	return slices.Clone(e.children)
}

// WithTag returns a copy of e with its tag replaced. This corresponds to
// IMPLICIT tagging: the construction and the content octets are unchanged.
func (e Element) WithTag(tag asn1.Tag) Element {
	e.tag = tag
	return e
}

// EncodedLen returns the number of bytes of the DER encoding of e.
func (e Element) EncodedLen() int {
	return e.Header().encodedLen() + e.length
}

// Bytes returns the DER encoding of e.
func (e Element) Bytes() []byte {
	return e.AppendBytes(make([]byte, 0, e.EncodedLen()))
}

// AppendBytes appends the DER encoding of e to dst and returns the extended
// slice.
func (e Element) AppendBytes(dst []byte) []byte {
	dst = appendHeader(dst, e.Header())
	if !e.constructed {
		return append(dst, e.content...)
	}
	for _, c := range e.children {
		dst = c.AppendBytes(dst)
	}
	return dst
}

// Equal reports whether e and other have the same tag, construction and
// content.
func (e Element) Equal(other Element) bool {
	if e.tag != other.tag || e.constructed != other.constructed || e.length != other.length {
		return false
	}
	if !e.constructed {
		return bytes.Equal(e.content, other.content)
	}
	return slices.EqualFunc(e.children, other.children, Element.Equal)
}

// String returns a string representation of e. The content octets are only
// included if they are short enough.
func (e Element) String() string {
	if e.constructed {
		return fmt.Sprintf("Element{%s (constructed) {%d children}}", e.tag, len(e.children))
	}
	if len(e.content) > 24 {
		return fmt.Sprintf("Element{%s (primitive) {%d bytes}}", e.tag, len(e.content))
	}
	return fmt.Sprintf("Element{%s (primitive) {% X}}", e.tag, e.content)
}

//region Parsing

// Parse decodes the element at the start of b. It returns the element and the
// remaining bytes following it. If b does not start with a valid DER encoding,
// a [*SyntaxError] is returned.
func Parse(b []byte) (Element, []byte, error) {
	h, n, err := decodeHeader(b)
	if err == nil && h.Length > len(b)-n {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return Element{}, b, &SyntaxError{Err: err}
	}
	end := n + h.Length
	p := parser{buf: bytes.Clone(b[:end])}
	e, _, err := p.parse(0, len(p.buf), 0, Header{})
	if err != nil {
		return Element{}, b, err
	}
	return e, b[end:], nil
}

// Unmarshal decodes b, which must contain exactly one DER element.
func Unmarshal(b []byte) (Element, error) {
	e, rest, err := Parse(b)
	if err != nil {
		return Element{}, err
	}
	if len(rest) > 0 {
		return Element{}, &SyntaxError{Offset: int64(len(b) - len(rest)), Err: errTrailingData}
	}
	return e, nil
}

// parser decodes a private copy of the input. Content octets of primitive
// elements are sub-slices of buf.
type parser struct {
	buf []byte
}

// parse decodes the element starting at offset off and returns it together
// with the offset of the following element. The element must end before end.
// parent is the header of the enclosing element (zero at the top level).
func (p *parser) parse(off, end, depth int, parent Header) (Element, int, error) {
	h, n, err := decodeHeader(p.buf[off:end])
	if err == nil && h.Length > end-off-n {
		err = errExceedsParent
		if parent == (Header{}) {
			err = io.ErrUnexpectedEOF
		}
	}
	if err != nil {
		return Element{}, off, &SyntaxError{Offset: int64(off), Header: parent, Err: err}
	}
	start := off + n
	next := start + h.Length

	if !h.Constructed {
		return Element{tag: h.Tag, content: p.buf[start:next:next], length: h.Length}, next, nil
	}
	if depth >= MaxDepth {
		return Element{}, off, &SyntaxError{Offset: int64(off), Header: parent, Err: errTooDeep}
	}
	e := Element{tag: h.Tag, constructed: true, length: h.Length}
	for pos := start; pos < next; {
		var c Element
		c, pos, err = p.parse(pos, next, depth+1, h)
		if err != nil {
			return Element{}, off, err
		}
		e.children = append(e.children, c)
	}
	return e, next, nil
}

//endregion
