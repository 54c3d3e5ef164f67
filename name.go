// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crldp

import (
	"codello.dev/crldp/asn1"
	"codello.dev/crldp/der"
)

// CHOICE alternatives of DistributionPointName.
const (
	TagFullName                uint = 0
	TagNameRelativeToCRLIssuer uint = 1
)

// DistributionPointName holds a DistributionPointName CHOICE without resolving
// it. The value is the element the name was decoded from, i.e. the
// context-specific [0] field of the enclosing structure.
type DistributionPointName struct {
	e der.Element
}

// NewDistributionPointName wraps e.
func NewDistributionPointName(e der.Element) DistributionPointName {
	return DistributionPointName{e: e}
}

// ParseDistributionPointName returns e as a DistributionPointName. It never
// fails; the CHOICE is resolved by the consumer.
func ParseDistributionPointName(e der.Element) (DistributionPointName, error) {
	return DistributionPointName{e: e}, nil
}

// Element returns the element n was created from.
func (n DistributionPointName) Element() der.Element {
	return n.e
}

// Equal reports whether n and other hold equal elements.
func (n DistributionPointName) Equal(other DistributionPointName) bool {
	return n.e.Equal(other.e)
}

// choice returns the selected CHOICE alternative. Since CHOICE types are always
// tagged explicitly, the alternative is the single child of the field element.
func (n DistributionPointName) choice() (der.Element, bool) {
	children := n.e.Children()
	if len(children) != 1 || children[0].Tag().Class != asn1.ClassContextSpecific || !children[0].Constructed() {
		return der.Element{}, false
	}
	return children[0], true
}

// FullName returns the GeneralName elements of the fullName alternative. The
// second return value is false if n holds a different alternative or is
// malformed.
func (n DistributionPointName) FullName() ([]der.Element, bool) {
	c, ok := n.choice()
	if !ok || c.Tag().Number != TagFullName {
		return nil, false
	}
	return c.Children(), true
}

// RelativeName returns the AttributeTypeAndValue elements of the
// nameRelativeToCRLIssuer alternative. The second return value is false if n
// holds a different alternative or is malformed.
func (n DistributionPointName) RelativeName() ([]der.Element, bool) {
	c, ok := n.choice()
	if !ok || c.Tag().Number != TagNameRelativeToCRLIssuer {
		return nil, false
	}
	return c.Children(), true
}

// NewFullName returns a DistributionPointName selecting the fullName
// alternative with the given GeneralName elements, wrapped in the [0] field
// tag used by both DistributionPoint and IssuingDistributionPoint.
func NewFullName(names ...der.Element) DistributionPointName {
	return DistributionPointName{e: der.NewConstructed(asn1.ContextSpecific(0),
		der.NewConstructed(asn1.ContextSpecific(TagFullName), names...),
	)}
}
