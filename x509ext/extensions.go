// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x509ext

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"

	"codello.dev/crldp"
)

// Extensions holds the distribution point related extensions of a
// certificate or CRL. Absent extensions are nil.
type Extensions struct {
	CRLDistributionPoints    []crldp.DistributionPoint
	FreshestCRL              []crldp.DistributionPoint
	IssuingDistributionPoint *crldp.IssuingDistPointSyntax
}

// Empty reports whether none of the extensions is present.
func (x Extensions) Empty() bool {
	return x.CRLDistributionPoints == nil && x.FreshestCRL == nil && x.IssuingDistributionPoint == nil
}

// Parse decodes the distribution point related extensions in exts. Other
// extensions are ignored. An extension that appears more than once is an
// error.
func Parse(exts []pkix.Extension) (Extensions, error) {
	var x Extensions
	for _, ext := range exts {
		var err error
		switch {
		case ext.Id.Equal(OIDCRLDistributionPoints):
			if x.CRLDistributionPoints != nil {
				return Extensions{}, errors.New("multiple CRLDistributionPoints extensions")
			}
			if x.CRLDistributionPoints, err = ParseCRLDistributionPoints(ext.Value); err != nil {
				return Extensions{}, fmt.Errorf("parsing CRLDistributionPoints extension: %w", err)
			}
		case ext.Id.Equal(OIDFreshestCRL):
			if x.FreshestCRL != nil {
				return Extensions{}, errors.New("multiple FreshestCRL extensions")
			}
			if x.FreshestCRL, err = ParseCRLDistributionPoints(ext.Value); err != nil {
				return Extensions{}, fmt.Errorf("parsing FreshestCRL extension: %w", err)
			}
		case ext.Id.Equal(OIDIssuingDistributionPoint):
			if x.IssuingDistributionPoint != nil {
				return Extensions{}, errors.New("multiple IssuingDistributionPoint extensions")
			}
			idp, err := ParseIssuingDistributionPoint(ext.Value)
			if err != nil {
				return Extensions{}, fmt.Errorf("parsing IssuingDistributionPoint extension: %w", err)
			}
			x.IssuingDistributionPoint = &idp
		}
	}
	return x, nil
}

// FromCertificate decodes the distribution point extensions of c.
func FromCertificate(c *x509.Certificate) (Extensions, error) {
	return Parse(c.Extensions)
}

// FromRevocationList decodes the distribution point extensions of rl. See
// [ParseIssuingDistributionPoint] for the accepted onlySomeReasons encoding.
func FromRevocationList(rl *x509.RevocationList) (Extensions, error) {
	return Parse(rl.Extensions)
}

// NewCRLDistributionPointsExtension returns a non-critical
// CRLDistributionPoints extension holding dps.
func NewCRLDistributionPointsExtension(dps ...crldp.DistributionPoint) (pkix.Extension, error) {
	value, err := MarshalCRLDistributionPoints(dps)
	if err != nil {
		return pkix.Extension{}, err
	}
	return pkix.Extension{Id: OIDCRLDistributionPoints, Value: value}, nil
}

// NewFreshestCRLExtension returns a FreshestCRL extension holding dps. The
// extension is always non-critical.
func NewFreshestCRLExtension(dps ...crldp.DistributionPoint) (pkix.Extension, error) {
	value, err := MarshalCRLDistributionPoints(dps)
	if err != nil {
		return pkix.Extension{}, err
	}
	return pkix.Extension{Id: OIDFreshestCRL, Value: value}, nil
}

// NewIssuingDistributionPointExtension returns a critical
// IssuingDistributionPoint extension holding s.
func NewIssuingDistributionPointExtension(s crldp.IssuingDistPointSyntax) pkix.Extension {
	return pkix.Extension{
		Id:       OIDIssuingDistributionPoint,
		Value:    s.Element().Bytes(),
		Critical: true,
	}
}
