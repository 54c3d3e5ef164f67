// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"codello.dev/crldp"
	"codello.dev/crldp/x509ext"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type inspectOptions struct {
	output string
	strict bool
}

func newInspectCommand(log *logrus.Logger) *cobra.Command {
	var opts inspectOptions
	cmd := &cobra.Command{
		Use:   "inspect [OPTIONS] FILE...",
		Short: "Print the distribution point extensions of certificates and CRLs",
		Long: `Print the CRLDistributionPoints, FreshestCRL and IssuingDistributionPoint
extensions of each certificate and CRL in the given files. Files may contain
PEM blocks of type CERTIFICATE or X509 CRL, or a single DER encoded object.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), log, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", outputText, `Output format ("text"|"json")`)
	flags.BoolVar(&opts.strict, "strict", false, "Exit with an error if any file or extension cannot be decoded")
	return cmd
}

// object is a certificate or CRL read from a file.
type object struct {
	kind    string
	subject string
	exts    []pkix.Extension
}

type report struct {
	File                     string                    `json:"file"`
	Kind                     string                    `json:"kind"`
	Subject                  string                    `json:"subject"`
	CRLDistributionPoints    []distributionPoint       `json:"crlDistributionPoints,omitempty"`
	FreshestCRL              []distributionPoint       `json:"freshestCRL,omitempty"`
	IssuingDistributionPoint *issuingDistributionPoint `json:"issuingDistributionPoint,omitempty"`
	Error                    string                    `json:"error,omitempty"`
}

type pointName struct {
	URIs         []string `json:"uris,omitempty"`
	RelativeName bool     `json:"relativeName,omitempty"`
}

type distributionPoint struct {
	Name      *pointName `json:"name,omitempty"`
	Reasons   string     `json:"reasons,omitempty"`
	CRLIssuer int        `json:"crlIssuerNames,omitempty"`
}

type issuingDistributionPoint struct {
	Name                       *pointName `json:"name,omitempty"`
	OnlyContainsUserCerts      bool       `json:"onlyContainsUserCerts,omitempty"`
	OnlyContainsCACerts        bool       `json:"onlyContainsCACerts,omitempty"`
	OnlySomeReasons            string     `json:"onlySomeReasons,omitempty"`
	IndirectCRL                bool       `json:"indirectCRL,omitempty"`
	OnlyContainsAttributeCerts bool       `json:"onlyContainsAttributeCerts,omitempty"`
}

func runInspect(out io.Writer, log *logrus.Logger, opts inspectOptions, files []string) error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf("invalid output format %q", opts.output)
	}
	var (
		reports []report
		failed  int
	)
	for _, file := range files {
		flog := log.WithField("file", file)
		objs, err := readFile(file, flog)
		if err != nil {
			failed++
			flog.WithError(err).Error("cannot read file")
			continue
		}
		if len(objs) == 0 {
			flog.Warn("no certificate or CRL found")
		}
		for i, obj := range objs {
			r := newReport(file, obj)
			if r.Error != "" {
				failed++
				flog.WithFields(logrus.Fields{"block": i, "kind": obj.kind}).Warn(r.Error)
			}
			reports = append(reports, r)
		}
	}

	var err error
	if opts.output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(reports)
	} else {
		err = writeText(out, reports)
	}
	if err != nil {
		return err
	}
	if opts.strict && failed > 0 {
		return fmt.Errorf("%d file(s) or object(s) could not be inspected", failed)
	}
	return nil
}

// readFile returns the certificates and CRLs in file. PEM blocks of other
// types are skipped.
func readFile(file string, log *logrus.Entry) ([]object, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var (
		objs  []object
		found bool
	)
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		found = true
		var obj object
		switch block.Type {
		case "CERTIFICATE":
			obj, err = parseCertificate(block.Bytes)
		case "X509 CRL":
			obj, err = parseRevocationList(block.Bytes)
		default:
			log.WithField("type", block.Type).Debug("skipping PEM block")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("PEM block %q: %w", block.Type, err)
		}
		objs = append(objs, obj)
	}
	if found {
		return objs, nil
	}

	obj, certErr := parseCertificate(data)
	if certErr == nil {
		return []object{obj}, nil
	}
	obj, crlErr := parseRevocationList(data)
	if crlErr == nil {
		return []object{obj}, nil
	}
	return nil, errors.Join(certErr, crlErr)
}

func parseCertificate(der []byte) (object, error) {
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return object{}, err
	}
	return object{kind: "certificate", subject: c.Subject.String(), exts: c.Extensions}, nil
}

func parseRevocationList(der []byte) (object, error) {
	rl, err := x509.ParseRevocationList(der)
	if err != nil {
		return object{}, err
	}
	return object{kind: "crl", subject: rl.Issuer.String(), exts: rl.Extensions}, nil
}

func newReport(file string, obj object) report {
	r := report{File: file, Kind: obj.kind, Subject: obj.subject}
	x, err := x509ext.Parse(obj.exts)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.CRLDistributionPoints = newDistributionPoints(x.CRLDistributionPoints)
	r.FreshestCRL = newDistributionPoints(x.FreshestCRL)
	if s := x.IssuingDistributionPoint; s != nil {
		r.IssuingDistributionPoint = &issuingDistributionPoint{
			Name:                       newPointName(s.DistributionPoint),
			OnlyContainsUserCerts:      s.OnlyContainsUserPublicKeyCerts,
			OnlyContainsCACerts:        s.OnlyContainsCACerts,
			OnlySomeReasons:            reasonsString(s.OnlySomeReasons),
			IndirectCRL:                s.IndirectCRL,
			OnlyContainsAttributeCerts: s.OnlyContainsAttributeCerts,
		}
	}
	return r
}

func newDistributionPoints(dps []crldp.DistributionPoint) []distributionPoint {
	var out []distributionPoint
	for _, dp := range dps {
		out = append(out, distributionPoint{
			Name:      newPointName(dp.DistributionPoint),
			Reasons:   reasonsString(dp.Reasons),
			CRLIssuer: len(dp.CRLIssuer),
		})
	}
	return out
}

func newPointName(n *crldp.DistributionPointName) *pointName {
	if n == nil {
		return nil
	}
	_, relative := n.RelativeName()
	return &pointName{URIs: x509ext.URIs(*n), RelativeName: relative}
}

func reasonsString(f *crldp.ReasonFlags) string {
	if f == nil {
		return ""
	}
	return f.String()
}

func writeText(w io.Writer, reports []report) error {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s: %s %s\n", r.File, r.Kind, r.Subject)
		if r.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", r.Error)
			continue
		}
		writePoints(&b, "CRLDistributionPoints", r.CRLDistributionPoints)
		writePoints(&b, "FreshestCRL", r.FreshestCRL)
		if s := r.IssuingDistributionPoint; s != nil {
			b.WriteString("  IssuingDistributionPoint:\n")
			writeName(&b, "    ", s.Name)
			writeFlag(&b, "onlyContainsUserCerts", s.OnlyContainsUserCerts)
			writeFlag(&b, "onlyContainsCACerts", s.OnlyContainsCACerts)
			if s.OnlySomeReasons != "" {
				fmt.Fprintf(&b, "    onlySomeReasons: %s\n", s.OnlySomeReasons)
			}
			writeFlag(&b, "indirectCRL", s.IndirectCRL)
			writeFlag(&b, "onlyContainsAttributeCerts", s.OnlyContainsAttributeCerts)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePoints(b *strings.Builder, title string, dps []distributionPoint) {
	if len(dps) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", title)
	for i, dp := range dps {
		fmt.Fprintf(b, "    [%d]\n", i)
		writeName(b, "      ", dp.Name)
		if dp.Reasons != "" {
			fmt.Fprintf(b, "      reasons: %s\n", dp.Reasons)
		}
		if dp.CRLIssuer > 0 {
			fmt.Fprintf(b, "      cRLIssuer: %d name(s)\n", dp.CRLIssuer)
		}
	}
}

func writeName(b *strings.Builder, indent string, n *pointName) {
	if n == nil {
		return
	}
	for _, u := range n.URIs {
		fmt.Fprintf(b, "%suri: %s\n", indent, u)
	}
	if n.RelativeName {
		fmt.Fprintf(b, "%snameRelativeToCRLIssuer\n", indent)
	}
}

func writeFlag(b *strings.Builder, name string, v bool) {
	if v {
		fmt.Fprintf(b, "    %s: true\n", name)
	}
}
