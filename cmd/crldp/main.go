// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command crldp prints the CRL distribution point extensions of certificates
// and CRLs.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()
	if err := newRootCommand(log).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCommand(log *logrus.Logger) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "crldp",
		Short:         "Inspect CRL distribution point extensions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", `Set the logging level ("debug"|"info"|"warn"|"error"|"fatal")`)
	cmd.AddCommand(newInspectCommand(log))
	return cmd
}
