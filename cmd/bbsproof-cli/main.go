/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is bbsproof-cli, a command line tool to issue BBS+ signatures and to derive and verify
// selective disclosure proofs of them.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-bbsproof-go/cmd/bbsproof-cli/bbscmd"
	"github.com/hyperledger/aries-bbsproof-go/pkg/common/log"
	"github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

func main() {
	rootCmd := &cobra.Command{
		Use: "bbsproof-cli",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("aries-framework/bbsproof-cli")

	rootCmd.AddCommand(bbscmd.Cmds(bbsproof.New())...)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run bbsproof-cli: %s", err)
	}
}
