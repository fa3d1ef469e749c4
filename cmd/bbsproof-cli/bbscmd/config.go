/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbscmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-bbsproof-go/pkg/common/log"
)

const (
	// log level.
	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "BBSPROOF_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	// key generation seed flag.
	seedFlagName  = "seed"
	seedEnvKey    = "BBSPROOF_SEED"
	seedFlagUsage = "Hex encoded 32 bytes seed of the key pair. A random seed is used if not set." +
		" Alternatively, this can be set with the following environment variable: " + seedEnvKey

	// private key flag.
	privateKeyFlagName      = "private-key"
	privateKeyEnvKey        = "BBSPROOF_PRIVATE_KEY" // nolint:gosec
	privateKeyFlagShorthand = "k"
	privateKeyFlagUsage     = "Base58 encoded BBS+ private key." +
		" Alternatively, this can be set with the following environment variable: " + privateKeyEnvKey

	// public key flag.
	publicKeyFlagName      = "public-key"
	publicKeyEnvKey        = "BBSPROOF_PUBLIC_KEY"
	publicKeyFlagShorthand = "p"
	publicKeyFlagUsage     = "Base58 encoded BBS+ public key." +
		" Alternatively, this can be set with the following environment variable: " + publicKeyEnvKey

	// messages file flag.
	messagesFileFlagName      = "messages-file"
	messagesFileEnvKey        = "BBSPROOF_MESSAGES_FILE"
	messagesFileFlagShorthand = "m"
	messagesFileFlagUsage     = "Path to a JSON array with the signed messages, in signing order." +
		" Alternatively, this can be set with the following environment variable: " + messagesFileEnvKey

	// signature flag.
	signatureFlagName      = "signature"
	signatureEnvKey        = "BBSPROOF_SIGNATURE"
	signatureFlagShorthand = "s"
	signatureFlagUsage     = "Multibase encoded BBS+ signature." +
		" Alternatively, this can be set with the following environment variable: " + signatureEnvKey

	// revealed indexes flag.
	revealFlagName      = "reveal"
	revealEnvKey        = "BBSPROOF_REVEAL"
	revealFlagShorthand = "r"
	revealFlagUsage     = "Zero based indexes of the disclosed messages." +
		" This flag can be repeated or take a comma separated list. Nothing is disclosed if not set." +
		" Alternatively, this can be set with the following environment variable (in CSV format): " + revealEnvKey

	// nonce flag.
	nonceFlagName  = "nonce"
	nonceEnvKey    = "BBSPROOF_NONCE"
	nonceFlagUsage = "Presentation nonce the proof is bound to. A random UUID is used if not set." +
		" Alternatively, this can be set with the following environment variable: " + nonceEnvKey

	// proof file flag.
	proofFileFlagName  = "proof-file"
	proofFileEnvKey    = "BBSPROOF_PROOF_FILE"
	proofFileFlagUsage = "Path to a proof document produced by derive-proof." +
		" Alternatively, this can be set with the following environment variable: " + proofFileEnvKey
)

// nolint:gochecknoglobals
var logger = log.New("aries-framework/bbsproof-cli")

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func getUserSetVars(cmd *cobra.Command, flagName, envKey string, isOptional bool) ([]string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetStringSlice(flagName)
		if err != nil {
			return nil, fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	var values []string

	if isSet && value != "" {
		values = strings.Split(value, ",")
	}

	if isOptional || isSet {
		return values, nil
	}

	return nil, fmt.Errorf(" %s not set. "+
		"It must be set via either command line or environment variable", flagName)
}

func createLogLevelFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
}

func setLogLevel(cmd *cobra.Command) error {
	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return err
	}

	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Debugf("logger level set to %s", logLevel)
	}

	return nil
}
