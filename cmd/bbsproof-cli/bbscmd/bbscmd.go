/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbscmd builds the commands of bbsproof-cli.
package bbscmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

// Cmds returns all bbsproof-cli commands operating on bbs.
func Cmds(bbs *bbsproof.BBSProof) []*cobra.Command {
	return []*cobra.Command{
		keygenCmd(),
		signCmd(bbs),
		verifyCmd(bbs),
		deriveProofCmd(bbs),
		verifyProofCmd(bbs),
		demoCmd(),
	}
}

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a BBS+ key pair",
		Long:  `Generate a BBS+ key pair over BLS12-381, optionally from a seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			seedHex, err := getUserSetVar(cmd, seedFlagName, seedEnvKey, true)
			if err != nil {
				return err
			}

			var seed []byte

			if seedHex != "" {
				seed, err = hex.DecodeString(seedHex)
				if err != nil {
					return errors.Wrap(err, "decode seed")
				}
			}

			pubKey, privKey, err := bbsproof.GenerateKeyPair(sha256.New, seed)
			if err != nil {
				return errors.Wrap(err, "generate key pair")
			}

			privKeyBytes, err := privKey.Marshal()
			if err != nil {
				return errors.Wrap(err, "marshal private key")
			}

			pubKeyBytes, err := pubKey.Marshal()
			if err != nil {
				return errors.Wrap(err, "marshal public key")
			}

			logger.Debugf("generated key pair")

			return writeJSON(cmd.OutOrStdout(), &keyPairDocument{
				PrivateKey: base58.Encode(privKeyBytes),
				PublicKey:  base58.Encode(pubKeyBytes),
			})
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(seedFlagName, "", "", seedFlagUsage)

	return cmd
}

func signCmd(bbs *bbsproof.BBSProof) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign messages",
		Long:  `Sign an ordered list of messages with a BBS+ private key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			privKeyValue, err := getUserSetVar(cmd, privateKeyFlagName, privateKeyEnvKey, false)
			if err != nil {
				return err
			}

			privKey, err := decodeKey(privKeyValue, privateKeyFlagName)
			if err != nil {
				return err
			}

			messages, err := messagesFromFlags(cmd)
			if err != nil {
				return err
			}

			signature, err := bbs.Sign(messages, privKey)
			if err != nil {
				return errors.Wrap(err, "sign")
			}

			encoded, err := encodeMultibase(signature)
			if err != nil {
				return errors.Wrap(err, "encode signature")
			}

			logger.Debugf("signed %d messages", len(messages))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)

			return err
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(privateKeyFlagName, privateKeyFlagShorthand, "", privateKeyFlagUsage)
	cmd.Flags().StringP(messagesFileFlagName, messagesFileFlagShorthand, "", messagesFileFlagUsage)

	return cmd
}

func verifyCmd(bbs *bbsproof.BBSProof) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		Long:  `Verify a BBS+ signature over an ordered list of messages`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			pubKey, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}

			messages, err := messagesFromFlags(cmd)
			if err != nil {
				return err
			}

			signature, err := signatureFromFlags(cmd)
			if err != nil {
				return err
			}

			err = bbs.Verify(messages, signature, pubKey)
			if err != nil {
				return errors.Wrap(err, "verify signature")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "signature is valid")

			return err
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(publicKeyFlagName, publicKeyFlagShorthand, "", publicKeyFlagUsage)
	cmd.Flags().StringP(messagesFileFlagName, messagesFileFlagShorthand, "", messagesFileFlagUsage)
	cmd.Flags().StringP(signatureFlagName, signatureFlagShorthand, "", signatureFlagUsage)

	return cmd
}

func deriveProofCmd(bbs *bbsproof.BBSProof) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-proof",
		Short: "Derive a selective disclosure proof",
		Long:  `Derive a zero-knowledge proof of a BBS+ signature that discloses the chosen messages only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			pubKey, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}

			messages, err := messagesFromFlags(cmd)
			if err != nil {
				return err
			}

			signature, err := signatureFromFlags(cmd)
			if err != nil {
				return err
			}

			revealValues, err := getUserSetVars(cmd, revealFlagName, revealEnvKey, true)
			if err != nil {
				return err
			}

			revealed, err := parseIndexes(revealValues)
			if err != nil {
				return err
			}

			slices.Sort(revealed)
			revealed = slices.Compact(revealed)

			nonce, err := getUserSetVar(cmd, nonceFlagName, nonceEnvKey, true)
			if err != nil {
				return err
			}

			if nonce == "" {
				nonce = uuid.New().String()
			}

			proof, err := bbs.DeriveProof(messages, signature, []byte(nonce), pubKey, revealed)
			if err != nil {
				return errors.Wrap(err, "derive proof")
			}

			encoded, err := encodeMultibase(proof)
			if err != nil {
				return errors.Wrap(err, "encode proof")
			}

			doc := &proofDocument{
				Proof:            encoded,
				Nonce:            nonce,
				RevealedMessages: make([]string, len(revealed)),
			}

			for i, ind := range revealed {
				doc.RevealedMessages[i] = string(messages[ind])
			}

			logger.Debugf("derived proof disclosing %d of %d messages", len(revealed), len(messages))

			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(publicKeyFlagName, publicKeyFlagShorthand, "", publicKeyFlagUsage)
	cmd.Flags().StringP(messagesFileFlagName, messagesFileFlagShorthand, "", messagesFileFlagUsage)
	cmd.Flags().StringP(signatureFlagName, signatureFlagShorthand, "", signatureFlagUsage)
	cmd.Flags().StringSliceP(revealFlagName, revealFlagShorthand, []string{}, revealFlagUsage)
	cmd.Flags().StringP(nonceFlagName, "", "", nonceFlagUsage)

	return cmd
}

func verifyProofCmd(bbs *bbsproof.BBSProof) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-proof",
		Short: "Verify a selective disclosure proof",
		Long:  `Verify a zero-knowledge proof of a BBS+ signature against its disclosed messages`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			pubKey, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}

			proofFile, err := getUserSetVar(cmd, proofFileFlagName, proofFileEnvKey, false)
			if err != nil {
				return err
			}

			var doc proofDocument

			err = readJSON(proofFile, &doc)
			if err != nil {
				return errors.Wrap(err, "read proof document")
			}

			proof, err := decodeMultibase(doc.Proof, "proof")
			if err != nil {
				return err
			}

			err = bbs.VerifyProof(toBytes(doc.RevealedMessages), proof, []byte(doc.Nonce), pubKey)
			if err != nil {
				return errors.Wrap(err, "verify proof")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "proof is valid")

			return err
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(publicKeyFlagName, publicKeyFlagShorthand, "", publicKeyFlagUsage)
	cmd.Flags().StringP(proofFileFlagName, "", "", proofFileFlagUsage)

	return cmd
}

func publicKeyFromFlags(cmd *cobra.Command) ([]byte, error) {
	value, err := getUserSetVar(cmd, publicKeyFlagName, publicKeyEnvKey, false)
	if err != nil {
		return nil, err
	}

	return decodeKey(value, publicKeyFlagName)
}

func messagesFromFlags(cmd *cobra.Command) ([][]byte, error) {
	path, err := getUserSetVar(cmd, messagesFileFlagName, messagesFileEnvKey, false)
	if err != nil {
		return nil, err
	}

	return readMessages(path)
}

func signatureFromFlags(cmd *cobra.Command) ([]byte, error) {
	value, err := getUserSetVar(cmd, signatureFlagName, signatureEnvKey, false)
	if err != nil {
		return nil, err
	}

	return decodeMultibase(value, signatureFlagName)
}
