/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbscmd

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a two message selective disclosure round trip",
		Long: `Sign two messages, prove knowledge of the signature disclosing the first one, ` +
			`verify the proof and verify it again with a corrupted challenge`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}

			return runDemo(cmd.OutOrStdout(), rand.Reader)
		},
	}

	createLogLevelFlag(cmd)

	return cmd
}

const demoMessageSize = 32

func runDemo(w io.Writer, rng io.Reader) error {
	curve := ml.Curves[ml.BLS12_381_BBS]

	pubKey, privKey, err := bbsproof.GenerateKeyPairFromReader(rng, sha256.New)
	if err != nil {
		return errors.Wrap(err, "generate key pair")
	}

	gens, err := pubKey.ToGenerators(2)
	if err != nil {
		return errors.Wrap(err, "derive generators")
	}

	messages := make([]*bbsproof.SignatureMessage, 2)

	for i := range messages {
		msg := make([]byte, demoMessageSize)

		if _, err = io.ReadFull(rng, msg); err != nil {
			return errors.Wrap(err, "read message")
		}

		messages[i] = bbsproof.ParseSignatureMessage(msg)
	}

	signature, err := bbsproof.Sign(rng, privKey, messages, gens)
	if err != nil {
		return errors.Wrap(err, "sign")
	}

	nonce := []byte(uuid.New().String())
	revealed := []int{0}

	proof, err := bbsproof.CreateProof(rng, signature, messages, revealed, pubKey, gens, nonce)
	if err != nil {
		return errors.Wrap(err, "create proof")
	}

	params, err := gens.Partition(revealed)
	if err != nil {
		return errors.Wrap(err, "partition generators")
	}

	disclosed := messages[:1]
	valid := bbsproof.VerifyProof(pubKey, proof, disclosed, params, nonce)

	corrupted := *proof
	corrupted.C = curve.ModAdd(proof.C, curve.NewZrFromInt(1), curve.GroupOrder)
	corruptedValid := bbsproof.VerifyProof(pubKey, &corrupted, disclosed, params, nonce)

	_, err = fmt.Fprintf(w, "revealed: %d, hidden: %d\nproof verified: %t\ncorrupted challenge verified: %t\n",
		len(params.RevealedGenerators), len(params.HiddenGenerators), valid, corruptedValid)
	if err != nil {
		return err
	}

	if !valid || corruptedValid {
		return errors.New("demo round trip gave an unexpected result")
	}

	return nil
}
