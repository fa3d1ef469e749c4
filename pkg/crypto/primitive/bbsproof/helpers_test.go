/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof_test

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"testing"

	ml "github.com/IBM/mathlib"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	bbs "github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

// nolint:gochecknoglobals
var curve = ml.Curves[ml.BLS12_381_BBS]

type signedMessages struct {
	pubKey    *bbs.PublicKey
	privKey   *bbs.PrivateKey
	gens      *bbs.Generators
	messages  []*bbs.SignatureMessage
	signature *bbs.Signature
}

func generateKeyPairRandom() (*bbs.PublicKey, *bbs.PrivateKey, error) {
	seed := make([]byte, 32)

	_, err := rand.Read(seed)
	if err != nil {
		panic(err)
	}

	return bbs.GenerateKeyPair(sha256.New, seed)
}

func signRandomMessages(t *testing.T, messagesCount int) *signedMessages {
	t.Helper()

	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	gens, err := pubKey.ToGenerators(messagesCount)
	require.NoError(t, err)

	messages := make([]*bbs.SignatureMessage, messagesCount)
	for i := range messages {
		messages[i] = bbs.NewSignatureMessage(curve.NewRandomZr(rand.Reader))
	}

	signature, err := bbs.Sign(rand.Reader, privKey, messages, gens)
	require.NoError(t, err)

	return &signedMessages{
		pubKey:    pubKey,
		privKey:   privKey,
		gens:      gens,
		messages:  messages,
		signature: signature,
	}
}

func (s *signedMessages) prove(t *testing.T, revealed []int, nonce []byte) (*bbs.Proof, *bbs.PublicParameters,
	[]*bbs.SignatureMessage) {
	t.Helper()

	proof, err := bbs.CreateProof(rand.Reader, s.signature, s.messages, revealed, s.pubKey, s.gens, nonce)
	require.NoError(t, err)

	params, err := s.gens.Partition(revealed)
	require.NoError(t, err)

	disclosed := make([]*bbs.SignatureMessage, len(revealed))
	for i, ind := range revealed {
		disclosed[i] = s.messages[ind]
	}

	return proof, params, disclosed
}

// seededReader returns a deterministic randomness source.
func seededReader(seed string) io.Reader {
	shake := sha3.NewShake256()
	_, _ = shake.Write([]byte(seed))

	return shake
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}

	return len(p), nil
}

func incremented(fr *ml.Zr) *ml.Zr {
	return curve.ModAdd(fr, curve.NewZrFromInt(1), curve.GroupOrder)
}

func shifted(g *ml.G1) *ml.G1 {
	res := g.Copy()
	res.Add(curve.GenG1)

	return res
}

func cloneProof(p *bbs.Proof) *bbs.Proof {
	c := *p
	c.HiddenHat = append([]*ml.Zr(nil), p.HiddenHat...)

	return &c
}
