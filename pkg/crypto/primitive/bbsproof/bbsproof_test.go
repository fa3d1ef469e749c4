/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bbs "github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

func TestBBSProof_SignVerify(t *testing.T) {
	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)

	messages := [][]byte{[]byte("message1"), []byte("message2"), []byte("message3")}

	bls := bbs.New()

	signatureBytes, err := bls.Sign(messages, privKeyBytes)
	require.NoError(t, err)
	require.Len(t, signatureBytes, 112)

	require.NoError(t, bls.Verify(messages, signatureBytes, pubKeyBytes))

	t.Run("other messages", func(t *testing.T) {
		err = bls.Verify([][]byte{[]byte("message1"), []byte("message2"), []byte("other")},
			signatureBytes, pubKeyBytes)
		require.EqualError(t, err, "invalid BLS12-381 signature")
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err = bls.Sign(nil, privKeyBytes)
		require.EqualError(t, err, "messages are not defined")

		_, err = bls.Sign(messages, privKeyBytes[1:])
		require.EqualError(t, err, "unmarshal private key: invalid size of private key")

		err = bls.Verify(messages, signatureBytes[1:], pubKeyBytes)
		require.EqualError(t, err, "parse signature: invalid size of signature")

		err = bls.Verify(messages, signatureBytes, pubKeyBytes[1:])
		require.EqualError(t, err, "parse public key: invalid size of public key")
	})
}

func TestBBSProof_WithRandReader(t *testing.T) {
	_, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	messages := [][]byte{[]byte("message1")}

	sig1, err := bbs.New(bbs.WithRandReader(seededReader("seed"))).SignWithKey(messages, privKey)
	require.NoError(t, err)

	sig2, err := bbs.New(bbs.WithRandReader(seededReader("seed"))).SignWithKey(messages, privKey)
	require.NoError(t, err)

	require.Equal(t, sig1, sig2)
}

func TestBBSProof_DeriveProof(t *testing.T) {
	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)

	messages := [][]byte{
		[]byte("message1"),
		[]byte("message2"),
		[]byte("message3"),
		[]byte("message4"),
	}

	bls := bbs.New(bbs.WithGeneratorsCacheSize(4))

	signatureBytes, err := bls.SignWithKey(messages, privKey)
	require.NoError(t, err)

	nonce := []byte("nonce")
	revealedIndexes := []int{2, 0}
	revealedMessages := [][]byte{messages[0], messages[2]}

	proofBytes, err := bls.DeriveProof(messages, signatureBytes, nonce, pubKeyBytes, revealedIndexes)
	require.NoError(t, err)
	require.NotEmpty(t, proofBytes)

	require.NoError(t, bls.VerifyProof(revealedMessages, proofBytes, nonce, pubKeyBytes))

	t.Run("another verifier instance", func(t *testing.T) {
		require.NoError(t, bbs.New().VerifyProof(revealedMessages, proofBytes, nonce, pubKeyBytes))
	})

	t.Run("wrong nonce", func(t *testing.T) {
		err = bls.VerifyProof(revealedMessages, proofBytes, []byte("other"), pubKeyBytes)
		require.ErrorIs(t, err, bbs.ErrVerificationFailed)
	})

	t.Run("wrong revealed messages", func(t *testing.T) {
		err = bls.VerifyProof([][]byte{messages[0], messages[1]}, proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs.ErrVerificationFailed)

		err = bls.VerifyProof([][]byte{messages[0]}, proofBytes, nonce, pubKeyBytes)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})

	t.Run("truncated proof", func(t *testing.T) {
		err = bls.VerifyProof(revealedMessages, proofBytes[:len(proofBytes)-1], nonce, pubKeyBytes)
		require.EqualError(t, err, "parse signature proof: invalid size of signature proof")

		err = bls.VerifyProof(revealedMessages, proofBytes[:1], nonce, pubKeyBytes)
		require.EqualError(t, err, "parse signature proof: invalid size of PoK payload")
	})

	t.Run("invalid revealed index", func(t *testing.T) {
		_, err = bls.DeriveProof(messages, signatureBytes, nonce, pubKeyBytes, []int{4})
		require.EqualError(t, err, "invalid revealed index: requested index 4 is larger than 4 messages count")
	})

	t.Run("signature over other messages", func(t *testing.T) {
		_, err = bls.DeriveProof(messages[:3], signatureBytes, nonce, pubKeyBytes, []int{0})
		require.Error(t, err)
	})
}
