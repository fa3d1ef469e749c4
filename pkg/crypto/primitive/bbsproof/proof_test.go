/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof_test

import (
	"crypto/rand"
	"fmt"
	"io"
	"testing"

	ml "github.com/IBM/mathlib"
	"github.com/stretchr/testify/require"

	bbs "github.com/hyperledger/aries-bbsproof-go/pkg/crypto/primitive/bbsproof"
)

func TestProof_Completeness(t *testing.T) {
	const messagesCount = 4

	s := signRandomMessages(t, messagesCount)
	nonce := []byte("nonce")

	for mask := 0; mask < 1<<messagesCount; mask++ {
		revealed := make([]int, 0, messagesCount)

		for i := 0; i < messagesCount; i++ {
			if mask&(1<<i) != 0 {
				revealed = append(revealed, i)
			}
		}

		t.Run(fmt.Sprintf("revealed %v", revealed), func(t *testing.T) {
			proof, params, disclosed := s.prove(t, revealed, nonce)

			require.Len(t, proof.HiddenHat, messagesCount-len(revealed))
			require.NoError(t, proof.Verify(s.pubKey, disclosed, params, nonce))
			require.True(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, nonce))
		})
	}
}

func TestProof_Soundness(t *testing.T) {
	s := signRandomMessages(t, 4)
	nonce := []byte("nonce")

	proof, params, disclosed := s.prove(t, []int{0, 2}, nonce)
	require.True(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, nonce))

	tampers := map[string]func(p *bbs.Proof){
		"A'":       func(p *bbs.Proof) { p.APrime = shifted(p.APrime) },
		"Abar":     func(p *bbs.Proof) { p.ABar = shifted(p.ABar) },
		"D":        func(p *bbs.Proof) { p.D = shifted(p.D) },
		"C1":       func(p *bbs.Proof) { p.C1 = shifted(p.C1) },
		"C2":       func(p *bbs.Proof) { p.C2 = shifted(p.C2) },
		"c":        func(p *bbs.Proof) { p.C = incremented(p.C) },
		"e^":       func(p *bbs.Proof) { p.EHat = incremented(p.EHat) },
		"r2^":      func(p *bbs.Proof) { p.R2Hat = incremented(p.R2Hat) },
		"r3^":      func(p *bbs.Proof) { p.R3Hat = incremented(p.R3Hat) },
		"s^":       func(p *bbs.Proof) { p.SHat = incremented(p.SHat) },
		"m^ first": func(p *bbs.Proof) { p.HiddenHat[0] = incremented(p.HiddenHat[0]) },
		"m^ last":  func(p *bbs.Proof) { p.HiddenHat[1] = incremented(p.HiddenHat[1]) },
	}

	for name, tamper := range tampers {
		tamper := tamper

		t.Run(name, func(t *testing.T) {
			tampered := cloneProof(proof)
			tamper(tampered)

			err := tampered.Verify(s.pubKey, disclosed, params, nonce)
			require.ErrorIs(t, err, bbs.ErrVerificationFailed)
			require.False(t, bbs.VerifyProof(s.pubKey, tampered, disclosed, params, nonce))
		})
	}

	t.Run("other public key", func(t *testing.T) {
		otherPubKey, _, err := generateKeyPairRandom()
		require.NoError(t, err)

		require.False(t, bbs.VerifyProof(otherPubKey, proof, disclosed, params, nonce))
	})
}

func TestProof_MessageBinding(t *testing.T) {
	s := signRandomMessages(t, 3)
	nonce := []byte("nonce")

	proof, params, disclosed := s.prove(t, []int{1}, nonce)

	other := []*bbs.SignatureMessage{bbs.ParseSignatureMessage([]byte("not signed"))}

	err := proof.Verify(s.pubKey, other, params, nonce)
	require.ErrorIs(t, err, bbs.ErrVerificationFailed)

	// disclosing the signed message at another index fails as well.
	swapped, err := s.gens.Partition([]int{0})
	require.NoError(t, err)
	require.False(t, bbs.VerifyProof(s.pubKey, proof, disclosed, swapped, nonce))
}

func TestProof_NonceBinding(t *testing.T) {
	s := signRandomMessages(t, 2)

	proof, params, disclosed := s.prove(t, []int{0}, []byte("nonce 1"))

	require.True(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, []byte("nonce 1")))
	require.False(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, []byte("nonce 2")))
	require.False(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, nil))
}

func TestProof_Malformed(t *testing.T) {
	s := signRandomMessages(t, 3)
	nonce := []byte("nonce")

	proof, params, disclosed := s.prove(t, []int{0}, nonce)

	t.Run("too many disclosed messages", func(t *testing.T) {
		err := proof.Verify(s.pubKey, append(disclosed, s.messages[1]), params, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})

	t.Run("missing disclosed message", func(t *testing.T) {
		err := proof.Verify(s.pubKey, nil, params, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})

	t.Run("hidden responses count mismatch", func(t *testing.T) {
		tampered := cloneProof(proof)
		tampered.HiddenHat = tampered.HiddenHat[1:]

		err := tampered.Verify(s.pubKey, disclosed, params, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})

	t.Run("parameters of another partition", func(t *testing.T) {
		otherParams, err := s.gens.Partition([]int{0, 1})
		require.NoError(t, err)

		err = proof.Verify(s.pubKey, []*bbs.SignatureMessage{s.messages[0], s.messages[1]}, otherParams, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})

	t.Run("missing fields", func(t *testing.T) {
		tampered := cloneProof(proof)
		tampered.D = nil

		err := tampered.Verify(s.pubKey, disclosed, params, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
		require.False(t, bbs.VerifyProof(s.pubKey, nil, disclosed, params, nonce))
		require.False(t, bbs.VerifyProof(nil, proof, disclosed, params, nonce))
		require.False(t, bbs.VerifyProof(s.pubKey, proof, disclosed, nil, nonce))
	})

	t.Run("A' is the identity", func(t *testing.T) {
		tampered := cloneProof(proof)
		tampered.APrime = curve.GenG1.Mul(curve.NewZrFromInt(0))

		err := tampered.Verify(s.pubKey, disclosed, params, nonce)
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})
}

// A signature over (m1, m2) is also a signature over (m1, m2, 0) once a third generator is appended,
// so a proof can hide the extra slot and still verify against the extended generators.
func TestProof_Extensibility(t *testing.T) {
	s := signRandomMessages(t, 2)
	nonce := []byte("nonce")

	proof, params, disclosed := s.prove(t, []int{0}, nonce)
	require.Len(t, proof.HiddenHat, 1)
	require.True(t, bbs.VerifyProof(s.pubKey, proof, disclosed, params, nonce))

	gens3, err := s.pubKey.ToGenerators(3)
	require.NoError(t, err)

	extended := &bbs.Generators{
		P1: s.gens.P1,
		P2: s.gens.P2,
		H0: s.gens.H0,
		H:  append(append([]*ml.G1(nil), s.gens.H...), gens3.H[2]),
	}

	messages := append(append([]*bbs.SignatureMessage(nil), s.messages...),
		bbs.NewSignatureMessage(curve.NewZrFromInt(0)))
	require.NoError(t, s.signature.Verify(messages, s.pubKey, extended))

	extendedProof, err := bbs.CreateProof(rand.Reader, s.signature, messages, []int{0}, s.pubKey, extended, nonce)
	require.NoError(t, err)
	require.Len(t, extendedProof.HiddenHat, 2)

	extendedParams, err := extended.Partition([]int{0})
	require.NoError(t, err)
	require.Len(t, extendedParams.RevealedGenerators, 1)
	require.Len(t, extendedParams.HiddenGenerators, 2)

	require.True(t, bbs.VerifyProof(s.pubKey, extendedProof, disclosed, extendedParams, nonce))

	// each proof is bound to its own generators.
	require.False(t, bbs.VerifyProof(s.pubKey, extendedProof, disclosed, params, nonce))
	require.False(t, bbs.VerifyProof(s.pubKey, proof, disclosed, extendedParams, nonce))

	// the extra slot only verifies with the value it was signed with.
	messages[2] = bbs.ParseSignatureMessage([]byte("not signed"))
	require.Error(t, s.signature.Verify(messages, s.pubKey, extended))
}

// Two signed messages, the first one revealed: accepted as generated, rejected with a corrupted challenge.
func TestProof_TwoMessagesScenario(t *testing.T) {
	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	gens, err := pubKey.ToGenerators(2)
	require.NoError(t, err)

	messages := []*bbs.SignatureMessage{
		bbs.NewSignatureMessage(curve.NewRandomZr(rand.Reader)),
		bbs.NewSignatureMessage(curve.NewRandomZr(rand.Reader)),
	}

	signature, err := bbs.Sign(rand.Reader, privKey, messages, gens)
	require.NoError(t, err)

	nonce := []byte("presentation")

	proof, err := bbs.CreateProof(rand.Reader, signature, messages, []int{0}, pubKey, gens, nonce)
	require.NoError(t, err)

	params, err := gens.Partition([]int{0})
	require.NoError(t, err)
	require.Len(t, params.RevealedGenerators, 1)
	require.Len(t, params.HiddenGenerators, 1)

	require.True(t, bbs.VerifyProof(pubKey, proof, messages[:1], params, nonce))

	corrupted := cloneProof(proof)
	corrupted.C = incremented(proof.C)

	require.False(t, bbs.VerifyProof(pubKey, corrupted, messages[:1], params, nonce))
}

func TestCreateProof_Errors(t *testing.T) {
	s := signRandomMessages(t, 2)

	t.Run("invalid signature", func(t *testing.T) {
		forged := &bbs.Signature{A: shifted(s.signature.A), E: s.signature.E, S: s.signature.S}

		_, err := bbs.CreateProof(rand.Reader, forged, s.messages, []int{0}, s.pubKey, s.gens, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid BLS12-381 signature")
	})

	t.Run("invalid index", func(t *testing.T) {
		_, err := bbs.CreateProof(rand.Reader, s.signature, s.messages, []int{2}, s.pubKey, s.gens, nil)
		require.EqualError(t, err, "init proof of knowledge signature: "+
			"invalid revealed index: requested index 2 is larger than 2 messages count")
	})

	t.Run("no randomness", func(t *testing.T) {
		_, err := bbs.CreateProof(nil, s.signature, s.messages, []int{0}, s.pubKey, s.gens, nil)
		require.Error(t, err)
	})

	t.Run("short randomness", func(t *testing.T) {
		_, err := bbs.CreateProof(io.LimitReader(rand.Reader, 40), s.signature, s.messages, []int{0}, s.pubKey,
			s.gens, nil)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("degenerate randomness", func(t *testing.T) {
		_, err := bbs.CreateProof(zeroReader{}, s.signature, s.messages, []int{0}, s.pubKey, s.gens, nil)
		require.ErrorIs(t, err, bbs.ErrDomain)
	})
}

func TestProof_ToBytes(t *testing.T) {
	s := signRandomMessages(t, 4)
	nonce := []byte("nonce")

	proof, params, disclosed := s.prove(t, []int{1, 3}, nonce)

	proofBytes, err := proof.ToBytes()
	require.NoError(t, err)
	require.Len(t, proofBytes, 5*48+(5+2)*32+4)

	proofParsed, err := bbs.ParseProof(proofBytes)
	require.NoError(t, err)
	require.True(t, bbs.VerifyProof(s.pubKey, proofParsed, disclosed, params, nonce))

	reencoded, err := proofParsed.ToBytes()
	require.NoError(t, err)
	require.Equal(t, proofBytes, reencoded)

	t.Run("truncated", func(t *testing.T) {
		_, err = bbs.ParseProof(proofBytes[:len(proofBytes)-1])
		require.EqualError(t, err, "invalid size of signature proof")

		_, err = bbs.ParseProof(proofBytes[:100])
		require.EqualError(t, err, "invalid size of signature proof")
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err = bbs.ParseProof(append(append([]byte(nil), proofBytes...), 0))
		require.EqualError(t, err, "invalid size of signature proof")
	})

	t.Run("invalid point", func(t *testing.T) {
		corrupted := append([]byte(nil), proofBytes...)
		for i := 0; i < 48; i++ {
			corrupted[i] = 0xff
		}

		_, err = bbs.ParseProof(corrupted)
		require.Error(t, err)
	})

	t.Run("incomplete proof", func(t *testing.T) {
		incomplete := cloneProof(proof)
		incomplete.HiddenHat = []*ml.Zr{nil}

		_, err = incomplete.ToBytes()
		require.ErrorIs(t, err, bbs.ErrMalformedProof)
	})
}
