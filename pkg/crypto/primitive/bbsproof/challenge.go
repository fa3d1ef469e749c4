/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"encoding/binary"

	ml "github.com/IBM/mathlib"
)

const challengeDST = "BBS_PLUS_POK_BLS12381_BLAKE2B_CHALLENGE_"

// transcript accumulates the byte encoding hashed into the proof challenge.
type transcript struct {
	bytes []byte
}

func newTranscript() *transcript {
	return &transcript{bytes: []byte(challengeDST)}
}

func (t *transcript) appendG1(points ...*ml.G1) {
	for _, p := range points {
		t.bytes = append(t.bytes, p.Compressed()...)
	}
}

func (t *transcript) appendG2(p *ml.G2) {
	t.bytes = append(t.bytes, p.Compressed()...)
}

func (t *transcript) appendInt(n int) {
	t.bytes = binary.BigEndian.AppendUint32(t.bytes, uint32(n))
}

func (t *transcript) appendFr(fr *ml.Zr) {
	t.bytes = append(t.bytes, fr.Bytes()...)
}

func (t *transcript) challenge() *ml.Zr {
	return frFromOKM(t.bytes)
}

// proofChallenge derives the Fiat-Shamir challenge of a proof. It binds the signer's public key, the public
// parameters with the revealed/hidden split, the randomized signature, both commitments, the disclosed
// messages and the nonce.
func proofChallenge(pubKey *PublicKey, params *PublicParameters, aPrime, aBar, d, c1, c2 *ml.G1,
	disclosed []*SignatureMessage, nonce []byte) *ml.Zr {
	t := newTranscript()

	t.appendG1(params.P1)
	t.appendG2(params.P2)
	t.appendG2(pubKey.PointG2)
	t.appendG1(params.H0)

	t.appendInt(len(params.RevealedGenerators))
	t.appendG1(params.RevealedGenerators...)

	t.appendInt(len(params.HiddenGenerators))
	t.appendG1(params.HiddenGenerators...)

	t.appendG1(aPrime, aBar, d, c1, c2)

	for _, m := range disclosed {
		t.appendFr(m.FR)
	}

	t.appendInt(len(nonce))
	t.bytes = append(t.bytes, nonce...)

	return t.challenge()
}
