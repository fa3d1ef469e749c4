/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"errors"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"
)

// PoKOfSignature is Proof of Knowledge of a Signature that is used by the prover to construct PoKOfSignatureProof.
type PoKOfSignature struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	pokVC1   *ProverCommittedG1
	secrets1 []*ml.Zr

	pokVC2   *ProverCommittedG1
	secrets2 []*ml.Zr

	pubKey    *PublicKey
	params    *PublicParameters
	disclosed []*SignatureMessage
}

// CreateProof proves knowledge of signature over messages while disclosing the messages at revealedIndexes.
// The proof is bound to nonce.
func CreateProof(rng io.Reader, signature *Signature, messages []*SignatureMessage, revealedIndexes []int,
	pubKey *PublicKey, gens *Generators, nonce []byte) (*Proof, error) {
	pok, err := NewPoKOfSignature(rng, signature, messages, revealedIndexes, pubKey, gens)
	if err != nil {
		return nil, fmt.Errorf("init proof of knowledge signature: %w", err)
	}

	return pok.GenerateProof(pok.Challenge(nonce)), nil
}

// NewPoKOfSignature creates a new PoKOfSignature. The signature is checked against pubKey first.
func NewPoKOfSignature(rng io.Reader, signature *Signature, messages []*SignatureMessage, revealedIndexes []int,
	pubKey *PublicKey, gens *Generators) (*PoKOfSignature, error) {
	if signature == nil {
		return nil, errors.New("signature is not defined")
	}

	err := signature.Verify(messages, pubKey, gens)
	if err != nil {
		return nil, fmt.Errorf("verify input signature: %w", err)
	}

	revealed, err := normalizeIndexes(revealedIndexes, len(messages))
	if err != nil {
		return nil, err
	}

	params, err := gens.Partition(revealed)
	if err != nil {
		return nil, err
	}

	disclosed := make([]*SignatureMessage, 0, len(revealed))
	hidden := make([]*SignatureMessage, 0, len(messages)-len(revealed))

	for i, m := range messages {
		if len(disclosed) < len(revealed) && revealed[len(disclosed)] == i {
			disclosed = append(disclosed, m)
		} else {
			hidden = append(hidden, m)
		}
	}

	var pok *PoKOfSignature

	err = resample(func() error {
		var rErr error

		pok, rErr = newPoKOfSignature(rng, signature, messages, hidden, gens, params)

		return rErr
	})
	if err != nil {
		return nil, err
	}

	pok.pubKey = pubKey
	pok.disclosed = disclosed

	return pok, nil
}

func newPoKOfSignature(rng io.Reader, signature *Signature, messages, hidden []*SignatureMessage,
	gens *Generators, params *PublicParameters) (*PoKOfSignature, error) {
	r1, err := newRandomFr(rng)
	if err != nil {
		return nil, err
	}

	r2, err := newRandomFr(rng)
	if err != nil {
		return nil, err
	}

	r3, err := frInverse(r1)
	if err != nil {
		return nil, err
	}

	b := computeB(signature.S, messages, gens)

	aPrime := signature.A.Mul(r1)
	if aPrime.IsInfinity() {
		return nil, fmt.Errorf("randomized signature is the identity: %w", ErrDomain)
	}

	bR1 := b.Mul(r1)

	aBar := aPrime.Mul(frNeg(signature.E))
	aBar.Add(bR1)

	d := bR1.Copy()
	d.Add(params.H0.Mul(r2))

	sPrime := frAdd(signature.S, frMul(r2, r3))

	pokVC1, secrets1, err := newVC1Signature(rng, aPrime, params.H0, signature.E, r2)
	if err != nil {
		return nil, err
	}

	pokVC2, secrets2, err := newVC2Signature(rng, d, r3, params, sPrime, hidden)
	if err != nil {
		return nil, err
	}

	return &PoKOfSignature{
		aPrime:   aPrime,
		aBar:     aBar,
		d:        d,
		pokVC1:   pokVC1,
		secrets1: secrets1,
		pokVC2:   pokVC2,
		secrets2: secrets2,
		params:   params,
	}, nil
}

// newVC1Signature commits to C1 = A'*e~ + H0*r2~ for the secrets (e, r2).
func newVC1Signature(rng io.Reader, aPrime, h0 *ml.G1, e, r2 *ml.Zr) (*ProverCommittedG1, []*ml.Zr, error) {
	committing1 := NewProverCommittingG1()

	for _, base := range []*ml.G1{aPrime, h0} {
		if err := committing1.Commit(rng, base); err != nil {
			return nil, nil, err
		}
	}

	return committing1.Finish(), []*ml.Zr{e, r2}, nil
}

// newVC2Signature commits to C2 = D*(-r3~) + H0*s~ + sum(Hhidden[j]*m~[j]) for the secrets (r3, s', hidden messages).
func newVC2Signature(rng io.Reader, d *ml.G1, r3 *ml.Zr, params *PublicParameters, sPrime *ml.Zr,
	hidden []*SignatureMessage) (*ProverCommittedG1, []*ml.Zr, error) {
	const basesOffset = 2

	committing2 := NewProverCommittingG1()
	secrets2 := make([]*ml.Zr, 0, len(hidden)+basesOffset)

	if err := committing2.Commit(rng, d.Mul(frNeg(frOne()))); err != nil {
		return nil, nil, err
	}

	secrets2 = append(secrets2, r3)

	if err := committing2.Commit(rng, params.H0); err != nil {
		return nil, nil, err
	}

	secrets2 = append(secrets2, sPrime)

	for j, m := range hidden {
		if err := committing2.Commit(rng, params.HiddenGenerators[j]); err != nil {
			return nil, nil, err
		}

		secrets2 = append(secrets2, m.FR)
	}

	return committing2.Finish(), secrets2, nil
}

// Challenge derives the Fiat-Shamir challenge for this proof of knowledge and nonce.
func (pos *PoKOfSignature) Challenge(nonce []byte) *ml.Zr {
	return proofChallenge(pos.pubKey, pos.params, pos.aPrime, pos.aBar, pos.d,
		pos.pokVC1.commitment, pos.pokVC2.commitment, pos.disclosed, nonce)
}

// GenerateProof generates Proof from PoKOfSignature for the given challenge.
func (pos *PoKOfSignature) GenerateProof(challenge *ml.Zr) *Proof {
	proofVC1 := pos.pokVC1.GenerateProof(challenge, pos.secrets1)
	proofVC2 := pos.pokVC2.GenerateProof(challenge, pos.secrets2)

	const hiddenOffset = 2

	return &Proof{
		APrime:    pos.aPrime,
		ABar:      pos.aBar,
		D:         pos.d,
		C:         challenge,
		EHat:      proofVC1.responses[0],
		R2Hat:     proofVC1.responses[1],
		R3Hat:     proofVC2.responses[0],
		SHat:      proofVC2.responses[1],
		HiddenHat: proofVC2.responses[hiddenOffset:],
		C1:        proofVC1.commitment,
		C2:        proofVC2.commitment,
	}
}
