/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"encoding/binary"
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
)

const (
	proofG1Count     = 5
	proofScalarCount = 5
)

// Proof is a non-interactive proof of knowledge of a BBS+ signature with selectively disclosed messages.
//
// APrime, ABar and D are the randomized signature, C is the challenge, EHat, R2Hat, R3Hat, SHat and
// HiddenHat are the Schnorr responses and C1, C2 the commitments they answer.
type Proof struct {
	APrime *ml.G1
	ABar   *ml.G1
	D      *ml.G1

	C         *ml.Zr
	EHat      *ml.Zr
	R2Hat     *ml.Zr
	R3Hat     *ml.Zr
	SHat      *ml.Zr
	HiddenHat []*ml.Zr

	C1 *ml.G1
	C2 *ml.G1
}

// VerifyProof reports whether proof shows knowledge of a signature by pubKey over messages whose
// disclosed part is disclosed, bound to nonce.
func VerifyProof(pubKey *PublicKey, proof *Proof, disclosed []*SignatureMessage, params *PublicParameters,
	nonce []byte) bool {
	if proof == nil {
		return false
	}

	err := proof.Verify(pubKey, disclosed, params, nonce)
	if err != nil {
		logger.Debugf("proof rejected: %s", err)

		return false
	}

	return true
}

// Verify checks the proof. It returns ErrMalformedProof when the proof does not match the shape of the
// parameters and ErrVerificationFailed otherwise.
func (p *Proof) Verify(pubKey *PublicKey, disclosed []*SignatureMessage, params *PublicParameters,
	nonce []byte) error {
	if err := p.validate(pubKey, disclosed, params); err != nil {
		return err
	}

	challenge := proofChallenge(pubKey, params, p.APrime, p.ABar, p.D, p.C1, p.C2, disclosed, nonce)
	if !challenge.Equals(p.C) {
		return fmt.Errorf("challenge mismatch: %w", ErrVerificationFailed)
	}

	if !p.C1.Equals(p.recomputeC1(params)) {
		return fmt.Errorf("commitment C1 mismatch: %w", ErrVerificationFailed)
	}

	if !p.C2.Equals(p.recomputeC2(disclosed, params)) {
		return fmt.Errorf("commitment C2 mismatch: %w", ErrVerificationFailed)
	}

	if !compareTwoPairings(p.ABar, params.P2, p.APrime.Mul(frNeg(frOne())), pubKey.PointG2) {
		return fmt.Errorf("pairing check: %w", ErrVerificationFailed)
	}

	return nil
}

func (p *Proof) validate(pubKey *PublicKey, disclosed []*SignatureMessage, params *PublicParameters) error {
	if pubKey == nil || pubKey.PointG2 == nil {
		return fmt.Errorf("public key is not defined: %w", ErrMalformedProof)
	}

	if params == nil || params.P1 == nil || params.P2 == nil || params.H0 == nil {
		return fmt.Errorf("public parameters are not defined: %w", ErrMalformedProof)
	}

	if p.hasNil() {
		return fmt.Errorf("proof is incomplete: %w", ErrMalformedProof)
	}

	if len(disclosed) != len(params.RevealedGenerators) {
		return fmt.Errorf("%d disclosed messages for %d revealed generators: %w",
			len(disclosed), len(params.RevealedGenerators), ErrMalformedProof)
	}

	if len(p.HiddenHat) != len(params.HiddenGenerators) {
		return fmt.Errorf("%d hidden responses for %d hidden generators: %w",
			len(p.HiddenHat), len(params.HiddenGenerators), ErrMalformedProof)
	}

	for _, m := range disclosed {
		if m == nil || m.FR == nil {
			return fmt.Errorf("disclosed message is not defined: %w", ErrMalformedProof)
		}
	}

	for _, gens := range [][]*ml.G1{params.RevealedGenerators, params.HiddenGenerators} {
		for _, h := range gens {
			if h == nil {
				return fmt.Errorf("generator is not defined: %w", ErrMalformedProof)
			}
		}
	}

	if p.APrime.IsInfinity() {
		return fmt.Errorf("A' is the identity: %w", ErrMalformedProof)
	}

	return nil
}

func (p *Proof) hasNil() bool {
	for _, g := range []*ml.G1{p.APrime, p.ABar, p.D, p.C1, p.C2} {
		if g == nil {
			return true
		}
	}

	for _, fr := range []*ml.Zr{p.C, p.EHat, p.R2Hat, p.R3Hat, p.SHat} {
		if fr == nil {
			return true
		}
	}

	for _, fr := range p.HiddenHat {
		if fr == nil {
			return true
		}
	}

	return false
}

// recomputeC1 returns (ABar - D)*c + A'*e^ + H0*r2^.
func (p *Proof) recomputeC1(params *PublicParameters) *ml.G1 {
	const basesCount = 4

	cb := newCommitmentBuilder(basesCount)

	cb.add(p.ABar, p.C)
	cb.add(p.D, frNeg(p.C))
	cb.add(p.APrime, p.EHat)
	cb.add(params.H0, p.R2Hat)

	return cb.build()
}

// recomputeC2 returns T*c + D*(-r3^) + H0*s^ + sum(Hhidden[j]*m^[j]) with T = P1 + sum(Hrevealed[i]*d[i]).
func (p *Proof) recomputeC2(disclosed []*SignatureMessage, params *PublicParameters) *ml.G1 {
	const basesOffset = 3

	cb := newCommitmentBuilder(len(disclosed) + len(p.HiddenHat) + basesOffset)

	cb.add(params.P1, p.C)

	for i, m := range disclosed {
		cb.add(params.RevealedGenerators[i], frMul(p.C, m.FR))
	}

	cb.add(p.D, frNeg(p.R3Hat))
	cb.add(params.H0, p.SHat)

	for j, mHat := range p.HiddenHat {
		cb.add(params.HiddenGenerators[j], mHat)
	}

	return cb.build()
}

// ToBytes converts Proof to bytes: the G1 points A', ABar, D, C1, C2 in compressed form, the scalars
// c, e^, r2^, r3^, s^, the count of hidden responses as 4 bytes and the hidden responses.
func (p *Proof) ToBytes() ([]byte, error) {
	if p.hasNil() {
		return nil, fmt.Errorf("proof is incomplete: %w", ErrMalformedProof)
	}

	bytes := make([]byte, 0, proofLen(len(p.HiddenHat)))

	for _, g := range []*ml.G1{p.APrime, p.ABar, p.D, p.C1, p.C2} {
		bytes = append(bytes, g.Compressed()...)
	}

	for _, fr := range []*ml.Zr{p.C, p.EHat, p.R2Hat, p.R3Hat, p.SHat} {
		bytes = append(bytes, fr.Bytes()...)
	}

	bytes = binary.BigEndian.AppendUint32(bytes, uint32(len(p.HiddenHat)))

	for _, fr := range p.HiddenHat {
		bytes = append(bytes, fr.Bytes()...)
	}

	return bytes, nil
}

// ParseProof parses a Proof from bytes.
func ParseProof(bytes []byte) (*Proof, error) {
	fixedLen := proofLen(0)

	if len(bytes) < fixedLen {
		return nil, errors.New("invalid size of signature proof")
	}

	hiddenCount := binary.BigEndian.Uint32(bytes[fixedLen-intSize : fixedLen])
	if uint64(len(bytes)-fixedLen) != uint64(hiddenCount)*frCompressedSize {
		return nil, errors.New("invalid size of signature proof")
	}

	points := make([]*ml.G1, proofG1Count)
	offset := 0

	for i := range points {
		g, err := curve.NewG1FromCompressed(bytes[offset : offset+g1CompressedSize])
		if err != nil {
			return nil, fmt.Errorf("parse G1 point: %w", err)
		}

		points[i] = g
		offset += g1CompressedSize
	}

	scalars, err := parseFrs(bytes[offset:fixedLen-intSize], proofScalarCount)
	if err != nil {
		return nil, err
	}

	hiddenHat, err := parseFrs(bytes[fixedLen:], int(hiddenCount))
	if err != nil {
		return nil, err
	}

	return &Proof{
		APrime:    points[0],
		ABar:      points[1],
		D:         points[2],
		C1:        points[3],
		C2:        points[4],
		C:         scalars[0],
		EHat:      scalars[1],
		R2Hat:     scalars[2],
		R3Hat:     scalars[3],
		SHat:      scalars[4],
		HiddenHat: hiddenHat,
	}, nil
}

func parseFrs(bytes []byte, count int) ([]*ml.Zr, error) {
	frs := make([]*ml.Zr, count)

	for i := range frs {
		fr, err := parseCanonicalFr(bytes[i*frCompressedSize : (i+1)*frCompressedSize])
		if err != nil {
			return nil, fmt.Errorf("parse scalar: %w", err)
		}

		frs[i] = fr
	}

	return frs, nil
}

func proofLen(hiddenCount int) int {
	return proofG1Count*g1CompressedSize + (proofScalarCount+hiddenCount)*frCompressedSize + intSize
}
