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

// Signature defines BBS+ signature.
type Signature struct {
	A *ml.G1
	E *ml.Zr
	S *ml.Zr
}

// Sign signs messages with privKey: A = B * (e + x)^-1 with B = P1 + H0*s + sum(H[i]*m[i]).
// e and s are drawn from rng.
func Sign(rng io.Reader, privKey *PrivateKey, messages []*SignatureMessage, gens *Generators) (*Signature, error) {
	if privKey == nil || privKey.FR == nil {
		return nil, errors.New("private key is not defined")
	}

	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	if err := validateGenerators(gens, len(messages)); err != nil {
		return nil, err
	}

	var signature *Signature

	err := resample(func() error {
		e, err := newRandomFr(rng)
		if err != nil {
			return err
		}

		s, err := newRandomFr(rng)
		if err != nil {
			return err
		}

		exp, err := frInverse(frAdd(privKey.FR, e))
		if err != nil {
			return err
		}

		signature = &Signature{
			A: computeB(s, messages, gens).Mul(exp),
			E: e,
			S: s,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return signature, nil
}

// ParseSignature parses a Signature from bytes.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != signatureLen {
		return nil, errors.New("invalid size of signature")
	}

	pointG1, err := curve.NewG1FromCompressed(sigBytes[:g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 compressed signature: %w", err)
	}

	e, err := parseCanonicalFr(sigBytes[g1CompressedSize : g1CompressedSize+frCompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize signature e: %w", err)
	}

	s, err := parseCanonicalFr(sigBytes[g1CompressedSize+frCompressedSize:])
	if err != nil {
		return nil, fmt.Errorf("deserialize signature s: %w", err)
	}

	return &Signature{
		A: pointG1,
		E: e,
		S: s,
	}, nil
}

// ToBytes converts signature to bytes using compression of G1 point and E, S FR points.
func (s *Signature) ToBytes() ([]byte, error) {
	bytes := make([]byte, signatureLen)

	copy(bytes, s.A.Compressed())
	copy(bytes[g1CompressedSize:g1CompressedSize+frCompressedSize], s.E.Bytes())
	copy(bytes[g1CompressedSize+frCompressedSize:], s.S.Bytes())

	return bytes, nil
}

// Verify is used for signature verification: e(A, W + P2*E) == e(B, P2).
func (s *Signature) Verify(messages []*SignatureMessage, pubKey *PublicKey, gens *Generators) error {
	if s.A == nil || s.E == nil || s.S == nil {
		return errors.New("signature is not defined")
	}

	if pubKey == nil || pubKey.PointG2 == nil {
		return errors.New("public key is not defined")
	}

	if err := validateGenerators(gens, len(messages)); err != nil {
		return err
	}

	if s.A.IsInfinity() {
		return errors.New("invalid BLS12-381 signature")
	}

	q1 := gens.P2.Mul(s.E)
	q1.Add(pubKey.PointG2)
	q1.Affine()

	negB := computeB(s.S, messages, gens).Mul(frNeg(frOne()))

	if !compareTwoPairings(s.A, q1, negB, gens.P2) {
		return errors.New("invalid BLS12-381 signature")
	}

	return nil
}

// computeB returns P1 + H0*s + sum(H[i]*m[i]).
func computeB(s *ml.Zr, messages []*SignatureMessage, gens *Generators) *ml.G1 {
	const basesOffset = 2

	cb := newCommitmentBuilder(len(messages) + basesOffset)

	cb.add(gens.P1, frOne())
	cb.add(gens.H0, s)

	for i := 0; i < len(messages); i++ {
		cb.add(gens.H[i], messages[i].FR)
	}

	return cb.build()
}

// compareTwoPairings checks e(p1, q1) * e(p2, q2) == 1.
func compareTwoPairings(p1 *ml.G1, q1 *ml.G2,
	p2 *ml.G1, q2 *ml.G2) bool {
	p := curve.Pairing2(q1, p1, q2, p2)
	p = curve.FExp(p)

	return p.IsUnity()
}
