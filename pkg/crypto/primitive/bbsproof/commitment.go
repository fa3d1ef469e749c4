/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"io"

	ml "github.com/IBM/mathlib"
)

type commitmentBuilder struct {
	bases   []*ml.G1
	scalars []*ml.Zr
}

func newCommitmentBuilder(expectedSize int) *commitmentBuilder {
	return &commitmentBuilder{
		bases:   make([]*ml.G1, 0, expectedSize),
		scalars: make([]*ml.Zr, 0, expectedSize),
	}
}

func (cb *commitmentBuilder) add(base *ml.G1, scalar *ml.Zr) {
	cb.bases = append(cb.bases, base)
	cb.scalars = append(cb.scalars, scalar)
}

func (cb *commitmentBuilder) build() *ml.G1 {
	return sumOfG1Products(cb.bases, cb.scalars)
}

// sumOfG1Products returns sum(bases[i] * scalars[i]). Bases are never modified.
func sumOfG1Products(bases []*ml.G1, scalars []*ml.Zr) *ml.G1 {
	var res *ml.G1

	for i := 0; i < len(bases); i++ {
		g := bases[i].Mul(scalars[i])
		if res == nil {
			res = g
		} else {
			res.Add(g)
		}
	}

	return res
}

// ProverCommittingG1 is a proof of knowledge of messages in a vector commitment.
// It collects the bases and a random blinding factor for each of them.
type ProverCommittingG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
}

// NewProverCommittingG1 creates a new ProverCommittingG1.
func NewProverCommittingG1() *ProverCommittingG1 {
	return &ProverCommittingG1{
		bases:           make([]*ml.G1, 0),
		blindingFactors: make([]*ml.Zr, 0),
	}
}

// Commit append a base point and a blinding factor drawn from rng.
func (pc *ProverCommittingG1) Commit(rng io.Reader, base *ml.G1) error {
	r, err := newRandomFr(rng)
	if err != nil {
		return err
	}

	pc.bases = append(pc.bases, base)
	pc.blindingFactors = append(pc.blindingFactors, r)

	return nil
}

// Finish helps to generate ProverCommittedG1 after commitment of all base points.
func (pc *ProverCommittingG1) Finish() *ProverCommittedG1 {
	commitment := sumOfG1Products(pc.bases, pc.blindingFactors)

	return &ProverCommittedG1{
		bases:           pc.bases,
		blindingFactors: pc.blindingFactors,
		commitment:      commitment,
	}
}

// ProverCommittedG1 helps to generate a ProofG1.
type ProverCommittedG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
	commitment      *ml.G1
}

// GenerateProof generates proof ProofG1 for all secrets: response[i] = blinding[i] + challenge*secret[i].
func (g *ProverCommittedG1) GenerateProof(challenge *ml.Zr, secrets []*ml.Zr) *ProofG1 {
	responses := make([]*ml.Zr, len(g.bases))

	for i := range g.blindingFactors {
		responses[i] = schnorrResponse(g.blindingFactors[i], challenge, secrets[i])
	}

	return &ProofG1{
		commitment: g.commitment,
		responses:  responses,
	}
}

// ProofG1 is a proof of knowledge of a signature and hidden messages.
type ProofG1 struct {
	commitment *ml.G1
	responses  []*ml.Zr
}
