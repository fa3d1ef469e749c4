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
	"golang.org/x/exp/slices"
)

const generatorsDST = "BLS12381G1_XMD:BLAKE2B_SSWU_RO_BBS+_SIGNATURES:1_0_0"

// Generators holds the public bases of the scheme for a fixed number of messages:
// P1 and P2 are the group bases, H0 blinds the signature and H[i] binds message i.
type Generators struct {
	P1 *ml.G1
	P2 *ml.G2
	H0 *ml.G1
	H  []*ml.G1
}

// PublicParameters is the view of Generators shared by prover and verifier of one proof:
// the message generators are split into the disclosed and the hidden slots, each in message order.
type PublicParameters struct {
	P1                 *ml.G1
	P2                 *ml.G2
	H0                 *ml.G1
	RevealedGenerators []*ml.G1
	HiddenGenerators   []*ml.G1
}

// NewGenerators derives H0 and one generator per message from seed with hash-to-curve,
// so nobody knows a discrete logarithm relation between them.
func NewGenerators(seed []byte, messagesCount int) (*Generators, error) {
	if messagesCount <= 0 {
		return nil, fmt.Errorf("invalid messages count: %d", messagesCount)
	}

	h := make([]*ml.G1, messagesCount)
	for i := 1; i <= messagesCount; i++ {
		h[i-1] = hashToG1(generatorInput(seed, i, messagesCount))
	}

	return &Generators{
		P1: curve.GenG1.Copy(),
		P2: curve.GenG2.Copy(),
		H0: hashToG1(generatorInput(seed, 0, messagesCount)),
		H:  h,
	}, nil
}

// MessagesCount returns the number of message slots.
func (g *Generators) MessagesCount() int {
	return len(g.H)
}

// Partition splits the message generators into revealed and hidden lists.
// Indexes are sorted and de-duplicated.
func (g *Generators) Partition(revealedIndexes []int) (*PublicParameters, error) {
	revealed, err := normalizeIndexes(revealedIndexes, len(g.H))
	if err != nil {
		return nil, err
	}

	params := &PublicParameters{
		P1:                 g.P1,
		P2:                 g.P2,
		H0:                 g.H0,
		RevealedGenerators: make([]*ml.G1, 0, len(revealed)),
		HiddenGenerators:   make([]*ml.G1, 0, len(g.H)-len(revealed)),
	}

	for i, h := range g.H {
		if _, ok := slices.BinarySearch(revealed, i); ok {
			params.RevealedGenerators = append(params.RevealedGenerators, h)
		} else {
			params.HiddenGenerators = append(params.HiddenGenerators, h)
		}
	}

	return params, nil
}

// MessagesCount returns the number of message slots covered by the parameters.
func (p *PublicParameters) MessagesCount() int {
	return len(p.RevealedGenerators) + len(p.HiddenGenerators)
}

func normalizeIndexes(indexes []int, messagesCount int) ([]int, error) {
	sorted := slices.Clone(indexes)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, ind := range sorted {
		if ind < 0 {
			return nil, fmt.Errorf("invalid revealed index: requested index %d is negative", ind)
		}

		if ind >= messagesCount {
			return nil, fmt.Errorf("invalid revealed index: requested index %d is larger than %d messages count",
				ind, messagesCount)
		}
	}

	return sorted, nil
}

func generatorInput(seed []byte, index, messagesCount int) []byte {
	const uint32Size = 4

	data := make([]byte, len(seed)+2*uint32Size)
	copy(data, seed)
	binary.BigEndian.PutUint32(data[len(seed):], uint32(index))
	binary.BigEndian.PutUint32(data[len(seed)+uint32Size:], uint32(messagesCount))

	return data
}

func hashToG1(data []byte) *ml.G1 {
	return curve.HashToG1WithDomain(data, []byte(generatorsDST))
}

func validateGenerators(gens *Generators, messagesCount int) error {
	if gens == nil || gens.P1 == nil || gens.P2 == nil || gens.H0 == nil {
		return errors.New("generators are not defined")
	}

	if len(gens.H) != messagesCount {
		return fmt.Errorf("invalid size: %d generators for %d messages", len(gens.H), messagesCount)
	}

	for _, h := range gens.H {
		if h == nil {
			return errors.New("generators are not defined")
		}
	}

	return nil
}
