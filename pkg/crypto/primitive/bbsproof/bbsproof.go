/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbsproof contains BBS+ signing primitives and a non-interactive zero-knowledge proof of knowledge
// of a signature that discloses a chosen subset of the signed messages.
//
// The scheme follows https://eprint.iacr.org/2016/663.pdf, section 4.5, over the BLS12-381 curve. The proof
// challenge is derived with the Fiat-Shamir transform over the full proof transcript and a verifier nonce.
package bbsproof

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"

	"github.com/hyperledger/aries-bbsproof-go/pkg/common/log"
)

// nolint:gochecknoglobals
var (
	curve = ml.Curves[ml.BLS12_381_BBS]

	logger = log.New("aries-framework/bbsproof")
)

// Number of bytes in scalar compressed form.
const frCompressedSize = 32

var (
	// nolint:gochecknoglobals
	// Signature length.
	signatureLen = curve.CompressedG1ByteSize + 2*frCompressedSize

	// nolint:gochecknoglobals
	// Number of bytes in G1 X coordinate.
	g1CompressedSize = curve.CompressedG1ByteSize

	// nolint:gochecknoglobals
	// Number of bytes in G2 X(a, b) coordinate.
	g2CompressedSize = curve.CompressedG2ByteSize

	// nolint:gochecknoglobals
	// Number of bytes in scalar uncompressed form.
	frUncompressedSize = curve.ScalarByteSize

	// nolint:gochecknoglobals
	// Number of bytes to stored integers.
	intSize = 4
)

const defaultGeneratorsCacheSize = 64

// BBSProof signs messages, verifies signatures and derives and verifies selective disclosure proofs
// over their byte representations.
type BBSProof struct {
	rng        io.Reader
	generators *GeneratorsCache
}

// Option configures BBSProof.
type Option func(opts *BBSProof)

// WithRandReader sets the randomness source used for signing and proving. Defaults to crypto/rand.
func WithRandReader(rng io.Reader) Option {
	return func(opts *BBSProof) {
		opts.rng = rng
	}
}

// WithGeneratorsCacheSize sets how many generator sets are kept in memory.
func WithGeneratorsCacheSize(size int) Option {
	return func(opts *BBSProof) {
		opts.generators = NewGeneratorsCache(size)
	}
}

// New creates a new BBSProof.
func New(opts ...Option) *BBSProof {
	bbs := &BBSProof{rng: rand.Reader}

	for _, opt := range opts {
		opt(bbs)
	}

	if bbs.generators == nil {
		bbs.generators = NewGeneratorsCache(defaultGeneratorsCacheSize)
	}

	return bbs
}

// Verify makes BLS BBS12-381 signature verification.
func (bbs *BBSProof) Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) error {
	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	gens, err := bbs.generators.Get(pubKey, len(messages))
	if err != nil {
		return fmt.Errorf("build generators from public key: %w", err)
	}

	return signature.Verify(messagesToFr(messages), pubKey, gens)
}

// Sign signs the one or more messages using private key in compressed form.
func (bbs *BBSProof) Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error) {
	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	return bbs.SignWithKey(messages, privKey)
}

// SignWithKey signs the one or more messages using BBS+ key pair.
func (bbs *BBSProof) SignWithKey(messages [][]byte, privKey *PrivateKey) ([]byte, error) {
	gens, err := bbs.generators.Get(privKey.PublicKey(), len(messages))
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	signature, err := Sign(bbs.rng, privKey, messagesToFr(messages), gens)
	if err != nil {
		return nil, fmt.Errorf("sign messages: %w", err)
	}

	return signature.ToBytes()
}

// DeriveProof derives a proof of BBS+ signature with some messages disclosed.
func (bbs *BBSProof) DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w", err)
	}

	messagesCount := len(messages)

	gens, err := bbs.generators.Get(pubKey, messagesCount)
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	revealed, err := normalizeIndexes(revealedIndexes, messagesCount)
	if err != nil {
		return nil, err
	}

	proof, err := CreateProof(bbs.rng, signature, messagesToFr(messages), revealed, pubKey, gens, nonce)
	if err != nil {
		return nil, fmt.Errorf("create proof: %w", err)
	}

	payloadBytes, err := newPoKPayload(messagesCount, revealed).toBytes()
	if err != nil {
		return nil, fmt.Errorf("derive proof: paylod to bytes: %w", err)
	}

	proofBytes, err := proof.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("derive proof: proof to bytes: %w", err)
	}

	return append(payloadBytes, proofBytes...), nil
}

// VerifyProof verifies BBS+ signature proof for one ore more revealed messages.
// revealedMessages are the disclosed messages in the order of their indexes.
func (bbs *BBSProof) VerifyProof(revealedMessages [][]byte, proofBytes, nonce, pubKeyBytes []byte) error {
	payload, err := parsePoKPayload(proofBytes)
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	proof, err := ParseProof(proofBytes[payload.lenInBytes():])
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	gens, err := bbs.generators.Get(pubKey, payload.messagesCount)
	if err != nil {
		return fmt.Errorf("build generators from public key: %w", err)
	}

	params, err := gens.Partition(payload.revealed)
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	return proof.Verify(pubKey, messagesToFr(revealedMessages), params, nonce)
}
