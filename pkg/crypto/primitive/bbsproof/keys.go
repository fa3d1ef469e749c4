/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"crypto/rand"
	"errors"
	"fmt"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/hkdf"
)

const (
	seedSize = frCompressedSize

	generateKeySalt = "BBS-SIG-KEYGEN-SALT-"
)

// PublicKey defines BBS+ public key W = P2*x, a point in G2.
type PublicKey struct {
	PointG2 *ml.G2
}

// PrivateKey defines BBS+ private key, the secret scalar x.
type PrivateKey struct {
	FR *ml.Zr
}

// PublicKey returns a Public Key as G2 point generated from the Private Key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{PointG2: curve.GenG2.Mul(k.FR)}
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return k.FR.Bytes(), nil
}

// UnmarshalPrivateKey unmarshals PrivateKey.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != frCompressedSize {
		return nil, errors.New("invalid size of private key")
	}

	fr, err := parseCanonicalFr(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize private key: %w", err)
	}

	if frIsZero(fr) {
		return nil, errors.New("invalid private key: zero scalar")
	}

	return &PrivateKey{FR: fr}, nil
}

// Marshal marshals PublicKey in compressed form.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// UnmarshalPublicKey parses a PublicKey from bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if len(pubKeyBytes) != g2CompressedSize {
		return nil, errors.New("invalid size of public key")
	}

	pointG2, err := curve.NewG2FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize public key: %w", err)
	}

	return &PublicKey{PointG2: pointG2}, nil
}

// ToGenerators derives the message generators bound to this public key for messagesCount messages.
func (pk *PublicKey) ToGenerators(messagesCount int) (*Generators, error) {
	seed, err := pk.Marshal()
	if err != nil {
		return nil, err
	}

	return NewGenerators(seed, messagesCount)
}

// GenerateKeyPair generates BBS+ PublicKey and PrivateKey pair. A nil seed draws a random one from crypto/rand.
func GenerateKeyPair(h func() hash.Hash, seed []byte) (*PublicKey, *PrivateKey, error) {
	if len(seed) == 0 {
		return GenerateKeyPairFromReader(rand.Reader, h)
	}

	if len(seed) != seedSize {
		return nil, nil, errors.New("invalid size of seed")
	}

	okm, err := generateOKM(seed, h)
	if err != nil {
		return nil, nil, err
	}

	privKeyFr := frFromOKM(okm)
	if frIsZero(privKeyFr) {
		return nil, nil, fmt.Errorf("derive private key: %w", ErrDomain)
	}

	privKey := &PrivateKey{FR: privKeyFr}

	return privKey.PublicKey(), privKey, nil
}

// GenerateKeyPairFromReader generates BBS+ PublicKey and PrivateKey pair from a seed read from rng.
func GenerateKeyPairFromReader(rng io.Reader, h func() hash.Hash) (*PublicKey, *PrivateKey, error) {
	if rng == nil {
		return nil, nil, errors.New("random source is not defined")
	}

	seed := make([]byte, seedSize)

	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, nil, fmt.Errorf("read seed: %w", err)
	}

	return GenerateKeyPair(h, seed)
}

func generateOKM(ikm []byte, h func() hash.Hash) ([]byte, error) {
	salt := []byte(generateKeySalt)
	info := make([]byte, 2)
	ikm = append(append(make([]byte, 0, len(ikm)+1), ikm...), 0)

	return newHKDF(h, ikm, salt, info, frUncompressedSize)
}

func newHKDF(h func() hash.Hash, ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(h, ikm, salt, info)
	result := make([]byte, length)

	_, err := io.ReadFull(reader, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
