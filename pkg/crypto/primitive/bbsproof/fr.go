/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/blake2b"
)

func parseFr(data []byte) *ml.Zr {
	return curve.NewZrFromBytes(data)
}

// parseCanonicalFr parses a scalar and rejects encodings that are not reduced modulo the group order.
func parseCanonicalFr(data []byte) (*ml.Zr, error) {
	if len(data) != frCompressedSize {
		return nil, errors.New("invalid size of scalar")
	}

	fr := parseFr(data)
	fr.Mod(curve.GroupOrder)

	if !bytes.Equal(fr.Bytes(), data) {
		return nil, errors.New("non-canonical scalar")
	}

	return fr, nil
}

func f2192() *ml.Zr {
	const byteOf2192 = 7

	b := make([]byte, frCompressedSize)
	b[byteOf2192] = 1

	return curve.NewZrFromBytes(b)
}

func frFromOKM(message []byte) *ml.Zr {
	const (
		eightBytes = 8
		okmMiddle  = 24
	)

	// We pass a null key so error is impossible here.
	h, _ := blake2b.New384(nil) //nolint:errcheck

	// blake2b.digest() does not return an error.
	_, _ = h.Write(message)
	okm := h.Sum(nil)

	elm := curve.NewZrFromBytes(append(make([]byte, eightBytes), okm[:okmMiddle]...))
	elm = frMul(elm, f2192())

	fr := curve.NewZrFromBytes(append(make([]byte, eightBytes), okm[okmMiddle:]...))

	return frAdd(elm, fr)
}

const randomFrExtraBytes = 16

// newRandomFr samples a uniformly random non-zero scalar from rng.
func newRandomFr(rng io.Reader) (*ml.Zr, error) {
	if rng == nil {
		return nil, errors.New("random source is not defined")
	}

	buf := make([]byte, frUncompressedSize+randomFrExtraBytes)

	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("read random scalar: %w", err)
	}

	fr := curve.NewZrFromBytes(buf)
	fr.Mod(curve.GroupOrder)

	if frIsZero(fr) {
		return nil, fmt.Errorf("random scalar is zero: %w", ErrDomain)
	}

	return fr, nil
}

func newRandomFrs(rng io.Reader, count int) ([]*ml.Zr, error) {
	frs := make([]*ml.Zr, count)

	for i := range frs {
		fr, err := newRandomFr(rng)
		if err != nil {
			return nil, err
		}

		frs[i] = fr
	}

	return frs, nil
}

func frZero() *ml.Zr {
	return curve.NewZrFromInt(0)
}

func frOne() *ml.Zr {
	return curve.NewZrFromInt(1)
}

func frIsZero(fr *ml.Zr) bool {
	return fr.Equals(frZero())
}

func frAdd(a, b *ml.Zr) *ml.Zr {
	return curve.ModAdd(a, b, curve.GroupOrder)
}

func frSub(a, b *ml.Zr) *ml.Zr {
	return curve.ModSub(a, b, curve.GroupOrder)
}

func frMul(a, b *ml.Zr) *ml.Zr {
	return curve.ModMul(a, b, curve.GroupOrder)
}

func frNeg(a *ml.Zr) *ml.Zr {
	return frSub(frZero(), a)
}

// frInverse returns a^-1, or ErrDomain when a is zero.
func frInverse(a *ml.Zr) (*ml.Zr, error) {
	if frIsZero(a) {
		return nil, fmt.Errorf("inverse of zero: %w", ErrDomain)
	}

	inv := a.Copy()
	inv.InvModP(curve.GroupOrder)

	return inv, nil
}

// schnorrResponse computes blinding + challenge*secret.
func schnorrResponse(blinding, challenge, secret *ml.Zr) *ml.Zr {
	return frAdd(blinding, frMul(challenge, secret))
}
