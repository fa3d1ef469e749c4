/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import "errors"

var (
	// ErrDomain is returned when a sampled scalar lands on a degenerate value (zero inverse, e + x == 0).
	// Signing and proof generation resample on it internally; callers only see it when every attempt failed.
	ErrDomain = errors.New("degenerate scalar value")

	// ErrMalformedProof is returned when a proof does not structurally match the public parameters.
	ErrMalformedProof = errors.New("malformed proof")

	// ErrVerificationFailed is returned when a well-formed proof does not verify.
	ErrVerificationFailed = errors.New("invalid BBS+ signature proof")
)
