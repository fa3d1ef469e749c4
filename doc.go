/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbsproof provides BBS+ signatures with selective disclosure proofs of knowledge over BLS12-381.
//
// Packages for end developer usage
//
// pkg/crypto/primitive/bbsproof: key generation, signing, proof derivation and proof verification, both over
// curve elements and over byte encodings (BBSProof).
//
// cmd/bbsproof-cli: command line tool over the byte level API.
//
// Basic workflow
//
//	1) The issuer generates a key pair and signs an ordered list of messages.
//	2) The holder derives a proof from the signature, choosing which messages to disclose and binding the
//	   verifier nonce.
//	3) The verifier checks the proof against the issuer public key, the disclosed messages and the nonce.
package bbsproof
