/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one independent proof verification.
type BatchItem struct {
	PublicKey *PublicKey
	Proof     *Proof
	Disclosed []*SignatureMessage
	Params    *PublicParameters
	Nonce     []byte
}

// BatchVerify verifies independent proofs on up to workers goroutines. Result i reports item i.
// Items not verified before ctx is done are reported false.
func BatchVerify(ctx context.Context, items []*BatchItem, workers int) []bool {
	results := make([]bool, len(items))

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			if item == nil {
				return nil
			}

			results[i] = VerifyProof(item.PublicKey, item.Proof, item.Disclosed, item.Params, item.Nonce)

			return nil
		})
	}

	// goroutines never return an error.
	_ = g.Wait() //nolint:errcheck

	return results
}
