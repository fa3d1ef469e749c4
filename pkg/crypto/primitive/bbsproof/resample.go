/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxResampleAttempts bounds the retries of an operation that hit ErrDomain.
const maxResampleAttempts = 8

// resample runs op until it succeeds, fails with an error other than ErrDomain,
// or maxResampleAttempts retries are used up.
func resample(op func() error) error {
	policy := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxResampleAttempts)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !errors.Is(err, ErrDomain) {
			return backoff.Permanent(err)
		}

		return err
	}, policy, func(err error, _ time.Duration) {
		logger.Debugf("resampling after degenerate value: %s", err)
	})
}
