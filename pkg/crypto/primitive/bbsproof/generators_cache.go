/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsproof

import (
	"fmt"

	"github.com/bluele/gcache"
)

// GeneratorsCache memoises generator derivation per (public key, messages count).
// Underlying gcache is threadsafe, no need of locks.
type GeneratorsCache struct {
	store gcache.Cache
}

type generatorsKey struct {
	seed          string
	messagesCount int
}

// NewGeneratorsCache creates an LRU GeneratorsCache holding up to size generator sets.
// A non-positive size falls back to the default.
func NewGeneratorsCache(size int) *GeneratorsCache {
	if size <= 0 {
		size = defaultGeneratorsCacheSize
	}

	return &GeneratorsCache{
		store: gcache.New(size).LRU().
			LoaderFunc(func(key interface{}) (interface{}, error) {
				k, ok := key.(generatorsKey)
				if !ok {
					return nil, fmt.Errorf("unexpected generators cache key %T", key)
				}

				logger.Debugf("deriving generators for %d messages", k.messagesCount)

				return NewGenerators([]byte(k.seed), k.messagesCount)
			}).
			Build(),
	}
}

// Get returns the generators bound to pubKey for messagesCount messages.
func (c *GeneratorsCache) Get(pubKey *PublicKey, messagesCount int) (*Generators, error) {
	seed, err := pubKey.Marshal()
	if err != nil {
		return nil, err
	}

	value, err := c.store.Get(generatorsKey{seed: string(seed), messagesCount: messagesCount})
	if err != nil {
		return nil, err
	}

	gens, ok := value.(*Generators)
	if !ok {
		return nil, fmt.Errorf("unexpected generators cache value %T", value)
	}

	return gens, nil
}

// Len returns the number of cached generator sets.
func (c *GeneratorsCache) Len() int {
	return c.store.Len(false)
}
