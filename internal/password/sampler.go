// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import (
	"errors"

	"github.com/samber/oops"
)

// Sampler draws characters uniformly from pools.
type Sampler struct {
	src Source
}

// NewSampler returns a Sampler using src.
func NewSampler(src Source) Sampler {
	return Sampler{src: src}
}

// Sample returns one character chosen uniformly from pool.
// It panics if pool is empty; callers must check feasibility first.
func (s Sampler) Sample(pool []byte) (byte, error) {
	if len(pool) == 0 {
		panic("password: sample from empty pool")
	}
	i, err := s.src.IntN(len(pool))
	if err != nil {
		return 0, oops.Code(CodeEntropyFailed).
			With("pool_size", len(pool)).
			Wrap(errors.Join(ErrEntropy, err))
	}
	return pool[i], nil
}

// SampleMany returns k independent draws from pool, with replacement.
// It panics if pool is empty, even when k is zero.
func (s Sampler) SampleMany(pool []byte, k int) ([]byte, error) {
	if len(pool) == 0 {
		panic("password: sample from empty pool")
	}
	out := make([]byte, k)
	for i := range out {
		c, err := s.Sample(pool)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
