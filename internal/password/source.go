// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Source produces uniformly distributed integers.
type Source interface {
	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) (int, error)
}

// ReaderSource draws integers from a cryptographically secure byte stream.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource returns a Source reading from r. r must be a
// cryptographically secure stream; tests may pass a failing reader.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// CryptoSource returns a Source backed by crypto/rand.
func CryptoSource() *ReaderSource {
	return NewReaderSource(rand.Reader)
}

// IntN returns a uniform integer in [0, n). crypto/rand.Int uses rejection
// sampling, so there is no modulo bias.
func (s *ReaderSource) IntN(n int) (int, error) {
	if n <= 0 {
		panic("password: IntN called with non-positive n")
	}
	v, err := rand.Int(s.r, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
