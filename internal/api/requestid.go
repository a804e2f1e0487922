// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package api

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newRequestID returns a fresh ULID.
func newRequestID() ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// requestID reuses a caller-supplied ULID or mints a new one.
func requestID(header string) ulid.ULID {
	if header != "" {
		if id, err := ulid.ParseStrict(header); err == nil {
			return id
		}
	}
	return newRequestID()
}
