// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import (
	"errors"
	"fmt"
)

// Error codes attached to errors returned by this package.
const (
	CodeInvalidLength  = "PASSWORD_INVALID_LENGTH"
	CodeNoUsableClass  = "PASSWORD_NO_USABLE_CLASS"
	CodeLengthTooShort = "PASSWORD_LENGTH_TOO_SHORT"
	CodeEntropyFailed  = "PASSWORD_ENTROPY_FAILED"
	CodeUnknownClass   = "PASSWORD_UNKNOWN_CLASS"
)

var (
	// ErrInvalidLength is returned when the requested length is below 1 or
	// above MaxLength.
	ErrInvalidLength = fmt.Errorf("password length must be between 1 and %d", MaxLength)

	// ErrNoUsableClass is returned when every enabled class is fully excluded,
	// or no class is enabled at all.
	ErrNoUsableClass = errors.New("no enabled character class has characters left after exclusions")

	// ErrLengthTooShort is returned when the length cannot hold one character
	// from each usable class.
	ErrLengthTooShort = errors.New("password length is too short to include every enabled character class")

	// ErrEntropy is returned when the random source fails.
	ErrEntropy = errors.New("random source failed")

	// ErrUnknownClass is returned by ParseClass for unrecognized names.
	ErrUnknownClass = errors.New("unknown character class")
)
