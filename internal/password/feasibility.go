// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import "github.com/samber/oops"

// CheckFeasibility reports whether a password of the given length can be
// built from the enabled classes. Enabled classes whose pool is empty are
// dropped rather than reported; only a request with no usable class at all
// fails with ErrNoUsableClass. Lengths outside 1..MaxLength fail with
// ErrInvalidLength. It returns the usable classes on success.
func CheckFeasibility(enabled ClassSet, pools *Pools, length int) (ClassSet, error) {
	if length < 1 || length > MaxLength {
		return 0, oops.Code(CodeInvalidLength).
			With("length", length).
			With("max_length", MaxLength).
			Wrap(ErrInvalidLength)
	}

	usable := pools.Usable(enabled)
	if usable.Len() == 0 {
		return 0, oops.Code(CodeNoUsableClass).
			With("enabled", enabled.String()).
			Wrap(ErrNoUsableClass)
	}

	if length < usable.Len() {
		return 0, oops.Code(CodeLengthTooShort).
			With("length", length).
			With("required", usable.Len()).
			Wrap(ErrLengthTooShort)
	}

	return usable, nil
}
