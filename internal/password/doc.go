// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package password generates random passwords that satisfy character class
// constraints.
//
// # Pipeline
//
// A single Generate call runs four stages, none of which keep state between
// calls:
//   - BuildPools removes excluded characters from each class alphabet
//   - CheckFeasibility rejects requests that cannot be satisfied
//   - Sampler draws characters uniformly from a pool
//   - Assembler adds free fill to the guaranteed characters and shuffles
//
// All randomness comes from a Source. The default Source reads crypto/rand
// and is safe for concurrent use, so a Generator may be shared between
// goroutines.
//
// # Errors
//
// Errors returned by Generate are oops errors carrying one of the Code*
// constants and wrapping the matching Err* sentinel.
package password
