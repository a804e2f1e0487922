// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/passgen/internal/password"
	"github.com/holomush/passgen/pkg/errutil"
)

func TestGenerate_Scenarios(t *testing.T) {
	t.Run("digits only", func(t *testing.T) {
		req := password.Request{Length: 8, Classes: password.NewClassSet(password.Digit)}
		for i := 0; i < 200; i++ {
			pw, err := password.Generate(req)
			require.NoError(t, err)
			assert.Len(t, pw, 8)
			assert.Empty(t, strings.Trim(pw, password.DigitAlphabet), "non-digit in %q", pw)
		}
	})

	t.Run("length equals class count", func(t *testing.T) {
		req := password.Request{Length: 4, Classes: password.AllClasses}
		for i := 0; i < 200; i++ {
			pw, err := password.Generate(req)
			require.NoError(t, err)
			require.Len(t, pw, 4)

			perClass := make(map[password.Class]int)
			for _, r := range pw {
				perClass[classOf(t, r)]++
			}
			for _, c := range password.Classes() {
				assert.Equal(t, 1, perClass[c], "password %q", pw)
			}
		}
	})

	t.Run("length below class count", func(t *testing.T) {
		pw, err := password.Generate(password.Request{Length: 3, Classes: password.AllClasses})
		require.Error(t, err)
		assert.Empty(t, pw)
		assert.True(t, errors.Is(err, password.ErrLengthTooShort))
		errutil.AssertErrorCode(t, err, password.CodeLengthTooShort)
	})

	t.Run("only class fully excluded", func(t *testing.T) {
		pw, err := password.Generate(password.Request{
			Length:  5,
			Classes: password.NewClassSet(password.Upper),
			Exclude: password.NewCharSet(password.UpperAlphabet),
		})
		require.Error(t, err)
		assert.Empty(t, pw)
		assert.True(t, errors.Is(err, password.ErrNoUsableClass))
		errutil.AssertErrorCode(t, err, password.CodeNoUsableClass)
	})

	t.Run("default request", func(t *testing.T) {
		req := password.DefaultRequest()
		pw, err := password.Generate(req)
		require.NoError(t, err)
		assertValidPassword(t, req, pw)
	})

	t.Run("ambiguous characters excluded", func(t *testing.T) {
		req := password.Request{Length: 32, Classes: password.AllClasses, Exclude: password.NewCharSet("l1O0I|")}
		for i := 0; i < 200; i++ {
			pw, err := password.Generate(req)
			require.NoError(t, err)
			assertValidPassword(t, req, pw)
		}
	})

	t.Run("fully excluded class is dropped", func(t *testing.T) {
		req := password.Request{
			Length:  3,
			Classes: password.AllClasses,
			Exclude: password.NewCharSet(password.SymbolAlphabet),
		}
		pw, err := password.Generate(req)
		require.NoError(t, err)
		assertValidPassword(t, req, pw)
		assert.False(t, strings.ContainsAny(pw, password.SymbolAlphabet))
	})
}

// Every combination of classes, exclusions, and small lengths either fails
// with the expected error or yields a valid password. None may reach the
// sampler's empty pool panic.
func TestGenerate_ExhaustiveSweep(t *testing.T) {
	exclusions := []string{
		"",
		"A",
		"l1O0",
		password.UpperAlphabet,
		password.UpperAlphabet + password.DigitAlphabet,
		password.LowerAlphabet + password.SymbolAlphabet + "Z",
		password.UpperAlphabet + password.LowerAlphabet + password.DigitAlphabet + password.SymbolAlphabet,
		"é€\x00",
	}

	gen := password.NewGenerator()
	for set := password.ClassSet(0); set <= password.AllClasses; set++ {
		for _, ex := range exclusions {
			for length := -1; length <= 6; length++ {
				req := password.Request{Length: length, Classes: set, Exclude: password.NewCharSet(ex)}
				name := fmt.Sprintf("%s/%q/%d", set, ex, length)

				var (
					pw  string
					err error
				)
				require.NotPanics(t, func() { pw, err = gen.Generate(req) }, name)

				pools := password.BuildPools(req.Exclude)
				usable := pools.Usable(set).Len()
				switch {
				case length < 1:
					assert.True(t, errors.Is(err, password.ErrInvalidLength), name)
				case usable == 0:
					assert.True(t, errors.Is(err, password.ErrNoUsableClass), name)
				case length < usable:
					assert.True(t, errors.Is(err, password.ErrLengthTooShort), name)
				default:
					require.NoError(t, err, name)
					assertValidPassword(t, req, pw)
				}
			}
		}
	}
}

// Guaranteed characters are drawn in class order; after the shuffle no
// position should favour any class.
func TestGenerate_NoPositionalBias(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	req := password.Request{Length: 4, Classes: password.AllClasses}
	const rounds = 20_000

	var counts [4][4]int
	for i := 0; i < rounds; i++ {
		pw, err := password.Generate(req)
		require.NoError(t, err)
		for pos, r := range pw {
			counts[pos][classOf(t, r)]++
		}
	}

	for pos, perClass := range counts {
		// 3 degrees of freedom per position.
		assert.Less(t, chiSquare(perClass[:], rounds), 30.0, "position %d counts %v", pos, perClass)
	}
}

func TestGenerate_SourceFailure(t *testing.T) {
	for _, ok := range []int{0, 2, 7} {
		t.Run(fmt.Sprintf("fails after %d draws", ok), func(t *testing.T) {
			gen := password.NewGenerator(password.WithSource(&failAfterSource{ok: ok}))
			pw, err := gen.Generate(password.Request{Length: 6, Classes: password.AllClasses})
			require.Error(t, err)
			assert.Empty(t, pw)
			assert.True(t, errors.Is(err, password.ErrEntropy))
			errutil.AssertErrorCode(t, err, password.CodeEntropyFailed)
		})
	}
}

func TestGenerate_DeterministicSource(t *testing.T) {
	// Index 0 everywhere: required "Aa0!", fill "A", then the shuffle rotates.
	gen := password.NewGenerator(password.WithSource(constSource{}))
	pw, err := gen.Generate(password.Request{Length: 5, Classes: password.AllClasses})
	require.NoError(t, err)
	assert.Equal(t, "a0!AA", pw)
}

func TestGenerateN(t *testing.T) {
	gen := password.NewGenerator()

	pws, err := gen.GenerateN(password.DefaultRequest(), 5)
	require.NoError(t, err)
	assert.Len(t, pws, 5)

	seen := make(map[string]bool)
	for _, pw := range pws {
		seen[pw] = true
	}
	assert.Len(t, seen, 5)

	pws, err = gen.GenerateN(password.DefaultRequest(), 0)
	require.NoError(t, err)
	assert.Empty(t, pws)

	_, err = gen.GenerateN(password.Request{Length: 1, Classes: password.AllClasses}, 3)
	assert.True(t, errors.Is(err, password.ErrLengthTooShort))
}

func TestGenerate_HugeLengthIsAnErrorNotAPanic(t *testing.T) {
	var (
		pw  string
		err error
	)
	require.NotPanics(t, func() {
		pw, err = password.Generate(password.Request{Length: 1 << 60, Classes: password.AllClasses})
	})
	assert.Empty(t, pw)
	require.ErrorIs(t, err, password.ErrInvalidLength)
	errutil.AssertErrorContext(t, err, "max_length", password.MaxLength)

	pw, err = password.Generate(password.Request{Length: password.MaxLength, Classes: password.AllClasses})
	require.NoError(t, err)
	assert.Len(t, pw, password.MaxLength)
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	gen := password.NewGenerator()
	req := password.DefaultRequest()

	var wg sync.WaitGroup
	results := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pw, err := gen.Generate(req)
				if err != nil {
					results <- err
					return
				}
				if len(pw) != req.Length {
					results <- fmt.Errorf("got length %d", len(pw))
					return
				}
			}
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		t.Error(err)
	}
}
