// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holomush/passgen/internal/password"
)

// recordingSource records every bound passed to IntN.
type recordingSource struct {
	inner password.Source
	calls []int
}

func (s *recordingSource) IntN(n int) (int, error) {
	s.calls = append(s.calls, n)
	return s.inner.IntN(n)
}

// constSource always picks the lowest index.
type constSource struct{}

func (constSource) IntN(int) (int, error) { return 0, nil }

// lastSource always picks the highest index.
type lastSource struct{}

func (lastSource) IntN(n int) (int, error) { return n - 1, nil }

// failAfterSource succeeds for ok calls, then fails.
type failAfterSource struct {
	ok    int
	calls int
}

var errSourceBroken = errors.New("source broken")

func (s *failAfterSource) IntN(int) (int, error) {
	s.calls++
	if s.calls > s.ok {
		return 0, errSourceBroken
	}
	return 0, nil
}

// chiSquare returns the chi-square statistic of counts against a uniform
// expectation.
func chiSquare(counts []int, total int) float64 {
	expected := float64(total) / float64(len(counts))
	var stat float64
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

// assertValidPassword checks the length, inclusion, and exclusion properties.
func assertValidPassword(t *testing.T, req password.Request, pw string) {
	t.Helper()

	assert.Len(t, pw, req.Length)

	for _, r := range pw {
		assert.False(t, req.Exclude.Contains(r), "password %q contains excluded %q", pw, r)
	}

	var allowed strings.Builder
	for _, c := range req.Classes.Classes() {
		allowed.WriteString(c.Alphabet())
	}
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(allowed.String(), r), "password %q contains %q outside enabled classes", pw, r)
	}

	pools := password.BuildPools(req.Exclude)
	for _, c := range pools.Usable(req.Classes).Classes() {
		assert.True(t, strings.ContainsAny(pw, c.Alphabet()), "password %q has no %s character", pw, c)
	}
}

func classOf(t *testing.T, ch rune) password.Class {
	t.Helper()
	for _, c := range password.Classes() {
		if strings.ContainsRune(c.Alphabet(), ch) {
			return c
		}
	}
	t.Fatalf("character %q belongs to no class", ch)
	return 0
}
