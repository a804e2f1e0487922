// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

// DefaultLength is the length used when callers do not choose one.
const DefaultLength = 16

// MaxLength is the longest password Generate will build.
const MaxLength = 4096

// Request describes the password to generate.
type Request struct {
	// Length is the exact number of characters, from 1 to MaxLength.
	Length int
	// Classes lists the enabled classes. Each one with characters left after
	// exclusions contributes at least one character.
	Classes ClassSet
	// Exclude holds characters that must not appear.
	Exclude CharSet
}

// DefaultRequest enables every class at DefaultLength with no exclusions.
func DefaultRequest() Request {
	return Request{Length: DefaultLength, Classes: AllClasses}
}

// Generator produces passwords. It holds no per-request state and is safe for
// concurrent use when its Source is.
type Generator struct {
	src Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the crypto/rand source. Intended for tests.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// NewGenerator creates a Generator backed by crypto/rand unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{src: CryptoSource()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate builds a password with the default Generator.
func Generate(req Request) (string, error) {
	return defaultGenerator.Generate(req)
}

// Generate builds a password satisfying req, or returns an error without
// producing output.
func (g *Generator) Generate(req Request) (string, error) {
	pools := BuildPools(req.Exclude)

	usable, err := CheckFeasibility(req.Classes, &pools, req.Length)
	if err != nil {
		return "", err
	}

	sampler := NewSampler(g.src)
	required := make([]byte, 0, usable.Len())
	for _, c := range usable.Classes() {
		ch, err := sampler.Sample(pools[c].Chars)
		if err != nil {
			return "", err
		}
		required = append(required, ch)
	}

	buf, err := NewAssembler(g.src).Assemble(required, pools.Union(usable), req.Length)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// GenerateN builds n passwords from the same request. It stops at the first
// error. Non-positive n yields no passwords.
func (g *Generator) GenerateN(req Request, n int) ([]string, error) {
	var out []string
	for i := 0; i < n; i++ {
		pw, err := g.Generate(req)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}
