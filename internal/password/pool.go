// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

// CharSet is a set of individual characters.
type CharSet map[rune]struct{}

// NewCharSet returns the set of characters in s. Duplicates collapse.
func NewCharSet(s string) CharSet {
	set := make(CharSet, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is in the set. A nil set contains nothing.
func (s CharSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Pool is the part of a class alphabet left after exclusions, in alphabet order.
type Pool struct {
	Class Class
	Chars []byte
}

// Usable reports whether the pool has at least one character.
func (p Pool) Usable() bool {
	return len(p.Chars) > 0
}

// Pools holds one pool per class, indexed by Class.
type Pools [numClasses]Pool

// BuildPools filters every class alphabet through the exclusion set.
// Excluded characters that belong to no alphabet are ignored.
func BuildPools(exclude CharSet) Pools {
	var pools Pools
	for _, c := range Classes() {
		alphabet := c.Alphabet()
		chars := make([]byte, 0, len(alphabet))
		for i := 0; i < len(alphabet); i++ {
			if !exclude.Contains(rune(alphabet[i])) {
				chars = append(chars, alphabet[i])
			}
		}
		pools[c] = Pool{Class: c, Chars: chars}
	}
	return pools
}

// Get returns the pool for c.
func (p *Pools) Get(c Class) Pool {
	if c >= numClasses {
		return Pool{Class: c}
	}
	return p[c]
}

// Usable returns the classes of enabled that have a non-empty pool.
func (p *Pools) Usable(enabled ClassSet) ClassSet {
	var usable ClassSet
	for _, c := range enabled.Classes() {
		if p[c].Usable() {
			usable = usable.With(c)
		}
	}
	return usable
}

// Union concatenates the pools of the given classes. Class alphabets are
// disjoint, so each character appears once and is equally likely when
// sampled.
func (p *Pools) Union(classes ClassSet) []byte {
	n := 0
	for _, c := range classes.Classes() {
		n += len(p[c].Chars)
	}
	union := make([]byte, 0, n)
	for _, c := range classes.Classes() {
		union = append(union, p[c].Chars...)
	}
	return union
}
