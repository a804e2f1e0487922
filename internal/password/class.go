// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Class identifies a character class.
type Class uint8

// Recognized classes in declaration order. Guaranteed characters are drawn
// in this order before the final shuffle.
const (
	Upper Class = iota
	Lower
	Digit
	Symbol

	numClasses
)

// Canonical alphabets.
const (
	UpperAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerAlphabet  = "abcdefghijklmnopqrstuvwxyz"
	DigitAlphabet  = "0123456789"
	SymbolAlphabet = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

var classNames = [numClasses]string{"upper", "lower", "digit", "symbol"}

var alphabets = [numClasses]string{UpperAlphabet, LowerAlphabet, DigitAlphabet, SymbolAlphabet}

// Classes returns every class in declaration order.
func Classes() []Class {
	return []Class{Upper, Lower, Digit, Symbol}
}

// String returns the lowercase class name.
func (c Class) String() string {
	if c >= numClasses {
		return fmt.Sprintf("class(%d)", uint8(c))
	}
	return classNames[c]
}

// Alphabet returns the full character set of the class.
func (c Class) Alphabet() string {
	if c >= numClasses {
		return ""
	}
	return alphabets[c]
}

// ParseClass parses a class name. Plural forms ("digits", "symbols") are accepted.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper", "uppercase":
		return Upper, nil
	case "lower", "lowercase":
		return Lower, nil
	case "digit", "digits", "number", "numbers":
		return Digit, nil
	case "symbol", "symbols":
		return Symbol, nil
	default:
		return 0, oops.Code(CodeUnknownClass).With("class", s).Errorf("%w: %q", ErrUnknownClass, s)
	}
}

// ClassSet is a set of classes.
type ClassSet uint8

// AllClasses enables every class.
const AllClasses = ClassSet(1<<Upper | 1<<Lower | 1<<Digit | 1<<Symbol)

// NewClassSet returns a set holding the given classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// With returns s with c added.
func (s ClassSet) With(c Class) ClassSet {
	if c >= numClasses {
		return s
	}
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool {
	return c < numClasses && s&(1<<c) != 0
}

// Len returns the number of classes in the set.
func (s ClassSet) Len() int {
	n := 0
	for _, c := range Classes() {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Classes returns the members in declaration order.
func (s ClassSet) Classes() []Class {
	out := make([]Class, 0, numClasses)
	for _, c := range Classes() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String joins the class names with commas.
func (s ClassSet) String() string {
	names := make([]string, 0, numClasses)
	for _, c := range s.Classes() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

// ParseClassSet parses class names into a set.
func ParseClassSet(names []string) (ClassSet, error) {
	var s ClassSet
	for _, name := range names {
		c, err := ParseClass(name)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}
