// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package password

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Assembler turns guaranteed characters into a finished password.
type Assembler struct {
	src     Source
	sampler Sampler
}

// NewAssembler returns an Assembler drawing from src.
func NewAssembler(src Source) Assembler {
	return Assembler{src: src, sampler: NewSampler(src)}
}

// Assemble fills required up to length with characters drawn uniformly from
// union, then shuffles the result. It panics if length is shorter than
// required, which CheckFeasibility rules out.
func (a Assembler) Assemble(required, union []byte, length int) ([]byte, error) {
	if length < len(required) {
		panic(fmt.Sprintf("password: length %d shorter than %d required characters", length, len(required)))
	}

	fill, err := a.sampler.SampleMany(union, length-len(required))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, length)
	buf = append(buf, required...)
	buf = append(buf, fill...)

	if err := a.Shuffle(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Shuffle permutes buf in place with Fisher-Yates. Position i swaps with a
// uniform index in [0, i], so every ordering is equally likely.
func (a Assembler) Shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		j, err := a.src.IntN(i + 1)
		if err != nil {
			return oops.Code(CodeEntropyFailed).
				With("position", i).
				Wrap(errors.Join(ErrEntropy, err))
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
