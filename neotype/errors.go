// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package neotype

import (
	"errors"
	"fmt"
)

// ErrKMismatch means two k-mers/sketches disagree on k.
var ErrKMismatch = errors.New("neotype: k mismatch")

// ErrInvalidExtension means a sketch filename lacks a recognised extension.
var ErrInvalidExtension = errors.New("neotype: sketch file name must end in .msh or .fsh")

// ErrInvalidFileFormat means a sketch file's magic number didn't match.
var ErrInvalidFileFormat = errors.New("neotype: invalid sketch file format")

// ErrInvalidConsensusTop means the number of top-ranked references to
// reduce to a consensus (predict's --consensus N) was even.
var ErrInvalidConsensusTop = errors.New("neotype: consensus size (--consensus) must be odd")

// ErrInvalidConsensusGenotype means a consensus column had no votes to count.
var ErrInvalidConsensusGenotype = errors.New("neotype: no genotype values available to build consensus")

// ErrInvalidSize means the reference collection and genotype table have
// different numbers of rows.
var ErrInvalidSize = errors.New("neotype: reference sketch count and genotype row count differ")

// InvalidIdentifierError means row i of the genotype table doesn't name
// the same reference as sketch i.
type InvalidIdentifierError struct {
	Index    int
	Expected string
	Got      string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("neotype: genotype row %d: expected identifier %q (from sketch), got %q",
		e.Index, e.Expected, e.Got)
}

// InvalidSketchMatchError means two sketches being compared disagree on a
// parameter that must match for their hashes to be comparable.
type InvalidSketchMatchError struct {
	NameA, Field string
	ValueA       interface{}
	NameB        string
	ValueB       interface{}
}

func (e *InvalidSketchMatchError) Error() string {
	return fmt.Sprintf("neotype: sketch %q and %q disagree on %s (%v vs %v)",
		e.NameA, e.NameB, e.Field, e.ValueA, e.ValueB)
}
