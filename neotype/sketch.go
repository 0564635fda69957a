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

import "math"

// SketchKind tags which retention rule a SketchParams value describes.
type SketchKind uint8

const (
	// MinHashBottomK retains the SketchSize smallest hashes.
	MinHashBottomK SketchKind = iota
	// Scaled retains every hash below a fraction of the hash space.
	Scaled
)

// SketchParams selects between bottom-k MinHash and scaled MinHash,
// both built from the same 64-bit hash of canonical k-mers.
type SketchParams struct {
	Kind       SketchKind
	SketchSize int     // MinHashBottomK: number of retained hashes
	KmerLength int      // k
	HashSeed   uint64
	Scale      float64 // Scaled: (0,1]
}

// MaxHash returns the exclusive retention ceiling of a Scaled sketch,
// floor(u64::MAX * scale): only hashes strictly below it are retained.
// It is 0 (meaning "no ceiling") for MinHashBottomK params.
func (p SketchParams) MaxHash() uint64 {
	if p.Kind != Scaled || p.Scale <= 0 {
		return 0
	}
	if p.Scale >= 1 {
		return math.MaxUint64
	}
	return uint64(float64(uint64(math.MaxUint64)) * p.Scale)
}

// scaleOf returns 0 for bottom-k params, signalling "no scale ceiling",
// and the configured fraction otherwise.
func (p SketchParams) scaleOf() float64 {
	if p.Kind != Scaled {
		return 0
	}
	return p.Scale
}

// Compatible checks param compatibility between two sketches and
// returns the effective min_scale to use for a shared-hash call
// between them.
func Compatible(aName string, a SketchParams, bName string, b SketchParams) (minScale float64, err error) {
	if a.KmerLength != b.KmerLength {
		return 0, &InvalidSketchMatchError{aName, "kmer_length", a.KmerLength, bName, b.KmerLength}
	}
	if a.HashSeed != b.HashSeed {
		return 0, &InvalidSketchMatchError{aName, "hash_seed", a.HashSeed, bName, b.HashSeed}
	}
	if a.Kind != b.Kind {
		return 0, &InvalidSketchMatchError{aName, "kind", a.Kind, bName, b.Kind}
	}
	if a.Kind != Scaled {
		return 0, nil
	}
	sa, sb := a.scaleOf(), b.scaleOf()
	if sa < sb {
		return sa, nil
	}
	return sb, nil
}

// HashedKmer is one retained hash in a sketch, with its occurrence count
// and (optionally) the canonical k-mer literal it came from.
type HashedKmer struct {
	Hash  uint64
	Count uint32
	Kmer  []byte // optional, not needed on the hot path
}

// Sketch is a single reference or query MinHash sketch. Hashes must
// stay sorted ascending and duplicate-free.
type Sketch struct {
	Name      string
	SeqLength int64
	Hashes    []HashedKmer
	Params    SketchParams
}
