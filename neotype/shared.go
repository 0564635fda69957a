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

// MaxHashForScale computes floor(u64::MAX * scale) the way SketchParams.MaxHash
// does, for a bare scale value. Callers that need the scaled-comparison
// denominator (e.g. a Jaccard-style ratio on top of Common's count) use
// this; Common itself only needs the counter.
func MaxHashForScale(scale float64) uint64 {
	if scale <= 0 {
		return 0
	}
	if scale >= 1 {
		return math.MaxUint64
	}
	return uint64(float64(uint64(math.MaxUint64)) * scale)
}

// Common is the shared-hash kernel: given two sorted, duplicate-free
// hash sequences and the effective min_scale between them, it returns the
// count of hashes present in both.
//
// A and B must be sorted ascending with no duplicate Hash values.
// Complexity is O(len(A)+len(B)); no allocation.
func Common(a, b []HashedKmer, minScale float64) uint64 {
	var common uint64
	var i, j int
	na, nb := len(a), len(b)

	for i < na && j < nb {
		ha, hb := a[i].Hash, b[j].Hash
		switch {
		case ha < hb:
			i++
		case ha > hb:
			j++
		default:
			common++
			i++
			j++
		}
	}

	// When scaled, the exhausted side's remaining hashes below max_hash
	// only define the comparison denominator for the caller; they never
	// add to the shared count themselves.
	return common
}
