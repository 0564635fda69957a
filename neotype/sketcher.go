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
	"sort"

	"github.com/shenwei356/bio/seq"
	"github.com/twotwotwo/sorts/sortutil"
)

// Record is the minimal shape neotype needs from an already-parsed
// FASTA/FASTQ record — the tokenizer itself is out of scope.
type Record struct {
	ID  string
	Seq *seq.Seq
}

// Sketcher incrementally hashes the k-mers of one or more incoming
// records into a retained set, under the parametric rule of its
// SketchParams. Instantiate one per read for the per-read usage
// pattern, or reuse across many records for the accumulating pattern.
type Sketcher struct {
	params SketchParams

	// retained maps hash -> count. A plain map is used for both retention
	// rules: under Scaled every hash below the ceiling is kept outright;
	// under MinHashBottomK the map is pruned back to SketchSize entries
	// whenever it grows too far past that bound, amortizing the cost of
	// keeping only the smallest SketchSize hashes.
	retained map[uint64]uint32
	maxHash  uint64 // 0 means "no ceiling" (bottom-k mode)

	keepBuf []uint64 // scratch for bottom-k pruning, reused across calls
}

// NewSketcher returns a Sketcher parameterised by the reference
// SketchParams it must stay compatible with.
func NewSketcher(params SketchParams) *Sketcher {
	return &Sketcher{
		params:   params,
		retained: make(map[uint64]uint32, params.SketchSize+1),
		maxHash:  params.MaxHash(),
	}
}

// Process canonicalises record's sequence, enumerates all length-k
// windows, hashes each canonical k-mer, and folds it into the retained
// set. A record shorter than k contributes nothing and is not an error
//.
func (s *Sketcher) Process(record Record) error {
	k := s.params.KmerLength
	sequence := record.Seq.Seq
	l := len(sequence)
	if l < k {
		return nil
	}

	var kcode, preKcode KmerCode
	var preKmer []byte
	var err error

	end := l - k
	for i := 0; i <= end; i++ {
		kmer := sequence[i : i+k]
		if i == 0 || preKmer == nil {
			kcode, err = NewKmerCode(kmer)
		} else {
			kcode, err = NewKmerCodeMustFromFormerOne(kmer, preKmer, preKcode)
		}
		if err != nil {
			// an ambiguous/invalid base resets rolling state; fall back
			// to a fresh encode for the next window instead of aborting
			// the whole record.
			preKmer = nil
			continue
		}
		preKmer, preKcode = kmer, kcode

		canon := kcode.Canonical()
		h := hashKmer(canon.Code, s.params.HashSeed)
		s.fold(h)
	}
	return nil
}

// fold applies the retention rule for a single hash value.
func (s *Sketcher) fold(h uint64) {
	if s.params.Kind == Scaled {
		if s.maxHash == 0 || h < s.maxHash {
			s.retained[h]++
		}
		return
	}

	// MinHashBottomK: keep every hash until the map grows well past
	// SketchSize, then prune back down to the SketchSize smallest. This
	// keeps the common case (map smaller than ~2x target) allocation-light.
	s.retained[h]++
	if len(s.retained) > s.params.SketchSize*2+16 {
		s.prune()
	}
}

// prune trims s.retained back down to the SketchSize smallest hashes.
func (s *Sketcher) prune() {
	if cap(s.keepBuf) < len(s.retained) {
		s.keepBuf = make([]uint64, 0, len(s.retained))
	}
	s.keepBuf = s.keepBuf[:0]
	for h := range s.retained {
		s.keepBuf = append(s.keepBuf, h)
	}
	sortutil.Uint64s(s.keepBuf)

	if len(s.keepBuf) <= s.params.SketchSize {
		return
	}
	for _, h := range s.keepBuf[s.params.SketchSize:] {
		delete(s.retained, h)
	}
}

// ToVec emits the current retained set as a sorted, deduplicated
// []HashedKmer. It may be called multiple times; each call costs at most
// a sort of the current working buffer and never mutates accumulator
// state.
func (s *Sketcher) ToVec() []HashedKmer {
	out := make([]HashedKmer, 0, len(s.retained))
	for h, c := range s.retained {
		out = append(out, HashedKmer{Hash: h, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	if s.params.Kind == MinHashBottomK && len(out) > s.params.SketchSize {
		out = out[:s.params.SketchSize]
	}
	return out
}

// Len reports the current number of retained distinct hashes.
func (s *Sketcher) Len() int { return len(s.retained) }
