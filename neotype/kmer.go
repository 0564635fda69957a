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
	"bytes"
	"errors"
)

// ErrIllegalBase means a base outside the IUPAC alphabet was seen.
var ErrIllegalBase = errors.New("neotype: illegal base")

// ErrKOverflow means k is not in [1, 32].
var ErrKOverflow = errors.New("neotype: k (1-32) overflow")

// ErrNotConsecutiveKmers means two k-mers handed to the rolling encoder
// are not adjacent windows of the same sequence.
var ErrNotConsecutiveKmers = errors.New("neotype: not consecutive k-mers")

// Encode 2-bit packs a k-mer into a uint64. Degenerate IUPAC bases fall
// back to their first listed base, matching the legacy Mash/Finch
// convention this sketch format has to stay compatible with.
func Encode(kmer []byte) (code uint64, err error) {
	k := len(kmer)
	if k == 0 || k > 32 {
		return 0, ErrKOverflow
	}

	for i := range kmer {
		switch kmer[k-1-i] {
		case 'G', 'g', 'K', 'k':
			code |= 2 << uint64(i*2)
		case 'T', 't', 'U', 'u':
			code |= 3 << uint64(i*2)
		case 'C', 'c', 'S', 's', 'B', 'b', 'Y', 'y':
			code |= 1 << uint64(i*2)
		case 'A', 'a', 'N', 'n', 'M', 'm', 'V', 'v', 'H', 'h', 'R', 'r', 'D', 'd', 'W', 'w':
			code |= 0
		default:
			return code, ErrIllegalBase
		}
	}
	return code, nil
}

// MustEncodeFromFormerKmer rolls the window forward by one base, assuming
// kmer and leftKmer are both valid and consecutive.
func MustEncodeFromFormerKmer(kmer []byte, leftKmer []byte, leftCode uint64) (uint64, error) {
	leftCode = leftCode & ((1 << (uint(len(kmer)-1) << 1)) - 1) << 2
	switch kmer[len(kmer)-1] {
	case 'G', 'g', 'K', 'k':
		leftCode |= 2
	case 'T', 't', 'U', 'u':
		leftCode |= 3
	case 'C', 'c', 'S', 's', 'B', 'b', 'Y', 'y':
		leftCode |= 1
	case 'A', 'a', 'N', 'n', 'M', 'm', 'V', 'v', 'H', 'h', 'R', 'r', 'D', 'd', 'W', 'w':
		// leftCode |= 0
	default:
		return leftCode, ErrIllegalBase
	}
	return leftCode, nil
}

// EncodeFromFormerKmer rolls the window forward by one base, checking that
// kmer and leftKmer are actually consecutive.
func EncodeFromFormerKmer(kmer []byte, leftKmer []byte, leftCode uint64) (uint64, error) {
	if len(kmer) == 0 {
		return 0, ErrKOverflow
	}
	if len(kmer) != len(leftKmer) {
		return 0, ErrKMismatch
	}
	if !bytes.Equal(kmer[0:len(kmer)-1], leftKmer[1:len(leftKmer)]) {
		return 0, ErrNotConsecutiveKmers
	}
	return MustEncodeFromFormerKmer(kmer, leftKmer, leftCode)
}

// Reverse returns the code of the reversed sequence.
func Reverse(code uint64, k int) (c uint64) {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	for i := 0; i < k; i++ {
		c <<= 2
		c |= code & 3
		code >>= 2
	}
	return
}

// Complement returns the code of the complement sequence.
func Complement(code uint64, k int) (c uint64) {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	for i := 0; i < k; i++ {
		c |= (code&3 ^ 3) << uint(i<<1)
		code >>= 2
	}
	return
}

// RevComp returns the code of the reverse complement sequence.
func RevComp(code uint64, k int) (c uint64) {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	for i := 0; i < k; i++ {
		c <<= 2
		c |= code&3 ^ 3
		code >>= 2
	}
	return
}

// bit2base maps a 2-bit code back to its base.
var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// Decode converts a code back into its literal sequence.
func Decode(code uint64, k int) []byte {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	kmer := make([]byte, k)
	for i := 0; i < k; i++ {
		kmer[k-1-i] = bit2base[code&3]
		code >>= 2
	}
	return kmer
}

// KmerCode is a k-mer packed into a uint64, paired with its length.
type KmerCode struct {
	Code uint64
	K    int
}

// NewKmerCode builds a KmerCode from a literal k-mer.
func NewKmerCode(kmer []byte) (KmerCode, error) {
	code, err := Encode(kmer)
	if err != nil {
		return KmerCode{}, err
	}
	return KmerCode{code, len(kmer)}, nil
}

// NewKmerCodeMustFromFormerOne rolls a KmerCode forward by one base,
// assuming kmer and leftKmer are both valid and consecutive.
func NewKmerCodeMustFromFormerOne(kmer []byte, leftKmer []byte, preKcode KmerCode) (KmerCode, error) {
	code, err := MustEncodeFromFormerKmer(kmer, leftKmer, preKcode.Code)
	if err != nil {
		return KmerCode{}, err
	}
	return KmerCode{code, len(kmer)}, nil
}

// RevComp returns the KmerCode of the reverse complement sequence.
func (kcode KmerCode) RevComp() KmerCode {
	return KmerCode{RevComp(kcode.Code, kcode.K), kcode.K}
}

// Canonical returns the lexicographically smaller of kcode and its reverse
// complement — the canonical k-mer used for all hashing in this package.
func (kcode KmerCode) Canonical() KmerCode {
	rc := kcode.RevComp()
	if rc.Code < kcode.Code {
		return rc
	}
	return kcode
}

// Bytes returns the literal k-mer.
func (kcode KmerCode) Bytes() []byte {
	return Decode(kcode.Code, kcode.K)
}

// String returns the literal k-mer.
func (kcode KmerCode) String() string {
	return string(Decode(kcode.Code, kcode.K))
}
