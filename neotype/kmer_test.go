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
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{"A", "ACGT", "TTTTTTTTTT", "ACGTACGTACGTACGTACGTACGTACGTACGT"}
	for _, s := range cases {
		code, err := Encode([]byte(s))
		if err != nil {
			t.Fatalf("Encode(%q) error: %v", s, err)
		}
		got := Decode(code, len(s))
		if !bytes.Equal(got, []byte(s)) {
			t.Fatalf("Decode(Encode(%q)) = %q", s, got)
		}
	}
}

func TestEncodeIllegalBase(t *testing.T) {
	if _, err := Encode([]byte("ACGZ")); err != ErrIllegalBase {
		t.Fatalf("Encode with illegal base = %v, want ErrIllegalBase", err)
	}
}

func TestEncodeKOverflow(t *testing.T) {
	if _, err := Encode(nil); err != ErrKOverflow {
		t.Fatalf("Encode(nil) = %v, want ErrKOverflow", err)
	}
	big := make([]byte, 33)
	for i := range big {
		big[i] = 'A'
	}
	if _, err := Encode(big); err != ErrKOverflow {
		t.Fatalf("Encode(33-mer) = %v, want ErrKOverflow", err)
	}
}

// TestRevCompInvolution checks RevComp(RevComp(x)) == x, the invariant
// that makes canonicalization well defined.
func TestRevCompInvolution(t *testing.T) {
	seqs := []string{"ACGT", "AAAACCCCGGGGTTTT", "GATTACA"}
	for _, s := range seqs {
		code, _ := Encode([]byte(s))
		k := len(s)
		rc := RevComp(code, k)
		if back := RevComp(rc, k); back != code {
			t.Fatalf("RevComp not involutive for %q: got %d want %d", s, back, code)
		}
	}
}

func TestRevCompKnownValue(t *testing.T) {
	code, _ := Encode([]byte("ACGT"))
	rc := RevComp(code, 4)
	if got := Decode(rc, 4); !bytes.Equal(got, []byte("ACGT")) {
		t.Fatalf("RevComp(ACGT) decoded = %q, want ACGT (self-reverse-complementary)", got)
	}
}

// TestCanonicalIsDeterministic checks Canonical always returns the
// smaller of a k-mer and its reverse complement, regardless of which
// orientation it started from.
func TestCanonicalIsDeterministic(t *testing.T) {
	fwd, _ := NewKmerCode([]byte("AACCGGTT"))
	rev := fwd.RevComp()

	c1 := fwd.Canonical()
	c2 := rev.Canonical()
	if c1.Code != c2.Code {
		t.Fatalf("Canonical(fwd)=%d != Canonical(revcomp(fwd))=%d", c1.Code, c2.Code)
	}
}

func TestEncodeFromFormerKmerMatchesFreshEncode(t *testing.T) {
	seq := []byte("ACGTACGTAC")
	k := 4
	prev, err := NewKmerCode(seq[0:k])
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i+k <= len(seq); i++ {
		want, err := NewKmerCode(seq[i : i+k])
		if err != nil {
			t.Fatal(err)
		}
		got, err := NewKmerCodeMustFromFormerOne(seq[i:i+k], seq[i-1:i-1+k], prev)
		if err != nil {
			t.Fatal(err)
		}
		if got.Code != want.Code {
			t.Fatalf("rolling encode at %d = %d, want %d", i, got.Code, want.Code)
		}
		prev = got
	}
}

func TestEncodeFromFormerKmerRejectsNonConsecutive(t *testing.T) {
	_, err := EncodeFromFormerKmer([]byte("ACGT"), []byte("TTTT"), 0)
	if err != ErrNotConsecutiveKmers {
		t.Fatalf("EncodeFromFormerKmer(non-consecutive) = %v, want ErrNotConsecutiveKmers", err)
	}
}
