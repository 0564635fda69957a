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
	"math/rand"
	"testing"
)

func hk(hashes ...uint64) []HashedKmer {
	out := make([]HashedKmer, len(hashes))
	for i, h := range hashes {
		out[i] = HashedKmer{Hash: h}
	}
	return out
}

// TestCommonBasic checks the shared-hash count between two sorted arrays.
func TestCommonBasic(t *testing.T) {
	a := hk(1, 2, 3)
	b := hk(1, 3, 5)
	if got := Common(a, b, 0); got != 2 {
		t.Fatalf("Common(A,B)=%d, want 2", got)
	}
}

// TestCommonOrderIndependence checks that Common is symmetric in its
// two array arguments.
func TestCommonOrderIndependence(t *testing.T) {
	a := hk(1, 2, 3, 7, 9)
	b := hk(2, 3, 5, 7)
	if Common(a, b, 0) != Common(b, a, 0) {
		t.Fatalf("Common should be symmetric")
	}
}

// TestCommonDisjointScaled checks that two disjoint sketches return 0
// shared hashes regardless of scale.
func TestCommonDisjointScaled(t *testing.T) {
	a := hk(10, 20, 30)
	b := hk(40, 50, 60)
	if got := Common(a, b, 0.001); got != 0 {
		t.Fatalf("Common(disjoint)=%d, want 0", got)
	}
}

// TestMaxHashForScale checks the floor(u64::MAX*scale) computation used
// for the scaled retention ceiling.
func TestMaxHashForScale(t *testing.T) {
	if got := MaxHashForScale(0); got != 0 {
		t.Fatalf("MaxHashForScale(0)=%d, want 0", got)
	}
	if got := MaxHashForScale(1); got == 0 {
		t.Fatalf("MaxHashForScale(1) should not be 0")
	}
}

// TestCommonFuzz checks Common against a brute-force set intersection
// on random sorted inputs.
func TestCommonFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		na := rng.Intn(50)
		nb := rng.Intn(50)
		setA := map[uint64]bool{}
		setB := map[uint64]bool{}
		for i := 0; i < na; i++ {
			setA[uint64(rng.Intn(500))] = true
		}
		for i := 0; i < nb; i++ {
			setB[uint64(rng.Intn(500))] = true
		}

		a := sortedHashes(setA)
		b := sortedHashes(setB)

		want := 0
		for h := range setA {
			if setB[h] {
				want++
			}
		}

		if got := Common(a, b, 0); int(got) != want {
			t.Fatalf("Common mismatch: got %d want %d (a=%v b=%v)", got, want, a, b)
		}
	}
}

func sortedHashes(set map[uint64]bool) []HashedKmer {
	out := make([]uint64, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	result := make([]HashedKmer, len(out))
	for i, h := range out {
		result[i] = HashedKmer{Hash: h}
	}
	return result
}
