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

import "testing"

// TestSSHRunningSums checks the per-reference running shared-hash sums
// across a short multi-read stream.
func TestSSHRunningSums(t *testing.T) {
	refs := []*Sketch{
		{Name: "X", Hashes: hk(1, 2, 3, 4, 5)},
		{Name: "Y", Hashes: hk(1, 2)},
		{Name: "Z", Hashes: hk(5, 6, 7)},
	}
	engine := NewSSHEngine(refs, 0, 1)

	engine.Step(hk(1, 2))
	ssh := engine.SSH()
	if ssh[0] != 2 || ssh[1] != 2 || ssh[2] != 0 {
		t.Fatalf("after read 1: ssh=%v, want [2 2 0]", ssh)
	}

	engine.Step(hk(3, 4, 5))
	ssh = engine.SSH()
	if ssh[0] != 5 || ssh[1] != 2 || ssh[2] != 1 {
		t.Fatalf("after read 2: ssh=%v, want [5 2 1]", ssh)
	}
}

// TestSSHMonotonic checks that per-reference running sums never decrease
// as reads accumulate.
func TestSSHMonotonic(t *testing.T) {
	refs := []*Sketch{
		{Name: "A", Hashes: hk(1, 2, 3, 4, 5, 6, 7, 8)},
		{Name: "B", Hashes: hk(2, 4, 6, 8, 10)},
	}
	engine := NewSSHEngine(refs, 0, 1)

	prev := make([]uint64, len(refs))
	reads := [][]uint64{{1, 2}, {3, 4, 5}, {6}, {}, {7, 8, 9, 10}}
	for _, r := range reads {
		engine.Step(hk(r...))
		ssh := engine.SSH()
		for i := range ssh {
			if ssh[i] < prev[i] {
				t.Fatalf("ssh[%d] decreased: %d -> %d", i, prev[i], ssh[i])
			}
			prev[i] = ssh[i]
		}
	}
}

// TestSSHLimit checks that the engine reports Done once the read limit
// is reached.
func TestSSHLimit(t *testing.T) {
	refs := []*Sketch{{Name: "A", Hashes: hk(1, 2)}}
	engine := NewSSHEngine(refs, 0, 1)
	engine.SetLimit(2)

	engine.Step(hk(1))
	if engine.Done() {
		t.Fatalf("should not be done after 1 of 2 reads")
	}
	engine.Step(hk(2))
	if !engine.Done() {
		t.Fatalf("should be done after 2 of 2 reads")
	}
}

// TestSSHParallelMatchesSequential checks that the worker-pool path used
// for large reference collections produces the same result as the
// sequential path.
func TestSSHParallelMatchesSequential(t *testing.T) {
	n := 200
	refs := make([]*Sketch, n)
	for i := range refs {
		refs[i] = &Sketch{Name: "r", Hashes: hk(uint64(i), uint64(i + 1), uint64(i + 2))}
	}
	read := hk(1, 2, 3, 4, 5)

	seq := NewSSHEngine(refs, 0, 1)
	seq.Step(read)

	par := NewSSHEngine(refs, 0, 8)
	par.Step(read)

	for i := range refs {
		if seq.SSH()[i] != par.SSH()[i] {
			t.Fatalf("ref %d: sequential=%d parallel=%d", i, seq.SSH()[i], par.SSH()[i])
		}
	}
}
