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

import "sync"

// minParallelRefs is the reference-collection size below which SSHEngine
// just runs the per-reference loop in the calling goroutine — spinning up
// a worker pool for a handful of references costs more than it saves
//.
const minParallelRefs = 64

// SSHEngine maintains, per reference, a running sum of shared hashes
// across all reads seen so far.
type SSHEngine struct {
	refs     []*Sketch
	minScale float64
	ssh      []uint64
	read     int // 1-based, incremented after each Step
	limit    int // 0 means unbounded
	threads  int
}

// NewSSHEngine builds an engine over refs, comparing incoming read
// sketches at the given min_scale. threads bounds how many workers
// compute per-reference deltas in parallel; <=1 means sequential.
func NewSSHEngine(refs []*Sketch, minScale float64, threads int) *SSHEngine {
	if threads < 1 {
		threads = 1
	}
	return &SSHEngine{
		refs:     refs,
		minScale: minScale,
		ssh:      make([]uint64, len(refs)),
		read:     1,
		threads:  threads,
	}
}

// SetLimit configures a positive read cutoff after which Done reports
// true. A non-positive value means unbounded.
func (e *SSHEngine) SetLimit(limit int) { e.limit = limit }

// SSH returns the current per-reference running sums. The returned slice
// is owned by the engine; callers must not retain it across the next Step.
func (e *SSHEngine) SSH() []uint64 { return e.ssh }

// Read returns the 1-based index of the read the next Step will retire
// (one past the read last retired).
func (e *SSHEngine) Read() int { return e.read }

// Done reports whether a configured limit has been reached.
func (e *SSHEngine) Done() bool {
	return e.limit > 0 && e.read > e.limit
}

// Step is one iteration of the per-record protocol: compute every
// reference's delta against readHashes, commit all of them to ssh, then
// advance the read counter. It returns the read index this step retired.
func (e *SSHEngine) Step(readHashes []HashedKmer) int {
	n := len(e.refs)
	deltas := make([]uint64, n)

	if e.threads <= 1 || n < minParallelRefs {
		for r := 0; r < n; r++ {
			deltas[r] = Common(e.refs[r].Hashes, readHashes, e.minScale)
		}
	} else {
		var wg sync.WaitGroup
		tokens := make(chan int, e.threads)
		for r := 0; r < n; r++ {
			tokens <- 1
			wg.Add(1)
			go func(r int) {
				defer wg.Done()
				defer func() { <-tokens }()
				deltas[r] = Common(e.refs[r].Hashes, readHashes, e.minScale)
			}(r)
		}
		wg.Wait()
	}

	// commit only after every delta for this read is computed.
	for r := 0; r < n; r++ {
		e.ssh[r] += deltas[r]
	}

	retired := e.read
	e.read++
	return retired
}
