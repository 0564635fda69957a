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

import "sort"

// DefaultRanks is the default number of highest-SSH references considered
// per read.
const DefaultRanks = 10

// DefaultStability is the default sliding-window size for the stability
// convergence check.
const DefaultStability = 100

// SSSHEntry is one (value_id, sum) pair of an ordered[f] ranking.
type SSSHEntry struct {
	ValueID int
	Sum     uint64
}

// SSSHRow is one emitted (read, feature, rank) record.
type SSSHRow struct {
	Read            int
	Feature         int
	ValueID         int
	FeatRank        int
	Sum             uint64
	Stable          bool
	PreferenceScore float64
}

// Aggregator groups references by each genotype feature's value, sums
// the current per-reference shared-hash total within each value, ranks
// the values, and computes preference score and stability.
type Aggregator struct {
	geno       *GenotypeTable
	ranks      int
	stability  int
	topHistory [][]int // per feature, argmax value-id over all reads reported so far
}

// NewAggregator builds an Aggregator over geno's F features, considering
// the `ranks` highest-SSH references per read and requiring `stability`
// consecutive equal top-ranked values to report convergence.
func NewAggregator(geno *GenotypeTable, ranks, stability int) *Aggregator {
	if ranks <= 0 {
		ranks = DefaultRanks
	}
	if stability <= 0 {
		stability = DefaultStability
	}
	return &Aggregator{
		geno:       geno,
		ranks:      ranks,
		stability:  stability,
		topHistory: make([][]int, geno.NumFeatures()),
	}
}

// topK returns the `ranks` reference indices with the largest ssh values,
// ties broken by ascending reference index.
func topK(ssh []uint64, ranks int) []int {
	n := len(ssh)
	if ranks > n {
		ranks = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if ssh[a] != ssh[b] {
			return ssh[a] > ssh[b]
		}
		return a < b
	})
	return idx[:ranks]
}

// Step runs the per-read aggregation procedure for one read and returns
// the rows to emit, ordered feature 0 rank 0, rank 1, …; feature 1 rank
// 0, …; and so on.
func (a *Aggregator) Step(read int, ssh []uint64) []SSSHRow {
	ranked := topK(ssh, a.ranks)

	var rows []SSSHRow
	F := a.geno.NumFeatures()
	for f := 0; f < F; f++ {
		sums := make(map[int]uint64)
		for _, r := range ranked {
			v := a.geno.Value(r, f)
			if v == MissingValue {
				continue
			}
			sums[v] += ssh[r]
		}

		ordered := make([]SSSHEntry, 0, len(sums))
		for v, sum := range sums {
			ordered = append(ordered, SSSHEntry{ValueID: v, Sum: sum})
		}
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].Sum != ordered[j].Sum {
				return ordered[i].Sum > ordered[j].Sum
			}
			return ordered[i].ValueID < ordered[j].ValueID
		})

		var top int
		if len(ordered) > 0 {
			top = ordered[0].ValueID
		} else {
			top = MissingValue
		}
		a.topHistory[f] = append(a.topHistory[f], top)
		stable := a.isStable(f)

		preference := preferenceScore(ordered)

		for rank, e := range ordered {
			rows = append(rows, SSSHRow{
				Read:            read,
				Feature:         f,
				ValueID:         e.ValueID,
				FeatRank:        rank,
				Sum:             e.Sum,
				Stable:          stable,
				PreferenceScore: preference,
			})
		}
	}
	return rows
}

// isStable reports whether the last `stability` entries of topHistory[f]
// are all equal.
func (a *Aggregator) isStable(f int) bool {
	hist := a.topHistory[f]
	if len(hist) < a.stability {
		return false
	}
	last := hist[len(hist)-a.stability:]
	first := last[0]
	for _, v := range last[1:] {
		if v != first {
			return false
		}
	}
	return true
}

// preferenceScore computes the normalised lead of the top value over the
// runner-up: 1.0 if only one value is
// present, 0.0 if the runner-up sum is zero but the top is positive,
// otherwise (2p/(p+q))-1 for top sum p and runner-up sum q.
func preferenceScore(ordered []SSSHEntry) float64 {
	if len(ordered) < 2 {
		return 1.0
	}
	p := float64(ordered[0].Sum)
	q := float64(ordered[1].Sum)
	if q == 0 {
		return 0.0
	}
	return (2*p)/(p+q) - 1
}
