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
	"fmt"
	"io"
	"sort"
)

// Predictor emits predictions in streaming (per-read aggregation) or
// bulk (shared-hash) mode, with an optional consensus reducer over either.
type Predictor struct {
	Refs       []*Sketch
	Genotype   *GenotypeTable
	Dictionary *FeatureDictionary
	Out        io.Writer
}

// WriteHeader writes the TSV header line appropriate for mode.
func (p *Predictor) WriteHeader(stream bool) {
	if stream {
		fmt.Fprintln(p.Out, "read\tfeature_id\tvalue_id\tfeat_rank\tsssh\tstable\tpreference_score")
		return
	}
	fmt.Fprintf(p.Out, "read\tname\tshared_hashes%s\n", FeatureHeaderLine(p.Genotype))
}

// RunStreaming drives the streaming aggregation mode: for every
// incoming read, after the shared-hash engine and aggregator update,
// emit one row per (feature, ranked value) pair. nextRecord returns
// io.EOF when the stream is exhausted. Each read's block is emitted
// immediately, before the next read's state update, and end-of-stream
// never re-emits the already-printed last read. When consensus > 0, the
// top `consensus` references by running shared-hash total are also
// reduced to one majority-vote line per read.
func (p *Predictor) RunStreaming(params SketchParams, minScale float64, threads int, ranks, stability, limit, consensus int, nextRecord func() (Record, error)) error {
	engine := NewSSHEngine(p.Refs, minScale, threads)
	engine.SetLimit(limit)
	agg := NewAggregator(p.Genotype, ranks, stability)

	for {
		if engine.Done() {
			return nil
		}
		record, err := nextRecord()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		sk := NewSketcher(params)
		if err := sk.Process(record); err != nil {
			return err
		}
		readHashes := sk.ToVec()

		read := engine.Step(readHashes)
		ssh := engine.SSH()
		rows := agg.Step(read, ssh)
		for _, row := range rows {
			p.writeSSSHRow(row)
		}

		if consensus > 0 {
			if err := p.Consensus(read, rankBySSH(ssh), consensus); err != nil {
				return err
			}
		}
	}
}

// rankBySSH builds a RefRank list over every reference's current
// running shared-hash total, ordered as topK orders it: descending
// sum, ties broken by ascending reference index.
func rankBySSH(ssh []uint64) []RefRank {
	idx := topK(ssh, len(ssh))
	ranking := make([]RefRank, len(idx))
	for i, r := range idx {
		ranking[i] = RefRank{RefIndex: r, Shared: ssh[r]}
	}
	return ranking
}

func (p *Predictor) writeSSSHRow(row SSSHRow) {
	stable := 0
	if row.Stable {
		stable = 1
	}
	fmt.Fprintf(p.Out, "%d\t%d\t%d\t%d\t%d\t%d\t%.8f\n",
		row.Read, row.Feature, row.ValueID, row.FeatRank, row.Sum, stable, row.PreferenceScore)
}

// RefRank is one row of a bulk (shared-hash) ranking: a reference index
// and its shared-hash count against the accumulated query sketch.
type RefRank struct {
	RefIndex int
	Shared   uint64
}

// RunBulk drives the bulk mode: the sketcher accumulates
// over up to `limit` reads into a single sketch, a single shared-hash
// call per reference produces the shared-hash vector, references are
// sorted descending and the top `top` rows are printed with their
// genotype vectors. It returns the accumulated read count and the
// ranking so a caller can feed both to Consensus.
func (p *Predictor) RunBulk(params SketchParams, minScale float64, top, limit int, nextRecord func() (Record, error)) (int, []RefRank, error) {
	sk := NewSketcher(params)
	n := 0
	for limit <= 0 || n < limit {
		record, err := nextRecord()
		if err != nil {
			if err == io.EOF {
				break
			}
			return n, nil, err
		}
		if err := sk.Process(record); err != nil {
			return n, nil, err
		}
		n++
	}
	queryHashes := sk.ToVec()

	ranking := make([]RefRank, len(p.Refs))
	for r, ref := range p.Refs {
		ranking[r] = RefRank{RefIndex: r, Shared: Common(ref.Hashes, queryHashes, minScale)}
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Shared != ranking[j].Shared {
			return ranking[i].Shared > ranking[j].Shared
		}
		return ranking[i].RefIndex < ranking[j].RefIndex
	})

	if top > 0 && top < len(ranking) {
		ranking = ranking[:top]
	}

	for _, rr := range ranking {
		fmt.Fprintf(p.Out, "%d\t%s\t%d%s\n",
			n, p.Refs[rr.RefIndex].Name, rr.Shared, GenotypeRow(p.Genotype, p.Dictionary, rr.RefIndex))
	}
	return n, ranking, nil
}

// Consensus reduces the top-ranked references of either mode to a
// single majority label per feature. top must be odd. For each feature column
// independently the consensus label is the most frequent label, ties
// broken by first occurrence in the ranked list.
func (p *Predictor) Consensus(read int, ranking []RefRank, top int) error {
	if top%2 == 0 {
		return ErrInvalidConsensusTop
	}
	if top > len(ranking) {
		top = len(ranking)
	}
	ranking = ranking[:top]

	F := p.Genotype.NumFeatures()
	labels := make([]string, F)
	for f := 0; f < F; f++ {
		counts := make(map[string]int)
		firstSeen := make(map[string]int)
		for rank, rr := range ranking {
			label := p.Dictionary.Label(f, p.Genotype.Value(rr.RefIndex, f))
			if _, ok := firstSeen[label]; !ok {
				firstSeen[label] = rank
			}
			counts[label]++
		}
		if len(counts) == 0 {
			return ErrInvalidConsensusGenotype
		}

		var best string
		bestCount, bestFirst := -1, -1
		for label, c := range counts {
			fs := firstSeen[label]
			if c > bestCount || (c == bestCount && fs < bestFirst) {
				best, bestCount, bestFirst = label, c, fs
			}
		}
		labels[f] = best
	}

	var suffix string
	for _, label := range labels {
		suffix += "\t" + label
	}
	fmt.Fprintf(p.Out, "%d\t-\t-%s\n", read, suffix)
	return nil
}
