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
	"strings"
	"testing"
)

// TestConsensusMajority checks that three top-ranked references
// classified L, L, M consense to the majority label L.
func TestConsensusMajority(t *testing.T) {
	geno := &GenotypeTable{
		FeatureNames: []string{"lineage"},
		IDs:          []string{"R1", "R2", "R3"},
		Values:       [][]int{{0}, {0}, {1}}, // L, L, M
	}
	dict := NewFeatureDictionary()
	dict.Set(0, 0, "L")
	dict.Set(0, 1, "M")

	var out bytes.Buffer
	p := &Predictor{Refs: refSketches("R1", "R2", "R3"), Genotype: geno, Dictionary: dict, Out: &out}

	ranking := []RefRank{{RefIndex: 0, Shared: 30}, {RefIndex: 1, Shared: 25}, {RefIndex: 2, Shared: 10}}
	if err := p.Consensus(1, ranking, 3); err != nil {
		t.Fatalf("Consensus() error: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "\tL\n") {
		t.Fatalf("Consensus() output = %q, want a row ending in lineage=L", got)
	}
}

// TestConsensusRejectsEvenTop checks that an even consensus size is rejected.
func TestConsensusRejectsEvenTop(t *testing.T) {
	geno := &GenotypeTable{FeatureNames: []string{"lineage"}, IDs: []string{"R1", "R2"}, Values: [][]int{{0}, {1}}}
	p := &Predictor{Refs: refSketches("R1", "R2"), Genotype: geno, Dictionary: NewFeatureDictionary(), Out: &bytes.Buffer{}}

	ranking := []RefRank{{RefIndex: 0, Shared: 10}, {RefIndex: 1, Shared: 5}}
	if err := p.Consensus(1, ranking, 2); err != ErrInvalidConsensusTop {
		t.Fatalf("Consensus(top=2) = %v, want ErrInvalidConsensusTop", err)
	}
}

// TestConsensusTieBreaksByFirstOccurrence checks that first occurrence
// in the ranked list only decides between labels with tied vote counts:
// a 2-1 majority wins over an earlier-ranked label, and a 1-1-1 tie
// resolves to whichever label appears first.
func TestConsensusTieBreaksByFirstOccurrence(t *testing.T) {
	geno := &GenotypeTable{
		FeatureNames: []string{"lineage"},
		IDs:          []string{"R1", "R2", "R3"},
		Values:       [][]int{{1}, {0}, {0}}, // ranked order: M, L, L
	}
	dict := NewFeatureDictionary()
	dict.Set(0, 0, "L")
	dict.Set(0, 1, "M")

	var out bytes.Buffer
	p := &Predictor{Refs: refSketches("R1", "R2", "R3"), Genotype: geno, Dictionary: dict, Out: &out}
	ranking := []RefRank{{RefIndex: 0, Shared: 3}, {RefIndex: 1, Shared: 2}, {RefIndex: 2, Shared: 1}}
	if err := p.Consensus(1, ranking, 3); err != nil {
		t.Fatalf("Consensus() error: %v", err)
	}
	// L appears twice (rank 1, 2), M once (rank 0): L wins on raw count.
	if got := out.String(); !strings.Contains(got, "\tL\n") {
		t.Fatalf("Consensus() output = %q, want lineage=L (2 votes beats 1)", got)
	}

	// M, L, N each get one vote: M is ranked first and wins the tie.
	geno.Values = [][]int{{1}, {0}, {2}}
	dict.Set(0, 2, "N")
	out.Reset()
	if err := p.Consensus(1, ranking, 3); err != nil {
		t.Fatalf("Consensus() error: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "\tM\n") {
		t.Fatalf("Consensus() output = %q, want lineage=M (first of a 1-1-1 tie)", got)
	}
}
